package dto

import (
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/ports"
	"fmt"
	"time"
)

type DurationResponse struct {
	Minutes int    `json:"minutes"`
	Text    string `json:"text"`
}

type DistanceResponse struct {
	Meters int    `json:"meters"`
	Text   string `json:"text"`
}

type RouteTimeResponse struct {
	Origin      string                `json:"origin"`
	Destination string                `json:"destination"`
	Duration    DurationResponse      `json:"duration"`
	Distance    DistanceResponse      `json:"distance"`
	Mode        string                `json:"mode"`
	Steps       []ports.RouteStep     `json:"steps"`
	TransitInfo *ports.TransitSummary `json:"transitInfo"`
	Provider    string                `json:"provider"`
	IsEstimate  bool                  `json:"isEstimate"`
	LastUpdated time.Time             `json:"lastUpdated"`
}

func NewRouteTimeResponse(r ports.RouteTimeResult) RouteTimeResponse {
	steps := r.Steps
	if steps == nil {
		steps = []ports.RouteStep{}
	}

	return RouteTimeResponse{
		Origin:      r.Origin,
		Destination: r.Destination,
		Duration: DurationResponse{
			Minutes: r.Minutes,
			Text:    fmt.Sprintf("약 %d분", r.Minutes),
		},
		Distance: DistanceResponse{
			Meters: r.DistanceMeters,
			Text:   fmt.Sprintf("%.1fkm", float64(r.DistanceMeters)/1000),
		},
		Mode:        string(r.Mode),
		Steps:       steps,
		TransitInfo: r.Transit,
		Provider:    r.Provider,
		IsEstimate:  r.IsEstimate,
		LastUpdated: r.CalculatedAt,
	}
}

type SavedRouteRequest struct {
	ID                    string `json:"id"`
	Label                 string `json:"label"`
	Origin                string `json:"origin"`
	Destination           string `json:"destination"`
	LastCalculatedMinutes int    `json:"lastCalculatedMinutes"`
	LastUpdated           string `json:"lastUpdated"`
}

func (r SavedRouteRequest) ToDomain() domain.SavedRoute {
	return domain.SavedRoute{
		ID:                    r.ID,
		Label:                 r.Label,
		Origin:                r.Origin,
		Destination:           r.Destination,
		LastCalculatedMinutes: r.LastCalculatedMinutes,
		LastUpdated:           r.LastUpdated,
	}
}

type SavedRouteResponse struct {
	Route  domain.SavedRoute   `json:"route"`
	Routes []domain.SavedRoute `json:"routes"`
}

type ListSavedRoutesResponse struct {
	Routes []domain.SavedRoute `json:"routes"`
}
