package dto

import "commute-learning-service/internal/domain"

type LearningPacksResponse struct {
	Minutes      int                   `json:"minutes"`
	TotalMinutes int                   `json:"totalMinutes"`
	Packs        []domain.LearningPack `json:"packs"`
}

type RoutePacksRequest struct {
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`
	Mode            string   `json:"mode"`
	Provider        string   `json:"provider"`
	Minutes         *int     `json:"minutes"`
	ExternalPackIDs []string `json:"external_pack_ids"`
}

type RouteSummary struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Mode        string `json:"mode"`
	Minutes     int    `json:"minutes"`
	// Where Minutes came from: "request", "default", or a route-time provider name.
	Source     string `json:"source"`
	IsEstimate bool   `json:"isEstimate"`
}

type RoutePacksResponse struct {
	Route        RouteSummary          `json:"route"`
	TotalMinutes int                   `json:"totalMinutes"`
	Packs        []domain.LearningPack `json:"packs"`
}
