package ports

import (
	"commute-learning-service/internal/domain"
	"context"
	"time"
)

// One leg of a computed route, reshaped from the directions provider.
type RouteStep struct {
	Instruction    string          `json:"instruction"`
	Minutes        int             `json:"duration"`
	Distance       string          `json:"distance,omitempty"`
	TravelMode     string          `json:"travelMode"`
	TransitDetails *TransitDetails `json:"transitDetails"`
}

type TransitDetails struct {
	Line      string `json:"line,omitempty"`
	Vehicle   string `json:"vehicle,omitempty"`
	Departure string `json:"departure,omitempty"`
	Arrival   string `json:"arrival,omitempty"`
	Stops     int    `json:"stops"`
}

// Aggregate transit facts for a route.
type TransitSummary struct {
	TotalStops int    `json:"totalStops"`
	Transfers  int    `json:"transfers"`
	MainLine   string `json:"mainLine"`
}

// Travel duration and distance between two locations.
type RouteTimeResult struct {
	Origin         string
	Destination    string
	Mode           domain.TravelMode
	Minutes        int
	DistanceMeters int
	Steps          []RouteStep
	Transit        *TransitSummary
	Provider       string
	IsEstimate     bool
	CalculatedAt   time.Time
}

// Contract for computing commute durations.
type RouteTimeProvider interface {
	// Return travel duration between origin and destination for the given mode.
	GetRouteTime(ctx context.Context, origin, destination string, mode domain.TravelMode) (RouteTimeResult, error)
}
