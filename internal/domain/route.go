package domain

import "fmt"

type TravelMode string

const (
	ModeTransit TravelMode = "transit"
	ModeDriving TravelMode = "driving"
	ModeWalking TravelMode = "walking"
)

// ParseTravelMode maps a request value to a TravelMode. An empty value means transit.
func ParseTravelMode(s string) (TravelMode, error) {
	switch TravelMode(s) {
	case "":
		return ModeTransit, nil
	case ModeTransit, ModeDriving, ModeWalking:
		return TravelMode(s), nil
	}
	return "", fmt.Errorf("parse travel mode: unknown mode %q", s)
}

// Describes a planned commute for a single request. It is never persisted.
type RouteInfo struct {
	Origin      string
	Destination string
	Minutes     int
	Mode        TravelMode
}

// A named, persisted commute shortcut with its last known duration.
type SavedRoute struct {
	ID                    string `json:"id"`
	Label                 string `json:"label"`
	Origin                string `json:"origin"`
	Destination           string `json:"destination"`
	LastCalculatedMinutes int    `json:"lastCalculatedMinutes"`
	LastUpdated           string `json:"lastUpdated"`
}
