package directions

import (
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/platform/httpx"
	"commute-learning-service/internal/platform/obs"
	"commute-learning-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

const ProviderGoogle = "google"

// ErrNoRoute is returned when a provider answers but has no usable route.
var ErrNoRoute = errors.New("directions: no route found")

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// GoogleProvider implements ports.RouteTimeProvider using the Google Directions API.
// The provider is safe for concurrent use.
type GoogleProvider struct {
	http    *httpx.Client
	apiKey  string
	baseURL string
	now     func() time.Time
}

func NewGoogleProvider(apiKey string) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	return &GoogleProvider{
		http:    httpx.NewClient(10*time.Second, nil),
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com",
		now:     time.Now,
	}, nil
}

type googleValue struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}

type googleStop struct {
	Name string `json:"name"`
}

type googleTransit struct {
	Line struct {
		Name      string `json:"name"`
		ShortName string `json:"short_name"`
		Vehicle   struct {
			Name string `json:"name"`
		} `json:"vehicle"`
	} `json:"line"`
	DepartureStop googleStop `json:"departure_stop"`
	ArrivalStop   googleStop `json:"arrival_stop"`
	NumStops      int        `json:"num_stops"`
}

type googleStep struct {
	HTMLInstructions string         `json:"html_instructions"`
	Duration         googleValue    `json:"duration"`
	Distance         googleValue    `json:"distance"`
	TravelMode       string         `json:"travel_mode"`
	TransitDetails   *googleTransit `json:"transit_details"`
}

type googleLeg struct {
	StartAddress string       `json:"start_address"`
	EndAddress   string       `json:"end_address"`
	Duration     googleValue  `json:"duration"`
	Distance     googleValue  `json:"distance"`
	Steps        []googleStep `json:"steps"`
}

type googleDirectionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []googleLeg `json:"legs"`
	} `json:"routes"`
}

func ceilMinutes(seconds int) int {
	return int(math.Ceil(float64(seconds) / 60))
}

func (g *GoogleProvider) GetRouteTime(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
) (_ ports.RouteTimeResult, err error) {
	defer obs.Time(ctx, "google.GetRouteTime")(&err)

	if origin == "" || destination == "" {
		return ports.RouteTimeResult{}, errors.New("get google route: origin and destination must be non-empty")
	}

	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("mode", string(mode))
	q.Set("key", g.apiKey)
	q.Set("language", "ko")
	q.Set("region", "KR")
	endpoint := g.baseURL + "/maps/api/directions/json?" + q.Encode()

	resp, err := g.http.DoWithRetry(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return ports.RouteTimeResult{}, fmt.Errorf("get google route: execute request: %w", err)
	}
	defer resp.Body.Close()

	var body googleDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.RouteTimeResult{}, fmt.Errorf("get google route: decode response: %w", err)
	}

	if body.Status != "OK" || len(body.Routes) == 0 || len(body.Routes[0].Legs) == 0 {
		return ports.RouteTimeResult{}, fmt.Errorf("get google route status=%q: %w", body.Status, ErrNoRoute)
	}

	leg := body.Routes[0].Legs[0]

	return ports.RouteTimeResult{
		Origin:         leg.StartAddress,
		Destination:    leg.EndAddress,
		Mode:           mode,
		Minutes:        ceilMinutes(leg.Duration.Value),
		DistanceMeters: leg.Distance.Value,
		Steps:          googleSteps(leg.Steps),
		Transit:        transitSummary(leg.Steps),
		Provider:       ProviderGoogle,
		CalculatedAt:   g.now().UTC(),
	}, nil
}

func googleSteps(steps []googleStep) []ports.RouteStep {
	out := make([]ports.RouteStep, 0, len(steps))
	for _, s := range steps {
		step := ports.RouteStep{
			Instruction: htmlTag.ReplaceAllString(s.HTMLInstructions, ""),
			Minutes:     ceilMinutes(s.Duration.Value),
			Distance:    s.Distance.Text,
			TravelMode:  s.TravelMode,
		}

		if td := s.TransitDetails; td != nil {
			line := td.Line.Name
			if line == "" {
				line = td.Line.ShortName
			}
			step.TransitDetails = &ports.TransitDetails{
				Line:      line,
				Vehicle:   td.Line.Vehicle.Name,
				Departure: td.DepartureStop.Name,
				Arrival:   td.ArrivalStop.Name,
				Stops:     td.NumStops,
			}
		}

		out = append(out, step)
	}
	return out
}

// transitSummary counts stops and transfers over the TRANSIT steps.
func transitSummary(steps []googleStep) *ports.TransitSummary {
	summary := &ports.TransitSummary{MainLine: "Unknown"}

	transitSteps := 0
	for _, s := range steps {
		if s.TravelMode != "TRANSIT" {
			continue
		}
		transitSteps++

		if s.TransitDetails == nil {
			continue
		}
		summary.TotalStops += s.TransitDetails.NumStops
		if transitSteps == 1 && s.TransitDetails.Line.Name != "" {
			summary.MainLine = s.TransitDetails.Line.Name
		}
	}
	summary.Transfers = max(0, transitSteps-1)

	return summary
}
