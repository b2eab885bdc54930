package directions

import (
	"bytes"
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/platform/httpx"
	"commute-learning-service/internal/platform/obs"
	"commute-learning-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const ProviderKakao = "kakao"

// KakaoProvider implements ports.RouteTimeProvider using Kakao Mobility.
// Kakao Navi only routes cars, so every result is reported as driving.
// Addresses are resolved with the Kakao Local keyword search first.
type KakaoProvider struct {
	http     *httpx.Client
	apiKey   string
	localURL string
	naviURL  string
	now      func() time.Time
}

func NewKakaoProvider(apiKey string) (*KakaoProvider, error) {
	if apiKey == "" {
		return nil, errors.New("kakao rest api key is empty")
	}

	return &KakaoProvider{
		http:     httpx.NewClient(10*time.Second, nil),
		apiKey:   apiKey,
		localURL: "https://dapi.kakao.com",
		naviURL:  "https://apis-navi.kakaomobility.com",
		now:      time.Now,
	}, nil
}

type kakaoPlace struct {
	X         string `json:"x"`
	Y         string `json:"y"`
	PlaceName string `json:"place_name"`
}

type kakaoPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type kakaoDirectionsRequest struct {
	Origin       kakaoPoint   `json:"origin"`
	Destination  kakaoPoint   `json:"destination"`
	Waypoints    []kakaoPoint `json:"waypoints"`
	Priority     string       `json:"priority"`
	Alternatives bool         `json:"alternatives"`
	RoadDetails  bool         `json:"road_details"`
	Summary      bool         `json:"summary"`
}

type kakaoGuide struct {
	Name     string `json:"name"`
	Guidance string `json:"guidance"`
	Duration int    `json:"duration"`
	Distance int    `json:"distance"`
}

type kakaoDirectionsResponse struct {
	Routes []struct {
		Summary *struct {
			Origin struct {
				Name string `json:"name"`
			} `json:"origin"`
			Destination struct {
				Name string `json:"name"`
			} `json:"destination"`
			Duration int `json:"duration"`
			Distance int `json:"distance"`
		} `json:"summary"`
		Sections []struct {
			Guides []kakaoGuide `json:"guides"`
		} `json:"sections"`
	} `json:"routes"`
}

func (k *KakaoProvider) authorize(req *http.Request) {
	req.Header.Set("Authorization", "KakaoAK "+k.apiKey)
}

// geocode resolves a free-form place name to Kakao coordinates (x=lon, y=lat).
func (k *KakaoProvider) geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "kakao.geocode")(&err)

	q := url.Values{}
	q.Set("query", query)
	q.Set("size", "1")
	endpoint := k.localURL + "/v2/local/search/keyword.json?" + q.Encode()

	resp, err := k.http.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		k.authorize(req)
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("kakao geocode %q: execute request: %w", query, err)
	}
	defer resp.Body.Close()

	var body struct {
		Documents []kakaoPlace `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Coordinates{}, fmt.Errorf("kakao geocode %q: decode response: %w", query, err)
	}

	if len(body.Documents) == 0 {
		return domain.Coordinates{}, fmt.Errorf("kakao geocode %q: no results", query)
	}

	doc := body.Documents[0]
	lon, err := strconv.ParseFloat(doc.X, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("kakao geocode %q: parse x %q: %w", query, doc.X, err)
	}
	lat, err := strconv.ParseFloat(doc.Y, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("kakao geocode %q: parse y %q: %w", query, doc.Y, err)
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, nil
}

// GetRouteTime ignores mode; Kakao Navi answers for driving only.
func (k *KakaoProvider) GetRouteTime(
	ctx context.Context,
	origin string,
	destination string,
	_ domain.TravelMode,
) (_ ports.RouteTimeResult, err error) {
	defer obs.Time(ctx, "kakao.GetRouteTime")(&err)

	if origin == "" || destination == "" {
		return ports.RouteTimeResult{}, errors.New("get kakao route: origin and destination must be non-empty")
	}

	from, err := k.geocode(ctx, origin)
	if err != nil {
		return ports.RouteTimeResult{}, fmt.Errorf("get kakao route: %w", err)
	}
	to, err := k.geocode(ctx, destination)
	if err != nil {
		return ports.RouteTimeResult{}, fmt.Errorf("get kakao route: %w", err)
	}

	payload, err := json.Marshal(kakaoDirectionsRequest{
		Origin:      kakaoPoint{X: from.Lon, Y: from.Lat},
		Destination: kakaoPoint{X: to.Lon, Y: to.Lat},
		Waypoints:   []kakaoPoint{},
		Priority:    "TIME",
		Summary:     true,
	})
	if err != nil {
		return ports.RouteTimeResult{}, fmt.Errorf("get kakao route: marshal request: %w", err)
	}

	endpoint := k.naviURL + "/v1/waypoints/directions"
	resp, err := k.http.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		k.authorize(req)
		return req, nil
	})
	if err != nil {
		return ports.RouteTimeResult{}, fmt.Errorf("get kakao route: execute request: %w", err)
	}
	defer resp.Body.Close()

	var body kakaoDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.RouteTimeResult{}, fmt.Errorf("get kakao route: decode response: %w", err)
	}

	if len(body.Routes) == 0 || body.Routes[0].Summary == nil {
		return ports.RouteTimeResult{}, fmt.Errorf("get kakao route: %w", ErrNoRoute)
	}

	route := body.Routes[0]
	summary := route.Summary

	steps := make([]ports.RouteStep, 0)
	for _, section := range route.Sections {
		for _, g := range section.Guides {
			instruction := g.Guidance
			if instruction == "" {
				instruction = g.Name
			}
			if instruction == "" {
				instruction = fmt.Sprintf("안내 %d", len(steps)+1)
			}

			step := ports.RouteStep{
				Instruction: instruction,
				Minutes:     ceilMinutes(g.Duration),
				TravelMode:  "DRIVING",
			}
			if g.Distance > 0 {
				step.Distance = km(float64(g.Distance))
			}
			steps = append(steps, step)
		}
	}

	result := ports.RouteTimeResult{
		Origin:         summary.Origin.Name,
		Destination:    summary.Destination.Name,
		Mode:           domain.ModeDriving,
		Minutes:        ceilMinutes(summary.Duration),
		DistanceMeters: summary.Distance,
		Steps:          steps,
		Provider:       ProviderKakao,
		CalculatedAt:   k.now().UTC(),
	}
	if result.Origin == "" {
		result.Origin = origin
	}
	if result.Destination == "" {
		result.Destination = destination
	}

	return result, nil
}
