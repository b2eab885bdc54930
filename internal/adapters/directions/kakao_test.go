package directions

import (
	"commute-learning-service/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKakaoTest(t *testing.T, directions string) (*KakaoProvider, *kakaoDirectionsRequest) {
	t.Helper()

	var sent kakaoDirectionsRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/local/search/keyword.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "KakaoAK kkey", r.Header.Get("Authorization"))
		switch r.URL.Query().Get("query") {
		case "강남역":
			_, _ = w.Write([]byte(`{"documents":[{"x":"127.0276","y":"37.4979","place_name":"강남역 2호선"}]}`))
		case "잠실역":
			_, _ = w.Write([]byte(`{"documents":[{"x":"127.1000","y":"37.5133","place_name":"잠실역"}]}`))
		default:
			_, _ = w.Write([]byte(`{"documents":[]}`))
		}
	})
	mux.HandleFunc("/v1/waypoints/directions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "KakaoAK kkey", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		_, _ = w.Write([]byte(directions))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	k, err := NewKakaoProvider("kkey")
	require.NoError(t, err)
	k.localURL, k.naviURL = srv.URL, srv.URL
	k.http.Backoff = 0
	return k, &sent
}

func TestKakaoGetRouteTime(t *testing.T) {
	k, sent := newKakaoTest(t, `{"routes":[{
	  "summary": {"origin": {"name": ""}, "destination": {"name": "잠실역"}, "duration": 1500, "distance": 9800},
	  "sections": [{"guides": [
	    {"name": "출발지", "guidance": "", "duration": 0, "distance": 0},
	    {"name": "", "guidance": "우회전", "duration": 95, "distance": 1234},
	    {"name": "", "guidance": "", "duration": 30, "distance": 100}
	  ]}]
	}]}`)

	got, err := k.GetRouteTime(context.Background(), "강남역", "잠실역", domain.ModeTransit)
	require.NoError(t, err)

	assert.InDelta(t, 127.0276, sent.Origin.X, 1e-9)
	assert.InDelta(t, 37.5133, sent.Destination.Y, 1e-9)
	assert.Equal(t, "TIME", sent.Priority)

	assert.Equal(t, domain.ModeDriving, got.Mode)
	assert.Equal(t, 25, got.Minutes)
	assert.Equal(t, 9800, got.DistanceMeters)
	assert.Equal(t, "강남역", got.Origin)
	assert.Equal(t, "잠실역", got.Destination)
	assert.Equal(t, ProviderKakao, got.Provider)

	require.Len(t, got.Steps, 3)
	assert.Equal(t, "출발지", got.Steps[0].Instruction)
	assert.Equal(t, "", got.Steps[0].Distance)
	assert.Equal(t, 2, got.Steps[1].Minutes)
	assert.Equal(t, "1.2km", got.Steps[1].Distance)
	assert.Equal(t, "안내 3", got.Steps[2].Instruction)
}

func TestKakaoNoSummary(t *testing.T) {
	k, _ := newKakaoTest(t, `{"routes":[{"summary":null}]}`)

	_, err := k.GetRouteTime(context.Background(), "강남역", "잠실역", domain.ModeDriving)
	assert.True(t, errors.Is(err, ErrNoRoute))
}

func TestKakaoGeocodeMiss(t *testing.T) {
	k, _ := newKakaoTest(t, `{}`)

	_, err := k.GetRouteTime(context.Background(), "어딘가", "잠실역", domain.ModeDriving)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no results")
}
