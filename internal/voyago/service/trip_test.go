package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/voyago-labs/voyago/pkg/amadeus"
	"github.com/stretchr/testify/require"
)

// newStubUpstream serves the token endpoint plus a locations endpoint with
// the given payload.
func newStubUpstream(t *testing.T, locationsPayload string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"stub-token","token_type":"Bearer","expires_in":1799}`)
	})
	mux.HandleFunc("GET /v1/reference-data/locations", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, locationsPayload)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTripService(t *testing.T, locationsPayload string) *TripService {
	t.Helper()

	upstream := newStubUpstream(t, locationsPayload)
	return &TripService{Amadeus: amadeus.NewClient(amadeus.Config{
		BaseURL:      upstream.URL,
		ClientID:     "test-client",
		ClientSecret: "test-secret",
	})}
}

func TestGenerateTripLocation(t *testing.T) {
	t.Parallel()

	trips := newTripService(t, `{"data":[{"name":"PARIS","iataCode":"PAR","subType":"CITY"}]}`)

	plan, err := trips.GenerateTripLocation(context.Background(), TripRequest{
		Location:    "Paris",
		Days:        5,
		Budget:      "moderate",
		TravelGroup: "couple",
	})
	require.NoError(t, err)

	require.Equal(t, TripPlan{
		TripLocation: "PAR",
		Days:         5,
		Budget:       "moderate",
		TravelGroup:  "couple",
	}, plan, "trip parameters pass through unchanged around the resolved code")
}

func TestGenerateTripLocationNotFound(t *testing.T) {
	t.Parallel()

	trips := newTripService(t, `{"data":[]}`)

	_, err := trips.GenerateTripLocation(context.Background(), TripRequest{Location: "Atlantis"})
	require.ErrorIs(t, err, amadeus.ErrLocationNotFound)
}

func TestCityCode(t *testing.T) {
	t.Parallel()

	trips := newTripService(t, `{"data":[{"name":"TOKYO","iataCode":"TYO","subType":"CITY"}]}`)

	code, err := trips.CityCode(context.Background(), "Tokyo")
	require.NoError(t, err)
	require.Equal(t, "TYO", code)
}
