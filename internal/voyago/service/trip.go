package service

import (
	"context"

	"github.com/voyago-labs/voyago/pkg/amadeus"
)

// TripService resolves trip locations against the Amadeus API.
type TripService struct {
	Amadeus *amadeus.Client
}

// TripRequest is a trip-generation request as received from the client.
type TripRequest struct {
	Location    string `json:"location"`
	Days        int    `json:"days"`
	Budget      string `json:"budget"`
	TravelGroup string `json:"travelGroup"`
}

// TripPlan echoes the request parameters with the location resolved to its
// IATA city code.
type TripPlan struct {
	TripLocation string `json:"tripLocation"`
	Days         int    `json:"days"`
	Budget       string `json:"budget"`
	TravelGroup  string `json:"travelGroup"`
}

// CityCode resolves a location name to an IATA city code.
func (s *TripService) CityCode(ctx context.Context, location string) (string, error) {
	return s.Amadeus.CityCode(ctx, location)
}

// GenerateTripLocation resolves the request's location and carries the rest
// of the trip parameters through unchanged.
func (s *TripService) GenerateTripLocation(ctx context.Context, req TripRequest) (TripPlan, error) {
	code, err := s.Amadeus.CityCode(ctx, req.Location)
	if err != nil {
		return TripPlan{}, err
	}

	return TripPlan{
		TripLocation: code,
		Days:         req.Days,
		Budget:       req.Budget,
		TravelGroup:  req.TravelGroup,
	}, nil
}
