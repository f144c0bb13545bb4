package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/voyago-labs/voyago/internal/voyago/service"
	"github.com/voyago-labs/voyago/pkg/httpx"
	"github.com/voyago-labs/voyago/pkg/slogx"
)

type TripHandler struct {
	Trips *service.TripService
}

// ServeHTTP resolves a trip request into a concrete plan.
//
//	@Summary		Generate a trip location
//	@Description	Resolves the requested location to an IATA city code and echoes the trip parameters back as a plan.
//	@Tags			Trips
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.TripRequest	true	"Trip parameters"
//	@Success		200		{object}	service.TripPlan
//	@Failure		400		{object}	errorResponse	"Malformed body or missing location"
//	@Failure		404		{object}	errorResponse	"No city code found"
//	@Failure		502		{object}	errorResponse	"Travel data provider failure"
//	@Router			/generate-trip-location [post].
func (h *TripHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var req service.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Malformed JSON body")
		return
	}
	if strings.TrimSpace(req.Location) == "" {
		writeError(w, http.StatusBadRequest, "missing_location", "Location is required")
		return
	}

	plan, err := h.Trips.GenerateTripLocation(r.Context(), req)
	if err != nil {
		writeTripError(w, log, err)
		return
	}

	log.Info("trip location resolved", "location", req.Location, "city_code", plan.TripLocation)
	httpx.WriteJSON(w, http.StatusOK, plan)
}
