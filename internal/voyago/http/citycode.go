package http

import (
	"net/http"
	"strings"

	"github.com/voyago-labs/voyago/internal/voyago/service"
	"github.com/voyago-labs/voyago/pkg/httpx"
	"github.com/voyago-labs/voyago/pkg/slogx"
)

type CityCodeHandler struct {
	Trips *service.TripService
}

type cityCodeResponse struct {
	CityCode string `json:"cityCode"`
}

// ServeHTTP resolves a free-text location keyword to an IATA city code.
//
//	@Summary		Resolve a city code
//	@Description	Resolves a free-text location keyword to an IATA city code.
//	@Tags			Trips
//	@Produce		json
//	@Param			location	path		string	true	"Location keyword"
//	@Success		200			{object}	cityCodeResponse
//	@Failure		400			{object}	errorResponse	"Missing location"
//	@Failure		404			{object}	errorResponse	"No city code found"
//	@Failure		502			{object}	errorResponse	"Travel data provider failure"
//	@Router			/city-code/{location} [get].
func (h *CityCodeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	location := strings.TrimSpace(r.PathValue("location"))
	if location == "" {
		writeError(w, http.StatusBadRequest, "missing_location", "Location is required")
		return
	}

	code, err := h.Trips.CityCode(r.Context(), location)
	if err != nil {
		writeTripError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, cityCodeResponse{CityCode: code})
}
