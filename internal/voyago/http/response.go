package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/voyago-labs/voyago/internal/voyago/service"
	"github.com/voyago-labs/voyago/pkg/amadeus"
	"github.com/voyago-labs/voyago/pkg/httpx"
)

// errorResponse is the error body shape shared by every endpoint: a
// machine-readable kind plus a human message.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// tokenResponse is returned by register and login.
type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

func writeError(w http.ResponseWriter, code int, kind, message string) {
	httpx.WriteJSON(w, code, errorResponse{Success: false, Error: kind, Message: message})
}

// writeAuthError maps auth-service failures to responses. Unexpected errors
// are logged and reported as a bare server error.
func writeAuthError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "invalid_email", "Please enter a valid email")
	case errors.Is(err, service.ErrWeakPassword):
		writeError(w, http.StatusBadRequest, "weak_password", "Password must be at least 8 characters long")
	case errors.Is(err, service.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "duplicate_email", "User already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "invalid_credentials", "Invalid email or password")
	default:
		log.Error("auth request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "Server error")
	}
}

// writeTripError maps resolver failures to responses. Not-found is the
// client's problem, upstream and token trouble is a gateway problem.
func writeTripError(w http.ResponseWriter, log *slog.Logger, err error) {
	var (
		tokenErr    *amadeus.TokenAcquisitionError
		upstreamErr *amadeus.UpstreamError
	)

	switch {
	case errors.Is(err, amadeus.ErrLocationNotFound):
		writeError(w, http.StatusNotFound, "location_not_found", "No city code found for this location")
	case errors.Is(err, amadeus.ErrTimeout):
		log.Warn("upstream call timed out", "err", err)
		writeError(w, http.StatusGatewayTimeout, "timeout", "Upstream request timed out")
	case errors.As(err, &tokenErr):
		log.Error("token acquisition failed", "status", tokenErr.Status, "err", err)
		writeError(w, http.StatusBadGateway, "token_acquisition_failed", "Could not authenticate with the travel data provider")
	case errors.As(err, &upstreamErr):
		log.Error("upstream request failed", "status", upstreamErr.Status, "err", err)
		writeError(w, http.StatusBadGateway, "upstream_error", "Travel data provider request failed")
	default:
		log.Error("trip request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "Server error")
	}
}
