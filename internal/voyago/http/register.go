package http

import (
	"encoding/json"
	"net/http"

	"github.com/voyago-labs/voyago/internal/voyago/service"
	"github.com/voyago-labs/voyago/pkg/httpx"
	"github.com/voyago-labs/voyago/pkg/slogx"
)

type RegisterHandler struct {
	Auth *service.AuthService
}

type registerRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP handles user registration.
//
//	@Summary		Register a new user
//	@Description	Creates a user account and returns a signed session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerRequest	true	"Registration payload"
//	@Success		201		{object}	tokenResponse
//	@Failure		400		{object}	errorResponse	"Invalid email, weak password, or duplicate email"
//	@Failure		500		{object}	errorResponse	"Internal server error"
//	@Router			/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Malformed JSON body")
		return
	}

	token, err := h.Auth.Register(r.Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		writeAuthError(w, log, err)
		return
	}

	log.Info("user registered", "email", req.Email)
	httpx.WriteJSON(w, http.StatusCreated, tokenResponse{Success: true, Token: token})
}
