package http

import (
	"encoding/json"
	"net/http"

	"github.com/voyago-labs/voyago/internal/voyago/service"
	"github.com/voyago-labs/voyago/pkg/httpx"
	"github.com/voyago-labs/voyago/pkg/slogx"
)

type LoginHandler struct {
	Auth *service.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP handles credential login.
//
//	@Summary		Log in
//	@Description	Verifies credentials and returns a signed session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Login payload"
//	@Success		200		{object}	tokenResponse
//	@Failure		400		{object}	errorResponse	"Invalid email or password"
//	@Failure		500		{object}	errorResponse	"Internal server error"
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Malformed JSON body")
		return
	}

	token, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse{Success: true, Token: token})
}
