package http

import (
	"errors"
	"net/http"

	"github.com/voyago-labs/voyago/internal/voyago/service"
	"github.com/voyago-labs/voyago/pkg/httpx"
	"github.com/voyago-labs/voyago/pkg/slogx"
)

type HomeHandler struct {
	Users *service.UserService
}

type userResponse struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
}

type homeResponse struct {
	Success bool         `json:"success"`
	User    userResponse `json:"user"`
}

// ServeHTTP returns the authenticated user's profile. The authentication
// middleware has already validated the token and stashed the subject in
// the request context.
//
//	@Summary		Current user profile
//	@Description	Returns the profile of the authenticated user.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	homeResponse
//	@Failure		400	{object}	errorResponse	"Invalid or expired token"
//	@Failure		401	{object}	errorResponse	"Missing token"
//	@Failure		404	{object}	errorResponse	"User no longer exists"
//	@Router			/auth/home [get].
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	userID, ok := r.Context().Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "missing_token", "Access denied. No token provided.")
		return
	}

	user, err := h.Users.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found", "User not found")
			return
		}
		log.Error("profile lookup failed", "user_id", userID, "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "Server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, homeResponse{
		Success: true,
		User: userResponse{
			ID:       user.ID,
			UserName: user.UserName,
			Email:    user.Email,
		},
	})
}
