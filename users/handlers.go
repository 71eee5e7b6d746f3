package users

import (
	"net/http"

	"github.com/tousif31/simple-to-do-list/apperror"
	"github.com/tousif31/simple-to-do-list/auth"
)

// UserHandlers provides HTTP handlers for user profiles.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// HandleGetUserProfile godoc
// @Summary Get current user's profile
// @Description Retrieves the profile of the authenticated caller. A token whose account was deleted reports User not found.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users.ProfileResponse
// @Router /users/me [get]
func (h *UserHandlers) HandleGetUserProfile() auth.ClaimsHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
		profile, err := h.service.GetUserProfile(r.Context(), claims.UserID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, ProfileResponse{Status: apperror.StatusSuccess, User: *profile})
	}
}
