package auth

import (
	"net/http"

	"github.com/tousif31/simple-to-do-list/apperror"
)

// Handlers exposes the Service over HTTP.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleRegister godoc
// @Summary Register a user
// @Description Creates an account. Emails are unique and compared case-insensitively.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "Registration details"
// @Success 200 {object} auth.StatusResponse "Success, or an apperror.ErrorResponse envelope: Email already exists"
// @Router /register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := DecodeJSON(w, r, &req); err != nil {
			WriteError(w, r, err)
			return
		}

		if _, err := h.service.Register(r.Context(), req); err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, Success())
	}
}

// HandleLogin godoc
// @Summary Log in
// @Description Checks the credentials and returns a bearer token valid for one hour.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "Login credentials"
// @Success 200 {object} auth.LoginResponse "Success, or an apperror.ErrorResponse envelope: Email not found, Invalid password"
// @Router /login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := DecodeJSON(w, r, &req); err != nil {
			WriteError(w, r, err)
			return
		}

		token, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, LoginResponse{Status: apperror.StatusSuccess, Token: token})
	}
}

// HandleProtected godoc
// @Summary Show token claims
// @Description Diagnostic endpoint returning the verified claims of the caller's token.
// @Tags Auth
// @Produce json
// @Success 200 {object} auth.ProtectedResponse
// @Security BearerAuth
// @Router /protected [get]
func (h *Handlers) HandleProtected() ClaimsHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, claims *Claims) {
		WriteJSON(w, ProtectedResponse{Status: apperror.StatusSuccess, User: claims})
	}
}
