package auth

import (
	"net/http"
	"strings"

	"github.com/tousif31/simple-to-do-list/apperror"
)

// TokenVerifier turns a raw bearer token into verified claims.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// ClaimsHandlerFunc is a handler that runs only after the caller has been
// authenticated. claims is never nil.
type ClaimsHandlerFunc func(w http.ResponseWriter, r *http.Request, claims *Claims)

// Guard authenticates requests carrying an Authorization: Bearer header.
type Guard struct {
	verifier TokenVerifier
}

// NewGuard creates a Guard backed by verifier.
func NewGuard(verifier TokenVerifier) *Guard {
	return &Guard{verifier: verifier}
}

// Authorize returns the caller's claims, or an AppError wrapping
// ErrMissingToken, ErrInvalidToken or ErrExpiredToken.
func (g *Guard) Authorize(r *http.Request) (*Claims, error) {
	token, err := BearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}
	return g.verifier.Verify(token)
}

// Protect adapts next into an http.HandlerFunc that rejects unauthenticated
// requests with the error envelope and otherwise passes the claims along.
func (g *Guard) Protect(next ClaimsHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := g.Authorize(r)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		next(w, r, claims)
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	parts := strings.Fields(header)
	switch {
	case len(parts) == 0:
		return "", apperror.NewAuthError("Token not provided", ErrMissingToken)
	case !strings.EqualFold(parts[0], "bearer"):
		return "", apperror.NewAuthError("Invalid token", ErrInvalidToken)
	case len(parts) == 1:
		return "", apperror.NewAuthError("Token not provided", ErrMissingToken)
	case len(parts) > 2:
		return "", apperror.NewAuthError("Invalid token", ErrInvalidToken)
	}
	return parts[1], nil
}
