package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified payload of an access token. The JSON names id and
// email are part of the wire contract with existing clients.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
