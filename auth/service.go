// Package auth registers users, verifies passwords and issues and verifies
// the bearer tokens that guard every todo route.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tousif31/simple-to-do-list/apperror"
	"github.com/tousif31/simple-to-do-list/config"
	"github.com/tousif31/simple-to-do-list/model"
	"github.com/tousif31/simple-to-do-list/store"
)

const (
	// BcryptCost is the fixed hashing cost for stored passwords.
	BcryptCost = 10
	// TokenLifetime is how long an access token is accepted after issuance.
	TokenLifetime = time.Hour
)

// Sentinel causes carried inside the AppErrors returned by Service.
var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrEmailNotFound = errors.New("email not found")
	ErrBadPassword   = errors.New("password does not match")
	ErrMissingToken  = errors.New("token not provided")
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
)

// Service provides registration, login and token verification.
type Service struct {
	users  store.UserStore
	secret []byte
	issuer string
	now    func() time.Time
}

// NewService creates a Service. cfg.JWTSecret must be non-empty; config.Load
// refuses to start without it.
func NewService(users store.UserStore, cfg config.AuthConfig) *Service {
	return &Service{
		users:  users,
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (model.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := Validate(req); err != nil {
		return model.User{}, err
	}

	// Checked up front so a taken email does not pay for a bcrypt hash.
	// The unique constraint below still decides concurrent registrations.
	_, err := s.users.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return model.User{}, apperror.NewConflictError("Email already exists", ErrEmailTaken)
	case !errors.Is(err, store.ErrNotFound):
		return model.User{}, apperror.NewDatabaseError("Database error", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return model.User{}, apperror.NewValidationError("Password is too long", err)
		}
		return model.User{}, apperror.NewInternalError("Failed to register user", err)
	}

	user, err := s.users.CreateUser(ctx, model.User{
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hashedPassword),
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return model.User{}, apperror.NewConflictError("Email already exists", ErrEmailTaken)
		}
		return model.User{}, apperror.NewDatabaseError("Failed to register user", err)
	}
	return user, nil
}

// Login checks the credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	req.Email = normalizeEmail(req.Email)
	if err := Validate(req); err != nil {
		return "", err
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apperror.NewAuthError("Email not found", ErrEmailNotFound)
		}
		return "", apperror.NewDatabaseError("Database error", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return "", apperror.NewAuthError("Invalid password", ErrBadPassword)
	}

	return s.IssueToken(user)
}

// IssueToken signs an HS256 token for user that expires after TokenLifetime.
func (s *Service) IssueToken(user model.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperror.NewInternalError("Failed to issue token", err)
	}
	return signed, nil
}

// Verify parses tokenString and returns its claims. The returned AppError
// wraps ErrMissingToken, ErrInvalidToken or ErrExpiredToken.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, apperror.NewAuthError("Token not provided", ErrMissingToken)
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(s.issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.NewAuthError("Token expired", ErrExpiredToken)
		}
		return nil, apperror.NewAuthError("Invalid token", fmt.Errorf("%w: %v", ErrInvalidToken, err))
	}

	if claims.UserID == 0 {
		return nil, apperror.NewAuthError("Invalid token", fmt.Errorf("%w: id claim is missing", ErrInvalidToken))
	}
	return claims, nil
}
