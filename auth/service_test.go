package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tousif31/simple-to-do-list/apperror"
	"github.com/tousif31/simple-to-do-list/config"
	"github.com/tousif31/simple-to-do-list/model"
	"github.com/tousif31/simple-to-do-list/store/memory"
)

var testAuthConfig = config.AuthConfig{JWTSecret: "test-secret", Issuer: "simple-to-do-list"}

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	st := memory.NewStore()
	return NewService(st, testAuthConfig), st
}

func register(t *testing.T, svc *Service, name, email, password string) model.User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterRequest{Name: name, Email: email, Password: password})
	require.NoError(t, err)
	return u
}

func TestRegister_StoresBcryptHash(t *testing.T) {
	svc, st := newTestService(t)
	u := register(t, svc, "Alice", "a@x.com", "pw")

	stored, err := st.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "pw", stored.HashedPassword)

	cost, err := bcrypt.Cost([]byte(stored.HashedPassword))
	require.NoError(t, err)
	assert.Equal(t, BcryptCost, cost)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	first := register(t, svc, "Alice", "a@x.com", "pw")

	_, err := svc.Register(ctx, RegisterRequest{Name: "Impostor", Email: "A@X.com ", Password: "other"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.True(t, apperror.IsConflictError(err))
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, "Email already exists", appErr.Message)

	stored, err := st.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "Alice", stored.Name)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		req  RegisterRequest
		want string
	}{
		{RegisterRequest{Email: "a@x.com", Password: "pw"}, "Name is required"},
		{RegisterRequest{Name: "A", Password: "pw"}, "Email is required"},
		{RegisterRequest{Name: "A", Email: "not-an-email", Password: "pw"}, "Email is invalid"},
		{RegisterRequest{Name: "A", Email: "a@x.com"}, "Password is required"},
		{RegisterRequest{Name: "A", Email: "a@x.com", Password: strings.Repeat("x", 73)}, "Password is too long"},
	}
	for _, tt := range tests {
		_, err := svc.Register(ctx, tt.req)
		require.Error(t, err, tt.want)
		assert.True(t, apperror.IsValidationError(err), tt.want)
		appErr, _ := apperror.FromError(err)
		assert.Equal(t, tt.want, appErr.Message)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u := register(t, svc, "Alice", "a@x.com", "pw")

	token, err := svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.NotEmpty(t, claims.ID)

	token, err = svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "wrong"})
	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrBadPassword)
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, "Invalid password", appErr.Message)

	token, err = svc.Login(ctx, LoginRequest{Email: "nobody@x.com", Password: "pw"})
	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrEmailNotFound)
	appErr, _ = apperror.FromError(err)
	assert.Equal(t, "Email not found", appErr.Message)
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "Alice", "Alice@Example.com", "pw")

	_, err := svc.Login(context.Background(), LoginRequest{Email: " alice@example.COM", Password: "pw"})
	assert.NoError(t, err)
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	svc, _ := newTestService(t)
	issuedAt := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return issuedAt }
	token, err := svc.IssueToken(model.User{ID: 1, Email: "a@x.com"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(TokenLifetime), claims.ExpiresAt.Time.UTC())
	assert.Equal(t, issuedAt, claims.IssuedAt.Time.UTC())

	svc.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpiredToken)
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, "Token expired", appErr.Message)
}

func TestVerify_Rejections(t *testing.T) {
	svc, _ := newTestService(t)
	good, err := svc.IssueToken(model.User{ID: 1, Email: "a@x.com"})
	require.NoError(t, err)
	other, err := svc.IssueToken(model.User{ID: 2, Email: "b@x.com"})
	require.NoError(t, err)

	_, err = svc.Verify("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = svc.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Payload of one token under the signature of another.
	g, o := strings.Split(good, "."), strings.Split(other, ".")
	_, err = svc.Verify(g[0] + "." + o[1] + "." + g[2])
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign := NewService(memory.NewStore(), config.AuthConfig{JWTSecret: "another-secret", Issuer: testAuthConfig.Issuer})
	forged, err := foreign.IssueToken(model.User{ID: 1, Email: "a@x.com"})
	require.NoError(t, err)
	_, err = svc.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims := &Claims{UserID: 1, Email: "a@x.com", RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    testAuthConfig.Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testAuthConfig.JWTSecret))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noExp := &Claims{UserID: 1, Email: "a@x.com", RegisteredClaims: jwt.RegisteredClaims{Issuer: testAuthConfig.Issuer}}
	unbounded, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noExp).SignedString([]byte(testAuthConfig.JWTSecret))
	require.NoError(t, err)
	_, err = svc.Verify(unbounded)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
