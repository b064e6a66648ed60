package auth

import (
	"testing"
	"time"

	"authcenter/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testSecret = []byte("test-signing-key")

func newTestTokenService() *TokenService {
	return NewTokenService(testSecret, 24*time.Hour)
}

func modelsRole(value string) models.Role {
	return models.Role{Model: gorm.Model{ID: 2}, Value: value}
}

func testUser() *models.User {
	return &models.User{
		Model: gorm.Model{ID: 7},
		Email: "a@x.com",
		Roles: []models.Role{
			{Model: gorm.Model{ID: 1}, Value: "USER", Description: "Standard user"},
		},
	}
}

func TestIssueAndVerify(t *testing.T) {
	ts := newTestTokenService()

	token, err := ts.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	require.Len(t, claims.Roles, 1)
	assert.Equal(t, "USER", claims.Roles[0].Value)
	assert.Equal(t, "Standard user", claims.Roles[0].Description)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyExpiredToken(t *testing.T) {
	ts := newTestTokenService()

	// Valid signature, expiry in the past.
	claims := &Claims{
		UserID: 7,
		Email:  "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)

	_, err = ts.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	other := NewTokenService([]byte("a-different-key"), 24*time.Hour)
	token, err := other.Issue(testUser())
	require.NoError(t, err)

	_, err = newTestTokenService().Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	ts := newTestTokenService()
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := ts.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestHasAnyRole(t *testing.T) {
	claims := &Claims{Roles: []RoleClaim{{Value: "USER"}, {Value: "ADMIN"}}}

	assert.True(t, claims.HasAnyRole("ADMIN"))
	assert.True(t, claims.HasAnyRole("MODERATOR", "USER"))
	assert.False(t, claims.HasAnyRole("MODERATOR"))
	assert.False(t, claims.HasAnyRole())

	empty := &Claims{}
	assert.False(t, empty.HasAnyRole("USER"))
}

func TestCheckPassword(t *testing.T) {
	digest, err := HashPassword("pass1", 5)
	require.NoError(t, err)
	assert.NotEqual(t, "pass1", digest)

	assert.True(t, CheckPassword("pass1", digest))
	assert.False(t, CheckPassword("pass2", digest))
	assert.False(t, CheckPassword("pass1", "not-a-bcrypt-digest"))
}
