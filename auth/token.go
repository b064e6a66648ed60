package auth

import (
	"errors"
	"fmt"
	"time"

	"authcenter/models"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed input, expiry. Callers must not distinguish further.
var ErrInvalidToken = errors.New("invalid token")

// RoleClaim is the wire shape of a role inside a token payload.
type RoleClaim struct {
	ID          uint   `json:"id"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Claims is the identity payload embedded in issued tokens.
type Claims struct {
	UserID uint        `json:"id"`
	Email  string      `json:"email"`
	Roles  []RoleClaim `json:"roles"`
	jwt.RegisteredClaims
}

// HasAnyRole reports whether the claim's role set intersects the given values.
func (c *Claims) HasAnyRole(values ...string) bool {
	for _, role := range c.Roles {
		for _, v := range values {
			if role.Value == v {
				return true
			}
		}
	}
	return false
}

// TokenService issues and verifies signed, time-limited tokens.
// The secret is process-wide configuration, immutable for the process lifetime.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue signs a token carrying the user's identity and currently loaded roles.
func (s *TokenService) Issue(user *models.User) (string, error) {
	roles := make([]RoleClaim, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = RoleClaim{ID: r.ID, Value: r.Value, Description: r.Description}
	}

	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "authcenter",
			Subject:   "user-auth",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// Verify checks the signature and expiry and returns the decoded claims.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok {
			if ve.Errors&jwt.ValidationErrorMalformed != 0 {
				return nil, fmt.Errorf("%w: malformed", ErrInvalidToken)
			} else if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
				return nil, fmt.Errorf("%w: expired or not active yet", ErrInvalidToken)
			} else if ve.Errors&jwt.ValidationErrorSignatureInvalid != 0 {
				return nil, fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
