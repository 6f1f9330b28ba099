package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"pt.arrendado.flatfinder/internal/boot"
	"pt.arrendado.flatfinder/internal/model"
)

const bearerPrefix = "Bearer "

// Identity is a verified caller: the claims carried by a valid token, nothing
// more. Dereferencing the user record is the caller's business.
type Identity struct {
	UserID  model.UserID
	IsAdmin bool
}

type Claims struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(config *boot.Config) *Tokens {
	return &Tokens{
		secret: []byte(config.Auth.Secret),
		ttl:    config.Auth.TokenTTL,
	}
}

func (t *Tokens) Generate(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  string(user.ID),
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "flatfinder",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a raw token string. Any parse or validation
// failure, expiry included, comes back as ErrorInvalidCredential.
func (t *Tokens) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrorInvalidCredential, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, model.ErrorInvalidCredential
	}

	return &Identity{
		UserID:  model.UserID(claims.UserID),
		IsAdmin: claims.IsAdmin,
	}, nil
}

// FromHeader resolves an Authorization header value to a verified identity.
// A header without the bearer prefix is ErrorMissingCredential; a malformed
// or expired token is ErrorInvalidCredential.
func (t *Tokens) FromHeader(header string) (*Identity, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, model.ErrorMissingCredential
	}
	return t.Verify(strings.TrimPrefix(header, bearerPrefix))
}
