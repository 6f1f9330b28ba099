package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pt.arrendado.flatfinder/internal/boot"
	"pt.arrendado.flatfinder/internal/model"
)

func newTestTokens(ttl time.Duration) *Tokens {
	config := &boot.Config{}
	config.Auth.Secret = "test-secret"
	config.Auth.TokenTTL = ttl
	return NewTokens(config)
}

func TestTokens(t *testing.T) {
	assert := assert.New(t)

	tokens := newTestTokens(time.Hour)
	user := &model.User{ID: "U1", IsAdmin: true}

	t.Run("round trip", func(t *testing.T) {
		signed, err := tokens.Generate(user)
		assert.Nil(err)

		identity, err := tokens.FromHeader("Bearer " + signed)
		assert.Nil(err)
		assert.Equal(model.UserID("U1"), identity.UserID)
		assert.True(identity.IsAdmin)
	})

	t.Run("missing bearer prefix", func(t *testing.T) {
		_, err := tokens.FromHeader("")
		assert.ErrorIs(err, model.ErrorMissingCredential)

		signed, _ := tokens.Generate(user)
		_, err = tokens.FromHeader(signed)
		assert.ErrorIs(err, model.ErrorMissingCredential)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := tokens.FromHeader("Bearer not-a-token")
		assert.ErrorIs(err, model.ErrorInvalidCredential)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := newTestTokens(time.Hour)
		other.secret = []byte("another-secret")
		signed, err := other.Generate(user)
		assert.Nil(err)

		_, err = tokens.FromHeader("Bearer " + signed)
		assert.ErrorIs(err, model.ErrorInvalidCredential)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newTestTokens(-time.Minute)
		signed, err := expired.Generate(user)
		assert.Nil(err)

		_, err = tokens.FromHeader("Bearer " + signed)
		assert.ErrorIs(err, model.ErrorInvalidCredential)
	})
}
