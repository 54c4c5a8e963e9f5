package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken_RoundTrip(t *testing.T) {
	token, err := NewToken("admin", "secret", time.Hour)
	require.NoError(t, err)

	sub, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := NewToken("admin", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := NewToken("admin", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
