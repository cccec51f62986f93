package security

import (
	"testing"

	"Postcraft/internal/api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	Configure(config.JWTConfig{Secret: "test-secret", Issuer: "postcraft-test", ExpireHours: 1})

	token, err := GenerateToken(42, "ADMIN")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "postcraft-test", claims.Issuer)

	sig, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	Configure(config.JWTConfig{Secret: "one"})
	token, err := GenerateToken(1, "USER")
	require.NoError(t, err)

	Configure(config.JWTConfig{Secret: "two"})
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractSignature_Malformed(t *testing.T) {
	_, err := ExtractSignature("not-a-token")
	assert.Error(t, err)
}
