package jwt

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "caixa", "operador", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "caixa", claims.Username)
	assert.Equal(t, "operador", claims.AccessLevel)
	assert.False(t, claims.IsAdmin)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "admin", "gerente", true)
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
