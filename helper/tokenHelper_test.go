package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	SECRET_KEY = "unit-test-secret"

	token, refreshToken, err := GenerateAllTokens("user-1", "cook@dineflow.local", "Cook One", "cook", "branch-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, refreshToken)

	claims, msg := ValidateToken(token)
	require.Empty(t, msg)
	require.NotNil(t, claims)
	assert.Equal(t, "user-1", claims.Uid)
	assert.Equal(t, "cook@dineflow.local", claims.Email)
	assert.Equal(t, "Cook One", claims.Name)
	assert.Equal(t, "cook", claims.Role)
	assert.Equal(t, "branch-1", claims.BranchId)
}

// The refresh token only carries the user id; identity is reloaded from the
// database when it is redeemed.
func TestRefreshTokenCarriesUidOnly(t *testing.T) {
	SECRET_KEY = "unit-test-secret"

	_, refreshToken, err := GenerateAllTokens("user-2", "waiter@dineflow.local", "Waiter Two", "waiter", "branch-2")
	require.NoError(t, err)

	claims, msg := ValidateToken(refreshToken)
	require.Empty(t, msg)
	require.NotNil(t, claims)
	assert.Equal(t, "user-2", claims.Uid)
	assert.Empty(t, claims.Role)
	assert.Empty(t, claims.BranchId)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	SECRET_KEY = "unit-test-secret"
	token, _, err := GenerateAllTokens("user-3", "admin@dineflow.local", "Admin", "admin", "branch-1")
	require.NoError(t, err)

	SECRET_KEY = "a-different-secret"
	claims, msg := ValidateToken(token)

	assert.Nil(t, claims)
	assert.NotEmpty(t, msg)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	SECRET_KEY = "unit-test-secret"

	claims, msg := ValidateToken("not-a-jwt")

	assert.Nil(t, claims)
	assert.NotEmpty(t, msg)
}
