package helper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "campussphere_backend/internals/helpers"
)

func TestGenerateTokenUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok := helper.GenerateToken()
		require.NotEmpty(t, tok)
		require.False(t, seen[tok])
		seen[tok] = true
	}
}

func TestSessionTokenLongerThanVerification(t *testing.T) {
	// Session token bearer jangka panjang: entropi harus lebih besar.
	assert.Greater(t, len(helper.GenerateSessionToken()), len(helper.GenerateToken()))
}

func TestExpiry(t *testing.T) {
	future := helper.GetExpiryTime(15)
	assert.False(t, helper.IsTokenExpired(future))
	assert.True(t, helper.IsTokenExpired(time.Now().UTC().Add(-time.Second)))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := helper.HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)

	assert.True(t, helper.CheckPasswordHash("secret123", hash))
	assert.False(t, helper.CheckPasswordHash("wrong", hash))
}
