package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devanshm/turfbook/internal/models"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{
		ID:    uuid.New(),
		Email: "captain@example.com",
		Role:  models.UserRoleOwner,
	}

	tokenStr, err := IssueToken(user, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, userID, err := ParseToken(tokenStr, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.UserRoleOwner, claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "a@b.c", Role: models.UserRoleUser}

	tokenStr, err := IssueToken(user, testSecret)
	require.NoError(t, err)

	_, _, err = ParseToken(tokenStr, "a-different-secret")
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, _, err := ParseToken("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}
