package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewhub/internal/http-api/models"
)

const testSecret = "confirmation-test-secret"

func testUser() *models.User {
	return &models.User{
		ID:       "7f9c61e2-6a33-4f0e-9f55-1d2a3b4c5d6e",
		Username: "reader",
		Email:    "reader@example.com",
		Role:     models.RoleUser,
	}
}

func TestMakeAndCheckConfirmationCode(t *testing.T) {
	user := testUser()
	now := time.Now()

	code := MakeConfirmationCode(testSecret, user, now)

	assert.True(t, CheckConfirmationCode(testSecret, user, code, 24*time.Hour, now))
	assert.True(t, CheckConfirmationCode(testSecret, user, code, 24*time.Hour, now.Add(23*time.Hour)))
}

func TestCheckConfirmationCode_Expired(t *testing.T) {
	user := testUser()
	now := time.Now()

	code := MakeConfirmationCode(testSecret, user, now)

	assert.False(t, CheckConfirmationCode(testSecret, user, code, 24*time.Hour, now.Add(25*time.Hour)))
}

func TestCheckConfirmationCode_FromTheFuture(t *testing.T) {
	user := testUser()
	now := time.Now()

	code := MakeConfirmationCode(testSecret, user, now.Add(time.Hour))

	assert.False(t, CheckConfirmationCode(testSecret, user, code, 24*time.Hour, now))
}

func TestCheckConfirmationCode_StateChangeInvalidates(t *testing.T) {
	now := time.Now()

	for name, mutate := range map[string]func(*models.User){
		"username": func(u *models.User) { u.Username = "renamed" },
		"email":    func(u *models.User) { u.Email = "new@example.com" },
		"role":     func(u *models.User) { u.Role = models.RoleModerator },
	} {
		user := testUser()
		code := MakeConfirmationCode(testSecret, user, now)
		mutate(user)
		assert.False(t, CheckConfirmationCode(testSecret, user, code, 24*time.Hour, now),
			"changing %s should invalidate outstanding codes", name)
	}
}

func TestCheckConfirmationCode_WrongSecret(t *testing.T) {
	user := testUser()
	now := time.Now()

	code := MakeConfirmationCode(testSecret, user, now)

	assert.False(t, CheckConfirmationCode("other-secret", user, code, 24*time.Hour, now))
}

func TestCheckConfirmationCode_Tampered(t *testing.T) {
	user := testUser()
	now := time.Now()

	code := MakeConfirmationCode(testSecret, user, now)

	assert.False(t, CheckConfirmationCode(testSecret, user, code+"x", 24*time.Hour, now))
	assert.False(t, CheckConfirmationCode(testSecret, user, "nodotinhere", 24*time.Hour, now))
	assert.False(t, CheckConfirmationCode(testSecret, user, "", 24*time.Hour, now))
}

func TestHashAndVerifyCode(t *testing.T) {
	code := MakeConfirmationCode(testSecret, testUser(), time.Now())

	hash, err := HashCode(code)
	require.NoError(t, err)
	assert.NotEqual(t, code, hash)

	assert.NoError(t, VerifyCode(hash, code))
	assert.Error(t, VerifyCode(hash, code+"x"))
}
