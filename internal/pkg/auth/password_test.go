package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordManager_HashAndVerify(t *testing.T) {
	t.Parallel()

	manager := NewPasswordManager(newTestConfig())

	hash, err := manager.HashPassword("correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct-horse", hash)

	assert.NoError(t, manager.VerifyPassword("correct-horse", hash))
	assert.Error(t, manager.VerifyPassword("wrong-horse", hash))
}

func TestPasswordManager_ValidatePassword(t *testing.T) {
	t.Parallel()

	manager := NewPasswordManager(newTestConfig())

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "too short", password: "abc12", wantErr: true},
		{name: "minimum length", password: "abc123", wantErr: false},
		{name: "typical", password: "a-reasonable-password", wantErr: false},
		{name: "bcrypt limit", password: strings.Repeat("x", 72), wantErr: false},
		{name: "over bcrypt limit", password: strings.Repeat("x", 73), wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := manager.ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordManager_HashPassword_RejectsInvalid(t *testing.T) {
	t.Parallel()

	manager := NewPasswordManager(newTestConfig())

	_, err := manager.HashPassword("short")
	assert.Error(t, err)
}

func TestGenerateResetToken(t *testing.T) {
	t.Parallel()

	first, err := GenerateResetToken()
	require.NoError(t, err)
	assert.Len(t, first, 32) // 16 random bytes, hex encoded

	second, err := GenerateResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
