package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/config"
)

func newTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "test-api"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-that-is-long-enough!",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
}

func TestJWTManager_AccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(newTestConfig())
	userID := primitive.NewObjectID().Hex()

	token, err := manager.GenerateAccessToken(userID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "access", claims.TokenType)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTManager_RefreshToken_OmitsRole(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(newTestConfig())
	userID := primitive.NewObjectID().Hex()

	token, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	claims, err := manager.ValidateRefreshToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Empty(t, claims.Role)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestJWTManager_TokenTypeEnforcement(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(newTestConfig())
	userID := primitive.NewObjectID().Hex()

	access, err := manager.GenerateAccessToken(userID, "user")
	require.NoError(t, err)
	refresh, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	_, err = manager.ValidateRefreshToken(access)
	assert.Error(t, err, "access token must not pass refresh validation")

	_, err = manager.ValidateAccessToken(refresh)
	assert.Error(t, err, "refresh token must not pass access validation")
}

func TestJWTManager_ValidateToken_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(newTestConfig())
	token, err := manager.GenerateAccessToken(primitive.NewObjectID().Hex(), "user")
	require.NoError(t, err)

	otherCfg := newTestConfig()
	otherCfg.JWT.Secret = "a-completely-different-secret-value!!"
	other := NewJWTManager(otherCfg)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_ValidateToken_RejectsGarbage(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(newTestConfig())
	_, err := manager.ValidateToken("not-a-valid-jwt")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing prefix", header: "abc.def.ghi", want: ""},
		{name: "empty header", header: "", want: ""},
		{name: "prefix only", header: "Bearer ", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractTokenFromHeader(tt.header))
		})
	}
}
