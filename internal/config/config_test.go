package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "3000"},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "sdn302_test",
		},
		Redis: RedisConfig{Host: "localhost", Port: "6379"},
		JWT: JWTConfig{
			Secret:             "test-secret-key-that-is-long-enough!",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
		Cart: CartConfig{PricingStrategy: PricingReprice, MaxSaveRetries: 3},
	}
}

func TestConfig_Validate_OK(t *testing.T) {
	cfg := validTestConfig()
	require.NoError(t, cfg.Validate())

	cfg.Cart.PricingStrategy = PricingSnapshot
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "short jwt secret", mutate: func(c *Config) { c.JWT.Secret = "too-short" }},
		{name: "missing mongo uri", mutate: func(c *Config) { c.Mongo.URI = "" }},
		{name: "missing mongo database", mutate: func(c *Config) { c.Mongo.Database = "" }},
		{name: "missing redis host", mutate: func(c *Config) { c.Redis.Host = "" }},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }},
		{name: "bad pricing strategy", mutate: func(c *Config) { c.Cart.PricingStrategy = "dynamic" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret-key-that-is-long-enough!")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, PricingReprice, cfg.Cart.PricingStrategy)
	assert.Equal(t, 3, cfg.Cart.MaxSaveRetries)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret-key-that-is-long-enough!")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("CART_PRICING_STRATEGY", PricingSnapshot)
	t.Setenv("JWT_ACCESS_EXPIRE", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, PricingSnapshot, cfg.Cart.PricingStrategy)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenExpiry)
}

func TestLoad_RejectsBadPricingStrategy(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret-key-that-is-long-enough!")
	t.Setenv("CART_PRICING_STRATEGY", "haggle")

	_, err := Load()
	assert.Error(t, err)
}
