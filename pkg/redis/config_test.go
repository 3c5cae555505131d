package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigKey(t *testing.T) {
	config := NewRedisConfig()
	assert.Equal(t, "lindas-hydro:keys:data.csv", config.Key("keys", "data.csv"))

	config.WithKeyPrefix("")
	assert.Equal(t, "keys:data.csv", config.Key("keys", "data.csv"))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty host", mutate: func(c *Config) { c.WithHost("") }, wantErr: "host cannot be empty"},
		{name: "bad port", mutate: func(c *Config) { c.WithPort(0) }, wantErr: "invalid port: 0, must be between 1 and 65535"},
		{name: "bad database", mutate: func(c *Config) { c.WithDatabase(16) }, wantErr: "invalid database: 16, must be between 0 and 15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewRedisConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(NewRedisConfig().WithHost(""))
	require.Error(t, err)
}

func TestCacheKey(t *testing.T) {
	client, err := NewClient(NewRedisConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cache := NewCache(client, NewCacheOptions("latest"))
	assert.Equal(t, "lindas-hydro:latest::observations", cache.buildCacheKey("observations"))
	assert.Equal(t, NewRedisConfig().DefaultCacheTTL, cache.getTTL())
}
