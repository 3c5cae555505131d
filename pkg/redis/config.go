package redis

import (
	"fmt"
	"time"
)

// Config represents Redis configuration options
type Config struct {
	// Host is the Redis server host
	Host string
	// Port is the Redis server port
	Port int
	// Password is the Redis server password
	Password string
	// Database is the Redis database number
	Database int
	// KeyPrefix namespaces every key written by this application
	KeyPrefix string
	// MaxRetries is the maximum number of retries for failed commands
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	// DefaultCacheTTL is used by caches created without an explicit TTL
	DefaultCacheTTL time.Duration
}

// NewRedisConfig creates a new Redis configuration with default values
func NewRedisConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            6379,
		KeyPrefix:       "lindas-hydro",
		MaxRetries:      3,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
		PoolTimeout:     4 * time.Second,
		DefaultCacheTTL: 30 * time.Minute,
	}
}

// WithHost sets the Redis server host
func (c *Config) WithHost(host string) *Config {
	c.Host = host
	return c
}

// WithPort sets the Redis server port
func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

// WithPassword sets the Redis server password
func (c *Config) WithPassword(password string) *Config {
	c.Password = password
	return c
}

// WithDatabase sets the Redis database number
func (c *Config) WithDatabase(database int) *Config {
	c.Database = database
	return c
}

// WithKeyPrefix sets the namespace prepended to keys
func (c *Config) WithKeyPrefix(prefix string) *Config {
	c.KeyPrefix = prefix
	return c
}

// WithDefaultCacheTTL sets the default TTL for caches
func (c *Config) WithDefaultCacheTTL(defaultTTL time.Duration) *Config {
	c.DefaultCacheTTL = defaultTTL
	return c
}

// Key joins parts onto the configured prefix with ':'
func (c *Config) Key(parts ...string) string {
	key := c.KeyPrefix
	for _, part := range parts {
		if key == "" {
			key = part
			continue
		}
		key += ":" + part
	}
	return key
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1 and 65535", c.Port)
	}
	if c.Database < 0 || c.Database > 15 {
		return fmt.Errorf("invalid database: %d, must be between 0 and 15", c.Database)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("invalid max retries: %d, must be non-negative", c.MaxRetries)
	}
	if c.DefaultCacheTTL < 0 {
		return fmt.Errorf("invalid default cache TTL: %v, must be non-negative", c.DefaultCacheTTL)
	}
	return nil
}
