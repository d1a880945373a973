package identity

import "time"

// Config represents the configuration for the identity provider client
type Config struct {
	// BaseURL is the identity provider API base URL
	BaseURL string

	// APIKey authenticates this service against the provider
	APIKey string

	// Timeout bounds each provider request
	Timeout time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrInvalidConfig
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	return nil
}
