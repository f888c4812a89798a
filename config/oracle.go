package config

import "fmt"

// OracleConfig configures the travel-time provider.
type OracleConfig struct {
	// APIKey authenticates against the distance-matrix API.
	APIKey string `json:"api_key"`
	// BaseURL overrides the API endpoint, mainly for testing.
	BaseURL string `json:"base_url"`
}

// Validate checks mandatory fields.
func (c OracleConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("oracle.api_key is required")
	}
	return nil
}

// GeocodeConfig configures the optional zip-to-city lookup used by reports.
type GeocodeConfig struct {
	// Enabled turns city resolution on.
	Enabled bool `json:"enabled"`
	// APIKey defaults to the oracle key when empty.
	APIKey string `json:"api_key"`
	// BaseURL overrides the API endpoint, mainly for testing.
	BaseURL string `json:"base_url"`
}

// SetDefaults applies sane defaults.
func (c *GeocodeConfig) SetDefaults(oracle OracleConfig) {
	if c.APIKey == "" {
		c.APIKey = oracle.APIKey
	}
}
