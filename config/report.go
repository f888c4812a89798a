package config

import "fmt"

// ReportConfig controls the result export.
type ReportConfig struct {
	// Format is "text" or "csv".
	Format string `json:"format"`
	// Output is the destination file; empty means stdout.
	Output string `json:"output"`
}

// SetDefaults applies sane defaults.
func (c *ReportConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = "text"
	}
}

// Validate checks mandatory fields.
func (c ReportConfig) Validate() error {
	if c.Format != "text" && c.Format != "csv" {
		return fmt.Errorf("unknown report format %s", c.Format)
	}
	return nil
}
