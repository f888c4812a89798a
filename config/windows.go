package config

import (
	"fmt"
	"time"

	"fieldassign/core/model"
)

// WindowConfig is one explicit processing window.
type WindowConfig struct {
	// Start and End are RFC 3339 timestamps; both bounds are inclusive.
	Start string `json:"start"`
	End   string `json:"end"`
	// AllowEdit permits roster edits after this window.
	AllowEdit bool `json:"allow_edit"`
}

// WindowsConfig selects between explicit windows and the default
// derivation over the appointment span.
type WindowsConfig struct {
	// Explicit lists windows in processing order. When empty, windows are
	// derived from the appointments.
	Explicit []WindowConfig `json:"explicit"`
}

// Validate checks that explicit windows parse and are well-ordered.
func (c WindowsConfig) Validate() error {
	if len(c.Explicit) == 0 {
		return nil
	}
	ws, err := c.Build()
	if err != nil {
		return err
	}
	return model.ValidateWindows(ws)
}

// Build parses the explicit windows. Returns nil when none are configured.
func (c WindowsConfig) Build() ([]model.Window, error) {
	if len(c.Explicit) == 0 {
		return nil, nil
	}
	ws := make([]model.Window, 0, len(c.Explicit))
	for i, wc := range c.Explicit {
		start, err := time.Parse(time.RFC3339, wc.Start)
		if err != nil {
			return nil, fmt.Errorf("windows.explicit[%d].start: %w", i, err)
		}
		end, err := time.Parse(time.RFC3339, wc.End)
		if err != nil {
			return nil, fmt.Errorf("windows.explicit[%d].end: %w", i, err)
		}
		ws = append(ws, model.Window{Start: start, End: end, AllowEdit: wc.AllowEdit})
	}
	return ws, nil
}
