package config

import "fmt"

// InputsConfig points at the appointment, roster and optional edit script
// files for a run.
type InputsConfig struct {
	// Appointments is the path of the appointment CSV export.
	Appointments string `json:"appointments"`
	// Roster is the path of the representative roster file.
	Roster string `json:"roster"`
	// Edits optionally points at a scripted roster edit file.
	Edits string `json:"edits"`
}

// Validate checks mandatory fields.
func (c InputsConfig) Validate() error {
	if c.Appointments == "" {
		return fmt.Errorf("inputs.appointments is required")
	}
	if c.Roster == "" {
		return fmt.Errorf("inputs.roster is required")
	}
	return nil
}
