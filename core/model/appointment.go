package model

import "time"

// Appointment is a customer service visit to be assigned to a field
// representative. Appointments are created by the importer and are never
// mutated by the engine.
type Appointment struct {
	CustomerID  string
	ScheduledAt time.Time
	Location    string // postal code, treated as an opaque identifier
	Capability  string // product/scope tag the representative must hold
	Channel     string // originating channel, carried through for reporting
}
