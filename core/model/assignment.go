package model

// UnknownDriveTime marks an assignment whose travel cost could not be
// resolved by the oracle.
const UnknownDriveTime = -1

// Assignment pairs an appointment with the representative chosen for it and
// the drive time, in minutes, between the representative's location at match
// time and the appointment's location.
type Assignment struct {
	Appointment    Appointment
	Representative string
	DriveTimeMin   float64
}

// KnownDriveTime reports whether the travel cost was resolved.
func (a Assignment) KnownDriveTime() bool {
	return a.DriveTimeMin >= 0
}
