package assign

import (
	"testing"
	"time"

	"fieldassign/core/model"
)

func TestUpdateRoster_MovesRepToLastAppointment(t *testing.T) {
	roster := model.Roster{rep("R1", "zipHome", "capX"), rep("R2", "zipIdle", "capX")}
	final := []model.Assignment{
		{Appointment: appt("C1", "zipA", "capX", day), Representative: "R1"},
		{Appointment: appt("C2", "zipB", "capX", day.Add(2*time.Hour)), Representative: "R1"},
	}

	UpdateRoster(final, roster)
	if roster[0].Location != "zipB" {
		t.Errorf("R1 should end at the temporally last appointment, got %s", roster[0].Location)
	}
	if roster[1].Location != "zipIdle" {
		t.Errorf("unassigned R2 must keep its location, got %s", roster[1].Location)
	}
}

func TestUpdateRoster_LatestWinsRegardlessOfListOrder(t *testing.T) {
	roster := model.Roster{rep("R1", "zipHome", "capX")}
	final := []model.Assignment{
		{Appointment: appt("C2", "zipLate", "capX", day.Add(3*time.Hour)), Representative: "R1"},
		{Appointment: appt("C1", "zipEarly", "capX", day), Representative: "R1"},
	}

	UpdateRoster(final, roster)
	if roster[0].Location != "zipLate" {
		t.Errorf("expected zipLate, got %s", roster[0].Location)
	}
}
