package assign

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fieldassign/core/events"
	"fieldassign/core/model"
	"fieldassign/infra/logger"
	"fieldassign/internal/eventbus"
)

func testWindows() []model.Window {
	return []model.Window{
		{Start: day, End: day.Add(2 * time.Hour), AllowEdit: true},
		{Start: day.Add(2*time.Hour + time.Minute), End: day.Add(5 * time.Hour)},
	}
}

func TestManager_SingleWindowNoConflict(t *testing.T) {
	cache := newTestCache(map[[2]string]float64{
		{"zipA", "zipA"}: 0,
		{"zipA", "zipB"}: 20,
		{"zipB", "zipB"}: 0,
	})
	mgr, err := NewManager(cache, nil, nil, nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	roster := model.Roster{rep("R1", "zipA", "capX"), rep("R2", "zipB", "capX")}
	appts := []model.Appointment{
		appt("C1", "zipA", "capX", day),
		appt("C2", "zipB", "capX", day.Add(30*time.Minute)),
	}

	res, err := mgr.Run(context.Background(), appts, roster, []model.Window{{Start: day, End: day.Add(time.Hour)}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.RunID == "" {
		t.Errorf("expected a run id")
	}
	if len(res.Windows) != 1 {
		t.Fatalf("expected one window result")
	}
	wr := res.Windows[0]
	if wr.Ordinal != 1 {
		t.Errorf("expected ordinal 1, got %d", wr.Ordinal)
	}
	if len(wr.Assignments) != 2 || len(wr.Unassigned) != 0 || len(wr.Conflicts) != 0 {
		t.Fatalf("expected clean two-assignment window, got %+v", wr)
	}
	byCustomer := map[string]string{}
	for _, a := range wr.Assignments {
		byCustomer[a.Appointment.CustomerID] = a.Representative
	}
	if byCustomer["C1"] != "R1" || byCustomer["C2"] != "R2" {
		t.Errorf("expected C1->R1, C2->R2, got %v", byCustomer)
	}
}

func TestManager_StateCarriesOverBetweenWindows(t *testing.T) {
	// After window 1, R1 sits at zipB. In window 2 an appointment at zipB
	// must therefore prefer R1 over R2, who never moved from zipC.
	cache := newTestCache(map[[2]string]float64{
		{"zipA", "zipB"}: 20,
		{"zipB", "zipB"}: 0,
		{"zipB", "zipC"}: 10,
	})
	mgr, err := NewManager(cache, nil, nil, nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	roster := model.Roster{rep("R1", "zipA", "capX"), rep("R2", "zipC", "capX")}
	appts := []model.Appointment{
		appt("C1", "zipB", "capX", day.Add(time.Hour)),
		appt("C2", "zipB", "capX", day.Add(3*time.Hour)),
	}

	res, err := mgr.Run(context.Background(), appts, roster, testWindows())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Windows) != 2 {
		t.Fatalf("expected two window results")
	}
	w1 := res.Windows[0]
	if len(w1.Assignments) != 1 || w1.Assignments[0].Representative != "R2" {
		t.Fatalf("window 1: expected C1->R2 (10 < 20), got %+v", w1.Assignments)
	}
	w2 := res.Windows[1]
	if len(w2.Assignments) != 1 || w2.Assignments[0].Representative != "R2" {
		t.Fatalf("window 2: expected C2->R2, got %+v", w2.Assignments)
	}
	// R2 moved to zipB after window 1, so the second leg is free.
	if w2.Assignments[0].DriveTimeMin != 0 {
		t.Errorf("window 2 drive time should use the carried-over location, got %v", w2.Assignments[0].DriveTimeMin)
	}
	if got := res.Roster.Find("R2").Location; got != "zipB" {
		t.Errorf("final roster should reflect the update, got %s", got)
	}
	if got := res.Roster.Find("R1").Location; got != "zipA" {
		t.Errorf("R1 never assigned, location must be unchanged, got %s", got)
	}
}

func TestManager_RosterEditorInvokedOnFlaggedWindow(t *testing.T) {
	cache := newTestCache(map[[2]string]float64{
		{"zipA", "zipA"}: 0,
		{"zipA", "zipB"}: 20,
		{"zipB", "zipB"}: 0,
	})
	var edited []int
	editor := EditorFunc(func(ctx context.Context, ordinal int, w model.Window, roster model.Roster) (model.Roster, error) {
		edited = append(edited, ordinal)
		return append(roster, rep("Extra", "zipB", "capX")), nil
	})
	mgr, err := NewManager(cache, editor, nil, nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	roster := model.Roster{rep("R1", "zipA", "capX")}
	appts := []model.Appointment{
		appt("C1", "zipA", "capX", day),
		appt("C2", "zipB", "capX", day.Add(3*time.Hour)),
		appt("C3", "zipB", "capX", day.Add(3*time.Hour)),
	}

	res, err := mgr.Run(context.Background(), appts, roster, testWindows())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(edited) != 1 || edited[0] != 1 {
		t.Fatalf("editor should run exactly once, after window 1: %v", edited)
	}
	// The added representative absorbs the second window's double-booking.
	w2 := res.Windows[1]
	if len(w2.Assignments) != 2 || len(w2.Unassigned) != 0 {
		t.Fatalf("expected the edited roster to cover window 2, got %+v", w2)
	}
	if res.Roster.Find("Extra") == nil {
		t.Errorf("final roster should contain the added representative")
	}
}

func TestManager_MalformedRosterEditFails(t *testing.T) {
	cache := newTestCache(map[[2]string]float64{{"zipA", "zipA"}: 0})
	editor := EditorFunc(func(ctx context.Context, ordinal int, w model.Window, roster model.Roster) (model.Roster, error) {
		return append(roster, &model.Representative{Name: "broken"}), nil
	})
	mgr, _ := NewManager(cache, editor, nil, nil, logger.NopLogger{})
	roster := model.Roster{rep("R1", "zipA", "capX")}
	appts := []model.Appointment{appt("C1", "zipA", "capX", day)}

	if _, err := mgr.Run(context.Background(), appts, roster, testWindows()); err == nil {
		t.Fatalf("expected malformed roster edit to fail the run")
	}
}

func TestManager_EditorErrorSurfaces(t *testing.T) {
	cache := newTestCache(map[[2]string]float64{{"zipA", "zipA"}: 0})
	editor := EditorFunc(func(ctx context.Context, ordinal int, w model.Window, roster model.Roster) (model.Roster, error) {
		return nil, fmt.Errorf("operator went home")
	})
	mgr, _ := NewManager(cache, editor, nil, nil, logger.NopLogger{})
	roster := model.Roster{rep("R1", "zipA", "capX")}
	appts := []model.Appointment{appt("C1", "zipA", "capX", day)}

	if _, err := mgr.Run(context.Background(), appts, roster, testWindows()); err == nil {
		t.Fatalf("expected editor error to surface")
	}
}

func TestManager_StructuralFailures(t *testing.T) {
	cache := newTestCache(nil)
	mgr, _ := NewManager(cache, nil, nil, nil, logger.NopLogger{})
	roster := model.Roster{rep("R1", "zipA", "capX")}
	appts := []model.Appointment{appt("C1", "zipA", "capX", day)}

	if _, err := mgr.Run(context.Background(), nil, roster, testWindows()); err == nil {
		t.Errorf("empty appointment input must be fatal")
	}
	overlapping := []model.Window{
		{Start: day, End: day.Add(2 * time.Hour)},
		{Start: day.Add(time.Hour), End: day.Add(3 * time.Hour)},
	}
	if _, err := mgr.Run(context.Background(), appts, roster, overlapping); err == nil {
		t.Errorf("overlapping windows must be rejected")
	}
	if _, err := mgr.Run(context.Background(), appts, roster, nil); err == nil {
		t.Errorf("empty window list must be rejected")
	}
}

func TestManager_PublishesWindowEvents(t *testing.T) {
	cache := newTestCache(map[[2]string]float64{{"zipA", "zipA"}: 0})
	bus := eventbus.New()
	sub := bus.Subscribe()
	mgr, _ := NewManager(cache, nil, nil, bus, logger.NopLogger{})
	roster := model.Roster{rep("R1", "zipA", "capX")}
	appts := []model.Appointment{appt("C1", "zipA", "capX", day)}

	if _, err := mgr.Run(context.Background(), appts, roster, []model.Window{{Start: day, End: day.Add(time.Hour)}}); err != nil {
		t.Fatalf("run: %v", err)
	}
	bus.Close()

	var started, windows int
	for ev := range sub {
		switch ev.(type) {
		case events.RunStartedEvent:
			started++
		case events.WindowEvent:
			windows++
		}
	}
	if started != 1 || windows != 1 {
		t.Errorf("expected 1 run event and 1 window event, got %d/%d", started, windows)
	}
}
