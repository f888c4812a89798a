// Package report renders assignment run results for human review.
package report

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"fieldassign/core/assign"
	"fieldassign/core/model"
)

// CityResolver maps a location identifier to a display name. A nil resolver
// leaves locations as-is.
type CityResolver interface {
	City(ctx context.Context, location string) string
}

// Record is one output row.
type Record struct {
	CustomerID     string
	Date           string
	Time           string
	Location       string
	Capability     string
	Representative string
	DriveTime      string
}

// WindowGroup holds the rendered records of one window plus drive-time
// statistics over its assignments with a known cost.
type WindowGroup struct {
	Ordinal    int
	Header     string
	Records    []Record
	Unassigned []Record
	Stats      DriveStats
}

// DriveStats summarizes known drive times within a window.
type DriveStats struct {
	Known  int
	Mean   float64
	StdDev float64
	Max    float64
}

// Report is the full rendered output of a run.
type Report struct {
	RunID   string
	Groups  []WindowGroup
	Overall DriveStats
}

// Build renders a run result into report rows, resolving locations to city
// names when a resolver is provided.
func Build(ctx context.Context, res assign.RunResult, cities CityResolver) Report {
	rep := Report{RunID: res.RunID}
	var allTimes []float64
	for _, w := range res.Windows {
		g := WindowGroup{
			Ordinal: w.Ordinal,
			Header:  fmt.Sprintf("Window %d -- %s to %s", w.Ordinal, w.Window.Start.Format("01/02/2006 03:04 PM"), w.Window.End.Format("03:04 PM")),
		}
		var times []float64
		for _, a := range w.Assignments {
			g.Records = append(g.Records, toRecord(ctx, a.Appointment, a.Representative, driveTimeLabel(a), cities))
			if a.KnownDriveTime() {
				times = append(times, a.DriveTimeMin)
			}
		}
		for _, u := range w.Unassigned {
			g.Unassigned = append(g.Unassigned, toRecord(ctx, u.Appointment, "UNASSIGNED: "+u.Reason, "", cities))
		}
		g.Stats = computeStats(times)
		allTimes = append(allTimes, times...)
		rep.Groups = append(rep.Groups, g)
	}
	rep.Overall = computeStats(allTimes)
	return rep
}

func toRecord(ctx context.Context, appt model.Appointment, rep, driveTime string, cities CityResolver) Record {
	loc := appt.Location
	if cities != nil {
		loc = fmt.Sprintf("%s (%s)", cities.City(ctx, appt.Location), appt.Location)
	}
	return Record{
		CustomerID:     appt.CustomerID,
		Date:           appt.ScheduledAt.Format("01/02/2006"),
		Time:           appt.ScheduledAt.Format("03:04 PM"),
		Location:       loc,
		Capability:     appt.Capability,
		Representative: rep,
		DriveTime:      driveTime,
	}
}

func driveTimeLabel(a model.Assignment) string {
	if !a.KnownDriveTime() {
		return "Unknown"
	}
	return fmt.Sprintf("%.2f", a.DriveTimeMin)
}

func computeStats(times []float64) DriveStats {
	if len(times) == 0 {
		return DriveStats{}
	}
	sorted := append([]float64(nil), times...)
	sort.Float64s(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	s := DriveStats{
		Known: len(times),
		Mean:  mean,
		Max:   sorted[len(sorted)-1],
	}
	// StdDev of a single sample is NaN.
	if len(times) > 1 {
		s.StdDev = std
	}
	return s
}
