// Package ingest parses appointment and roster input files.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"fieldassign/core/model"
)

// Appointment CSV files carry one row per booked appointment. Header names
// are matched case-insensitively.
var requiredColumns = []string{"custnumber", "apptdate", "zip", "productid", "dsp_id"}

// Timestamps appear in several flavors depending on which export produced
// the file: 12-hour with AM/PM, and 24-hour with or without seconds.
var apptTimeFormats = []string{
	"01/02/2006 03:04:05 PM",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
}

// ReadAppointments parses a CSV file of appointments.
func ReadAppointments(path string) ([]model.Appointment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open appointments file: %w", err)
	}
	defer f.Close()
	return ParseAppointments(f)
}

// ParseAppointments parses appointment rows from CSV data. Rows are
// returned sorted by scheduled time, earliest first, ties keeping file
// order.
func ParseAppointments(r io.Reader) ([]model.Appointment, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var appts []model.Appointment
	seen := make(map[string]struct{})
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		appt, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, dup := seen[appt.CustomerID]; dup {
			return nil, fmt.Errorf("line %d: duplicate customer id %q", line, appt.CustomerID)
		}
		seen[appt.CustomerID] = struct{}{}
		appts = append(appts, appt)
	}
	if len(appts) == 0 {
		return nil, fmt.Errorf("no appointment rows found")
	}

	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].ScheduledAt.Before(appts[j].ScheduledAt)
	})
	return appts, nil
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range requiredColumns {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("missing column %q", want)
		}
	}
	return cols, nil
}

func parseRow(rec []string, cols map[string]int) (model.Appointment, error) {
	get := func(name string) string {
		i := cols[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	id := get("custnumber")
	if id == "" {
		return model.Appointment{}, fmt.Errorf("empty customer id")
	}
	zip := get("zip")
	if zip == "" {
		return model.Appointment{}, fmt.Errorf("customer %s: empty zip", id)
	}
	product := get("productid")
	if product == "" {
		return model.Appointment{}, fmt.Errorf("customer %s: empty product id", id)
	}

	raw := get("apptdate")
	at, err := parseApptTime(raw)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("customer %s: %w", id, err)
	}

	return model.Appointment{
		CustomerID:  id,
		ScheduledAt: at,
		Location:    zip,
		Capability:  product,
		Channel:     get("dsp_id"),
	}, nil
}

func parseApptTime(raw string) (time.Time, error) {
	for _, layout := range apptTimeFormats {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable appointment time %q", raw)
}
