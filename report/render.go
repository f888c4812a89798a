package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// WriteText renders the report as aligned columns, one block per window.
func WriteText(w io.Writer, rep Report) error {
	for _, g := range rep.Groups {
		if _, err := fmt.Fprintf(w, "%s\n", g.Header); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Customer\tDate\tTime\tLocation\tScope\tRepresentative\tDrive (min)")
		for _, r := range g.Records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.CustomerID, r.Date, r.Time, r.Location, r.Capability, r.Representative, r.DriveTime)
		}
		for _, r := range g.Unassigned {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
				r.CustomerID, r.Date, r.Time, r.Location, r.Capability, r.Representative)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if g.Stats.Known > 0 {
			if _, err := fmt.Fprintf(w, "drive time: mean %.2f, stddev %.2f, max %.2f (%d known)\n",
				g.Stats.Mean, g.Stats.StdDev, g.Stats.Max, g.Stats.Known); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if rep.Overall.Known > 0 {
		if _, err := fmt.Fprintf(w, "overall drive time: mean %.2f, stddev %.2f, max %.2f (%d known)\n",
			rep.Overall.Mean, rep.Overall.StdDev, rep.Overall.Max, rep.Overall.Known); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV renders the report as CSV with a window column instead of header
// blocks.
func WriteCSV(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"window", "customer", "date", "time", "location", "scope", "representative", "drive_min"}); err != nil {
		return err
	}
	for _, g := range rep.Groups {
		win := strconv.Itoa(g.Ordinal)
		for _, r := range g.Records {
			if err := cw.Write([]string{win, r.CustomerID, r.Date, r.Time, r.Location, r.Capability, r.Representative, r.DriveTime}); err != nil {
				return err
			}
		}
		for _, r := range g.Unassigned {
			if err := cw.Write([]string{win, r.CustomerID, r.Date, r.Time, r.Location, r.Capability, r.Representative, ""}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
