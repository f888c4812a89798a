package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fieldassign/core/model"
	"fieldassign/ingest"
)

var windowsCmd = &cobra.Command{
	Use:   "windows <appointments.csv>",
	Short: "Preview the processing windows derived from an appointment file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appts, err := ingest.ReadAppointments(args[0])
		if err != nil {
			return err
		}
		ws := model.DeriveWindows(appts)
		for i, w := range ws {
			flag := ""
			if w.AllowEdit {
				flag = " (roster editable after)"
			}
			n := len(model.Partition(appts, w))
			fmt.Printf("Window %d: %s - %s, %d appointments%s\n",
				i+1, w.Start.Format("01/02/2006 03:04 PM"), w.End.Format("03:04 PM"), n, flag)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(windowsCmd)
}
