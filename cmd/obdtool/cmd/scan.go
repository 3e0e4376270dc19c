package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/roffe/goobd/adapter"
	"github.com/roffe/goobd/pkg/bar"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "find the serial port with an ELM327-class adapter on it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, baudrate, _, err := settings(cmd)
		if err != nil {
			return err
		}
		ports, err := adapter.Ports()
		if err != nil {
			return err
		}
		pb := bar.New(len(ports), "probing ports")
		port, err := adapter.Scan(cmd.Context(), baudrate, func(string) {
			pb.Add(1)
		})
		pb.Finish()
		fmt.Println()
		if err != nil {
			return err
		}
		color.Green("adapter found on %s", port)
		return nil
	},
}
