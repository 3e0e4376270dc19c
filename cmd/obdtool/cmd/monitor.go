package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(monitorCmd)
}

var monitorCmd = &cobra.Command{
	Use:   "monitor <mid>",
	Short: "show on-board monitoring results for a monitor id (CAN only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mid, err := strconv.ParseUint(args[0], 16, 8)
		if err != nil {
			return fmt.Errorf("monitor id %q is not a hex byte", args[0])
		}
		c, err := initClient(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		values, err := c.MonitorResults(byte(mid))
		if err != nil {
			return err
		}
		printValues(values)
		return nil
	},
}
