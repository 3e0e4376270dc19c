package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/roffe/goobd"
	"github.com/spf13/cobra"
)

func init() {
	dtcCmd.AddCommand(dtcStoredCmd, dtcPendingCmd, dtcPermanentCmd, dtcClearCmd)
	rootCmd.AddCommand(dtcCmd)
}

var dtcCmd = &cobra.Command{
	Use:   "dtc",
	Short: "read or clear diagnostic trouble codes",
}

var dtcStoredCmd = &cobra.Command{
	Use:   "stored",
	Short: "show confirmed trouble codes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDTC(cmd, (*goobd.Client).StoredTroubleCodes)
	},
}

var dtcPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "show trouble codes not yet confirmed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDTC(cmd, (*goobd.Client).PendingTroubleCodes)
	},
}

var dtcPermanentCmd = &cobra.Command{
	Use:   "permanent",
	Short: "show trouble codes that survive a clear",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDTC(cmd, (*goobd.Client).PermanentTroubleCodes)
	},
}

var dtcClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "erase stored trouble codes and freeze frames",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := initClient(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		ack, err := c.ClearTroubleCodes()
		if err != nil {
			return err
		}
		if ack != 0 {
			return fmt.Errorf("clear refused with code %02X", ack)
		}
		color.Green("trouble codes cleared")
		return nil
	},
}

func runDTC(cmd *cobra.Command, read func(*goobd.Client) ([]goobd.Value, error)) error {
	c, err := initClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	values, err := read(c)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		color.Green("no trouble codes")
		return nil
	}
	for _, v := range values {
		color.New(color.FgCyan).Printf("%03X  ", v.Address)
		color.New(color.FgRed).Printf("%v\n", v.Value)
	}
	return nil
}
