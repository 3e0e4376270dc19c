package cmd

import (
	"github.com/fatih/color"
	"github.com/roffe/goobd"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(readCmd)
}

var readCmd = &cobra.Command{
	Use:   "read <parameter> ...",
	Short: "read named parameters once and print their values",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := initClient(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		for _, name := range args {
			values, err := c.Read(name)
			if err != nil {
				color.Red("%v", err)
				continue
			}
			printValues(values)
		}
		return nil
	},
}

func printValues(values []goobd.Value) {
	for _, v := range values {
		color.New(color.FgCyan).Printf("%03X  ", v.Address)
		color.New(color.FgHiWhite).Printf("%s: ", v.Name)
		if v.HasLimits {
			color.New(color.FgGreen).Printf("%v %s", v.Value, v.Unit)
			color.New(color.FgYellow).Printf("  (min %g, max %g)\n", v.Min, v.Max)
			continue
		}
		color.New(color.FgGreen).Printf("%v %s\n", v.Value, v.Unit)
	}
}
