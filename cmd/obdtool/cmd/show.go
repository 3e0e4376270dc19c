package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/roffe/goobd"
	"github.com/roffe/goobd/pkg/bar"
	"github.com/roffe/goobd/pkg/pid"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "discover the vehicle's supported parameters and read them all",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := initClient(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		pb := bar.Spinner("discovering supported parameters")
		c.SetProgress(func(string) { pb.Add(1) })
		err = c.DiscoverParameters()
		c.SetProgress(nil)
		pb.Finish()
		color.New(color.FgHiWhite).Println()
		if err != nil {
			return err
		}

		number, name := c.Protocol()
		color.New(color.FgHiWhite).Printf("%s  protocol %s (%s)\n\n", c.Identity(), number, name)

		cat := c.Catalogue()
		for _, pname := range cat.Names() {
			def := cat.Lookup(pname)
			if def.Availability != pid.Supported {
				continue
			}
			values, err := c.Read(pname)
			if errors.Is(err, goobd.ErrNoData) || errors.Is(err, goobd.ErrTimeout) {
				continue
			}
			if err != nil {
				return err
			}
			printValues(values)
		}
		return nil
	},
}
