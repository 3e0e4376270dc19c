package cmd

import (
	"fmt"

	"github.com/roffe/goobd/adapter"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "list serial ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := adapter.Ports()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			fmt.Println("no serial ports found")
			return nil
		}
		for _, port := range ports {
			fmt.Println(port)
		}
		return nil
	},
}
