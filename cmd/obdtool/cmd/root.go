package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/roffe/goobd"
	"github.com/roffe/goobd/adapter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rootCmd = &cobra.Command{
	Use:          "obdtool",
	Short:        "OBD-II swiss army tool for ELM327-class adapters",
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

const (
	flagPort     = "port"
	flagBaudrate = "baudrate"
	flagDebug    = "debug"
	flagCapture  = "capture"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	pf := rootCmd.PersistentFlags()
	pf.StringP(flagPort, "p", "", "com-port, empty = pick interactively")
	pf.IntP(flagBaudrate, "b", 38400, "baudrate")
	pf.BoolP(flagDebug, "d", false, "debug mode")
	pf.String(flagCapture, "", "replay a capture log instead of a live adapter")
}

// fileConfig is the optional ~/.obdtool.yaml configuration. Flags that
// were set explicitly win over it.
type fileConfig struct {
	Port     string `yaml:"port"`
	Baudrate int    `yaml:"baudrate"`
	Debug    bool   `yaml:"debug"`
}

func loadFileConfig() (*fileConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Join(home, ".obdtool.yaml"))
	if errors.Is(err, os.ErrNotExist) {
		return &fileConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &fc, nil
}

// settings resolves port, baudrate and debug from the config file and
// the flags.
func settings(cmd *cobra.Command) (port string, baudrate int, debug bool, err error) {
	fc, err := loadFileConfig()
	if err != nil {
		return "", 0, false, err
	}
	port = fc.Port
	baudrate = fc.Baudrate
	debug = fc.Debug

	if cmd.Flags().Changed(flagPort) || port == "" {
		port, _ = cmd.Flags().GetString(flagPort)
	}
	if cmd.Flags().Changed(flagBaudrate) || baudrate == 0 {
		baudrate, _ = cmd.Flags().GetInt(flagBaudrate)
	}
	if cmd.Flags().Changed(flagDebug) {
		debug, _ = cmd.Flags().GetBool(flagDebug)
	}
	return port, baudrate, debug, nil
}

// pickPort prompts for a serial port when none is configured.
func pickPort() (string, error) {
	ports, err := adapter.Ports()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 {
		return "", adapter.ErrNoAdapterFound
	}
	if len(ports) == 1 {
		return ports[0], nil
	}
	prompt := promptui.Select{
		Label: "Select serial port",
		Items: ports,
	}
	_, port, err := prompt.Run()
	return port, err
}

// initClient opens the transport and brings the adapter up.
func initClient(cmd *cobra.Command) (*goobd.Client, error) {
	var t goobd.Transport

	if capture, _ := cmd.Flags().GetString(flagCapture); capture != "" {
		r, err := adapter.OpenReplay(capture)
		if err != nil {
			return nil, err
		}
		t = r
	} else {
		port, baudrate, _, err := settings(cmd)
		if err != nil {
			return nil, err
		}
		if port == "" {
			if port, err = pickPort(); err != nil {
				return nil, err
			}
		}
		s, err := adapter.OpenSerial(port, baudrate)
		if err != nil {
			return nil, err
		}
		t = s
	}

	_, _, debug, err := settings(cmd)
	if err != nil {
		return nil, err
	}
	c, err := goobd.New(t, &goobd.Config{
		Debug:     debug,
		OnMessage: func(msg string) { log.Println(msg) },
		OnError:   func(err error) { log.Println(err) },
	})
	if err != nil {
		t.Close()
		return nil, err
	}
	if err := c.Init(cmd.Context()); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}
