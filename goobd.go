// Package goobd talks OBD-II through an ELM327-class adapter: it
// dispatches service/PID commands, decodes the hex line responses in
// both CAN and legacy framing, converts raw bytes into named,
// unit-carrying values and discovers which parameters the connected
// vehicle actually supports.
package goobd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/roffe/goobd/pkg/pid"
)

const (
	defaultTimeout      = 2 * time.Second
	defaultPollInterval = 20 * time.Millisecond
)

// Config carries the session tunables. The zero value gets sane
// defaults from New.
type Config struct {
	// Timeout is the idle budget the dispatcher spends polling for the
	// first byte of a response.
	Timeout time.Duration
	// PollInterval is the sleep between empty transport polls.
	PollInterval time.Duration
	Debug        bool
	OnMessage    func(string)
	OnError      func(error)
	// OnProgress is called with each parameter name the discovery walk
	// queries.
	OnProgress func(string)
}

// Client is one logical session against one adapter. It owns all
// mutable session state: the catalogue, the frames of the last
// dispatch and the last issued command pair. It is not safe for
// concurrent use; run exactly one session per physical adapter.
type Client struct {
	cfg *Config
	t   Transport
	cat *pid.Catalogue

	lines   []string
	frames  map[int]*Frame
	lastCmd int
	lastSub int

	framing        Framing
	protocolNumber string
	protocolName   string
	identity       string
}

// New builds a session over an open transport and loads the parameter
// catalogue. The adapter is not touched until Init.
func New(t Transport, cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.OnMessage == nil {
		cfg.OnMessage = func(string) {}
	}
	if cfg.OnError == nil {
		cfg.OnError = func(error) {}
	}
	cat, err := pid.Load()
	if err != nil {
		return nil, err
	}
	return &Client{
		cfg: cfg,
		t:   t,
		cat: cat,
	}, nil
}

// Catalogue exposes the session's parameter catalogue.
func (c *Client) Catalogue() *pid.Catalogue { return c.cat }

// Framing returns the framing style detected during Init.
func (c *Client) Framing() Framing { return c.framing }

// Protocol returns the adapter-reported protocol number and name.
func (c *Client) Protocol() (number, name string) {
	return c.protocolNumber, c.protocolName
}

// Identity returns the adapter identity banner captured during Init.
func (c *Client) Identity() string { return c.identity }

// SetProgress replaces the discovery progress callback.
func (c *Client) SetProgress(fn func(string)) { c.cfg.OnProgress = fn }

// Init runs the fixed adapter bring-up sequence: reset, echo off,
// linefeeds off, protocol auto-select, protocol number and name
// queries, headers on, and a priming supported-parameters query that
// lets the adapter settle on the bus protocol.
func (c *Client) Init(ctx context.Context) error {
	steps := []struct {
		command string
		after   func()
	}{
		{command: "AT Z", after: func() {
			if len(c.lines) > 0 {
				c.identity = c.lines[len(c.lines)-1]
			}
		}},
		{command: "AT E0"},
		{command: "AT L0"},
		{command: "AT SP 0"},
		{command: "AT DPN", after: func() {
			if len(c.lines) > 0 {
				c.protocolNumber = strings.TrimPrefix(strings.TrimSpace(c.lines[0]), "A")
				c.framing = framingForProtocol(c.protocolNumber)
			}
		}},
		{command: "AT DP", after: func() {
			if len(c.lines) > 0 {
				c.protocolName = strings.TrimSpace(c.lines[0])
			}
		}},
		{command: "AT H1"},
		{command: "01 00"},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		status, err := c.issue(step.command)
		if err != nil {
			return fmt.Errorf("init %q: %w", step.command, err)
		}
		if status == StatusTimeout {
			return fmt.Errorf("init %q: %w", step.command, ErrTimeout)
		}
		if step.after != nil {
			step.after()
		}
	}
	return nil
}

// Close shuts the underlying transport.
func (c *Client) Close() error {
	return c.t.Close()
}

// framingForProtocol maps an ELM protocol number to a framing style.
// Protocols 6-9 and A are the ISO 15765 / J1939 CAN variants.
func framingForProtocol(number string) Framing {
	switch number {
	case "6", "7", "8", "9", "A":
		return FramingCAN
	case "1", "2", "3", "4", "5":
		return FramingOther
	}
	return FramingUnknown
}

// ProtocolName translates an ELM protocol number to its bus name.
func ProtocolName(number string) string {
	names := map[string]string{
		"0": "Automatic",
		"1": "SAE J1850 PWM (41.6 kbaud)",
		"2": "SAE J1850 VPW (10.4 kbaud)",
		"3": "ISO 9141-2 (5 baud init)",
		"4": "ISO 14230-4 KWP (5 baud init)",
		"5": "ISO 14230-4 KWP (fast init)",
		"6": "ISO 15765-4 CAN (11 bit ID, 500 kbaud)",
		"7": "ISO 15765-4 CAN (29 bit ID, 500 kbaud)",
		"8": "ISO 15765-4 CAN (11 bit ID, 250 kbaud)",
		"9": "ISO 15765-4 CAN (29 bit ID, 250 kbaud)",
		"A": "SAE J1939 CAN (29 bit ID, 250 kbaud)",
	}
	if name, ok := names[number]; ok {
		return name
	}
	return "Unknown"
}
