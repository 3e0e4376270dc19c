// Package adapter provides the Transport backends a session runs over:
// a local serial port for real ELM327-class devices, a port scanner
// that finds one, and a capture-log replay for offline work.
package adapter

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Serial is a Transport over a local serial port. Reads time out after
// a millisecond so the dispatcher's poll loop never blocks.
type Serial struct {
	port serial.Port
	name string
}

// OpenSerial opens and configures a serial port for an ELM327-class
// adapter: 8 data bits, no parity, one stop bit.
func OpenSerial(port string, baudrate int) (*Serial, error) {
	mode := &serial.Mode{
		BaudRate: baudrate,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(port, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open com port %q: %w", port, err)
	}
	if err := p.SetReadTimeout(1 * time.Millisecond); err != nil {
		p.Close()
		return nil, err
	}
	p.ResetOutputBuffer()
	p.ResetInputBuffer()
	return &Serial{port: p, name: port}, nil
}

// Name returns the port name the transport was opened on.
func (s *Serial) Name() string { return s.name }

func (s *Serial) Write(p []byte) (int, error) { return s.port.Write(p) }

func (s *Serial) Read(p []byte) (int, error) { return s.port.Read(p) }

func (s *Serial) Close() error { return s.port.Close() }
