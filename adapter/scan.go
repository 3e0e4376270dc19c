package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"go.bug.st/serial"
	"golang.org/x/sync/errgroup"
)

// ErrNoAdapterFound means no serial port answered the identity probe.
var ErrNoAdapterFound = errors.New("no ELM327-class adapter found")

const (
	probeBudget   = 500 * time.Millisecond
	probeInterval = 10 * time.Millisecond
	maxProbes     = 4
)

// Ports lists the serial ports present on the machine.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}

// Scan probes every serial port for an ELM327-class adapter and returns
// the first port, in enumeration order, whose identity reply looks like
// one. Each port gets two attempts; ports are probed concurrently.
func Scan(ctx context.Context, baudrate int, onProgress func(port string)) (string, error) {
	ports, err := Ports()
	if err != nil {
		return "", err
	}

	found := make([]bool, len(ports))
	gr := new(errgroup.Group)
	gr.SetLimit(maxProbes)
	for i, port := range ports {
		i, port := i, port
		gr.Go(func() error {
			if onProgress != nil {
				onProgress(port)
			}
			err := retry.Do(
				func() error { return probe(ctx, port, baudrate) },
				retry.Attempts(2),
				retry.Context(ctx),
				retry.LastErrorOnly(true),
			)
			found[i] = err == nil
			return nil
		})
	}
	if err := gr.Wait(); err != nil {
		return "", err
	}

	for i, ok := range found {
		if ok {
			return ports[i], nil
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "", ErrNoAdapterFound
}

// probe asks one port for its identity and watches the reply for an
// ELM or STN banner.
func probe(ctx context.Context, port string, baudrate int) error {
	s, err := OpenSerial(port, baudrate)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.Write([]byte("AT I\r\n")); err != nil {
		return err
	}
	deadline := time.Now().Add(probeBudget)
	buf := make([]byte, 64)
	var banner []byte
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := s.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			time.Sleep(probeInterval)
			continue
		}
		banner = append(banner, buf[:n]...)
		if bytes.Contains(banner, []byte("ELM")) || bytes.Contains(banner, []byte("STN")) {
			return nil
		}
	}
	return fmt.Errorf("port %s: no adapter identity in %q", port, banner)
}
