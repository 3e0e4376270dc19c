package goobd

import (
	"errors"
	"strings"

	"github.com/roffe/goobd/pkg/pid"
)

// Suffixes of the two competing SAE conventions for naming oxygen
// sensors by bank and position. Only one applies per vehicle; the
// discovery walk strips the suffix of whichever convention the vehicle
// confirms.
var sensorSuffixes = []string{" 13", " 1D"}

// DiscoverParameters walks the chained supported-parameters bitmask
// queries and annotates the catalogue with per-vehicle availability.
// The seed queries depend on the framing detected at Init: CAN buses
// additionally query service-06 monitor-ID support while legacy buses
// query service-05 test-ID support. Every confirmed bit whose name is
// itself a supported-range query is pushed onto the work-list, which
// is how the 32-bit windows of services 01, 02 and 09 chain. Running
// the walk twice settles on the same availability set and keys.
func (c *Client) DiscoverParameters() error {
	work := []string{
		"Supported parameters 01-20",
		"Supported freeze frame parameters 01-20",
		"Supported vehicle information 01-20",
	}
	if c.framing == FramingCAN {
		work = append(work, "Supported monitor IDs 01-20")
	} else {
		work = append(work, "Supported test IDs 01-20")
	}

	// Facts committed so far, keyed by bit name. The sensor renames
	// consult these, so bit evaluation order within one response is
	// the catalogue's declaration order.
	facts := make(map[string]bool)
	visited := make(map[string]bool)

	for len(work) > 0 {
		name := work[0]
		work = work[1:]
		if visited[name] {
			continue
		}
		visited[name] = true
		if c.cfg.OnProgress != nil {
			c.cfg.OnProgress(name)
		}

		values, err := c.Read(name)
		if err != nil {
			if errors.Is(err, ErrNoData) || errors.Is(err, ErrTimeout) ||
				errors.Is(err, ErrUnsupportedParameter) || errors.Is(err, ErrUnrecognisedParameter) {
				continue
			}
			return err
		}

		for _, v := range values {
			bit, ok := v.Value.(float64)
			if !ok {
				continue
			}
			// A parameter counts as supported when any responding
			// controller flags it.
			supported := bit != 0 || facts[v.Name]
			facts[v.Name] = supported

			availability := pid.Unsupported
			if supported {
				availability = pid.Supported
			}
			c.cat.SetAvailability(v.Name, availability)

			if strings.HasPrefix(v.Name, "Supported ") {
				work = append(work, v.Name)
				continue
			}
			if supported {
				c.maybeRenameSensor(v.Name, facts)
			}
		}
	}
	return nil
}

// maybeRenameSensor relocates a confirmed sensor-numbering-dependent
// entry to its canonical suffix-free name, but only once the matching
// "Location of oxygen sensors" fact for that convention has been
// committed.
func (c *Client) maybeRenameSensor(name string, facts map[string]bool) {
	for _, suffix := range sensorSuffixes {
		if !strings.HasSuffix(name, suffix) {
			continue
		}
		if !facts["Location of oxygen sensors"+suffix] {
			return
		}
		c.cat.Rename(name, strings.TrimSuffix(name, suffix))
		return
	}
}
