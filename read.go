package goobd

import (
	"fmt"
	"strings"

	"github.com/roffe/goobd/pkg/pid"
)

// Value is one extracted, unit-converted reading. Value holds a
// float64 for numeric results or a string for textual results and
// alternative meanings. Min and Max are only set by the on-board
// monitor decoder.
type Value struct {
	Name      string
	Value     interface{}
	Unit      string
	Address   int
	Min, Max  float64
	HasLimits bool
}

func (v Value) String() string {
	if n, ok := v.Value.(float64); ok {
		return fmt.Sprintf("%s: %g %s", v.Name, n, v.Unit)
	}
	return fmt.Sprintf("%s: %v %s", v.Name, v.Value, v.Unit)
}

// Read resolves a parameter name, issues its command and interprets
// the response. One Value is emitted per result descriptor per
// responding controller, descriptors in declaration order and
// controllers in ascending address order. The optional context byte
// selects the freeze-frame index (service 02, default 00) or the
// oxygen-sensor index (service 05, default 01).
func (c *Client) Read(name string, contextByte ...byte) ([]Value, error) {
	def := c.cat.Lookup(name)
	if def == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrUnrecognisedParameter)
	}
	if def.Availability == pid.Unsupported {
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedParameter)
	}

	command := def.Command
	if ctx, ok := contextFor(command, contextByte); ok {
		command += " " + ctx
	}

	status, err := c.issue(command)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	switch status {
	case StatusNoData:
		return nil, fmt.Errorf("%s: %w", name, ErrNoData)
	case StatusTimeout:
		return nil, fmt.Errorf("%s: %w", name, ErrTimeout)
	}

	if isATCommand(command) {
		// A bare prompt is a valid adapter reply with nothing in it.
		if len(c.lines) == 0 {
			return nil, fmt.Errorf("%s: %w", name, ErrNoData)
		}
		return c.atValues(def), nil
	}
	return c.ecuValues(def), nil
}

// contextFor decides whether a command takes a trailing context byte:
// every freeze-frame command does (frame index, default 00) and every
// sensor-test command except the supported-TIDs query does (sensor
// index, default 01).
func contextFor(command string, contextByte []byte) (string, bool) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", false
	}
	var def byte
	switch fields[0] {
	case "02":
		def = 0x00
	case "05":
		if len(fields) > 1 && fields[1] == "00" {
			return "", false
		}
		def = 0x01
	default:
		return "", false
	}
	if len(contextByte) > 0 {
		def = contextByte[0]
	}
	return fmt.Sprintf("%02X", def), true
}

// atValues interprets an adapter-control reply: the first raw response
// line with the text cleanup applied, tied to no controller address.
func (c *Client) atValues(def *pid.Definition) []Value {
	text := c.lines[0]
	var unit string
	if len(def.Results) > 0 {
		text = def.Results[0].Formula.ApplyText(text)
		unit = def.Results[0].Unit
	}
	return []Value{{Name: def.Name, Value: text, Unit: unit}}
}

// ecuValues walks the result descriptors over every matching frame,
// applying sign recovery, the unit formula, boolean coercion and the
// alternative meanings.
func (c *Client) ecuValues(def *pid.Definition) []Value {
	frames := c.matching()
	var out []Value
	for _, desc := range def.Results {
		name := desc.Name
		if name == "" {
			name = def.Name
		}
		for _, f := range frames {
			if desc.Type.Kind == pid.String {
				out = append(out, Value{
					Name:    name,
					Value:   extractString(f.Data, desc.Type.Index),
					Unit:    desc.Unit,
					Address: f.Address,
				})
				continue
			}
			raw, ok := extractNumeric(f.Data, desc.Type)
			if !ok {
				continue
			}
			x := desc.Formula.Apply(desc.Type.Recover(raw))
			if desc.Type.Kind == pid.Bool && x != 0 {
				x = 1
			}
			v := Value{Name: name, Value: x, Unit: desc.Unit, Address: f.Address}
			for _, alt := range desc.Alternatives {
				if alt.Raw == x {
					v.Value = alt.Meaning
					break
				}
			}
			out = append(out, v)
		}
	}
	return out
}
