// Package uas holds the ISO unit-and-scaling identifier table used to
// convert raw on-board monitoring test values (service 06) into
// physical units. Identifiers 0x80 and above describe signed 16-bit
// values; the caller performs the sign recovery before scaling.
package uas

// Entry maps a unit-and-scaling identifier to a display unit and a
// scale transform.
type Entry struct {
	Unit  string
	Scale func(x float64) float64
}

func linear(factor float64) func(float64) float64 {
	return func(x float64) float64 { return x * factor }
}

func identity(x float64) float64 { return x }

var table = map[byte]Entry{
	0x01: {Unit: "counts", Scale: identity},
	0x02: {Unit: "counts", Scale: linear(0.1)},
	0x03: {Unit: "counts", Scale: linear(0.01)},
	0x04: {Unit: "counts", Scale: linear(0.001)},
	0x05: {Unit: "counts", Scale: linear(0.0000305)},
	0x06: {Unit: "counts", Scale: linear(0.000305)},
	0x07: {Unit: "rpm", Scale: linear(0.25)},
	0x08: {Unit: "km/h", Scale: linear(0.01)},
	0x09: {Unit: "km/h", Scale: identity},
	0x0A: {Unit: "mV", Scale: linear(0.122)},
	0x0B: {Unit: "V", Scale: linear(0.001)},
	0x0C: {Unit: "V", Scale: linear(0.01)},
	0x0D: {Unit: "mA", Scale: linear(0.00390625)},
	0x0E: {Unit: "A", Scale: linear(0.001)},
	0x0F: {Unit: "A", Scale: linear(0.01)},
	0x10: {Unit: "ms", Scale: identity},
	0x11: {Unit: "s", Scale: linear(0.1)},
	0x12: {Unit: "s", Scale: identity},
	0x13: {Unit: "mOhm", Scale: identity},
	0x14: {Unit: "Ohm", Scale: identity},
	0x15: {Unit: "kOhm", Scale: identity},
	0x16: {Unit: "°C", Scale: func(x float64) float64 { return x*0.1 - 40 }},
	0x17: {Unit: "kPa", Scale: linear(0.01)},
	0x18: {Unit: "kPa", Scale: linear(0.0117)},
	0x19: {Unit: "kPa", Scale: linear(0.079)},
	0x1A: {Unit: "kPa", Scale: identity},
	0x1B: {Unit: "kPa", Scale: linear(10)},
	0x1C: {Unit: "°", Scale: linear(0.01)},
	0x1D: {Unit: "°", Scale: linear(0.5)},
	0x1E: {Unit: "lambda", Scale: linear(0.0000305)},
	0x1F: {Unit: "A/F ratio", Scale: linear(0.05)},
	0x20: {Unit: "ratio", Scale: linear(0.00390625)},
	0x21: {Unit: "mHz", Scale: identity},
	0x22: {Unit: "Hz", Scale: identity},
	0x23: {Unit: "kHz", Scale: identity},
	0x24: {Unit: "counts", Scale: identity},
	0x25: {Unit: "km", Scale: identity},
	0x26: {Unit: "mV/ms", Scale: linear(0.1)},
	0x27: {Unit: "g/s", Scale: linear(0.01)},
	0x28: {Unit: "g/s", Scale: identity},
	0x29: {Unit: "Pa/s", Scale: linear(0.25)},
	0x2A: {Unit: "kg/h", Scale: linear(0.001)},
	0x2B: {Unit: "switches", Scale: identity},
	0x2C: {Unit: "g/cyl", Scale: linear(0.01)},
	0x2D: {Unit: "mg/stroke", Scale: linear(0.01)},
	0x2E: {Unit: "", Scale: identity},
	0x2F: {Unit: "%", Scale: linear(0.01)},
	0x30: {Unit: "%", Scale: linear(0.001953125)},

	// Signed identifiers.
	0x81: {Unit: "counts", Scale: identity},
	0x82: {Unit: "counts", Scale: linear(0.1)},
	0x83: {Unit: "counts", Scale: linear(0.01)},
	0x84: {Unit: "counts", Scale: linear(0.001)},
	0x85: {Unit: "counts", Scale: linear(0.0000305)},
	0x86: {Unit: "counts", Scale: linear(0.000305)},
	0x8A: {Unit: "mV", Scale: linear(0.122)},
	0x8B: {Unit: "V", Scale: linear(0.001)},
	0x8C: {Unit: "V", Scale: linear(0.01)},
	0x8D: {Unit: "mA", Scale: linear(0.00390625)},
	0x8E: {Unit: "A", Scale: linear(0.001)},
	0x90: {Unit: "ms", Scale: identity},
	0x96: {Unit: "°C", Scale: linear(0.1)},
	0xA8: {Unit: "g/s", Scale: identity},
	0xAF: {Unit: "%", Scale: linear(0.01)},
	0xB0: {Unit: "%", Scale: linear(0.003052)},
	0xB1: {Unit: "mV/s", Scale: identity},
}

// Lookup resolves an identifier. Unknown identifiers fall back to unit
// "unknown" with no scaling applied.
func Lookup(id byte) Entry {
	if e, ok := table[id]; ok {
		return e
	}
	return Entry{Unit: "unknown", Scale: identity}
}

// Signed reports whether the identifier describes a signed value.
func Signed(id byte) bool { return id >= 0x80 }
