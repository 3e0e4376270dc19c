package pid

import (
	"fmt"
	"strconv"
	"strings"
)

// Availability is the tri-state support flag maintained per definition.
// Fresh catalogues start out Unknown; the discovery walk settles each
// entry to Supported or Unsupported for the connected vehicle.
type Availability int

const (
	Unknown Availability = iota
	Supported
	Unsupported
)

func (a Availability) String() string {
	switch a {
	case Supported:
		return "supported"
	case Unsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Kind is the base value type of a result descriptor.
type Kind int

const (
	Bool Kind = iota
	Byte
	Word
	DWord
	String
)

var kindNames = map[string]Kind{
	"bool":   Bool,
	"byte":   Byte,
	"word":   Word,
	"dword":  DWord,
	"string": String,
}

func (k Kind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return "invalid"
}

// Type is a parsed type tag: base kind, zero-based index into the
// decoded byte sequence and an optional sign marker.
type Type struct {
	Kind   Kind
	Index  int
	Signed bool
}

// ParseType parses a catalogue type tag such as "word_0", "signed
// byte_2" or "bool_1". The index suffix is mandatory.
func ParseType(s string) (Type, error) {
	var t Type
	name := strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(name, "signed "); ok {
		t.Signed = true
		name = rest
	}
	base, idx, ok := strings.Cut(name, "_")
	if !ok {
		return t, fmt.Errorf("type tag %q is missing an index", s)
	}
	kind, ok := kindNames[base]
	if !ok {
		return t, fmt.Errorf("unknown base type %q in tag %q", base, s)
	}
	if t.Signed && kind != Byte && kind != Word {
		return t, fmt.Errorf("type tag %q: only byte and word may be signed", s)
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return t, fmt.Errorf("bad index in type tag %q", s)
	}
	t.Kind = kind
	t.Index = n
	return t, nil
}

// Recover applies two's-complement sign recovery to a raw byte or word
// value when the type is marked signed.
func (t Type) Recover(raw float64) float64 {
	if !t.Signed {
		return raw
	}
	switch t.Kind {
	case Byte:
		if raw >= 128 {
			return raw - 256
		}
	case Word:
		if raw >= 32768 {
			return raw - 65536
		}
	}
	return raw
}
