package pid

import (
	"fmt"
	"strconv"
	"strings"
)

// Formula is a unit-conversion transform parsed once at catalogue load.
// Numeric formulas are a closed chain of constant operations applied
// left to right ("x/4", "x*100/255", "x/2-64", "x&16"); the special
// form "ascii" marks a text-cleanup transform for textual adapter
// replies. Catalogue text is never executed as code.
type Formula struct {
	steps []step
	text  bool
}

type step struct {
	op byte
	k  float64
}

// ParseFormula parses a catalogue formula string. The grammar is a
// literal "x" followed by zero or more of +k, -k, *k, /k or &k.
func ParseFormula(s string) (Formula, error) {
	var f Formula
	expr := strings.ReplaceAll(s, " ", "")
	if expr == "" || expr == "x" {
		return f, nil
	}
	if expr == "ascii" {
		f.text = true
		return f, nil
	}
	rest, ok := strings.CutPrefix(expr, "x")
	if !ok {
		return f, fmt.Errorf("formula %q must start with x", s)
	}
	for len(rest) > 0 {
		op := rest[0]
		switch op {
		case '+', '-', '*', '/', '&':
		default:
			return f, fmt.Errorf("formula %q: unknown operator %q", s, string(op))
		}
		rest = rest[1:]
		end := strings.IndexAny(rest, "+-*/&")
		if end == -1 {
			end = len(rest)
		}
		k, err := strconv.ParseFloat(rest[:end], 64)
		if err != nil {
			return f, fmt.Errorf("formula %q: bad constant %q", s, rest[:end])
		}
		if (op == '/' || op == '&') && k == 0 {
			return f, fmt.Errorf("formula %q: zero operand", s)
		}
		f.steps = append(f.steps, step{op: op, k: k})
		rest = rest[end:]
	}
	return f, nil
}

// IsText reports whether the formula is the textual cleanup transform.
func (f Formula) IsText() bool { return f.text }

// Apply runs the numeric transform over a raw (sign-recovered) value.
func (f Formula) Apply(x float64) float64 {
	for _, s := range f.steps {
		switch s.op {
		case '+':
			x += s.k
		case '-':
			x -= s.k
		case '*':
			x *= s.k
		case '/':
			x /= s.k
		case '&':
			x = float64(int64(x) & int64(s.k))
		}
	}
	return x
}

// ApplyText cleans a textual adapter reply: every byte outside the
// printable range is dropped and the result is trimmed.
func (f Formula) ApplyText(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= 32 && s[i] <= 126 {
			out.WriteByte(s[i])
		}
	}
	return strings.TrimSpace(out.String())
}
