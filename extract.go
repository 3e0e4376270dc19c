package goobd

import (
	"sort"

	"github.com/roffe/goobd/pkg/pid"
)

// matching returns the decoded frames whose command and sub-command
// equal the last issued pair, in ascending address order so results
// come out deterministic.
func (c *Client) matching() []*Frame {
	var out []*Frame
	for _, f := range c.frames {
		if f.Command == c.lastCmd && f.SubCommand == c.lastSub {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

// extractNumeric pulls one raw value out of a decoded byte sequence.
// Booleans and bytes read the byte at index; words and double-words
// compose two and four bytes big-endian at 2*index and 4*index.
func extractNumeric(data []byte, t pid.Type) (float64, bool) {
	switch t.Kind {
	case pid.Bool, pid.Byte:
		if t.Index >= len(data) {
			return 0, false
		}
		return float64(data[t.Index]), true
	case pid.Word:
		i := 2 * t.Index
		if i+1 >= len(data) {
			return 0, false
		}
		return float64(data[i])*256 + float64(data[i+1]), true
	case pid.DWord:
		i := 4 * t.Index
		if i+3 >= len(data) {
			return 0, false
		}
		v := float64(data[i])
		for _, b := range data[i+1 : i+4] {
			v = v*256 + float64(b)
		}
		return v, true
	}
	return 0, false
}

// extractString skips the given number of leading byte positions and
// then appends every byte in the printable ASCII range 33-126,
// dropping everything else no matter where it sits. Adapter padding
// and NUL fill vanish and the text concatenates across positions.
func extractString(data []byte, skip int) string {
	if skip >= len(data) {
		return ""
	}
	out := make([]byte, 0, len(data)-skip)
	for _, b := range data[skip:] {
		if b >= 33 && b <= 126 {
			out = append(out, b)
		}
	}
	return string(out)
}
