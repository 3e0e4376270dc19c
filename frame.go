package goobd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Framing is the response framing style of a bus.
type Framing int

const (
	FramingUnknown Framing = iota
	// FramingCAN is ISO 15765 style: a length/sequence prefix per line,
	// multi-frame messages supported.
	FramingCAN
	// FramingOther is ISO 9141/14230 style: priority, recipient and
	// transmitter header bytes, single frame only.
	FramingOther
)

func (f Framing) String() string {
	switch f {
	case FramingCAN:
		return "CAN"
	case FramingOther:
		return "Other"
	}
	return "unknown"
}

// Frame is the fully reassembled response of one controller address.
type Frame struct {
	Address    int
	Framing    Framing
	Command    int
	SubCommand int
	// Context carries the freeze-frame index or oxygen-sensor index for
	// the commands that echo one.
	Context int
	// DTCCount is the trouble-code count echoed by the read-codes
	// services on legacy buses.
	DTCCount int
	Data     []byte
}

// assembly accumulates payload tokens per sequence number while the
// lines of one dispatch are parsed.
type assembly struct {
	frame   *Frame
	seqs    map[int][]string
	nextSeq int
	headers int // lines that carried a command id
}

const (
	commandEscape   = 0x3F // low six bits all set: real command id follows
	commandClear    = 0x04
	pciFirstFrame   = 0x10
	pciConsecutive  = 0x20
	pciSequenceMask = 0x0F
)

// hasSubCommand reports whether a command id carries a sub-command
// (PID, test id or info type) that responses echo back.
func hasSubCommand(cmd int) bool {
	switch cmd {
	case 0x01, 0x02, 0x05, 0x08, 0x09:
		return true
	}
	return false
}

// hasContextToken reports whether responses echo one further context
// byte: the freeze-frame index (service 02) or the oxygen-sensor index
// (service 05). The supported-TIDs query of service 05 takes no sensor
// index, so its responses echo none either.
func hasContextToken(cmd, sub int) bool {
	return cmd == 0x02 || (cmd == 0x05 && sub != 0x00)
}

// hasDTCCount reports whether responses carry a trouble-code count.
func hasDTCCount(cmd int) bool {
	switch cmd {
	case 0x03, 0x07, 0x0A:
		return true
	}
	return false
}

func hexToken(s string) (int, bool) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// decodeLines turns the raw lines of one dispatch into one reassembled
// frame per responding address. Lines with two or fewer tokens, and
// lines that are not hex at all ("UNABLE TO CONNECT" and friends), are
// noise and dropped silently.
func decodeLines(lines []string) (map[int]*Frame, error) {
	asm := make(map[int]*assembly)
	for _, line := range lines {
		tokens := strings.Fields(line)
		if len(tokens) <= 2 {
			continue
		}
		var err error
		if len(tokens[0]) < 3 {
			err = decodeOtherLine(asm, tokens)
		} else {
			err = decodeCANLine(asm, tokens)
		}
		if err != nil {
			return nil, err
		}
	}

	out := make(map[int]*Frame, len(asm))
	for addr, a := range asm {
		seqs := make([]int, 0, len(a.seqs))
		for seq := range a.seqs {
			seqs = append(seqs, seq)
		}
		sort.Ints(seqs)
		for i, seq := range seqs {
			if seq != i {
				return nil, fmt.Errorf("address %03X: %w", addr, ErrFrameSequence)
			}
			for _, tok := range a.seqs[seq] {
				b, ok := hexToken(tok)
				if !ok || b > 0xFF {
					return nil, fmt.Errorf("address %03X: bad payload byte %q", addr, tok)
				}
				a.frame.Data = append(a.frame.Data, byte(b))
			}
		}
		out[addr] = a.frame
	}
	return out, nil
}

func assemblyFor(asm map[int]*assembly, addr int, framing Framing) (*assembly, error) {
	if a, ok := asm[addr]; ok {
		if a.frame.Framing != framing {
			return nil, fmt.Errorf("address %03X: %w", addr, ErrFramingMismatch)
		}
		return a, nil
	}
	a := &assembly{
		frame: &Frame{Address: addr, Framing: framing},
		seqs:  make(map[int][]string),
	}
	asm[addr] = a
	return a, nil
}

// decodeOtherLine parses one legacy-framed line. The first token is a
// priority byte, the second the recipient; both are discarded and the
// third token is the true responder address.
func decodeOtherLine(asm map[int]*assembly, tokens []string) error {
	if len(tokens) < 4 {
		return nil
	}
	addr, ok := hexToken(tokens[2])
	if !ok {
		return nil
	}
	a, err := assemblyFor(asm, addr, FramingOther)
	if err != nil {
		return err
	}
	payload, err := consumeHeader(a, tokens[3:])
	if err != nil {
		return err
	}
	if payload == nil {
		return nil
	}
	seq := a.nextSeq
	a.nextSeq++
	a.seqs[seq] = payload
	return nil
}

// decodeCANLine parses one CAN-framed line. The token after the
// address is the sequence indicator: 0-15 announce a single frame with
// that many payload bytes, 16 a first frame followed by the true total
// length, and 0x21-0x2F a consecutive frame whose low nibble is the
// sequence number.
func decodeCANLine(asm map[int]*assembly, tokens []string) error {
	addr, ok := hexToken(tokens[0])
	if !ok {
		return nil
	}
	pci, ok := hexToken(tokens[1])
	if !ok {
		return nil
	}
	a, err := assemblyFor(asm, addr, FramingCAN)
	if err != nil {
		return err
	}

	switch {
	case pci <= 0x0F:
		rest := tokens[2:]
		if len(rest) > pci {
			rest = rest[:pci] // adapter pads single frames to eight bytes
		}
		payload, err := consumeHeader(a, rest)
		if err != nil || payload == nil {
			return err
		}
		a.seqs[0] = append(a.seqs[0], payload...)
	case pci == pciFirstFrame:
		if len(tokens) < 4 {
			return nil
		}
		// The next token is the true total length; the per-line
		// indicator said nothing about it.
		if _, ok := hexToken(tokens[2]); !ok {
			return nil
		}
		payload, err := consumeHeader(a, tokens[3:])
		if err != nil || payload == nil {
			return err
		}
		a.seqs[0] = append(a.seqs[0], payload...)
	case pci > pciConsecutive && pci <= pciConsecutive|pciSequenceMask:
		seq := pci & pciSequenceMask
		a.seqs[seq] = append(a.seqs[seq], tokens[2:]...)
	}
	return nil
}

// consumeHeader strips the command id (low six bits, with 0x3F as an
// escape meaning the real id follows), the sub-command, and the
// DTC-count or context token where the command defines one. It returns
// the remaining payload tokens, or nil when the line is noise.
func consumeHeader(a *assembly, tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	b, ok := hexToken(tokens[0])
	if !ok {
		return nil, nil
	}
	i := 1
	cmd := b & commandEscape
	if cmd == commandEscape {
		if i >= len(tokens) {
			return nil, nil
		}
		if cmd, ok = hexToken(tokens[i]); !ok {
			return nil, nil
		}
		i++
	}

	sub := 0
	dtcCount := -1
	context := -1
	synthesize := false
	if cmd == commandClear && i >= len(tokens) {
		// Clear-codes acknowledgments come back bare; synthesize the
		// zero success byte.
		synthesize = true
	} else if hasSubCommand(cmd) {
		if i >= len(tokens) {
			return nil, nil
		}
		if sub, ok = hexToken(tokens[i]); !ok {
			return nil, nil
		}
		i++
		if hasContextToken(cmd, sub) && i < len(tokens) {
			if context, ok = hexToken(tokens[i]); !ok {
				return nil, nil
			}
			i++
		}
	} else if hasDTCCount(cmd) && i < len(tokens) {
		if dtcCount, ok = hexToken(tokens[i]); !ok {
			return nil, nil
		}
		i++
	}

	if a.headers > 0 && (a.frame.Command != cmd || a.frame.SubCommand != sub) {
		return nil, fmt.Errorf("address %03X: %w", a.frame.Address, ErrFrameConflict)
	}
	a.headers++
	a.frame.Command = cmd
	a.frame.SubCommand = sub
	if context >= 0 {
		a.frame.Context = context
	}
	if dtcCount >= 0 {
		a.frame.DTCCount = dtcCount
	}
	if synthesize {
		return []string{"00"}, nil
	}
	return tokens[i:], nil
}
