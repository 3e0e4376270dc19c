package adapter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Replay plays back a previously captured adapter session. The capture
// format is line based:
//
//	~Command: 01 0C
//	Response
//	41 0C 1A F0
//	End of response
//
// Each block queues one response for its command; repeated commands
// replay their responses in capture order. Blank lines and lines
// starting with # are ignored between blocks. Writing a command that
// has no queued response leaves the transport silent, exactly like a
// dead adapter.
type Replay struct {
	responses map[string][][]string
	pending   []byte
}

// OpenReplay loads a capture file.
func OpenReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := NewReplay(f)
	if err != nil {
		return nil, fmt.Errorf("capture %s: %w", path, err)
	}
	return r, nil
}

// NewReplay parses a capture log.
func NewReplay(r io.Reader) (*Replay, error) {
	rp := &Replay{responses: make(map[string][][]string)}
	var (
		command string
		lines   []string
		inBlock bool
	)
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		switch {
		case strings.HasPrefix(line, "~Command: "):
			if inBlock {
				return nil, fmt.Errorf("line %d: response block never closed", lineNo)
			}
			command = strings.TrimSpace(strings.TrimPrefix(line, "~Command: "))
		case line == "Response":
			if command == "" {
				return nil, fmt.Errorf("line %d: response without a command", lineNo)
			}
			inBlock = true
			lines = nil
		case line == "End of response":
			if !inBlock {
				return nil, fmt.Errorf("line %d: stray end of response", lineNo)
			}
			rp.responses[command] = append(rp.responses[command], lines)
			command = ""
			inBlock = false
		case inBlock:
			lines = append(lines, line)
		case line == "" || strings.HasPrefix(line, "#"):
		default:
			return nil, fmt.Errorf("line %d: unexpected %q", lineNo, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if inBlock {
		return nil, fmt.Errorf("capture ends inside a response block")
	}
	return rp, nil
}

func (r *Replay) Write(p []byte) (int, error) {
	cmd := strings.TrimSpace(string(p))
	if queue := r.responses[cmd]; len(queue) > 0 {
		lines := queue[0]
		r.responses[cmd] = queue[1:]
		r.pending = append(r.pending, []byte(strings.Join(lines, "\r")+"\r>")...)
	}
	return len(p), nil
}

func (r *Replay) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		return 0, nil
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

func (r *Replay) Close() error { return nil }
