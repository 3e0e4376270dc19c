package goobd

import (
	"io"
	"strings"
	"time"
)

// issue sends one command to the adapter and collects its response
// lines. The read loop polls the transport with a fixed sleep between
// empty polls and gives up once the idle budget is spent; it finishes
// early on the '>' prompt. NUL bytes are filtered out, CR and LF both
// terminate lines. No retries happen here; that is the caller's call.
func (c *Client) issue(command string) (Status, error) {
	if c.cfg.Debug {
		c.cfg.OnMessage("<o> " + command)
	}
	if _, err := c.t.Write([]byte(command + "\r\n")); err != nil {
		return StatusTimeout, err
	}

	c.lines = c.lines[:0]
	budget := int(c.cfg.Timeout / c.cfg.PollInterval)
	if budget < 1 {
		budget = 1
	}

	var current strings.Builder
	readBuf := make([]byte, 64)
	emptyPolls := 0
	gotBytes := false
	prompt := false
	for !prompt {
		n, err := c.t.Read(readBuf)
		if err != nil && err != io.EOF {
			return StatusTimeout, err
		}
		if n == 0 {
			emptyPolls++
			if emptyPolls >= budget {
				break
			}
			time.Sleep(c.cfg.PollInterval)
			continue
		}
		gotBytes = true
		emptyPolls = 0
		for i := 0; i < n && !prompt; i++ {
			switch b := readBuf[i]; b {
			case 0x00:
				// NUL fill from the adapter, not content.
			case '>':
				prompt = true
			case '\r', '\n':
				if current.Len() > 0 {
					c.lines = append(c.lines, current.String())
					current.Reset()
				}
			default:
				current.WriteByte(b)
			}
		}
	}
	if current.Len() > 0 {
		c.lines = append(c.lines, current.String())
	}

	if !gotBytes {
		return StatusTimeout, nil
	}
	if len(c.lines) == 0 {
		// Bare prompt, nothing to decode.
		return StatusOk, nil
	}
	if c.cfg.Debug {
		for _, l := range c.lines {
			c.cfg.OnMessage("<i> " + l)
		}
	}
	if c.lines[0] == "NO DATA" {
		return StatusNoData, nil
	}

	if !isATCommand(command) {
		cmd, sub := requestIDs(command)
		c.lastCmd, c.lastSub = cmd, sub
		frames, err := decodeLines(c.lines)
		if err != nil {
			return StatusOk, err
		}
		c.frames = frames
	}
	return StatusOk, nil
}

func isATCommand(command string) bool {
	return strings.HasPrefix(strings.ToUpper(command), "AT")
}

// requestIDs resolves the command id, and the sub-command id for the
// commands that carry one, from an outgoing command string.
func requestIDs(command string) (cmd, sub int) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return 0, 0
	}
	cmd, _ = hexToken(fields[0])
	if hasSubCommand(cmd) && len(fields) > 1 {
		sub, _ = hexToken(fields[1])
	}
	return cmd, sub
}
