package goobd

import "fmt"

// dtcPrefixes maps the top two bits and the next two bits of a raw
// trouble-code word to the standard letter-digit prefix.
var dtcPrefixes = [16]string{
	"P0", "P1", "P2", "P3",
	"C0", "C1", "C2", "C3",
	"B0", "B1", "B2", "B3",
	"U0", "U1", "U2", "U3",
}

// formatDTC renders one raw big-endian trouble-code word as its
// five-character display form, P0301 style.
func formatDTC(raw int) string {
	return fmt.Sprintf("%s%03X", dtcPrefixes[(raw>>12)&0x0F], raw&0x0FFF)
}

// StoredTroubleCodes reads the confirmed diagnostic trouble codes
// (service 03) from every responding controller.
func (c *Client) StoredTroubleCodes() ([]Value, error) {
	return c.troubleCodes("03", "stored trouble codes")
}

// PendingTroubleCodes reads the trouble codes detected during the
// current or last driving cycle but not yet confirmed (service 07).
func (c *Client) PendingTroubleCodes() ([]Value, error) {
	return c.troubleCodes("07", "pending trouble codes")
}

// PermanentTroubleCodes reads the codes that survive a clear until the
// vehicle itself retests them healthy (service 0A).
func (c *Client) PermanentTroubleCodes() ([]Value, error) {
	return c.troubleCodes("0A", "permanent trouble codes")
}

// troubleCodes issues a read-codes command and decodes the payload as
// big-endian word pairs. A zero word terminates a controller's list;
// controllers with no codes simply contribute nothing.
func (c *Client) troubleCodes(command, what string) ([]Value, error) {
	status, err := c.issue(command)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	switch status {
	case StatusNoData:
		return nil, fmt.Errorf("%s: %w", what, ErrNoData)
	case StatusTimeout:
		return nil, fmt.Errorf("%s: %w", what, ErrTimeout)
	}

	var out []Value
	for _, f := range c.matching() {
		for i := 0; i+1 < len(f.Data); i += 2 {
			raw := int(f.Data[i])<<8 | int(f.Data[i+1])
			if raw == 0 {
				break
			}
			out = append(out, Value{
				Name:    "Trouble code",
				Value:   formatDTC(raw),
				Address: f.Address,
			})
		}
	}
	return out, nil
}

// ClearTroubleCodes erases the stored codes and freeze frames of every
// controller (service 04) and returns the acknowledgment byte, zero on
// success. Controllers that acknowledge with a bare response count as
// success.
func (c *Client) ClearTroubleCodes() (byte, error) {
	status, err := c.issue("04")
	if err != nil {
		return 0, fmt.Errorf("clear trouble codes: %w", err)
	}
	switch status {
	case StatusNoData:
		return 0, fmt.Errorf("clear trouble codes: %w", ErrNoData)
	case StatusTimeout:
		return 0, fmt.Errorf("clear trouble codes: %w", ErrTimeout)
	}
	frames := c.matching()
	if len(frames) == 0 {
		return 0, fmt.Errorf("clear trouble codes: %w", ErrNoData)
	}
	for _, f := range frames {
		if len(f.Data) > 0 && f.Data[0] != 0 {
			return f.Data[0], nil
		}
	}
	return 0, nil
}
