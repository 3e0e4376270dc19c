package goobd

import (
	"fmt"

	"github.com/roffe/goobd/pkg/pid"
	"github.com/roffe/goobd/pkg/uas"
)

// Standardized test ids for CAN-bus on-board monitoring results.
var testNames = map[byte]string{
	0x01: "Rich to lean sensor threshold voltage",
	0x02: "Lean to rich sensor threshold voltage",
	0x03: "Low sensor voltage for switch time calculation",
	0x04: "High sensor voltage for switch time calculation",
	0x05: "Rich to lean sensor switch time",
	0x06: "Lean to rich sensor switch time",
	0x07: "Minimum sensor voltage for test cycle",
	0x08: "Maximum sensor voltage for test cycle",
	0x09: "Time between sensor transitions",
	0x0A: "Sensor period",
	0x0B: "Misfire counts for last ten driving cycles",
	0x0C: "Misfire counts for last or current driving cycle",
}

func testName(id byte) string {
	if name, ok := testNames[id]; ok {
		return name
	}
	return "Unrecognised test Id"
}

// MonitorResults requests the on-board monitoring results for one
// monitor id (service 06) and decodes the fixed nine-byte records:
// monitor id, test id, unit-and-scaling id, then big-endian value,
// minimum and maximum. Offset 0 of each response is the echoed
// monitor-id selector and is skipped. Only defined for CAN buses.
func (c *Client) MonitorResults(mid byte) ([]Value, error) {
	if c.framing != FramingCAN {
		return nil, ErrNotCAN
	}
	command := fmt.Sprintf("06 %02X", mid)
	status, err := c.issue(command)
	if err != nil {
		return nil, fmt.Errorf("monitor %02X: %w", mid, err)
	}
	switch status {
	case StatusNoData:
		return nil, fmt.Errorf("monitor %02X: %w", mid, ErrNoData)
	case StatusTimeout:
		return nil, fmt.Errorf("monitor %02X: %w", mid, ErrTimeout)
	}

	signedWord := pid.Type{Kind: pid.Word, Signed: true}
	var out []Value
	for _, f := range c.matching() {
		for i := 1; i+9 <= len(f.Data); i += 9 {
			rec := f.Data[i : i+9]
			id := rec[2]
			value := float64(rec[3])*256 + float64(rec[4])
			min := float64(rec[5])*256 + float64(rec[6])
			max := float64(rec[7])*256 + float64(rec[8])
			if uas.Signed(id) {
				value = signedWord.Recover(value)
				min = signedWord.Recover(min)
				max = signedWord.Recover(max)
			}
			entry := uas.Lookup(id)
			out = append(out, Value{
				Name:      testName(rec[1]),
				Value:     entry.Scale(value),
				Unit:      entry.Unit,
				Address:   f.Address,
				Min:       entry.Scale(min),
				Max:       entry.Scale(max),
				HasLimits: true,
			})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("monitor %02X: %w", mid, ErrNoData)
	}
	return out, nil
}
