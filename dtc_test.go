package goobd

import (
	"errors"
	"testing"
)

func TestFormatDTC(t *testing.T) {
	tests := []struct {
		raw  int
		want string
	}{
		{0x0301, "P0301"},
		{0x1301, "P1301"},
		{0x4123, "C0123"},
		{0x8123, "B0123"},
		{0xC123, "U0123"},
		{0xE456, "U2456"},
		{0x0001, "P0001"},
	}
	for _, tt := range tests {
		if got := formatDTC(tt.raw); got != tt.want {
			t.Errorf("formatDTC(%04X) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestStoredTroubleCodes(t *testing.T) {
	c, _ := newTestClient(t, script{"03": {"7E8 06 43 02 03 01 C1 23"}})
	values, err := c.StoredTroubleCodes()
	if err != nil {
		t.Fatalf("StoredTroubleCodes: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("got %d codes, want 2: %v", len(values), values)
	}
	if values[0].Value != "P0301" || values[1].Value != "U0123" {
		t.Errorf("codes = %v, %v", values[0].Value, values[1].Value)
	}
	if values[0].Address != 0x7E8 {
		t.Errorf("address = %03X, want 7E8", values[0].Address)
	}
}

func TestTroubleCodesZeroSentinel(t *testing.T) {
	c, _ := newTestClient(t, script{"03": {
		"7E8 06 43 02 03 01 00 00",
		"7E9 06 43 01 01 23 00 00",
	}})
	values, err := c.StoredTroubleCodes()
	if err != nil {
		t.Fatalf("StoredTroubleCodes: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("got %d codes, want 2: %v", len(values), values)
	}
	if values[0].Value != "P0301" || values[1].Value != "P0123" {
		t.Errorf("codes = %v, %v", values[0].Value, values[1].Value)
	}
}

func TestPendingTroubleCodesLegacy(t *testing.T) {
	c, _ := newTestClient(t, script{"07": {"48 6B 10 47 01 03 01 00 00"}})
	values, err := c.PendingTroubleCodes()
	if err != nil {
		t.Fatalf("PendingTroubleCodes: %v", err)
	}
	if len(values) != 1 || values[0].Value != "P0301" {
		t.Fatalf("codes = %v", values)
	}
}

func TestPermanentTroubleCodesEmpty(t *testing.T) {
	c, _ := newTestClient(t, script{"0A": {"7E8 04 4A 00 00 00"}})
	values, err := c.PermanentTroubleCodes()
	if err != nil {
		t.Fatalf("PermanentTroubleCodes: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("codes = %v, want none", values)
	}
}

func TestTroubleCodesNoData(t *testing.T) {
	c, _ := newTestClient(t, script{"03": {"NO DATA"}})
	if _, err := c.StoredTroubleCodes(); !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestClearTroubleCodes(t *testing.T) {
	c, _ := newTestClient(t, script{"04": {"7E8 01 44"}})
	ack, err := c.ClearTroubleCodes()
	if err != nil {
		t.Fatalf("ClearTroubleCodes: %v", err)
	}
	if ack != 0 {
		t.Errorf("ack = %02X, want 00", ack)
	}
}

func TestClearTroubleCodesFailure(t *testing.T) {
	c, _ := newTestClient(t, script{"04": {"7E8 02 44 31"}})
	ack, err := c.ClearTroubleCodes()
	if err != nil {
		t.Fatalf("ClearTroubleCodes: %v", err)
	}
	if ack != 0x31 {
		t.Errorf("ack = %02X, want 31", ack)
	}
}

func TestClearTroubleCodesSilent(t *testing.T) {
	c, _ := newTestClient(t, script{})
	if _, err := c.ClearTroubleCodes(); !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}
