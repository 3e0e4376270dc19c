package goobd

import (
	"errors"
	"math"
	"testing"
)

func TestMonitorResults(t *testing.T) {
	c, _ := newTestClient(t, script{"06 01": {
		"7E8 10 0B 46 01 01 01 12 02",
		"7E8 21 26 00 00 03 20 00 00",
	}})
	c.framing = FramingCAN
	values, err := c.MonitorResults(0x01)
	if err != nil {
		t.Fatalf("MonitorResults: %v", err)
	}
	if len(values) != 1 {
		t.Fatalf("got %d results, want 1: %v", len(values), values)
	}
	v := values[0]
	if v.Name != "Rich to lean sensor threshold voltage" {
		t.Errorf("name = %q", v.Name)
	}
	if v.Value != float64(550) {
		t.Errorf("value = %v, want 550", v.Value)
	}
	if v.Unit != "s" {
		t.Errorf("unit = %q, want s", v.Unit)
	}
	if !v.HasLimits || v.Min != 0 || v.Max != 800 {
		t.Errorf("limits = %v..%v (has=%v), want 0..800", v.Min, v.Max, v.HasLimits)
	}
}

func TestMonitorResultsSignedScaling(t *testing.T) {
	c, _ := newTestClient(t, script{"06 01": {
		"7E8 10 0B 46 01 01 05 96 FF",
		"7E8 21 38 FF 9C 00 C8 00 00",
	}})
	c.framing = FramingCAN
	values, err := c.MonitorResults(0x01)
	if err != nil {
		t.Fatalf("MonitorResults: %v", err)
	}
	v := values[0]
	if v.Name != "Rich to lean sensor switch time" {
		t.Errorf("name = %q", v.Name)
	}
	if v.Unit != "°C" {
		t.Errorf("unit = %q, want °C", v.Unit)
	}
	got, ok := v.Value.(float64)
	if !ok {
		t.Fatalf("value = %v", v.Value)
	}
	// 0xFF38 recovers to -200 before the 0.1 scaling.
	if math.Abs(got+20) > 1e-9 {
		t.Errorf("value = %v, want -20", got)
	}
	if math.Abs(v.Min+10) > 1e-9 || math.Abs(v.Max-20) > 1e-9 {
		t.Errorf("limits = %v..%v, want -10..20", v.Min, v.Max)
	}
}

func TestMonitorResultsUnknownIDs(t *testing.T) {
	c, _ := newTestClient(t, script{"06 21": {
		"7E8 10 0B 46 21 21 20 50 00",
		"7E8 21 64 00 00 00 C8 00 00",
	}})
	c.framing = FramingCAN
	values, err := c.MonitorResults(0x21)
	if err != nil {
		t.Fatalf("MonitorResults: %v", err)
	}
	v := values[0]
	if v.Name != "Unrecognised test Id" {
		t.Errorf("name = %q", v.Name)
	}
	if v.Unit != "unknown" {
		t.Errorf("unit = %q, want unknown", v.Unit)
	}
	if v.Value != float64(0x64) {
		t.Errorf("value = %v, want unscaled 100", v.Value)
	}
}

func TestMonitorResultsNotCAN(t *testing.T) {
	c, _ := newTestClient(t, script{})
	c.framing = FramingOther
	if _, err := c.MonitorResults(0x01); !errors.Is(err, ErrNotCAN) {
		t.Fatalf("err = %v, want ErrNotCAN", err)
	}
}

func TestMonitorResultsNoRecords(t *testing.T) {
	c, _ := newTestClient(t, script{"06 01": {"7E8 02 46 01"}})
	c.framing = FramingCAN
	if _, err := c.MonitorResults(0x01); !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestTestName(t *testing.T) {
	if got := testName(0x0B); got != "Misfire counts for last ten driving cycles" {
		t.Errorf("testName(0B) = %q", got)
	}
	if got := testName(0x7F); got != "Unrecognised test Id" {
		t.Errorf("testName(7F) = %q", got)
	}
}
