package pid

import (
	"math"
	"testing"
)

func TestParseFormulaApply(t *testing.T) {
	tests := []struct {
		formula string
		in      float64
		want    float64
		wantErr bool
	}{
		{formula: "", in: 42, want: 42},
		{formula: "x", in: 42, want: 42},
		{formula: "x/4", in: 6896, want: 1724},
		{formula: "x-40", in: 135, want: 95},
		{formula: "x+40", in: 0, want: 40},
		{formula: "x*100/255", in: 255, want: 100},
		{formula: "x*100/128", in: -128, want: -100},
		{formula: "x/2-64", in: 150, want: 11},
		{formula: "x/200", in: 100, want: 0.5},
		{formula: "x&16", in: 0x1F, want: 16},
		{formula: "x&16", in: 0x0F, want: 0},
		{formula: "x&127", in: 0x83, want: 3},
		{formula: "x / 10 - 40", in: 500, want: 10},
		{formula: "y/4", wantErr: true},
		{formula: "x^2", wantErr: true},
		{formula: "x/", wantErr: true},
		{formula: "x/0", wantErr: true},
		{formula: "x*abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			f, err := ParseFormula(tt.formula)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormula(%q) error = %v, wantErr %v", tt.formula, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := f.Apply(tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormulaText(t *testing.T) {
	f, err := ParseFormula("ascii")
	if err != nil {
		t.Fatalf("ParseFormula(ascii) error = %v", err)
	}
	if !f.IsText() {
		t.Fatal("IsText() = false, want true")
	}
	got := f.ApplyText("\x00  12.6V\r\x00")
	if got != "12.6V" {
		t.Errorf("ApplyText = %q, want %q", got, "12.6V")
	}
	if n, err := ParseFormula("x/4"); err != nil || n.IsText() {
		t.Errorf("numeric formula flagged as text")
	}
}
