package pid

import "testing"

func TestParseType(t *testing.T) {
	tests := []struct {
		tag     string
		want    Type
		wantErr bool
	}{
		{tag: "bool_0", want: Type{Kind: Bool, Index: 0}},
		{tag: "byte_2", want: Type{Kind: Byte, Index: 2}},
		{tag: "word_0", want: Type{Kind: Word, Index: 0}},
		{tag: "dword_1", want: Type{Kind: DWord, Index: 1}},
		{tag: "string_3", want: Type{Kind: String, Index: 3}},
		{tag: "signed byte_0", want: Type{Kind: Byte, Index: 0, Signed: true}},
		{tag: "signed word_1", want: Type{Kind: Word, Index: 1, Signed: true}},
		{tag: "signed bool_0", wantErr: true},
		{tag: "word", wantErr: true},
		{tag: "float_0", wantErr: true},
		{tag: "byte_x", wantErr: true},
		{tag: "byte_-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseType(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType(%q) error = %v, wantErr %v", tt.tag, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseType(%q) = %+v, want %+v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestRecoverSignedRange(t *testing.T) {
	sb := Type{Kind: Byte, Signed: true}
	for raw := 0; raw < 256; raw++ {
		got := sb.Recover(float64(raw))
		if got < -128 || got > 127 {
			t.Fatalf("signed byte raw %d recovered to %v, outside [-128,127]", raw, got)
		}
	}
	if got := sb.Recover(0x80); got != -128 {
		t.Errorf("Recover(0x80) = %v, want -128", got)
	}

	sw := Type{Kind: Word, Signed: true}
	for _, raw := range []float64{0, 1, 32767, 32768, 65535} {
		got := sw.Recover(raw)
		if got < -32768 || got > 32767 {
			t.Fatalf("signed word raw %v recovered to %v, outside [-32768,32767]", raw, got)
		}
	}
	if got := sw.Recover(65535); got != -1 {
		t.Errorf("Recover(65535) = %v, want -1", got)
	}

	unsigned := Type{Kind: Word}
	if got := unsigned.Recover(65535); got != 65535 {
		t.Errorf("unsigned Recover(65535) = %v, want 65535", got)
	}
}
