package block

import (
	"testing"
)

func TestSignature(t *testing.T) {
	signed := &Descriptor{Size: HeaderSize, Signature: "v8@?0"}
	unsigned := &Descriptor{Size: HeaderSize}

	tests := []struct {
		name   string
		block  *Layout
		want   string
		wantOK bool
	}{
		{"nil block", nil, "", false},
		{"flag set", newStackBlock(signed, HasSignature), "v8@?0", true},
		{"flag clear", newStackBlock(signed, 0), "", false},
		{"no signature in descriptor", newStackBlock(unsigned, HasSignature), "", true},
	}
	for _, tt := range tests {
		got, ok := Signature(tt.block)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("%s: Signature = (%q, %v), want (%q, %v)",
				tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSignatureSurvivesPromotion(t *testing.T) {
	rt := New()
	desc := &Descriptor{Size: HeaderSize, Signature: "i16@?0i8"}
	promoted := rt.Copy(newStackBlock(desc, HasSignature))

	got, ok := Signature(promoted)
	if !ok || got != "i16@?0i8" {
		t.Errorf("Signature after promotion = (%q, %v)", got, ok)
	}
}
