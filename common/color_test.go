package common

import (
	"math"
	"testing"
)

type fixedIntN int

func (f fixedIntN) IntN(n int) int { return int(f) % n }

func TestHex(t *testing.T) {
	c := Hex(0xff8000)
	if c[0] != 1 || !near(c[1], 128.0/255) || c[2] != 0 || c[3] != 1 {
		t.Errorf("Hex(0xff8000) = %v", c)
	}
}

func TestNamedColor(t *testing.T) {
	c, err := NamedColor(" Silver ")
	if err != nil {
		t.Fatalf("NamedColor(silver): %v", err)
	}
	if c != Hex(0xc0c0c0) {
		t.Errorf("NamedColor(silver) = %v, want %v", c, Hex(0xc0c0c0))
	}
	if _, err := NamedColor("octarine"); err == nil {
		t.Error("NamedColor(octarine) should fail")
	}
}

func TestNamedColorMatchesCSS(t *testing.T) {
	tests := []struct {
		name string
		want uint32
	}{
		{"aliceblue", 0xf0f8ff},
		{"deeppink", 0xff1493},
		{"cornflowerblue", 0x6495ed},
		{"CRIMSON", 0xdc143c},
		{"tomato", 0xff6347},
	}
	for _, tt := range tests {
		got, err := NamedColor(tt.name)
		if err != nil {
			t.Errorf("NamedColor(%q): %v", tt.name, err)
			continue
		}
		if got != Hex(tt.want) {
			t.Errorf("NamedColor(%q) = %v, want %v", tt.name, got, Hex(tt.want))
		}
	}
}

func TestPaletteEntriesResolve(t *testing.T) {
	for i, name := range Palette {
		if _, err := NamedColor(name); err != nil {
			t.Errorf("Palette[%d] %q: %v", i, name, err)
		}
	}
	if got := RandomPaletteColor(fixedIntN(1)); got != MustNamedColor("cyan") {
		t.Errorf("RandomPaletteColor(1) = %v, want cyan", got)
	}
}

func TestSRGBToLinear(t *testing.T) {
	if got := SRGBToLinear(0); got != 0 {
		t.Errorf("SRGBToLinear(0) = %v", got)
	}
	if got := SRGBToLinear(1); math.Abs(got-1) > 1e-9 {
		t.Errorf("SRGBToLinear(1) = %v", got)
	}
	// mid grey decodes to roughly 21.4% linear
	if got := SRGBToLinear(0.5); math.Abs(got-0.214) > 0.001 {
		t.Errorf("SRGBToLinear(0.5) = %v", got)
	}
}
