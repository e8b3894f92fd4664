package palette

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewColor(t *testing.T) {
	tests := []struct {
		r, g, b int
		wantErr bool
	}{
		{0, 0, 0, false},
		{255, 128, 1, false},
		{256, 0, 0, true},
		{0, -1, 0, true},
		{0, 0, 1000, true},
	}
	for _, tt := range tests {
		c, err := NewColor(tt.r, tt.g, tt.b)
		if tt.wantErr {
			if !errors.Is(err, ErrComponentRange) {
				t.Errorf("NewColor(%d, %d, %d) err = %v, want %v", tt.r, tt.g, tt.b, err, ErrComponentRange)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewColor(%d, %d, %d): %v", tt.r, tt.g, tt.b, err)
			continue
		}
		if int(c.R) != tt.r || int(c.G) != tt.g || int(c.B) != tt.b {
			t.Errorf("NewColor(%d, %d, %d) = %+v", tt.r, tt.g, tt.b, c)
		}
	}
}

func TestHex(t *testing.T) {
	for _, s := range []string{"#000000", "#ffffff", "#29abe2", "#0a0b0c"} {
		c, err := ParseHex(s)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", s, err)
		}
		if got := c.Hex(); got != s {
			t.Errorf("ParseHex(%q).Hex() = %q", s, got)
		}
	}
	if c, _ := ParseHex("#29abe2"); c != Monochrome {
		t.Errorf("ParseHex(#29abe2) = %+v, want %+v", c, Monochrome)
	}
	if _, err := ParseHex("29abe2"); err == nil {
		t.Error("ParseHex without '#' should fail")
	}
	if got := Monochrome.RGBA(); got.A != 255 || got.R != 0x29 {
		t.Errorf("RGBA() = %+v", got)
	}
}

func TestRandomPalette(t *testing.T) {
	p1 := RandomPalette(rand.New(rand.NewSource(7)), 7)
	p2 := RandomPalette(rand.New(rand.NewSource(7)), 7)
	if len(p1.Foreground) != 7 {
		t.Fatalf("got %d foreground colors, want 7", len(p1.Foreground))
	}
	if p1.Background != p2.Background {
		t.Error("same seed should produce the same background")
	}
	for i := range p1.Foreground {
		if p1.Foreground[i] != p2.Foreground[i] {
			t.Errorf("foreground %d differs between runs with the same seed", i)
		}
	}
	// Backgrounds are kept light.
	if _, _, v := p1.Background.colorful().Hsv(); v < 0.85 {
		t.Errorf("background brightness = %v, want >= 0.85", v)
	}
}

func TestShimmered(t *testing.T) {
	p := MonochromePalette(3)
	if got := Shimmered(p, -1, rand.New(rand.NewSource(1))); &got.Foreground[0] != &p.Foreground[0] {
		t.Error("negative shimmer should return the palette as is")
	}
	got := Shimmered(p, 0, rand.New(rand.NewSource(1)))
	if got.Background != p.Background {
		t.Error("shimmer should not touch the background")
	}
	for i, c := range p.Foreground {
		if c != Monochrome {
			t.Errorf("input foreground %d modified to %+v", i, c)
		}
	}
}

func TestShade(t *testing.T) {
	if got := Shade(Monochrome, 1); got != Monochrome {
		t.Errorf("Shade(c, 1) = %+v, want %+v", got, Monochrome)
	}
	if got := Shade(Monochrome, 0); got != (Color{}) {
		t.Errorf("Shade(c, 0) = %+v, want black", got)
	}
	dark := Shade(Monochrome, 0.5)
	if dark.R > Monochrome.R || dark.G > Monochrome.G || dark.B > Monochrome.B {
		t.Errorf("Shade(c, 0.5) = %+v is not darker than %+v", dark, Monochrome)
	}
}
