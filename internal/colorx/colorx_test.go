package colorx

import (
	"image/color"
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGBA
		wantErr bool
	}{
		{
			name:  "6-digit black with hash",
			input: "#000000",
			want:  RGBA{0, 0, 0, 255},
		},
		{
			name:  "6-digit white with hash",
			input: "#FFFFFF",
			want:  RGBA{255, 255, 255, 255},
		},
		{
			name:  "6-digit lowercase",
			input: "#ff00ff",
			want:  RGBA{255, 0, 255, 255},
		},
		{
			name:  "6-digit without hash",
			input: "AB12CD",
			want:  RGBA{0xAB, 0x12, 0xCD, 255},
		},
		{
			name:  "brand green",
			input: "#34A853",
			want:  RGBA{0x34, 0xA8, 0x53, 255},
		},
		{
			name:  "3-digit shorthand",
			input: "#F0A",
			want:  RGBA{0xFF, 0x00, 0xAA, 255},
		},
		{
			name:    "invalid length 4",
			input:   "#FFFF",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "non-hex characters",
			input:   "#ZZZZZZ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHex_RoundTrip(t *testing.T) {
	// Sample the 24-bit space; every sampled color must survive
	// Hex -> ParseHex unchanged.
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 85 {
				c := RGBA{uint8(r), uint8(g), uint8(b), 255}
				got, err := ParseHex(c.Hex())
				if err != nil {
					t.Fatalf("ParseHex(%q): %v", c.Hex(), err)
				}
				if got != c {
					t.Fatalf("round trip of %+v via %q gave %+v", c, c.Hex(), got)
				}
			}
		}
	}
}

func TestHex_Lowercase(t *testing.T) {
	c := RGBA{0xAB, 0xCD, 0xEF, 255}
	if got, want := c.Hex(), "#abcdef"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b RGBA
		want float64
	}{
		{"identical", RGBA{10, 20, 30, 255}, RGBA{10, 20, 30, 255}, 0},
		{"black to white", RGBA{0, 0, 0, 255}, RGBA{255, 255, 255, 255}, MaxDistance},
		{"single channel", RGBA{0, 0, 0, 255}, RGBA{30, 0, 0, 255}, 30},
		{"3-4-5 triangle", RGBA{0, 0, 0, 255}, RGBA{3, 4, 0, 255}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
			// Distance is symmetric
			if rev := Distance(tt.b, tt.a); rev != got {
				t.Errorf("not symmetric: %f vs %f", got, rev)
			}
		})
	}
}

func TestFromStdColor(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  RGBA
	}{
		{"opaque red", color.RGBA{255, 0, 0, 255}, RGBA{255, 0, 0, 255}},
		{"opaque white", color.White, RGBA{255, 255, 255, 255}},
		{"transparent", color.RGBA{0, 0, 0, 0}, RGBA{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromStdColor(tt.input); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWeightedMean(t *testing.T) {
	tests := []struct {
		name    string
		colors  []RGBA
		weights []int
		want    RGBA
	}{
		{
			name: "equal weights",
			colors: []RGBA{
				{0, 0, 0, 255},
				{255, 255, 255, 255},
			},
			want: RGBA{128, 128, 128, 255},
		},
		{
			name: "weighted toward first",
			colors: []RGBA{
				{0, 0, 0, 255},
				{255, 255, 255, 255},
			},
			weights: []int{3, 1},
			want:    RGBA{64, 64, 64, 255},
		},
		{
			name:   "empty input",
			colors: nil,
			want:   RGBA{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeightedMean(tt.colors, tt.weights); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
