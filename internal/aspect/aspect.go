// Package aspect parses and manipulates aspect ratios for campaign assets.
// The textual notations "W:H" and "WxH" are accepted at the boundary and
// normalized to one internal form.
package aspect

import (
	"fmt"
	"strconv"
	"strings"
)

// Ratio is an aspect ratio as a pair of positive integers.
type Ratio struct {
	W, H int
}

// Parse parses an aspect ratio string like "16:9" or "1080x1920".
// Malformed input is rejected, never coerced.
func Parse(s string) (Ratio, error) {
	sep := ":"
	if !strings.Contains(s, sep) {
		sep = "x"
		if !strings.ContainsAny(s, "xX") {
			return Ratio{}, fmt.Errorf("invalid aspect ratio %q: expected \"W:H\" or \"WxH\"", s)
		}
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ':' || r == 'x' || r == 'X'
	})
	if len(parts) != 2 {
		return Ratio{}, fmt.Errorf("invalid aspect ratio %q: expected \"W:H\" or \"WxH\"", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Ratio{}, fmt.Errorf("invalid aspect ratio %q: %w", s, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Ratio{}, fmt.Errorf("invalid aspect ratio %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return Ratio{}, fmt.Errorf("invalid aspect ratio %q: terms must be positive", s)
	}
	return Ratio{W: w, H: h}, nil
}

// Reduce returns the ratio of the given pixel dimensions in lowest terms.
func Reduce(width, height int) Ratio {
	d := gcd(width, height)
	if d == 0 {
		return Ratio{W: width, H: height}
	}
	return Ratio{W: width / d, H: height / d}
}

// String formats the ratio in the canonical "W:H" notation.
func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.W, r.H)
}

// Value returns the ratio as a float (width over height).
func (r Ratio) Value() float64 {
	return float64(r.W) / float64(r.H)
}

// Dimensions derives target pixel dimensions so that the larger side equals
// base and the smaller side is scaled down proportionally (floored). Square
// ratios yield base x base.
func (r Ratio) Dimensions(base int) (width, height int) {
	switch {
	case r.W > r.H:
		return base, base * r.H / r.W
	case r.H > r.W:
		return base * r.W / r.H, base
	default:
		return base, base
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
