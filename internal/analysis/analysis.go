// Package analysis inspects images for brand-color compliance: dominant
// color extraction and tolerance-based color presence detection.
package analysis

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/brandproof/brandproof/internal/colorx"
)

const (
	// clusterSampleEdge caps the longer image edge before clustering;
	// distance work is O(pixel count).
	clusterSampleEdge = 200

	// frequencySampleEdge is the tighter cap used by exact-color counting.
	frequencySampleEdge = 100

	// presenceThresholdPct is the fraction of sampled pixels (in percent)
	// above which a color counts as present.
	presenceThresholdPct = 0.1
)

// ColorHit is a color found in an image with its pixel coverage percentage.
type ColorHit struct {
	Color      string  `json:"color"`
	Percentage float64 `json:"percentage"`
}

// Analyzer runs color analysis with a configured clustering strategy.
type Analyzer struct {
	clusterer Clusterer
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClusterer selects the dominant-color strategy.
func WithClusterer(c Clusterer) Option {
	return func(a *Analyzer) { a.clusterer = c }
}

// New creates an Analyzer. The default strategy is k-means.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{clusterer: KMeansClusterer{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// DominantColors extracts up to k representative colors as lowercase hex
// strings, most significant first. Fewer than k colors come back when the
// image has fewer distinct colors.
func (a *Analyzer) DominantColors(img image.Image, k int) []string {
	edge := clusterSampleEdge
	if _, ok := a.clusterer.(FrequencyClusterer); ok {
		edge = frequencySampleEdge
	}
	pixels := samplePixels(img, edge)

	clusters := a.clusterer.Cluster(pixels, k)
	hexes := make([]string, 0, len(clusters))
	for _, c := range clusters {
		hexes = append(hexes, c.Hex())
	}
	return hexes
}

// CheckColorPresence reports whether the target color appears in the image
// within the given per-channel-scale tolerance (0-255), along with the
// percentage of sampled pixels that matched.
func (a *Analyzer) CheckColorPresence(img image.Image, targetHex string, tolerance int) (bool, float64, error) {
	target, err := colorx.ParseHex(targetHex)
	if err != nil {
		return false, 0, fmt.Errorf("target color: %w", err)
	}

	pixels := samplePixels(img, clusterSampleEdge)
	if len(pixels) == 0 {
		return false, 0, nil
	}

	matches := 0
	for _, p := range pixels {
		if colorx.Distance(p, target) <= float64(tolerance) {
			matches++
		}
	}
	percentage := float64(matches) / float64(len(pixels)) * 100
	return percentage > presenceThresholdPct, percentage, nil
}

// CheckForbiddenColors returns every color from the list found present in
// the image, with its coverage.
func (a *Analyzer) CheckForbiddenColors(img image.Image, forbidden []string, tolerance int) ([]ColorHit, error) {
	var found []ColorHit
	for _, hex := range forbidden {
		present, pct, err := a.CheckColorPresence(img, hex, tolerance)
		if err != nil {
			return nil, err
		}
		if present {
			found = append(found, ColorHit{Color: hex, Percentage: pct})
		}
	}
	return found, nil
}

// ValidateBrandColors checks that every required color is present, returning
// the ones that are missing.
func (a *Analyzer) ValidateBrandColors(img image.Image, required []string, tolerance int) (bool, []string, error) {
	var missing []string
	for _, hex := range required {
		present, _, err := a.CheckColorPresence(img, hex, tolerance)
		if err != nil {
			return false, nil, err
		}
		if !present {
			missing = append(missing, hex)
		}
	}
	return len(missing) == 0, missing, nil
}

// samplePixels downsamples the image so its longer edge is at most maxEdge
// and returns the pixels as opaque RGB values.
func samplePixels(img image.Image, maxEdge int) []colorx.RGBA {
	b := img.Bounds()
	var small *image.NRGBA
	if b.Dx() > maxEdge || b.Dy() > maxEdge {
		small = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
	} else {
		small = imaging.Clone(img)
	}

	sb := small.Bounds()
	pixels := make([]colorx.RGBA, 0, sb.Dx()*sb.Dy())
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		for x := sb.Min.X; x < sb.Max.X; x++ {
			c := small.NRGBAAt(x, y)
			pixels = append(pixels, colorx.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return pixels
}
