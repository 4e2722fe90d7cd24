// Package content validates campaign copy and image properties: text length,
// forbidden words, quality heuristics, and aspect-ratio conformance.
package content

import (
	"fmt"
	"image"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/brandproof/brandproof/internal/aspect"
)

// CheckTextLength verifies the text fits the limit, measured in characters,
// not bytes.
func CheckTextLength(text string, maxLength int) (bool, string) {
	length := utf8.RuneCountInString(text)
	if length <= maxLength {
		return true, fmt.Sprintf("text length OK (%d/%d)", length, maxLength)
	}
	return false, fmt.Sprintf("text too long (%d/%d)", length, maxLength)
}

// CheckForbiddenWords scans the text for forbidden terms, case-insensitively
// and as substrings. It returns the terms found; the check passes when none
// are.
func CheckForbiddenWords(text string, forbidden []string) (bool, []string) {
	lower := strings.ToLower(text)
	var found []string
	for _, word := range forbidden {
		if word != "" && strings.Contains(lower, strings.ToLower(word)) {
			found = append(found, word)
		}
	}
	return len(found) == 0, found
}

// Pixel-area buckets for the quality estimate. The heuristic is coarse and
// unrelated to real compression artifacts; the thresholds are kept as-is for
// behavioral parity with existing reports.
const (
	qualityPixels90 = 1_000_000
	qualityPixels80 = 500_000
	qualityPixels70 = 250_000
)

// CheckImageQuality estimates quality from the pixel area, unless an
// explicit embedded quality value (from lossy-encoding metadata) is supplied,
// which then takes precedence. embeddedQuality <= 0 means absent.
func CheckImageQuality(img image.Image, embeddedQuality, minQuality int) (bool, int) {
	pixels := img.Bounds().Dx() * img.Bounds().Dy()

	var estimated int
	switch {
	case pixels > qualityPixels90:
		estimated = 90
	case pixels > qualityPixels80:
		estimated = 80
	case pixels > qualityPixels70:
		estimated = 70
	default:
		estimated = 60
	}

	if embeddedQuality > 0 {
		estimated = embeddedQuality
	}
	return estimated >= minQuality, estimated
}

// aspectTolerance is the absolute tolerance when comparing ratio values.
const aspectTolerance = 0.01

// CheckAspectRatio reports whether the image's pixel ratio matches the
// required one, along with the actual ratio reduced to lowest terms.
func CheckAspectRatio(img image.Image, required aspect.Ratio) (bool, aspect.Ratio) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	actual := aspect.Reduce(w, h)
	matches := math.Abs(float64(w)/float64(h)-required.Value()) < aspectTolerance
	return matches, actual
}

// readabilityThreshold is the WCAG AA contrast ratio standing in for a real
// contrast measurement; no background sampling is performed here.
const readabilityThreshold = 4.5

// CheckTextReadability estimates a readability ratio from the word count
// alone. Short copy reads well; long copy is assumed harder.
func CheckTextReadability(text string) (bool, float64) {
	wordCount := len(strings.Fields(text))

	var ratio float64
	switch {
	case wordCount < 3:
		ratio = 7.0
	case wordCount < 10:
		ratio = 5.5
	case wordCount < 20:
		ratio = 4.8
	default:
		ratio = 4.0
	}
	return ratio >= readabilityThreshold, ratio
}
