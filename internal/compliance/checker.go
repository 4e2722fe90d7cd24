package compliance

import (
	"fmt"
	"image"
	"strings"

	"github.com/brandproof/brandproof/internal/analysis"
	"github.com/brandproof/brandproof/internal/aspect"
	"github.com/brandproof/brandproof/internal/content"
)

// Check names as they appear in results and reports.
const (
	CheckRequiredColors  = "required_colors"
	CheckForbiddenColors = "forbidden_colors"
	CheckTextLength      = "text_length"
	CheckForbiddenWords  = "forbidden_words"
	CheckReadability     = "text_readability"
	CheckImageQuality    = "image_quality"
	CheckAspectRatio     = "aspect_ratio"
	CheckNoGuidelines    = "no_guidelines"
)

// AssetInfo is optional metadata supplied with an asset.
type AssetInfo struct {
	// AspectRatio is the ratio the asset claims, in "W:H" or "WxH" form.
	AspectRatio string

	// Quality is the encoder quality embedded in the source file, when
	// known. Zero means absent; the pixel-area heuristic is used instead.
	Quality int
}

// Checker validates assets against one set of guidelines. It is safe for
// concurrent use: the guidelines are read-only and the analyzer is stateless.
type Checker struct {
	guidelines *Guidelines
	colors     *analysis.Analyzer
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithAnalyzer replaces the default color analyzer.
func WithAnalyzer(a *analysis.Analyzer) CheckerOption {
	return func(c *Checker) { c.colors = a }
}

// NewChecker creates a checker for the given guidelines. Nil guidelines are
// allowed: every validation then degrades to a single warning and a perfect
// score.
func NewChecker(guidelines *Guidelines, opts ...CheckerOption) *Checker {
	c := &Checker{
		guidelines: guidelines,
		colors:     analysis.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidateAsset runs the full check sequence against one asset: colors, then
// text (when supplied), then image quality, then aspect ratio (when metadata
// carries one). The order is fixed so failure details are deterministic.
func (c *Checker) ValidateAsset(img image.Image, text string, info *AssetInfo) *Result {
	result := NewResult()

	if c.guidelines == nil {
		result.addWarning(CheckNoGuidelines, "no brand guidelines configured")
		result.CalculateScore()
		return result
	}

	c.checkColors(img, result)
	if text != "" {
		c.checkText(text, result)
	}
	c.checkQuality(img, info, result)
	if info != nil && info.AspectRatio != "" {
		c.checkAspectRatio(img, info.AspectRatio, result)
	}

	result.CalculateScore()
	return result
}

func (c *Checker) checkColors(img image.Image, result *Result) {
	g := c.guidelines

	if len(g.RequiredColors) > 0 {
		allPresent, missing, err := c.colors.ValidateBrandColors(img, g.RequiredColors, g.ColorTolerance)
		switch {
		case err != nil:
			result.addFailed(CheckRequiredColors, fmt.Sprintf("color analysis failed: %v", err))
		case allPresent:
			result.addPassed(CheckRequiredColors,
				fmt.Sprintf("all %d brand colors present", len(g.RequiredColors)))
		default:
			result.addFailed(CheckRequiredColors,
				"missing brand colors: "+strings.Join(missing, ", "))
		}
	}

	if len(g.ForbiddenColors) > 0 {
		found, err := c.colors.CheckForbiddenColors(img, g.ForbiddenColors, g.ColorTolerance)
		switch {
		case err != nil:
			result.addFailed(CheckForbiddenColors, fmt.Sprintf("color analysis failed: %v", err))
		case len(found) == 0:
			result.addPassed(CheckForbiddenColors, "no forbidden colors detected")
		default:
			hits := make([]string, len(found))
			for i, hit := range found {
				hits[i] = fmt.Sprintf("%s (%.1f%%)", hit.Color, hit.Percentage)
			}
			result.addFailed(CheckForbiddenColors, "forbidden colors found: "+strings.Join(hits, ", "))
		}
	}
}

func (c *Checker) checkText(text string, result *Result) {
	g := c.guidelines

	if ok, msg := content.CheckTextLength(text, g.MaxTextLength); ok {
		result.addPassed(CheckTextLength, msg)
	} else {
		result.addFailed(CheckTextLength, msg)
	}

	if len(g.ForbiddenWords) > 0 {
		if ok, found := content.CheckForbiddenWords(text, g.ForbiddenWords); ok {
			result.addPassed(CheckForbiddenWords, "no forbidden words detected")
		} else {
			result.addFailed(CheckForbiddenWords, "forbidden words found: "+strings.Join(found, ", "))
		}
	}

	// Readability never fails an asset outright; a low estimate is a
	// warning.
	if ok, ratio := content.CheckTextReadability(text); ok {
		result.addPassed(CheckReadability, fmt.Sprintf("text is readable (ratio: %.1f)", ratio))
	} else {
		result.addWarning(CheckReadability, fmt.Sprintf("text may be hard to read (ratio: %.1f)", ratio))
	}
}

func (c *Checker) checkQuality(img image.Image, info *AssetInfo, result *Result) {
	embedded := 0
	if info != nil {
		embedded = info.Quality
	}
	ok, quality := content.CheckImageQuality(img, embedded, c.guidelines.MinImageQuality)
	if ok {
		result.addPassed(CheckImageQuality, fmt.Sprintf("quality acceptable (%d)", quality))
	} else {
		result.addFailed(CheckImageQuality,
			fmt.Sprintf("quality too low (%d < %d)", quality, c.guidelines.MinImageQuality))
	}
}

func (c *Checker) checkAspectRatio(img image.Image, claimed string, result *Result) {
	g := c.guidelines
	if len(g.AllowedAspectRatios) == 0 {
		return
	}

	ratio, err := aspect.Parse(claimed)
	if err != nil {
		result.addFailed(CheckAspectRatio, fmt.Sprintf("unparseable aspect ratio: %v", err))
		return
	}

	allowed := false
	for _, s := range g.AllowedAspectRatios {
		if a, err := aspect.Parse(s); err == nil && a == ratio {
			allowed = true
			break
		}
	}
	if !allowed {
		result.addFailed(CheckAspectRatio,
			fmt.Sprintf("aspect ratio %s not in allowed list: %s", ratio, strings.Join(g.AllowedAspectRatios, ", ")))
		return
	}

	// The claimed ratio must also match the actual pixel grid.
	if ok, actual := content.CheckAspectRatio(img, ratio); !ok {
		result.addFailed(CheckAspectRatio,
			fmt.Sprintf("image is %s, not the claimed %s", actual, ratio))
		return
	}
	result.addPassed(CheckAspectRatio, fmt.Sprintf("aspect ratio %s is allowed", ratio))
}
