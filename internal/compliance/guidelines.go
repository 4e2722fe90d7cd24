// Package compliance validates campaign assets against brand guidelines and
// aggregates the results into summary reports.
package compliance

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Compliance strictness tiers. Informational only: the tier never alters the
// score arithmetic.
const (
	LevelStrict   = "strict"
	LevelStandard = "standard"
	LevelRelaxed  = "relaxed"
)

// Guideline defaults applied by Normalize.
const (
	DefaultColorTolerance  = 30
	DefaultMaxTextLength   = 150
	DefaultMinImageQuality = 70
)

// Guidelines is the brand rulebook an asset is validated against. It is
// immutable once normalized and may be shared by reference across concurrent
// validations.
type Guidelines struct {
	BrandName string `json:"brand_name" validate:"required"`

	// Colors are 6-digit hex strings with a leading "#".
	RequiredColors  []string `json:"required_colors,omitempty" validate:"dive,hexcolor"`
	ForbiddenColors []string `json:"forbidden_colors,omitempty" validate:"dive,hexcolor"`

	// ColorTolerance is the matching tolerance (0-255) shared by required
	// and forbidden color checks.
	ColorTolerance int `json:"color_tolerance" validate:"min=0,max=255"`

	MaxTextLength  int      `json:"max_text_length" validate:"min=0"`
	ForbiddenWords []string `json:"forbidden_words,omitempty"`

	MinImageQuality int `json:"min_image_quality" validate:"min=0,max=100"`

	// AllowedAspectRatios, when set, restricts asset ratios to this list
	// ("W:H" notation).
	AllowedAspectRatios []string `json:"allowed_aspect_ratios,omitempty"`

	ComplianceLevel string `json:"compliance_level" validate:"omitempty,oneof=strict standard relaxed"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize fills unset fields with their documented defaults and validates
// the document. Zero values for tolerance, max length, and min quality are
// treated as unset.
func (g *Guidelines) Normalize() error {
	if g.ColorTolerance == 0 {
		g.ColorTolerance = DefaultColorTolerance
	}
	if g.MaxTextLength == 0 {
		g.MaxTextLength = DefaultMaxTextLength
	}
	if g.MinImageQuality == 0 {
		g.MinImageQuality = DefaultMinImageQuality
	}
	if g.ComplianceLevel == "" {
		g.ComplianceLevel = LevelStandard
	}
	if err := validate.Struct(g); err != nil {
		return fmt.Errorf("invalid guidelines: %w", err)
	}
	return nil
}
