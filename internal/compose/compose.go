// Package compose builds the final campaign image: cover-fit resizing to a
// target aspect ratio and localized text overlay rendering. Operations never
// mutate their input image; they return a new one.
package compose

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/brandproof/brandproof/internal/aspect"
	"github.com/brandproof/brandproof/internal/colorx"
	"github.com/brandproof/brandproof/internal/fontres"
	"github.com/brandproof/brandproof/internal/layout"
)

// Position anchors the text block vertically.
type Position string

const (
	PositionTop    Position = "top"
	PositionCenter Position = "center"
	PositionBottom Position = "bottom"
)

// Overlay defaults, matching the product's standard text treatment.
const (
	DefaultFontSize     = 20
	DefaultPadding      = 20
	DefaultShadowOffset = 2
)

// shadowColor is the dark semi-transparent tone drawn under each line.
var shadowColor = color.NRGBA{R: 0, G: 0, B: 0, A: 200}

// Resize scales the image to cover the target dimensions derived from the
// aspect ratio and base size, then center-crops onto a canvas filled with
// fill. Overhang beyond the canvas is clipped symmetrically; shortfall leaves
// fill visible as letterbox or pillarbox bars.
func Resize(img image.Image, ratio aspect.Ratio, baseSize int, fill colorx.RGBA) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("compose: nil source image")
	}
	srcW, srcH := img.Bounds().Dx(), img.Bounds().Dy()
	if srcW == 0 || srcH == 0 {
		return nil, fmt.Errorf("compose: zero-area source image (%dx%d)", srcW, srcH)
	}
	if baseSize <= 0 {
		return nil, fmt.Errorf("compose: base size must be positive, got %d", baseSize)
	}

	targetW, targetH := ratio.Dimensions(baseSize)

	// Cover fit: wider-than-target sources scale by height and crop the
	// sides; taller sources scale by width and crop top/bottom.
	var scale float64
	if float64(srcW)/float64(srcH) > float64(targetW)/float64(targetH) {
		scale = float64(targetH) / float64(srcH)
	} else {
		scale = float64(targetW) / float64(srcW)
	}
	scaledW := int(float64(srcW) * scale)
	scaledH := int(float64(srcH) * scale)

	resized := imaging.Resize(img, scaledW, scaledH, imaging.Lanczos)
	canvas := imaging.New(targetW, targetH, fill.ToNRGBA())
	canvas = imaging.Paste(canvas, resized, image.Pt((targetW-scaledW)/2, (targetH-scaledH)/2))

	return canvas, nil
}

// OptimizeForWeb scales the image down so its longer edge is at most maxSize
// pixels. Images already within bounds are returned as an untouched copy.
func OptimizeForWeb(img image.Image, maxSize int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= maxSize && b.Dy() <= maxSize {
		return imaging.Clone(img)
	}
	return imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
}

// OverlayOptions configures a text overlay pass.
type OverlayOptions struct {
	Position Position

	// FontSize in pixels. Zero means DefaultFontSize.
	FontSize int

	// Language tag for font selection. Empty means detect from the text.
	Language string

	TextColor colorx.RGBA

	// Background, when non-nil, draws a full-width panel behind the text,
	// alpha-blended against the image. The color's alpha is honored.
	Background *colorx.RGBA

	// Padding around the text block, in pixels. Zero is honored; callers
	// wanting the standard treatment pass DefaultPadding.
	Padding int

	// Shadow draws a drop shadow under each line at ShadowOffset pixels.
	// A zero offset places the shadow directly beneath the glyphs.
	Shadow       bool
	ShadowOffset int
}

// Compositor renders text overlays using fonts from a shared resolver.
type Compositor struct {
	fonts *fontres.Resolver
}

// NewCompositor creates a compositor over the given font resolver. The
// resolver's cache is shared across all overlay calls.
func NewCompositor(fonts *fontres.Resolver) *Compositor {
	return &Compositor{fonts: fonts}
}

// Overlay draws wrapped, centered text onto a copy of the image. Empty text
// is a no-op. The returned image is always fully opaque, whatever
// intermediate blending happened.
func (c *Compositor) Overlay(img image.Image, text string, opts OverlayOptions) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("compose: nil source image")
	}
	if text == "" {
		return imaging.Clone(img), nil
	}

	if opts.FontSize == 0 {
		opts.FontSize = DefaultFontSize
	}

	lang := opts.Language
	if lang == "" {
		lang = fontres.DetectLanguage(text)
	}
	face, err := c.fonts.Load(lang, opts.FontSize)
	if err != nil {
		return nil, fmt.Errorf("loading font for %q text: %w", lang, err)
	}

	base := imaging.Clone(img)
	w, h := base.Bounds().Dx(), base.Bounds().Dy()

	lines := layout.Wrap(text, face, w-4*opts.Padding)
	block := layout.MeasureBlock(lines, face, layout.DefaultSpacing)

	var top int
	switch opts.Position {
	case PositionTop:
		top = 2 * opts.Padding
	case PositionCenter:
		top = (h - block.Height) / 2
	case PositionBottom:
		top = h - block.Height - 2*opts.Padding
	default:
		return nil, fmt.Errorf("compose: unknown overlay position %q", opts.Position)
	}

	// Text and panel are drawn on a transparent layer and alpha-composited
	// onto the image in one pass.
	overlay := image.NewNRGBA(image.Rect(0, 0, w, h))

	if opts.Background != nil {
		panel := image.Rect(0, top-opts.Padding, w, top+block.Height+opts.Padding)
		draw.Draw(overlay, panel, image.NewUniform(opts.Background.ToNRGBA()), image.Point{}, draw.Src)
	}

	ascent := face.Metrics().Ascent.Ceil()
	textColor := opts.TextColor
	textColor.A = 255

	lineTop := top
	for _, line := range block.Lines {
		x := (w - line.Width) / 2
		baseline := lineTop + ascent
		if opts.Shadow {
			drawString(overlay, line.Text, x+opts.ShadowOffset, baseline+opts.ShadowOffset, shadowColor, face)
		}
		drawString(overlay, line.Text, x, baseline, textColor.ToNRGBA(), face)
		lineTop += block.LineHeight + block.Spacing
	}

	out := imaging.Overlay(base, overlay, image.Point{}, 1.0)
	return opaque(out), nil
}

func drawString(dst draw.Image, text string, x, y int, col color.Color, face font.Face) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// opaque normalizes the image back to a non-transparent mode by forcing full
// alpha on every pixel.
func opaque(img *image.NRGBA) *image.NRGBA {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}
	return img
}
