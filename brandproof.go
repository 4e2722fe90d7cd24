// Package brandproof produces localized marketing assets and scores them
// against brand guidelines.
//
// An asset starts from product photography, is resized to a campaign aspect
// ratio, and gets localized copy rendered on top. The same image can then be
// validated: brand colors present, forbidden colors absent, copy within
// limits, quality and aspect ratio acceptable.
//
// Usage as a library:
//
//	r := brandproof.NewRenderer("")
//	img, _ := brandproof.LoadImage("product.jpg")
//	asset, _ := r.Compose(img, brandproof.DefaultOptions())
//	brandproof.SavePNG("story.png", asset)
//
// Or use the file-based convenience:
//
//	err := r.ComposeFile("product.jpg", "story.png", brandproof.DefaultOptions())
package brandproof

import (
	"fmt"
	"image"

	"github.com/brandproof/brandproof/internal/aspect"
	"github.com/brandproof/brandproof/internal/colorx"
	"github.com/brandproof/brandproof/internal/compliance"
	"github.com/brandproof/brandproof/internal/compose"
	"github.com/brandproof/brandproof/internal/fontres"
	"github.com/brandproof/brandproof/internal/imaging"
)

// Text position constants.
const (
	PositionTop    = string(compose.PositionTop)
	PositionCenter = string(compose.PositionCenter)
	PositionBottom = string(compose.PositionBottom)
)

// Options configures one asset composition.
type Options struct {
	// Ratio is the target aspect ratio in "W:H" or "WxH" notation.
	// Default: "1:1".
	Ratio string

	// BaseSize is the length of the longer output edge in pixels.
	// Default: 1024.
	BaseSize int

	// Fill is the hex letterbox color used when the source cannot cover
	// the target ratio. Default: "#ffffff".
	Fill string

	// Text is the marketing copy to overlay. Empty means no overlay.
	Text string

	// Language is the BCP 47 tag used for font selection. Empty means
	// detect from the text.
	Language string

	// Position anchors the text block: "top", "center", or "bottom".
	// Default: "bottom".
	Position string

	// FontSize in pixels. Default: 20.
	FontSize int

	// TextColor is the hex color of the overlay text. Default: "#ffffff".
	TextColor string

	// BackgroundColor is the hex color of the panel drawn behind the
	// text. Default: "#000000".
	BackgroundColor string

	// BackgroundAlpha is the panel opacity (0-255). Default: 180.
	BackgroundAlpha int

	// NoBackground disables the panel entirely.
	NoBackground bool

	// Shadow draws a drop shadow under the text. Default: true.
	Shadow bool

	// ShadowOffset is the shadow offset in pixels. Default: 2.
	ShadowOffset int

	// Padding around the text block in pixels. Default: 20.
	Padding int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Ratio:           "1:1",
		BaseSize:        1024,
		Fill:            "#ffffff",
		Position:        PositionBottom,
		FontSize:        compose.DefaultFontSize,
		TextColor:       "#ffffff",
		BackgroundColor: "#000000",
		BackgroundAlpha: 180,
		Shadow:          true,
		ShadowOffset:    compose.DefaultShadowOffset,
		Padding:         compose.DefaultPadding,
	}
}

// Compliance types, re-exported for library users.
type (
	Guidelines    = compliance.Guidelines
	Result        = compliance.Result
	Report        = compliance.Report
	AssetInfo     = compliance.AssetInfo
	AssetMetadata = compliance.AssetMetadata
)

// Renderer composes assets with a shared font cache. Create one and reuse it
// across compositions; it is safe for concurrent use.
type Renderer struct {
	compositor *compose.Compositor
}

// NewRenderer creates a renderer. fontDir, when non-empty, points at a
// directory with per-tier font subdirectories (latin/, cjk/, fallback/);
// the fonts embedded in the binary always remain available as a fallback.
func NewRenderer(fontDir string) *Renderer {
	var store fontres.Store
	if fontDir != "" {
		store = fontres.MultiStore{
			fontres.NewDirStore(fontDir),
			fontres.EmbeddedStore{},
		}
	}
	return &Renderer{compositor: compose.NewCompositor(fontres.NewResolver(store))}
}

// Compose resizes the image to the target ratio and overlays the copy.
func (r *Renderer) Compose(img image.Image, opts Options) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	resized, err := Resize(img, opts.Ratio, opts.BaseSize, opts.Fill)
	if err != nil {
		return nil, err
	}
	if opts.Text == "" {
		return resized, nil
	}
	return r.Overlay(resized, opts.Text, opts)
}

// Overlay draws the copy onto an already sized image, without touching its
// dimensions. Only the text-related fields of opts are read.
func (r *Renderer) Overlay(img image.Image, text string, opts Options) (*image.NRGBA, error) {
	overlay, err := overlayOptions(opts)
	if err != nil {
		return nil, err
	}
	return r.compositor.Overlay(img, text, overlay)
}

// Resize scales the image to cover the target aspect ratio (in "W:H" or
// "WxH" notation) at the given base size, center-cropping overhang and
// letterboxing shortfall with the hex fill color.
func Resize(img image.Image, ratio string, baseSize int, fill string) (*image.NRGBA, error) {
	r, err := aspect.Parse(ratio)
	if err != nil {
		return nil, fmt.Errorf("ratio: %w", err)
	}
	f, err := colorx.ParseHex(fill)
	if err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}
	return compose.Resize(img, r, baseSize, f)
}

// ComposeFile is a convenience that loads an image from inPath, composes it,
// and saves the result as PNG to outPath.
func (r *Renderer) ComposeFile(inPath, outPath string, opts Options) error {
	img, err := LoadImage(inPath)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}

	asset, err := r.Compose(img, opts)
	if err != nil {
		return fmt.Errorf("composing: %w", err)
	}

	if err := SavePNG(outPath, asset); err != nil {
		return fmt.Errorf("saving output: %w", err)
	}

	return nil
}

// overlayOptions converts public Options to the internal overlay form.
func overlayOptions(opts Options) (compose.OverlayOptions, error) {
	textColor, err := colorx.ParseHex(opts.TextColor)
	if err != nil {
		return compose.OverlayOptions{}, fmt.Errorf("text color: %w", err)
	}

	var background *colorx.RGBA
	if !opts.NoBackground {
		bg, err := colorx.ParseHex(opts.BackgroundColor)
		if err != nil {
			return compose.OverlayOptions{}, fmt.Errorf("background color: %w", err)
		}
		if opts.BackgroundAlpha < 0 || opts.BackgroundAlpha > 255 {
			return compose.OverlayOptions{}, fmt.Errorf("background alpha must be between 0 and 255, got %d", opts.BackgroundAlpha)
		}
		bg.A = uint8(opts.BackgroundAlpha)
		background = &bg
	}

	return compose.OverlayOptions{
		Position:     compose.Position(opts.Position),
		FontSize:     opts.FontSize,
		Language:     opts.Language,
		TextColor:    textColor,
		Background:   background,
		Padding:      opts.Padding,
		Shadow:       opts.Shadow,
		ShadowOffset: opts.ShadowOffset,
	}, nil
}

// DetectLanguage guesses the language of marketing copy from its script and
// diacritics, returning a tag like "en", "ja", or "fr".
func DetectLanguage(text string) string {
	return fontres.DetectLanguage(text)
}

// ValidateAsset checks an asset against brand guidelines. The guidelines are
// normalized on a copy first, so unset fields get their documented defaults;
// nil guidelines degrade to a single warning. Pass nil info when no metadata
// about the asset is available.
func ValidateAsset(img image.Image, text string, guidelines *Guidelines, info *AssetInfo) (*Result, error) {
	g, err := normalizedCopy(guidelines)
	if err != nil {
		return nil, err
	}
	return compliance.NewChecker(g).ValidateAsset(img, text, info), nil
}

// CreateAssetMetadata builds the persisted metadata record for one asset:
// dimensions, dominant colors, and an embedded validation run against the
// guidelines (normalized the same way ValidateAsset does).
func CreateAssetMetadata(img image.Image, guidelines *Guidelines, productName, campaignID, aspectRatio, text string) (*AssetMetadata, error) {
	g, err := normalizedCopy(guidelines)
	if err != nil {
		return nil, err
	}
	return compliance.NewChecker(g).CreateAssetMetadata(img, productName, campaignID, aspectRatio, text), nil
}

// normalizedCopy normalizes guidelines without mutating the caller's
// document. Nil passes through.
func normalizedCopy(g *Guidelines) (*Guidelines, error) {
	if g == nil {
		return nil, nil
	}
	c := *g
	if err := c.Normalize(); err != nil {
		return nil, err
	}
	return &c, nil
}

// GenerateReport aggregates validation results from a batch of assets.
func GenerateReport(results []*Result) (*Report, error) {
	return compliance.GenerateReport(results)
}

// LoadImage reads an image from disk. Supports PNG, JPEG, and WEBP.
func LoadImage(path string) (image.Image, error) {
	return imaging.Load(path)
}

// SavePNG writes an image to disk as PNG.
func SavePNG(path string, img image.Image) error {
	return imaging.SavePNG(path, img)
}

// SaveJPEG writes an image to disk as JPEG with the given quality (1-100).
func SaveJPEG(path string, img image.Image, quality int) error {
	return imaging.SaveJPEG(path, img, quality)
}
