package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brandproof/brandproof/internal/aspect"
	"github.com/brandproof/brandproof/internal/colorx"
	"github.com/brandproof/brandproof/internal/compose"
)

// Config holds the parsed CLI arguments.
type Config struct {
	InPath  string
	OutPath string

	Ratio    aspect.Ratio
	BaseSize int
	Fill     colorx.RGBA

	Text     string
	Language string
	Position compose.Position
	FontSize int
	FontDir  string

	TextColor    colorx.RGBA
	Background   *colorx.RGBA
	Shadow       bool
	ShadowOffset int
	Padding      int

	GuidelinesPath string
	ReportPath     string

	MaxSize     int
	JPEGQuality int
}

// Parse parses CLI arguments and returns a validated Config.
func Parse() (Config, error) {
	inPath := flag.String("in", "", "Path to input image (required, supports PNG, JPEG, WEBP)")
	outPath := flag.String("out", "", "Path to generated output image (required, .png or .jpg)")
	ratio := flag.String("ratio", "1:1", "Target aspect ratio, e.g. 1:1, 16:9, 4:5")
	baseSize := flag.Int("base-size", 1024, "Length of the longer output edge in pixels")
	fill := flag.String("fill", "#ffffff", "Hex fill color for letterboxing (e.g. #fff, #1a1a2e)")

	text := flag.String("text", "", "Marketing copy to overlay (empty = no overlay)")
	lang := flag.String("lang", "", "Language tag for font selection (e.g. en, ja, zh; empty = auto-detect)")
	position := flag.String("position", "bottom", "Text position: top, center, or bottom")
	fontSize := flag.Int("font-size", compose.DefaultFontSize, "Overlay font size in pixels")
	fontDir := flag.String("font-dir", "", "Directory with font tiers (latin/, cjk/, fallback/); embedded fonts otherwise")

	textColor := flag.String("text-color", "#ffffff", "Hex color of the overlay text")
	bgColor := flag.String("bg-color", "#000000", "Hex color of the panel behind the text")
	bgAlpha := flag.Int("bg-alpha", 180, "Panel opacity (0-255)")
	noBg := flag.Bool("no-bg", false, "Disable the panel behind the text")
	shadow := flag.Bool("shadow", true, "Draw a drop shadow under the text")
	shadowOffset := flag.Int("shadow-offset", compose.DefaultShadowOffset, "Drop shadow offset in pixels")
	padding := flag.Int("padding", compose.DefaultPadding, "Padding around the text block in pixels")

	guidelines := flag.String("guidelines", "", "Path to a brand guidelines JSON file (enables compliance checks)")
	report := flag.String("report", "", "Path to write the compliance result as JSON")

	maxSize := flag.Int("max-size", 0, "Downscale so the longer edge fits this size (0 = off)")
	jpegQuality := flag.Int("jpeg-quality", 85, "Encoder quality when writing JPEG output (1-100)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: brandproof [options]\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n  brandproof --in=product.jpg --out=story.png --ratio=9:16 --text=\"Save 20%% today\" --guidelines=brand.json\n")
	}

	flag.Parse()

	if *inPath == "" {
		return Config{}, fmt.Errorf("--in is required")
	}
	if *outPath == "" {
		return Config{}, fmt.Errorf("--out is required")
	}
	switch ext := strings.ToLower(filepath.Ext(*outPath)); ext {
	case ".png", ".jpg", ".jpeg":
	default:
		return Config{}, fmt.Errorf("--out must be a .png or .jpg file, got %q", ext)
	}

	r, err := aspect.Parse(*ratio)
	if err != nil {
		return Config{}, fmt.Errorf("--ratio: %w", err)
	}
	if *baseSize <= 0 {
		return Config{}, fmt.Errorf("--base-size must be > 0, got %d", *baseSize)
	}
	fillColor, err := colorx.ParseHex(*fill)
	if err != nil {
		return Config{}, fmt.Errorf("--fill: %w", err)
	}

	pos := compose.Position(*position)
	switch pos {
	case compose.PositionTop, compose.PositionCenter, compose.PositionBottom:
	default:
		return Config{}, fmt.Errorf("--position must be top, center, or bottom, got %q", *position)
	}
	if *fontSize <= 0 {
		return Config{}, fmt.Errorf("--font-size must be > 0, got %d", *fontSize)
	}
	tc, err := colorx.ParseHex(*textColor)
	if err != nil {
		return Config{}, fmt.Errorf("--text-color: %w", err)
	}

	var background *colorx.RGBA
	if !*noBg {
		bc, err := colorx.ParseHex(*bgColor)
		if err != nil {
			return Config{}, fmt.Errorf("--bg-color: %w", err)
		}
		if *bgAlpha < 0 || *bgAlpha > 255 {
			return Config{}, fmt.Errorf("--bg-alpha must be between 0 and 255, got %d", *bgAlpha)
		}
		bc.A = uint8(*bgAlpha)
		background = &bc
	}
	if *shadowOffset < 0 {
		return Config{}, fmt.Errorf("--shadow-offset must be >= 0, got %d", *shadowOffset)
	}
	if *padding < 0 {
		return Config{}, fmt.Errorf("--padding must be >= 0, got %d", *padding)
	}
	if *maxSize < 0 {
		return Config{}, fmt.Errorf("--max-size must be >= 0, got %d", *maxSize)
	}
	if *jpegQuality < 1 || *jpegQuality > 100 {
		return Config{}, fmt.Errorf("--jpeg-quality must be between 1 and 100, got %d", *jpegQuality)
	}

	return Config{
		InPath:         *inPath,
		OutPath:        *outPath,
		Ratio:          r,
		BaseSize:       *baseSize,
		Fill:           fillColor,
		Text:           *text,
		Language:       *lang,
		Position:       pos,
		FontSize:       *fontSize,
		FontDir:        *fontDir,
		TextColor:      tc,
		Background:     background,
		Shadow:         *shadow,
		ShadowOffset:   *shadowOffset,
		Padding:        *padding,
		GuidelinesPath: *guidelines,
		ReportPath:     *report,
		MaxSize:        *maxSize,
		JPEGQuality:    *jpegQuality,
	}, nil
}
