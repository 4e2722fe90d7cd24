package brandproof

import (
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productShot(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	green := color.NRGBA{0x34, 0xa8, 0x53, 255}
	draw.Draw(img, img.Bounds(), image.NewUniform(green), image.Point{}, draw.Src)
	return img
}

func TestRendererCompose(t *testing.T) {
	r := NewRenderer("")

	opts := DefaultOptions()
	opts.BaseSize = 256
	opts.Text = "Save 20% today"

	asset, err := r.Compose(productShot(400, 300), opts)
	require.NoError(t, err)
	assert.Equal(t, 256, asset.Bounds().Dx())
	assert.Equal(t, 256, asset.Bounds().Dy())
}

func TestRendererComposeRejectsBadOptions(t *testing.T) {
	r := NewRenderer("")
	img := productShot(100, 100)

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{name: "nil image is checked first", mutate: nil},
		{name: "bad ratio", mutate: func(o *Options) { o.Ratio = "wide" }},
		{name: "bad fill", mutate: func(o *Options) { o.Fill = "reddish" }},
		{name: "bad text color", mutate: func(o *Options) { o.Text = "hi"; o.TextColor = "white" }},
		{name: "alpha out of range", mutate: func(o *Options) { o.Text = "hi"; o.BackgroundAlpha = 300 }},
		{name: "bad position", mutate: func(o *Options) { o.Text = "hi"; o.Position = "middle" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.BaseSize = 64
			src := img
			if tt.mutate == nil {
				src = nil
			} else {
				tt.mutate(&opts)
			}
			_, err := r.Compose(src, opts)
			assert.Error(t, err)
		})
	}
}

func TestComposeFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.png")
	outPath := filepath.Join(dir, "out.png")

	require.NoError(t, SavePNG(inPath, productShot(300, 300)))

	opts := DefaultOptions()
	opts.BaseSize = 128
	opts.Text = "プレミアム品質"

	r := NewRenderer("")
	require.NoError(t, r.ComposeFile(inPath, outPath, opts))

	loaded, err := LoadImage(outPath)
	require.NoError(t, err)
	assert.Equal(t, 128, loaded.Bounds().Dx())
}

func TestResize(t *testing.T) {
	out, err := Resize(productShot(400, 200), "1:1", 256, "#ffffff")
	require.NoError(t, err)
	assert.Equal(t, 256, out.Bounds().Dx())
	assert.Equal(t, 256, out.Bounds().Dy())

	_, err = Resize(productShot(10, 10), "wide", 256, "#ffffff")
	assert.Error(t, err)

	_, err = Resize(productShot(10, 10), "1:1", 256, "reddish")
	assert.Error(t, err)
}

func TestRendererOverlayKeepsDimensions(t *testing.T) {
	r := NewRenderer("")

	opts := DefaultOptions()
	opts.Text = "Save 20% today"

	// Overlay never resizes; an already sized bitmap keeps its dimensions.
	asset, err := r.Overlay(productShot(123, 77), opts.Text, opts)
	require.NoError(t, err)
	assert.Equal(t, 123, asset.Bounds().Dx())
	assert.Equal(t, 77, asset.Bounds().Dy())

	_, err = r.Overlay(productShot(123, 77), "hi", Options{Position: "sideways", TextColor: "#ffffff", NoBackground: true})
	assert.Error(t, err)
}

func TestValidateAndReport(t *testing.T) {
	g := &Guidelines{
		BrandName:      "Acme",
		RequiredColors: []string{"#34a853"},
	}

	// The facade normalizes a copy, so an un-normalized document with zero
	// limits still validates with the documented defaults.
	img := productShot(600, 600)
	result, err := ValidateAsset(img, "Save 20% today", g, nil)
	require.NoError(t, err)
	assert.True(t, result.IsCompliant)
	assert.Zero(t, g.MaxTextLength, "the caller's document must stay untouched")

	report, err := GenerateReport([]*Result{result})
	require.NoError(t, err)
	assert.Equal(t, 1, report.CompliantAssets)
	assert.InDelta(t, 100.0, report.ComplianceRate, 0.001)
}

func TestValidateAssetRejectsInvalidGuidelines(t *testing.T) {
	g := &Guidelines{RequiredColors: []string{"#34a853"}}
	_, err := ValidateAsset(productShot(100, 100), "", g, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid guidelines")
}

func TestCreateAssetMetadata(t *testing.T) {
	g := &Guidelines{
		BrandName:      "Acme",
		RequiredColors: []string{"#34a853"},
	}

	meta, err := CreateAssetMetadata(productShot(600, 600), g, "Sneaker X", "summer-2026", "1:1", "Save 20% today")
	require.NoError(t, err)
	assert.NotEmpty(t, meta.AssetID)
	assert.Equal(t, 600, meta.Width)
	assert.NotEmpty(t, meta.DominantColors)
	require.NotNil(t, meta.ComplianceResult)
	assert.True(t, meta.ComplianceResult.IsCompliant)
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "ja", DetectLanguage("プレミアム品質"))
	assert.Equal(t, "fr", DetectLanguage("Café très bon"))
	assert.Equal(t, "en", DetectLanguage("Premium Quality"))
}
