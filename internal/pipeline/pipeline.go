// Package pipeline wires the CLI configuration through the full asset flow:
// load, resize, overlay, validate, save.
package pipeline

import (
	"encoding/json"
	"fmt"
	"image"
	"os"

	"github.com/brandproof/brandproof/internal/cli"
	"github.com/brandproof/brandproof/internal/compliance"
	"github.com/brandproof/brandproof/internal/compose"
	"github.com/brandproof/brandproof/internal/fontres"
	"github.com/brandproof/brandproof/internal/imaging"
)

// Run executes the full brandproof pipeline with the given configuration.
func Run(cfg cli.Config) error {
	// Step 1: Load input image
	fmt.Printf("Loading image: %s\n", cfg.InPath)
	img, err := imaging.Load(cfg.InPath)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}
	fmt.Printf("Image loaded: %dx%d\n", img.Bounds().Dx(), img.Bounds().Dy())

	// Step 2: Resize to the target aspect ratio
	fmt.Printf("Resizing to %s (base %d)...\n", cfg.Ratio, cfg.BaseSize)
	resized, err := compose.Resize(img, cfg.Ratio, cfg.BaseSize, cfg.Fill)
	if err != nil {
		return fmt.Errorf("resizing: %w", err)
	}
	fmt.Printf("Resized: %dx%d\n", resized.Bounds().Dx(), resized.Bounds().Dy())

	// Step 3: Overlay the marketing copy
	output := resized
	if cfg.Text != "" {
		fmt.Println("Rendering text overlay...")
		compositor := compose.NewCompositor(resolverFromConfig(cfg))
		output, err = compositor.Overlay(resized, cfg.Text, compose.OverlayOptions{
			Position:     cfg.Position,
			FontSize:     cfg.FontSize,
			Language:     cfg.Language,
			TextColor:    cfg.TextColor,
			Background:   cfg.Background,
			Padding:      cfg.Padding,
			Shadow:       cfg.Shadow,
			ShadowOffset: cfg.ShadowOffset,
		})
		if err != nil {
			return fmt.Errorf("overlaying text: %w", err)
		}
	}

	// Step 4: Validate against brand guidelines
	if cfg.GuidelinesPath != "" {
		fmt.Printf("Validating against guidelines: %s\n", cfg.GuidelinesPath)
		result, err := validate(cfg, output)
		if err != nil {
			return err
		}
		fmt.Printf("Compliance score: %.0f (compliant: %t)\n", result.Score, result.IsCompliant)
		for _, check := range result.FailedChecks {
			fmt.Printf("  failed %s: %s\n", check, result.Details[check].Message)
		}
		if cfg.ReportPath != "" {
			if err := writeResult(cfg.ReportPath, result); err != nil {
				return err
			}
			fmt.Printf("Result written: %s\n", cfg.ReportPath)
		}
	}

	// Step 5: Downscale for web delivery
	if cfg.MaxSize > 0 {
		fmt.Printf("Optimizing for web (max %d)...\n", cfg.MaxSize)
		output = compose.OptimizeForWeb(output, cfg.MaxSize)
		fmt.Printf("Optimized: %dx%d\n", output.Bounds().Dx(), output.Bounds().Dy())
	}

	// Step 6: Save output
	fmt.Printf("Saving output: %s\n", cfg.OutPath)
	if err := imaging.Save(cfg.OutPath, output, cfg.JPEGQuality); err != nil {
		return fmt.Errorf("saving output: %w", err)
	}

	fmt.Println("Done!")
	return nil
}

// resolverFromConfig builds the font resolver: a font directory when given,
// always backed by the embedded fonts.
func resolverFromConfig(cfg cli.Config) *fontres.Resolver {
	if cfg.FontDir == "" {
		return fontres.NewResolver(nil)
	}
	return fontres.NewResolver(fontres.MultiStore{
		fontres.NewDirStore(cfg.FontDir),
		fontres.EmbeddedStore{},
	})
}

// validate loads and normalizes the guidelines file, then runs the full
// check sequence against the rendered asset.
func validate(cfg cli.Config, img image.Image) (*compliance.Result, error) {
	data, err := os.ReadFile(imaging.ExpandPath(cfg.GuidelinesPath))
	if err != nil {
		return nil, fmt.Errorf("reading guidelines: %w", err)
	}
	var guidelines compliance.Guidelines
	if err := json.Unmarshal(data, &guidelines); err != nil {
		return nil, fmt.Errorf("parsing guidelines: %w", err)
	}
	if err := guidelines.Normalize(); err != nil {
		return nil, err
	}

	checker := compliance.NewChecker(&guidelines)
	info := &compliance.AssetInfo{AspectRatio: cfg.Ratio.String()}
	return checker.ValidateAsset(img, cfg.Text, info), nil
}

func writeResult(path string, result *compliance.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if err := os.WriteFile(imaging.ExpandPath(path), data, 0o644); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}
