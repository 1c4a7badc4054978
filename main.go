// Go-BMP reads a 24/32-bit bitmap, runs it through a filter pipeline (a box blur by default)
// and writes the result as a 32-bit bitmap.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/anas-shakeel/go-bmp/internal/adjustments"
	"github.com/anas-shakeel/go-bmp/internal/bmp"
	"github.com/anas-shakeel/go-bmp/internal/config"
	"github.com/anas-shakeel/go-bmp/internal/fileio"
	"github.com/anas-shakeel/go-bmp/internal/filters"
	"github.com/anas-shakeel/go-bmp/internal/logging"
	"github.com/anas-shakeel/go-bmp/internal/preview"
)

const (
	appName    = "Go-BMP"
	appVersion = "v1.0.0"
)

func main() {
	inFlag := flag.String("in", "", "input bitmap path (.bmp or .bmp.zst)")
	outFlag := flag.String("out", "", "output bitmap path (.bmp or .bmp.zst)")
	radiusFlag := flag.String("radius", "", "box blur radius (default 10)")
	filtersFlag := flag.String("filters", "", "filter pipeline, e.g. blur:4,invert")
	cropFlag := flag.String("crop", "", "crop region x,y,width,height applied before filtering")
	infoFlag := flag.Bool("info", false, "print the bitmap headers and exit")
	previewFlag := flag.Bool("preview", false, "draw the result in the terminal")
	logLevelFlag := flag.String("log-level", "", "log level (debug, info, warn, error)")
	logFormatFlag := flag.String("log-format", "", "log format (text, json)")
	helpFlag := flag.Bool("help", false, "show help")
	versionFlag := flag.Bool("version", false, "show version")

	flag.Parse()

	if *helpFlag {
		showHelp()
		return
	}

	if *versionFlag {
		showVersion()
		return
	}

	opts := config.LoadOptions{
		Input:     strings.TrimSpace(*inFlag),
		Output:    strings.TrimSpace(*outFlag),
		Radius:    strings.TrimSpace(*radiusFlag),
		Filters:   strings.TrimSpace(*filtersFlag),
		Crop:      strings.TrimSpace(*cropFlag),
		LogLevel:  strings.TrimSpace(*logLevelFlag),
		LogFormat: strings.TrimSpace(*logFormatFlag),
		InfoOnly:  *infoFlag,
		Preview:   *previewFlag,
	}
	applyPositional(&opts, flag.Args())

	if err := execute(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyPositional fills input and output from "go-bmp [flags] <input> [output]".
func applyPositional(opts *config.LoadOptions, args []string) {
	if opts.Input == "" && len(args) > 0 {
		opts.Input = args[0]
		args = args[1:]
	}
	if opts.Output == "" && len(args) > 0 {
		opts.Output = args[0]
	}
}

// execute loads the configuration, installs the logger and runs the tool.
func execute(opts config.LoadOptions, stdout io.Writer) error {
	cfg, err := config.LoadWithOverrides(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	bmp.SetLogger(logger.Named("bmp"))
	filters.SetLogger(logger.Named("filters"))

	return run(cfg, logger, stdout)
}

// run performs read -> decode -> crop -> filters -> encode -> write.
func run(cfg *config.Config, logger *zap.Logger, stdout io.Writer) error {
	start := time.Now()

	// Parse the pipeline first so a typo fails before any I/O
	var steps []filters.Step
	if !cfg.IO.InfoOnly {
		var err error
		steps, err = filters.ParsePipeline(cfg.Pipeline())
		if err != nil {
			return err
		}
	}

	data, err := fileio.ReadFile(cfg.IO.Input)
	if err != nil {
		return err
	}

	if cfg.IO.InfoOnly {
		meta, err := bmp.Inspect(data)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.IO.Input, err)
		}
		fmt.Fprintf(stdout, "Filename: \t%v\n", cfg.IO.Input)
		meta.Print(stdout)
		return nil
	}

	img, err := bmp.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.IO.Input, err)
	}
	logger.Info("decoded bitmap",
		zap.String("path", cfg.IO.Input),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
	)

	if c := cfg.Filter.Crop; c != nil {
		img, err = adjustments.Crop(img, c.X, c.Y, c.Width, c.Height)
		if err != nil {
			return fmt.Errorf("crop: %w", err)
		}
	}

	img, err = filters.Apply(img, steps)
	if err != nil {
		return err
	}

	if cfg.Preview.Enabled {
		cols := cfg.Preview.MaxWidth
		if f, ok := stdout.(*os.File); ok {
			cols = preview.Columns(f, cols)
		}
		if err := preview.Render(stdout, img, cols); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
	}

	out, err := bmp.Encode(img)
	if err != nil {
		return err
	}

	if err := fileio.WriteFile(cfg.IO.Output, out); err != nil {
		return err
	}

	logger.Info("wrote bitmap",
		zap.String("path", cfg.IO.Output),
		zap.Int("bytes", len(out)),
		zap.String("pipeline", cfg.Pipeline()),
		zap.Duration("took", time.Since(start)),
	)

	return nil
}

func showHelp() {
	fmt.Println(appName)
	fmt.Println("USAGE: go-bmp [options] <input.bmp> <output.bmp>")
	fmt.Println("OPTIONS:")
	fmt.Println("  -in                 Input bitmap (or first positional argument)")
	fmt.Println("  -out                Output bitmap (or second positional argument)")
	fmt.Println("  -radius             Box blur radius (default 10)")
	fmt.Println("  -filters            Filter pipeline: blur:<r>, invert, grayscale, luma,")
	fmt.Println("                      brightness:<f>[:add|multiply], contrast:<f>, channel:<red|green|blue>")
	fmt.Println("  -crop               Crop x,y,width,height before filtering")
	fmt.Println("  -info               Print bitmap headers and exit")
	fmt.Println("  -preview            Draw the result in the terminal")
	fmt.Println("  -log-level          Set log level (debug, info, warn, error)")
	fmt.Println("  -log-format         Set log format (text, json)")
	fmt.Println("  -version            Show version information")
	fmt.Println("  -help               Show this help message")
	fmt.Println("ENVIRONMENT VARIABLES: BMP_INPUT, BMP_OUTPUT, BLUR_RADIUS, BMP_FILTERS, PREVIEW, PREVIEW_MAX_WIDTH, LOG_LEVEL, LOG_FORMAT")
	fmt.Println("Paths ending in .zst are read and written zstd-compressed.")
	fmt.Println("EXAMPLES: go-bmp -radius 4 photo.bmp photo_blurred.bmp")
}

func showVersion() {
	fmt.Printf("%s %s\n", appName, appVersion)
	fmt.Println("Formats: 24/32-bit BMP (BITMAPV5HEADER) in, 32-bit BI_BITFIELDS out")
}
