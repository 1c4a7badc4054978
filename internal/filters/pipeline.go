package filters

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/anas-shakeel/go-bmp/internal/bmp"
)

// Step is one parsed stage of a filter pipeline.
type Step struct {
	Spec string // The text the step was parsed from, e.g. "blur:10"
	run  func(*bmp.Image) (*bmp.Image, error)
}

func (s Step) String() string { return s.Spec }

// inPlace adapts a filter that mutates its input to the Step signature.
func inPlace(fn func(*bmp.Image) error) func(*bmp.Image) (*bmp.Image, error) {
	return func(img *bmp.Image) (*bmp.Image, error) {
		if err := fn(img); err != nil {
			return nil, err
		}
		return img, nil
	}
}

// ParsePipeline parses a comma-separated list of steps:
//
//	blur:<radius>
//	invert
//	grayscale
//	luma
//	brightness:<factor>[:add|multiply]
//	contrast:<factor>
//	channel:<red|green|blue>
func ParsePipeline(spec string) ([]Step, error) {
	var steps []Step

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		step, err := parseStep(part)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	return steps, nil
}

func parseStep(spec string) (Step, error) {
	fields := strings.Split(spec, ":")
	name := strings.ToLower(fields[0])
	args := fields[1:]
	step := Step{Spec: spec}

	wantArgs := func(lo, hi int) error {
		if len(args) < lo || len(args) > hi {
			return fmt.Errorf("%w: %q takes %d to %d arguments", ErrInvalidStep, spec, lo, hi)
		}
		return nil
	}

	switch name {
	case "blur":
		if err := wantArgs(1, 1); err != nil {
			return step, err
		}
		radius, err := strconv.Atoi(args[0])
		if err != nil || radius < 0 || radius > MaxRadius {
			return step, fmt.Errorf("%w: %q needs an integer radius between 0 and %d", ErrInvalidStep, spec, MaxRadius)
		}
		step.run = inPlace(func(img *bmp.Image) error { return BoxBlur(img, radius) })

	case "invert", "grayscale", "luma":
		if err := wantArgs(0, 0); err != nil {
			return step, err
		}
		fn := map[string]func(*bmp.Image){"invert": Invert, "grayscale": Grayscale, "luma": GrayscaleLuma}[name]
		step.run = inPlace(func(img *bmp.Image) error { fn(img); return nil })

	case "brightness":
		if err := wantArgs(1, 2); err != nil {
			return step, err
		}
		factor, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return step, fmt.Errorf("%w: %q needs a numeric factor", ErrInvalidStep, spec)
		}
		method := "multiply"
		if len(args) == 2 {
			method = args[1]
		}
		if method != "add" && method != "multiply" {
			return step, fmt.Errorf("%w: %q: %w", ErrInvalidStep, spec, ErrInvalidMethod)
		}
		step.run = inPlace(func(img *bmp.Image) error { return Brightness(img, factor, method) })

	case "contrast":
		if err := wantArgs(1, 1); err != nil {
			return step, err
		}
		factor, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return step, fmt.Errorf("%w: %q needs a numeric factor", ErrInvalidStep, spec)
		}
		step.run = inPlace(func(img *bmp.Image) error { Contrast(img, factor); return nil })

	case "channel":
		if err := wantArgs(1, 1); err != nil {
			return step, err
		}
		channel := strings.ToLower(args[0])
		if channel != "red" && channel != "green" && channel != "blue" {
			return step, fmt.Errorf("%w: %q: %w", ErrInvalidStep, spec, bmp.ErrInvalidChannel)
		}
		step.run = func(img *bmp.Image) (*bmp.Image, error) { return img.Channel(channel) }

	default:
		return step, fmt.Errorf("%w: unknown filter %q", ErrInvalidStep, name)
	}

	return step, nil
}

// Apply runs the steps in order and returns the resulting image. Most steps
// modify img in place; steps that build a new image replace it for the next one.
func Apply(img *bmp.Image, steps []Step) (*bmp.Image, error) {
	for _, step := range steps {
		if step.run == nil {
			return nil, fmt.Errorf("%w: %q was not parsed", ErrInvalidStep, step.Spec)
		}

		start := time.Now()
		out, err := step.run(img)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", step.Spec, err)
		}
		img = out

		Logger().Debug("applied filter",
			zap.String("step", step.Spec),
			zap.Duration("took", time.Since(start)),
		)
	}

	return img, nil
}
