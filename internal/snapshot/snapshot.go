// Package snapshot renders the animation without a terminal and encodes a
// presented frame as an image.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"golang.org/x/image/draw"

	"github.com/vovakirdan/tui-sunset/internal/core"
	"github.com/vovakirdan/tui-sunset/internal/platform/headless"
	"github.com/vovakirdan/tui-sunset/internal/present"
)

// ErrNoFrame is returned when the loop stopped before presenting a frame.
var ErrNoFrame = errors.New("snapshot: no frame presented")

// Options controls a capture.
type Options struct {
	Width  int
	Height int
	Frames int // Frames to present; the last one is captured
	Scene  present.SceneFactory
	Logger *log.Logger
}

// Result is a captured frame.
type Result struct {
	Frame  *core.Surface
	Stats  present.Stats
	Cycles int
}

// Capture runs the present loop on a headless display for opts.Frames
// frames with no pacing and returns a copy of the last presented frame.
func Capture(ctx context.Context, opts Options) (Result, error) {
	if opts.Frames <= 0 {
		return Result{}, fmt.Errorf("snapshot: frames must be positive, got %d", opts.Frames)
	}

	var last *core.Surface
	d := headless.New(
		headless.WithFrameLimit(opts.Frames),
		headless.WithPresentHook(func(_ int, front *core.Surface) {
			if last == nil {
				last = core.NewSurface(front.Width(), front.Height())
			}
			last.CopyFrom(front)
		}),
	)

	loopOpts := []present.Option{present.WithInterval(0)}
	if opts.Scene != nil {
		loopOpts = append(loopOpts, present.WithScene(opts.Scene))
	}
	if opts.Logger != nil {
		loopOpts = append(loopOpts, present.WithLogger(opts.Logger))
	}

	loop := present.NewLoop(d, loopOpts...)
	if code := loop.Run(ctx, opts.Width, opts.Height); code != present.ExitOK {
		return Result{}, loop.Err()
	}
	if last == nil {
		return Result{}, ErrNoFrame
	}

	return Result{
		Frame:  last,
		Stats:  loop.Stats(),
		Cycles: loop.Scene().Cycles(),
	}, nil
}

// Scale resamples src by factor with Catmull-Rom filtering.
// A factor of 1 returns src unchanged.
func Scale(src image.Image, factor float64) (image.Image, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("snapshot: invalid scale %g", factor)
	}
	if factor == 1 {
		return src, nil
	}

	b := src.Bounds()
	w := int(math.Round(float64(b.Dx()) * factor))
	h := int(math.Round(float64(b.Dy()) * factor))
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("snapshot: scale %g leaves an empty image", factor)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("snapshot: encode png: %w", err)
	}
	return nil
}
