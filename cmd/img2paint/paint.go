package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wbrown/img2paint"
	"github.com/wbrown/img2paint/imageutil"
)

// proceduralAspect is the length to width ratio of the built-in brush.
const proceduralAspect = 4

type paintOpts struct {
	input  string
	output string
	config string

	strokes   int
	size      int
	noise     float64
	angles    int
	seed      uint64
	oriented  bool
	brush     string
	fromInput bool
	maxSize   int
}

func newPaintCmd() *cobra.Command {
	var opts paintOpts
	def := img2paint.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "paint",
		Short: "Render an image as a two-pass brush stroke painting",
		Long: `Paint places a coarse layer of large strokes over the whole image, then a
fine layer of small strokes where the image has detail. With --oriented the
strokes are rotated to follow edges.

Values from --config are overridden by flags given on the command line.`,
		Example: `  img2paint paint -i photo.jpg -o painting.png
  img2paint paint -i photo.jpg -o painting.png --oriented --brush brush.png
  img2paint paint -i photo.jpg -o painting.png --config paint.toml --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runPaint(cmd, opts, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "input image (required)")
	f.StringVarP(&opts.output, "output", "o", "", "output image (required)")
	f.StringVarP(&opts.config, "config", "c", "", "TOML configuration file")
	f.IntVarP(&opts.strokes, "strokes", "n", def.Strokes, "expected strokes per pass")
	f.IntVarP(&opts.size, "size", "s", def.Size, "coarse brush size in pixels")
	f.Float64Var(&opts.noise, "noise", def.Noise, "color noise amplitude")
	f.IntVar(&opts.angles, "angles", def.Angles, "brush orientations for --oriented")
	f.Uint64Var(&opts.seed, "seed", def.Seed, "random seed")
	f.BoolVar(&opts.oriented, "oriented", false, "rotate strokes along image structure")
	f.StringVarP(&opts.brush, "brush", "b", "", "brush texture image (default: procedural)")
	f.BoolVar(&opts.fromInput, "from-input", false, "paint over the input instead of a black canvas")
	f.IntVar(&opts.maxSize, "max-size", 0, "downscale so the larger side is at most this many pixels")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// resolveConfig loads the config file, if any, and applies explicitly set
// flags on top of it.
func resolveConfig(cmd *cobra.Command, opts paintOpts) (img2paint.Config, error) {
	cfg := img2paint.DefaultConfig()
	if opts.config != "" {
		var err error
		if cfg, err = img2paint.LoadConfig(opts.config); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	if f.Changed("strokes") {
		cfg.Strokes = opts.strokes
	}
	if f.Changed("size") {
		cfg.Size = opts.size
	}
	if f.Changed("noise") {
		cfg.Noise = opts.noise
	}
	if f.Changed("angles") {
		cfg.Angles = opts.angles
	}
	if f.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if f.Changed("oriented") {
		cfg.Oriented = opts.oriented
	}
	if f.Changed("brush") {
		cfg.Brush = opts.brush
	}
	if f.Changed("from-input") {
		cfg.FromInput = opts.fromInput
	}
	if f.Changed("max-size") {
		cfg.MaxSize = opts.maxSize
	}
	return cfg, cfg.Validate()
}

func runPaint(cmd *cobra.Command, opts paintOpts, cfg img2paint.Config) error {
	logger := loggerFromContext(cmd.Context())

	src, err := loadSource(opts.input, cfg.MaxSize)
	if err != nil {
		return err
	}
	logger.Info("loaded input", "path", opts.input, "width", src.W, "height", src.H)

	brush, err := loadBrush(cfg)
	if err != nil {
		return err
	}

	canvas := img2paint.NewCanvas(src)
	if cfg.FromInput {
		canvas = img2paint.CanvasFrom(src)
	}

	p := img2paint.NewPainter(img2paint.WithConfig(cfg), img2paint.WithLogger(logger))
	prog := newProgress(logger)
	var res img2paint.Result
	if cfg.Oriented {
		res, err = p.OrientedPaint(src, canvas, brush)
	} else {
		res, err = p.Painterly(src, canvas, brush)
	}
	if err != nil {
		return fmt.Errorf("paint %s: %w", opts.input, err)
	}
	prog.done(fmt.Sprintf("Painted %d strokes", res.Accepted()))

	if err := imageutil.SaveBuffer(canvas, opts.output); err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), opts.output, cfg, res)
	return nil
}

func loadSource(path string, maxSize int) (*imageutil.Buffer, error) {
	src, err := imageutil.LoadBuffer(path)
	if err != nil {
		return nil, err
	}
	src = imageutil.PrepareForPaint(src, maxSize)
	if src.Empty() {
		return nil, fmt.Errorf("input %s: %w", path, img2paint.ErrInvalidGeometry)
	}
	return src, nil
}

// loadBrush reads the brush texture as a single alpha channel, or builds
// the procedural brush when no file is configured.
func loadBrush(cfg img2paint.Config) (*imageutil.Buffer, error) {
	if cfg.Brush == "" {
		return img2paint.ProceduralBrush(cfg.Size, max(2, cfg.Size/proceduralAspect))
	}
	img, err := imageutil.LoadImage(cfg.Brush)
	if err != nil {
		return nil, fmt.Errorf("brush %s: %w", cfg.Brush, err)
	}
	return imageutil.BufferFromImage(img, 1), nil
}
