package main

import (
	"github.com/spf13/cobra"

	"github.com/wbrown/img2paint"
	"github.com/wbrown/img2paint/imageutil"
)

type diagOpts struct {
	input   string
	output  string
	sigma   float64
	factor  float64
	maxSize int
}

func newAngleCmd() *cobra.Command {
	var opts diagOpts
	cmd := &cobra.Command{
		Use:   "angle",
		Short: "Write the stroke orientation field as a grayscale image",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := img2paint.NewPainter(img2paint.WithTensorSigma(opts.sigma, opts.factor))
			return runDiag(cmd, opts, p.AngleImage)
		},
	}
	addDiagFlags(cmd, &opts)
	cmd.Flags().Float64Var(&opts.sigma, "sigma", img2paint.DefaultTensorSigma, "gradient blur sigma")
	cmd.Flags().Float64Var(&opts.factor, "factor", img2paint.DefaultTensorFactor, "tensor smoothing factor")
	return cmd
}

func newSharpnessCmd() *cobra.Command {
	var opts diagOpts
	cmd := &cobra.Command{
		Use:   "sharpness",
		Short: "Write the detail energy map that guides the fine pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := img2paint.NewPainter(img2paint.WithSharpnessSigma(opts.sigma))
			return runDiag(cmd, opts, p.SharpnessImage)
		},
	}
	addDiagFlags(cmd, &opts)
	cmd.Flags().Float64Var(&opts.sigma, "sigma", img2paint.DefaultSharpnessSigma, "low-pass sigma")
	return cmd
}

func addDiagFlags(cmd *cobra.Command, opts *diagOpts) {
	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "input image (required)")
	f.StringVarP(&opts.output, "output", "o", "", "output image (required)")
	f.IntVar(&opts.maxSize, "max-size", 0, "downscale so the larger side is at most this many pixels")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
}

func runDiag(cmd *cobra.Command, opts diagOpts, compute func(*imageutil.Buffer) (*imageutil.Buffer, error)) error {
	logger := loggerFromContext(cmd.Context())

	src, err := loadSource(opts.input, opts.maxSize)
	if err != nil {
		return err
	}
	prog := newProgress(logger)
	out, err := compute(src)
	if err != nil {
		return err
	}
	prog.done("Computed " + cmd.Name() + " map")

	if err := imageutil.SaveBuffer(out, opts.output); err != nil {
		return err
	}
	logger.Info("wrote output", "path", opts.output)
	return nil
}
