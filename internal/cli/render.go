package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	gridio "github.com/echoplot/echoplot/pkg/io"
	"github.com/echoplot/echoplot/pkg/pipeline"
)

// figureFlags holds the output flags shared by every rendering command.
// Values left unset on the command line come from the config file.
type figureFlags struct {
	outputDir string
	name      string
	title     string
	ramp      string
	dpi       int
	width     float64
	height    float64
	noCache   bool
	refresh   bool
}

func (f *figureFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.outputDir, "output-dir", "o", "", "directory for the PNG (default from config, else .)")
	flags.StringVarP(&f.name, "name", "n", "", "output file name without extension")
	flags.StringVar(&f.title, "title", "", "figure title")
	flags.IntVar(&f.dpi, "dpi", 0, "output resolution in dots per inch")
	flags.Float64Var(&f.width, "width", 0, "figure width in inches")
	flags.Float64Var(&f.height, "height", 0, "figure height in inches")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable the rendered-figure cache")
	flags.BoolVar(&f.refresh, "refresh", false, "re-render even when a cached figure exists")
}

// registerRamp adds --ramp for commands that draw on a continuous ramp.
func (f *figureFlags) registerRamp(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ramp, "ramp", "", "colour ramp for masks (spectral, bluered, blackbody, kindlmann)")
}

// merge fills flags the user did not set from the loaded config.
func (c *CLI) merge(cmd *cobra.Command, f *figureFlags) {
	flags := cmd.Flags()
	if !flags.Changed("output-dir") {
		f.outputDir = c.Config.OutputDir
	}
	if !flags.Changed("dpi") {
		f.dpi = c.Config.DPI
	}
	if !flags.Changed("width") {
		f.width = c.Config.Width
	}
	if !flags.Changed("height") {
		f.height = c.Config.Height
	}
	if !flags.Changed("ramp") {
		f.ramp = c.Config.Ramp
	}
}

// apply copies the figure settings into opts.
func (f *figureFlags) apply(opts *pipeline.Options) {
	opts.Title = f.title
	opts.Ramp = f.ramp
	opts.DPI = f.dpi
	opts.Width = f.width
	opts.Height = f.height
	opts.Refresh = f.refresh
}

// renderAndWrite runs opts through the pipeline and writes the PNG.
func (c *CLI) renderAndWrite(cmd *cobra.Command, opts pipeline.Options, f *figureFlags) (*pipeline.Result, error) {
	ctx := commandContext(cmd)
	logger := loggerFromContext(ctx)
	f.apply(&opts)
	opts.Logger = logger

	runner, err := c.newRunner(f.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := execute(ctx, cmd, runner, opts)
	if err != nil {
		return nil, err
	}

	path, err := runner.Write(result, f.outputDir, f.name)
	if err != nil {
		return nil, err
	}
	prog.done("Rendered "+f.name, "bytes", result.Stats.EncodedBytes)

	out := cmd.OutOrStdout()
	printSuccess(out, "Rendered %s", opts.Kind)
	printFile(out, path)
	printStats(out, result.Stats.Rows, result.Stats.Cols, result.Stats.MaskedCells, result.CacheInfo.RenderHit)
	return result, nil
}

// execute runs the pipeline behind a spinner on stderr.
func execute(ctx context.Context, cmd *cobra.Command, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	spin := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", opts.Kind))
	spin.Start()
	defer spin.Stop()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	if spin.Cancelled() {
		return nil, ctx.Err()
	}
	return result, nil
}

// =============================================================================
// sv
// =============================================================================

func (c *CLI) svCommand() *cobra.Command {
	var (
		f      figureFlags
		mask   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "sv <grid>",
		Short: "Render an Sv grid as an echogram",
		Long: `Render a grid of Sv values (dB) with the ek500 colour scale.

The grid is read from JSON ([[...],[...]], null for missing) or CSV, either
optionally gzip-compressed. With --mask, cells where the mask is 0 are drawn
as invalid.`,
		Example: `  echoplot sv survey.json
  echoplot sv survey.csv.gz --mask school.json --title "Transect 4" -o out/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gf, err := gridio.ParseFormat(format)
			if err != nil {
				return err
			}
			c.merge(cmd, &f)
			if f.name == "" {
				f.name = outputName(args[0], "")
			}
			opts := pipeline.Options{
				Kind:   pipeline.KindSv,
				Input:  args[0],
				Mask:   mask,
				Format: gf,
			}
			_, err = c.renderAndWrite(cmd, opts, &f)
			return err
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&mask, "mask", "", "mask grid with the same shape (0 hides a cell)")
	cmd.Flags().StringVar(&format, "format", "", "input format: json or csv (default from extension)")
	return cmd
}

// =============================================================================
// mask
// =============================================================================

func (c *CLI) maskCommand() *cobra.Command {
	var (
		f      figureFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "mask <grid>",
		Short: "Render a mask grid on a continuous ramp",
		Long: `Render a mask or label grid alone on a continuous colour ramp scaled to the
finite data range.`,
		Example: `  echoplot mask school.json --ramp bluered`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gf, err := gridio.ParseFormat(format)
			if err != nil {
				return err
			}
			c.merge(cmd, &f)
			if f.name == "" {
				f.name = outputName(args[0], "_mask")
			}
			opts := pipeline.Options{
				Kind:   pipeline.KindMask,
				Input:  args[0],
				Format: gf,
			}
			_, err = c.renderAndWrite(cmd, opts, &f)
			return err
		},
	}

	f.register(cmd)
	f.registerRamp(cmd)
	cmd.Flags().StringVar(&format, "format", "", "input format: json or csv (default from extension)")
	return cmd
}
