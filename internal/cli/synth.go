package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	gridio "github.com/echoplot/echoplot/pkg/io"
	"github.com/echoplot/echoplot/pkg/pipeline"
	"github.com/echoplot/echoplot/pkg/synth"
)

// synthFlags holds the layer parameters for the synth command.
type synthFlags struct {
	mean       float64
	std        float64
	thickness  int
	position   float64
	cols       int
	noiseLevel float64
	seed       uint64
	random     bool
	export     string
}

// synthParams builds layer parameters, taking unset optional values from config.
func (c *CLI) synthParams(cmd *cobra.Command, s *synthFlags) synth.Params {
	p := synth.NewParams(s.mean, s.std, s.thickness, s.position)
	flags := cmd.Flags()

	p.Cols = c.Config.Synth.Cols
	if flags.Changed("cols") {
		p.Cols = s.cols
	}
	p.NoiseLevel = c.Config.Synth.NoiseLevel
	if flags.Changed("noise-level") {
		p.NoiseLevel = s.noiseLevel
	}
	p.Seed = c.Config.Synth.Seed
	if flags.Changed("seed") {
		p.Seed = s.seed
	}
	p.Random = s.random
	return p
}

func (c *CLI) synthCommand() *cobra.Command {
	var (
		f figureFlags
		s synthFlags
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize and render a single scattering layer",
		Long: `Synthesize a grid of 3*thickness rows holding one layer of Normal(mean, std)
Sv values between background rows at the noise level, then render it with the
ek500 scale. The y axis is labelled with the depths of the layer top, centre
and bottom.`,
		Example: `  echoplot synth --mean -60 --std 5 --thickness 10 --position 50
  echoplot synth --mean -45 --std 3 --thickness 20 --position 120 --random --export layer.json.gz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c.merge(cmd, &f)
			if f.name == "" {
				f.name = "layer"
			}
			if s.random && cmd.Flags().Changed("seed") {
				printWarning(out, "--seed is ignored with --random")
			}

			opts := pipeline.Options{
				Kind:  pipeline.KindSynth,
				Synth: c.synthParams(cmd, &s),
			}
			result, err := c.renderAndWrite(cmd, opts, &f)
			if err != nil {
				return err
			}
			if s.random {
				printKeyValue(out, "seed", strconv.FormatUint(result.Seed, 10))
			}

			if s.export != "" {
				if err := gridio.Export(result.Grid, s.export); err != nil {
					return err
				}
				printSuccess(out, "Exported grid")
				printFile(out, s.export)
				printNextStep(out, "Render it again", "echoplot sv "+s.export)
			}
			return nil
		},
	}

	f.register(cmd)
	flags := cmd.Flags()
	flags.Float64Var(&s.mean, "mean", 0, "layer mean Sv (dB)")
	flags.Float64Var(&s.std, "std", 0, "layer standard deviation (dB)")
	flags.IntVar(&s.thickness, "thickness", 0, "layer thickness in rows")
	flags.Float64Var(&s.position, "position", 0, "depth of the layer centre")
	flags.IntVar(&s.cols, "cols", synth.DefaultCols, "number of pings")
	flags.Float64Var(&s.noiseLevel, "noise-level", synth.DefaultNoiseLevel, "background Sv (dB)")
	flags.Uint64Var(&s.seed, "seed", 0, "random seed")
	flags.BoolVar(&s.random, "random", false, "seed from the clock and print the seed")
	flags.StringVar(&s.export, "export", "", "also write the grid as JSON (gzip when the name ends in .gz)")

	for _, name := range []string{"mean", "std", "thickness", "position"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
