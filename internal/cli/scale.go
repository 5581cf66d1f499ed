package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/echoplot/echoplot/pkg/colorscale"
)

func (c *CLI) scaleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scale",
		Short: "Print the ek500 colour scale and the available mask ramps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printScale(cmd.OutOrStdout(), colorscale.EK500())
			printRamps(cmd.OutOrStdout(), c.Config.Ramp)
			return nil
		},
	}
}

// printScale prints one row per bucket of s: the swatch, its colour and the
// Sv range it covers.
func printScale(w io.Writer, s colorscale.Scale) {
	fmt.Fprintln(w, StyleTitle.Render(s.Name()))

	labels := s.Labels()
	row := func(b colorscale.Bucket, rng string) {
		col := s.Color(b)
		fmt.Fprintf(w, "  %s %s  %s\n", swatch(col), StyleDim.Render(hexColor(col)), StyleValue.Render(rng))
	}

	row(colorscale.Under, "< "+labels[0])
	for i := 0; i < s.Bins(); i++ {
		row(colorscale.Bucket(i), fmt.Sprintf("[%s, %s)", labels[i], labels[i+1]))
	}
	row(colorscale.Over, ">= "+labels[len(labels)-1])
	row(colorscale.Invalid, "masked or NaN")
}

// printRamps lists the mask ramps, marking the configured one.
func printRamps(w io.Writer, current string) {
	names := colorscale.RampNames()
	for i, name := range names {
		if name == current {
			names[i] = StyleNumber.Render(name + "*")
		}
	}
	printKeyValue(w, "ramps", strings.Join(names, ", "))
}
