package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chartkit/chartkit/pkg/chart/axis"
	"github.com/chartkit/chartkit/pkg/chart/plot"
	"github.com/chartkit/chartkit/pkg/chart/svg"
	"github.com/chartkit/chartkit/pkg/config"
	"github.com/chartkit/chartkit/pkg/render/raster"
)

const (
	formatSVG = "svg"
	formatPNG = "png"
)

// renderOpts holds the command-line flags for the render command.
// The axis override flags mirror the explicit props layer: a flag left at
// its default is "unset" and the stored definition wins.
type renderOpts struct {
	output string // output file path, derived from input when empty
	format string // "svg" or "png"
	axisID string // render a single axis instead of the whole chart

	position      string
	label         string
	tickSize      float64
	tickFontSize  float64
	labelFontSize float64
	tickNumber    int
	tickMinStep   float64
	tickMaxStep   float64
	disableLine   bool
	disableTicks  bool

	// set* record which optional flags were passed, so false and the
	// empty label can be stated explicitly.
	setLabel        bool
	setDisableLine  bool
	setDisableTicks bool

	width  int // PNG viewport width
	height int // PNG viewport height
}

// newRenderCmd creates the render command for generating chart images.
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [definition.toml]",
		Short: "Render a chart definition to SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			opts.setLabel = cmd.Flags().Changed("label")
			opts.setDisableLine = cmd.Flags().Changed("disable-line")
			opts.setDisableTicks = cmd.Flags().Changed("disable-ticks")
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatSVG, "output format: svg (default), png")
	cmd.Flags().StringVar(&opts.axisID, "axis", "", "render a single axis by ID instead of the whole chart")
	cmd.Flags().StringVar(&opts.position, "position", "", "axis position override: left, right")
	cmd.Flags().StringVar(&opts.label, "label", "", "axis title override (empty removes the title)")
	cmd.Flags().Float64Var(&opts.tickSize, "tick-size", 0, "tick mark length override")
	cmd.Flags().Float64Var(&opts.tickFontSize, "tick-font-size", 0, "tick label font size override")
	cmd.Flags().Float64Var(&opts.labelFontSize, "label-font-size", 0, "axis title font size override")
	cmd.Flags().IntVar(&opts.tickNumber, "tick-number", 0, "requested tick count override")
	cmd.Flags().Float64Var(&opts.tickMinStep, "tick-min-step", 0, "minimum tick step override")
	cmd.Flags().Float64Var(&opts.tickMaxStep, "tick-max-step", 0, "maximum tick step override")
	cmd.Flags().BoolVar(&opts.disableLine, "disable-line", false, "hide the axis line")
	cmd.Flags().BoolVar(&opts.disableTicks, "disable-ticks", false, "hide tick marks")
	cmd.Flags().IntVar(&opts.width, "width", 0, "PNG viewport width")
	cmd.Flags().IntVar(&opts.height, "height", 0, "PNG viewport height")

	return cmd
}

// validateFormat checks that the format is either "svg" or "png".
func validateFormat(f string) error {
	if f != formatSVG && f != formatPNG {
		return fmt.Errorf("invalid format: %s (must be 'svg' or 'png')", f)
	}
	return nil
}

// props builds the explicit axis override layer from the flags.
func (o *renderOpts) props() (axis.Props, error) {
	var props axis.Props

	if o.position != "" {
		pos, err := axis.ParsePosition(o.position)
		if err != nil {
			return axis.Props{}, err
		}
		props.Position = pos
	}
	if o.setLabel {
		props.Label = axis.String(o.label)
	}
	if o.setDisableLine {
		props.DisableLine = axis.Bool(o.disableLine)
	}
	if o.setDisableTicks {
		props.DisableTicks = axis.Bool(o.disableTicks)
	}
	props.TickSize = o.tickSize
	props.TickFontSize = o.tickFontSize
	props.LabelFontSize = o.labelFontSize
	props.TickNumber = o.tickNumber
	props.TickMinStep = o.tickMinStep
	props.TickMaxStep = o.tickMaxStep

	return props, nil
}

// outputPath derives the output file path from the flags and input path.
func (o *renderOpts) outputPath(input string) string {
	if o.output != "" {
		return o.output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if o.axisID != "" {
		base += "_" + o.axisID
	}
	return base + "." + o.format
}

// runRender loads the definition, renders it and writes the output file.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	logger.Infof("Rendering %s", input)

	def, err := config.Load(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded chart %q: %d axes, %d series", def.ID, len(def.Axes), len(def.Series))

	props, err := opts.props()
	if err != nil {
		return err
	}

	var doc []byte
	if opts.axisID != "" {
		settings, err := def.Axis(opts.axisID)
		if err != nil {
			return err
		}
		g, err := axis.Draw(settings, props, def.Bounds)
		if err != nil {
			return err
		}
		b := def.Bounds
		doc = svg.Render(g, b.Left*2+b.Width, b.Top*2+b.Height)
	} else {
		doc, err = plot.RenderSVG(def, props)
		if err != nil {
			return err
		}
	}

	data := doc
	if opts.format == formatPNG {
		logger.Debug("Rasterizing to PNG")
		data, err = raster.ToPNG(ctx, doc, raster.Options{Width: opts.width, Height: opts.height})
		if err != nil {
			return err
		}
	}

	path := opts.outputPath(input)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %s (%d bytes)", path, len(data)))
	printSuccess("Rendered %s", def.ID)
	printFile(path)
	return nil
}
