package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/siderealab/orrery/pkg/chart"
	"github.com/siderealab/orrery/pkg/pipeline"
	"github.com/siderealab/orrery/pkg/render"
	"github.com/siderealab/orrery/pkg/render/aspectgraph"
)

// synastryOpts holds the command-line flags for the synastry command.
type synastryOpts struct {
	whenA, whenB string
	latA, latB   float64
	lonA, lonB   float64
	nameA, nameB string
	output       string // aspect graph output path (none if empty)
	format       string // output format: svg, png, pdf
	detailed     bool   // include orb labels in the graph
	noCache      bool
	refresh      bool
}

// synastryCommand creates the synastry command for comparing two charts.
func (c *CLI) synastryCommand() *cobra.Command {
	opts := synastryOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "synastry",
		Short: "Detect cross-chart aspects between two subjects",
		Long: `Compute two natal charts and detect the aspects between the bodies
of one chart and the bodies of the other.

Examples:
  orrery synastry \
    --time-a 1990-06-15T08:30:00Z --lat-a 52.52 --lon-a 13.40 --name-a Ada \
    --time-b 1988-01-02T21:15:00Z --lat-b 48.85 --lon-b 2.35 --name-b Ben
  orrery synastry ... --output graph.svg --detailed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseSubject(opts.whenA, opts.latA, opts.lonA, opts.nameA, "a")
			if err != nil {
				return err
			}
			b, err := parseSubject(opts.whenB, opts.latB, opts.lonB, opts.nameB, "b")
			if err != nil {
				return err
			}
			return c.runSynastry(cmd.Context(), a, b, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.whenA, "time-a", "", "first subject instant, RFC3339")
	cmd.Flags().Float64Var(&opts.latA, "lat-a", 0, "first subject latitude")
	cmd.Flags().Float64Var(&opts.lonA, "lon-a", 0, "first subject longitude")
	cmd.Flags().StringVar(&opts.nameA, "name-a", "a", "first subject name")
	cmd.Flags().StringVar(&opts.whenB, "time-b", "", "second subject instant, RFC3339")
	cmd.Flags().Float64Var(&opts.latB, "lat-b", 0, "second subject latitude")
	cmd.Flags().Float64Var(&opts.lonB, "lon-b", 0, "second subject longitude")
	cmd.Flags().StringVar(&opts.nameB, "name-b", "b", "second subject name")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the aspect graph to this file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "graph format: svg, png, pdf")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label graph edges with orbs")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the computation cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// parseSubject builds one synastry subject from its flag set. Unlike the
// chart command there is no observer fallback: both subjects must be
// given explicitly.
func parseSubject(when string, lat, lon float64, name, side string) (chart.Subject, error) {
	if when == "" {
		return chart.Subject{}, fmt.Errorf("--time-%s is required", side)
	}
	t, err := time.Parse(time.RFC3339, when)
	if err != nil {
		return chart.Subject{}, fmt.Errorf("parse --time-%s: %w (expected RFC3339)", side, err)
	}
	return chart.Subject{Name: name, Instant: t.UTC(), Latitude: lat, Longitude: lon}, nil
}

func (c *CLI) runSynastry(ctx context.Context, a, b chart.Subject, opts *synastryOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	eph, sid, providerName := c.newProvider()
	prog := newProgress(loggerFromContext(ctx))
	result, err := runner.Execute(ctx, pipeline.Options{
		Subjects:     []chart.Subject{a, b},
		ProviderName: providerName,
		Refresh:      opts.refresh,
		Ephemeris:    eph,
		Sidereal:     sid,
		Logger:       loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Compared %s and %s", a.Name, b.Name))

	fmt.Println(StyleTitle.Render("Synastry · " + formatOwners(a.Name, b.Name)))
	printDetail("%s vs %s", a.Instant.Format(time.RFC3339), b.Instant.Format(time.RFC3339))
	printAspects(result.Aspects)

	cached := result.CacheInfo.ChartHits[0] && result.CacheInfo.ChartHits[1]
	printStats(0, len(result.Aspects), cached)

	if opts.output != "" {
		return c.writeAspectGraph(result, a.Name, b.Name, opts)
	}
	printNewline()
	printNextStep("Render the aspect graph", "orrery synastry ... --output graph.svg")
	return nil
}

// writeAspectGraph renders the cross-chart aspects as a graph image.
func (c *CLI) writeAspectGraph(result *pipeline.Result, ownerA, ownerB string, opts *synastryOpts) error {
	dot := aspectgraph.ToDOT(result.Aspects, aspectgraph.Options{
		Detailed: opts.detailed,
		OwnerA:   ownerA,
		OwnerB:   ownerB,
	})
	svg, err := aspectgraph.RenderSVG(dot)
	if err != nil {
		return err
	}

	var data []byte
	switch opts.format {
	case "", "svg":
		data = svg
	case "png":
		data, err = render.ToPNG(svg, 2.0)
	case "pdf":
		data, err = render.ToPDF(svg)
	default:
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf)", opts.format)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(opts.output), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	printSuccess("Wrote aspect graph")
	printFile(opts.output)
	return nil
}
