package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/siderealab/orrery/pkg/aspect"
	"github.com/siderealab/orrery/pkg/chart"
	"github.com/siderealab/orrery/pkg/pipeline"
	"github.com/siderealab/orrery/pkg/render"
	"github.com/siderealab/orrery/pkg/render/wheel"
)

// chartOpts holds the command-line flags for the chart command.
type chartOpts struct {
	when    string  // birth instant, RFC3339 (default: now)
	lat     float64 // geographic latitude in degrees
	lon     float64 // geographic longitude in degrees
	name    string  // subject name for display and layout ownership
	output  string  // wheel output file path (none if empty)
	format  string  // output format: svg, png, pdf
	noCache bool    // disable the computation cache
	refresh bool    // bypass cached chart results
	browse  bool    // open the interactive placements browser
}

// chartCommand creates the chart command for computing natal charts.
func (c *CLI) chartCommand() *cobra.Command {
	opts := chartOpts{format: "svg"}
	var latSet, lonSet bool

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute a natal chart for an instant and location",
		Long: `Compute a natal chart: the ecliptic longitudes of the ten bodies,
the ascendant, whole-sign houses, elemental balance, and the aspects
between the bodies.

Examples:
  orrery chart --time 1990-06-15T08:30:00Z --lat 52.52 --lon 13.40
  orrery chart --lat 51.5 --lon -0.12 --output wheel.svg
  orrery chart --lat 40.7 --lon -74.0 --browse`,
		RunE: func(cmd *cobra.Command, args []string) error {
			latSet = cmd.Flags().Changed("lat")
			lonSet = cmd.Flags().Changed("lon")
			subject, err := c.subjectFromFlags(opts.when, opts.lat, opts.lon, opts.name, latSet && lonSet)
			if err != nil {
				return err
			}
			return c.runChart(cmd.Context(), subject, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.when, "time", "t", "", "birth instant, RFC3339 (default: now)")
	cmd.Flags().Float64Var(&opts.lat, "lat", 0, "latitude in degrees (positive north)")
	cmd.Flags().Float64Var(&opts.lon, "lon", 0, "longitude in degrees (positive east)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "subject name")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the chart wheel to this file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "wheel format: svg, png, pdf")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the computation cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&opts.browse, "browse", false, "browse placements interactively")

	return cmd
}

// subjectFromFlags builds the subject, falling back to the configured
// observer location when --lat/--lon are not both given.
func (c *CLI) subjectFromFlags(when string, lat, lon float64, name string, coordsGiven bool) (chart.Subject, error) {
	instant := time.Now().UTC()
	if when != "" {
		t, err := time.Parse(time.RFC3339, when)
		if err != nil {
			return chart.Subject{}, fmt.Errorf("parse --time: %w (expected RFC3339, e.g. 1990-06-15T08:30:00Z)", err)
		}
		instant = t.UTC()
	}

	if !coordsGiven {
		if c.Config == nil || !c.Config.Observer.Set {
			return chart.Subject{}, fmt.Errorf("--lat and --lon are required (or set [observer] in the config file)")
		}
		lat = c.Config.Observer.Latitude
		lon = c.Config.Observer.Longitude
		if name == "" {
			name = c.Config.Observer.Name
		}
	}

	return chart.Subject{Name: name, Instant: instant, Latitude: lat, Longitude: lon}, nil
}

func (c *CLI) runChart(ctx context.Context, subject chart.Subject, opts *chartOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	eph, sid, providerName := c.newProvider()
	prog := newProgress(loggerFromContext(ctx))
	result, err := runner.Execute(ctx, pipeline.Options{
		Subjects:     []chart.Subject{subject},
		ProviderName: providerName,
		Refresh:      opts.refresh,
		Ephemeris:    eph,
		Sidereal:     sid,
		Logger:       loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Computed chart with %d placements", len(result.Charts[0].Placements)))

	if opts.browse {
		model := NewPlacementModel(result.Charts[0])
		_, err := tea.NewProgram(model).Run()
		return err
	}

	printChart(result.Charts[0])
	printAspects(result.Aspects)
	printStats(result.Stats.BodyCount, len(result.Aspects), result.CacheInfo.ChartHits[0])

	if opts.output != "" {
		if err := c.writeWheel(result, opts.output, opts.format); err != nil {
			return err
		}
	} else {
		printNewline()
		printNextStep("Render the wheel", "orrery chart ... --output wheel.svg")
	}
	return nil
}

// writeWheel renders the chart wheel and writes it in the requested format.
func (c *CLI) writeWheel(result *pipeline.Result, path, format string) error {
	ch := result.Charts[0]
	svg := wheel.RenderSVG(ch, result.Layout,
		wheel.WithAspects(result.Aspects),
		wheel.WithTitle(wheelTitle(ch)))

	var data []byte
	var err error
	switch format {
	case "", "svg":
		data = svg
	case "png":
		data, err = render.ToPNG(svg, 2.0)
	case "pdf":
		data, err = render.ToPDF(svg)
	default:
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf)", format)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printSuccess("Wrote chart wheel")
	printFile(path)
	return nil
}

func wheelTitle(ch *chart.Chart) string {
	title := ch.Subject.Instant.Format("2 Jan 2006 15:04 UTC")
	if ch.Subject.Name != "" {
		title = ch.Subject.Name + " · " + title
	}
	return title
}

// =============================================================================
// Chart Output
// =============================================================================

// printChart renders the placements table, big three, and elemental
// balance to stdout.
func printChart(ch *chart.Chart) {
	header := "Natal Chart"
	if ch.Subject.Name != "" {
		header += " · " + ch.Subject.Name
	}
	fmt.Println(StyleTitle.Render(header))
	printDetail("%s at %.4f°, %.4f°",
		ch.Subject.Instant.Format(time.RFC3339), ch.Subject.Latitude, ch.Subject.Longitude)
	printNewline()

	rows := make([][]string, 0, len(ch.Placements))
	for _, p := range ch.Placements {
		motion := ""
		if p.Position.Retrograde {
			motion = StyleRetrograde.Render("℞")
		}
		rows = append(rows, []string{
			p.Position.Body.Symbol() + " " + p.Position.Body.String(),
			fmt.Sprintf("%.2f°", p.RelativeDegree),
			p.SignName,
			fmt.Sprintf("%d", p.House),
			motion,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Body", "Degree", "Sign", "House", "Motion").
		Rows(rows...)
	fmt.Println(t.Render())

	printNewline()
	fmt.Println(StyleHighlight.Render("Big three:"),
		StyleValue.Render(fmt.Sprintf("☉ %s · ☽ %s · ASC %s",
			ch.BigThree.Sun, ch.BigThree.Moon, ch.BigThree.Rising)))
	fmt.Println(StyleHighlight.Render("Elements:"),
		StyleValue.Render(fmt.Sprintf("fire %d%% · earth %d%% · air %d%% · water %d%%",
			ch.Elements.Fire, ch.Elements.Earth, ch.Elements.Air, ch.Elements.Water)))
	fmt.Println(StyleHighlight.Render("Ascendant:"),
		StyleValue.Render(fmt.Sprintf("%.2f° (%s)", ch.Ascendant, ch.AscendantSign().Name)))
}

// printAspects renders the aspect records, tightest first.
func printAspects(records []aspect.Record) {
	printNewline()
	if len(records) == 0 {
		printInfo("No aspects within orb")
		return
	}

	fmt.Println(StyleTitle.Render("Aspects"))
	for _, rec := range records {
		orb := fmt.Sprintf("%.2f°", rec.Orb)
		fmt.Printf("  %s %s %s %s %s\n",
			StyleValue.Render(rec.BodyA.String()),
			StyleHighlight.Render(string(rec.Type)),
			StyleValue.Render(rec.BodyB.String()),
			StyleDim.Render("orb"),
			StyleDim.Render(orb))
	}
}

// formatOwners joins subject names for synastry headings.
func formatOwners(names ...string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			n = "unnamed"
		}
		parts = append(parts, n)
	}
	return strings.Join(parts, " × ")
}
