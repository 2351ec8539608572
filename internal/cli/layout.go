package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siderealab/orrery/pkg/astro"
	"github.com/siderealab/orrery/pkg/layout"
)

// layoutCommand creates the layout command for resolving display tracks
// from raw longitudes.
func (c *CLI) layoutCommand() *cobra.Command {
	var minSeparation float64

	cmd := &cobra.Command{
		Use:   "layout <body=degrees> [<body=degrees> ...]",
		Short: "Resolve display tracks for a set of longitudes",
		Long: `Resolve radial display tracks for a set of body longitudes so that
nearby glyphs do not overlap on a wheel. Each argument is a body name
and a longitude in degrees, joined by an equals sign.

Examples:
  orrery layout Sun=10 Moon=12 Mars=130
  orrery layout --min-separation 8 Sun=0 Moon=7.5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entities, err := parseEntities(args)
			if err != nil {
				return err
			}
			resolver := layout.Resolver{MinSeparation: minSeparation}
			printEntries(resolver.Resolve(entities))
			return nil
		},
	}

	cmd.Flags().Float64Var(&minSeparation, "min-separation", 0,
		fmt.Sprintf("collision threshold in degrees (default %.0f)", layout.DefaultMinSeparation))

	return cmd
}

// parseEntities converts body=degrees arguments into layout entities.
func parseEntities(args []string) ([]layout.Entity, error) {
	entities := make([]layout.Entity, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid entity %q: expected body=degrees", arg)
		}
		body, err := astro.ParseBody(name)
		if err != nil {
			return nil, err
		}
		lon, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude %q for %s: %w", value, name, err)
		}
		entities = append(entities, layout.Entity{Body: body, Longitude: astro.Normalize(lon)})
	}
	return entities, nil
}

// printEntries renders the resolved entries one per line, in the
// longitude-sorted order the resolver returns.
func printEntries(entries []layout.Entry) {
	fmt.Println(StyleTitle.Render("Layout"))
	tracks := 0
	for _, e := range entries {
		if e.Track+1 > tracks {
			tracks = e.Track + 1
		}
		status := StyleDim.Render("crowded")
		if e.Isolated {
			status = StyleSuccess.Render("isolated")
		}
		fmt.Printf("  %s %-8s %8.2f°  %s %d  %s\n",
			e.Entity.Body.Symbol(),
			e.Entity.Body.String(),
			e.Entity.Longitude,
			StyleDim.Render("track"),
			e.Track,
			status)
	}
	printNewline()
	printDetail("%d entities on %d track(s)", len(entries), tracks)
}
