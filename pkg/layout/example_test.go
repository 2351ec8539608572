package layout_test

import (
	"fmt"

	"github.com/siderealab/orrery/pkg/astro"
	"github.com/siderealab/orrery/pkg/layout"
)

func ExampleResolve() {
	// Sun and Mercury sit two degrees apart, so Mercury is pushed to
	// the next track. The Moon is far away and stays isolated.
	entries := layout.Resolve([]layout.Entity{
		{Body: astro.Sun, Longitude: 10},
		{Body: astro.Mercury, Longitude: 12},
		{Body: astro.Moon, Longitude: 200},
	})
	for _, e := range entries {
		fmt.Printf("%s track=%d isolated=%v\n", e.Entity.Body, e.Track, e.Isolated)
	}
	// Output:
	// Sun track=0 isolated=false
	// Mercury track=1 isolated=false
	// Moon track=0 isolated=true
}
