package astro_test

import (
	"fmt"

	"github.com/siderealab/orrery/pkg/astro"
)

func ExampleSignAt() {
	sign := astro.SignAt(123.45)
	fmt.Printf("%s %s (%s)\n", sign.Symbol, sign.Name, sign.Element)
	// Output: ♌ Leo (fire)
}

func ExampleSeparation() {
	// Separation is measured along the shorter arc.
	fmt.Println(astro.Separation(350, 10))
	fmt.Println(astro.Separation(0, 180))
	// Output:
	// 20
	// 180
}

func ExampleRelativeDegree() {
	// Degrees within the containing sign.
	fmt.Println(astro.RelativeDegree(95.5))
	// Output: 5.5
}

func ExampleParseBody() {
	body, err := astro.ParseBody("Mercury")
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s %s\n", body.Symbol(), body)
	// Output: ☿ Mercury
}
