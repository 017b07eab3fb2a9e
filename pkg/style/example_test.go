package style_test

import (
	"fmt"

	"github.com/matzehuels/mazer/pkg/style"
)

func ExampleHeatIndex() {
	for _, d := range []int{0, 4, 9, 10} {
		fmt.Println(style.HeatIndex(d, 10))
	}
	// Output:
	// 0
	// 4
	// 9
	// 9
}
