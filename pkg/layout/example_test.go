package layout_test

import (
	"fmt"

	"github.com/matzehuels/mazer/pkg/layout"
	"github.com/matzehuels/mazer/pkg/maze"
)

func ExampleCellSize() {
	d := layout.Display{Width: 400, Height: 800, Scale: 2}

	fmt.Println(layout.CellSize(maze.Orthogonal, 10, 20, d))
	fmt.Println(layout.CellSize(maze.Sigma, 3, 5, d))
	// Output:
	// 40
	// 100
}
