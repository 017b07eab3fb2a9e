// Package passage exports a maze's passage graph: one node per cell and one
// undirected edge per open passage.
//
// [ToDOT] produces Graphviz DOT with start, goal and solution cells
// highlighted; [RenderSVG] lays it out with Graphviz. The graph is useful
// for checking a snapshot's link symmetry at a glance, since a one-sided
// link shows up as a dashed edge.
package passage
