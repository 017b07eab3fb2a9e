package maze

import "strings"

// Topology is the tiling family a maze is laid out in.
type Topology uint8

const (
	UnknownTopology Topology = iota
	Orthogonal
	Delta
	Sigma
	Upsilon
	Rhombic
)

var topologyNames = [...]string{
	UnknownTopology: "Unknown",
	Orthogonal:      "Orthogonal",
	Delta:           "Delta",
	Sigma:           "Sigma",
	Upsilon:         "Upsilon",
	Rhombic:         "Rhombic",
}

// Topologies lists every supported topology in display order.
var Topologies = []Topology{Orthogonal, Delta, Sigma, Upsilon, Rhombic}

// ParseTopology resolves an engine maze type tag. Matching is case-insensitive
// and accepts "Ortho" as a short form. Unknown tags return Orthogonal, the
// fallback tiling, and false.
func ParseTopology(name string) (Topology, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "ortho" {
		return Orthogonal, true
	}
	for _, t := range Topologies {
		if strings.ToLower(topologyNames[t]) == n {
			return t, true
		}
	}
	return Orthogonal, false
}

func (t Topology) String() string {
	if int(t) < len(topologyNames) {
		return topologyNames[t]
	}
	return topologyNames[UnknownTopology]
}

// Known reports whether t is one of the supported topologies.
func (t Topology) Known() bool {
	return t >= Orthogonal && t <= Rhombic
}

// MarshalText encodes the engine tag.
func (t Topology) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText never fails; unrecognised tags become UnknownTopology.
func (t *Topology) UnmarshalText(b []byte) error {
	parsed, ok := ParseTopology(string(b))
	if !ok {
		parsed = UnknownTopology
	}
	*t = parsed
	return nil
}
