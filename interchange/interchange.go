// Package interchange imports & defines a render scene from an external
// description format.
package interchange

import "github.com/aabizri/lsysdraw"

// Scene is a fully validated description of one render: what to grow, how
// to draw it, and the surface it lands on.
type Scene struct {
	Parameters  lsysdraw.Parameters
	Turtle      lsysdraw.TurtleParams
	Generations uint

	Width      int
	Height     int
	Background lsysdraw.RGB
}

// Format is a decodable scene description.
type Format interface {
	Import() (*Scene, error)
}
