package grid

import (
	"github.com/chazu/isomesh/pkg/field"
)

// boundsMargin pads the sampled region by a fraction of the field's bounding
// box so the zero crossing never touches the lattice boundary.
const boundsMargin = 0.1

// SampleField evaluates a scalar field on a res×res×res point lattice laid
// over the field's bounding box (padded by a small margin) and returns the
// resulting grid. res is the point count per axis and must be at least 2.
func SampleField(f field.Field, res int) (*UniformGrid, error) {
	if err := ValidateDims(res, res, res); err != nil {
		return nil, err
	}

	min, max := f.BoundingBox()
	var origin, spacing [3]float32
	for a := 0; a < 3; a++ {
		size := max[a] - min[a]
		pad := size * boundsMargin
		origin[a] = float32(min[a] - pad)
		spacing[a] = float32(size+2*pad) / float32(res-1)
	}

	g, err := NewUniformGrid(res, res, res, origin, spacing)
	if err != nil {
		return nil, err
	}
	g.Fill(func(x, y, z float32) float32 {
		return float32(f.Evaluate(float64(x), float64(y), float64(z)))
	})
	return g, nil
}
