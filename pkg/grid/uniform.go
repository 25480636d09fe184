package grid

import "fmt"

// UniformGrid is a dense scalar field over an axis-aligned lattice with a
// world-space origin and per-axis spacing. It is the standard concrete
// ScalarGrid and also serves as the secondary attribute source when a second
// field is interpolated into the output mesh.
type UniformGrid struct {
	nx, ny, nz int
	origin     [3]float32
	spacing    [3]float32
	values     []float32
}

// Compile-time interface check.
var _ ScalarGrid = (*UniformGrid)(nil)

// NewUniformGrid creates a grid with the given point-lattice extents. The
// value array is zero-initialized; fill it with Set or SetAll.
func NewUniformGrid(nx, ny, nz int, origin, spacing [3]float32) (*UniformGrid, error) {
	if err := ValidateDims(nx, ny, nz); err != nil {
		return nil, err
	}
	return &UniformGrid{
		nx: nx, ny: ny, nz: nz,
		origin:  origin,
		spacing: spacing,
		values:  make([]float32, nx*ny*nz),
	}, nil
}

// Dims returns the point-lattice extents.
func (g *UniformGrid) Dims() (nx, ny, nz int) {
	return g.nx, g.ny, g.nz
}

// Scalar returns the field value at a point index.
func (g *UniformGrid) Scalar(i int) float32 {
	return g.values[i]
}

// Coord returns the world coordinate of a point index.
func (g *UniformGrid) Coord(i int) [3]float32 {
	x := i % g.nx
	y := (i / g.nx) % g.ny
	z := i / (g.nx * g.ny)
	return [3]float32{
		g.origin[0] + float32(x)*g.spacing[0],
		g.origin[1] + float32(y)*g.spacing[1],
		g.origin[2] + float32(z)*g.spacing[2],
	}
}

// Index flattens lattice coordinates to a point index.
func (g *UniformGrid) Index(x, y, z int) int {
	return x + y*g.nx + z*g.nx*g.ny
}

// Set stores a value at lattice coordinates.
func (g *UniformGrid) Set(x, y, z int, v float32) {
	g.values[g.Index(x, y, z)] = v
}

// SetAll replaces the whole value array. The slice length must match the
// lattice point count.
func (g *UniformGrid) SetAll(values []float32) error {
	if len(values) != g.nx*g.ny*g.nz {
		return fmt.Errorf("grid: value count %d does not match %dx%dx%d lattice",
			len(values), g.nx, g.ny, g.nz)
	}
	copy(g.values, values)
	return nil
}

// Fill evaluates f at every lattice point's world coordinate and stores the
// result.
func (g *UniformGrid) Fill(f func(x, y, z float32) float32) {
	i := 0
	for z := 0; z < g.nz; z++ {
		for y := 0; y < g.ny; y++ {
			for x := 0; x < g.nx; x++ {
				c := g.Coord(i)
				g.values[i] = f(c[0], c[1], c[2])
				i++
			}
		}
	}
}
