// Package grid defines the regular scalar grid that isosurface extraction
// consumes, plus concrete grid sources: a dense uniform lattice, a sampler
// for signed-distance fields, and a JSON voxel-grid reader.
package grid

import (
	"errors"
	"fmt"
)

// ErrBadDims is returned when a grid dimension is too small to contain a
// single cell. Every lattice extent must be at least 2 points.
var ErrBadDims = errors.New("grid: every dimension must be at least 2 points")

// ScalarGrid is a regular nx×ny×nz point lattice with a scalar sample at
// every point. Points are addressed by a flattened linear index
// i = x + y*nx + z*nx*ny. Cells are the (nx-1)×(ny-1)×(nz-1) unit hexahedra
// between adjacent points.
type ScalarGrid interface {
	// Dims returns the point-lattice extents.
	Dims() (nx, ny, nz int)

	// Scalar returns the field value at the given point index.
	Scalar(i int) float32

	// Coord returns the physical (world) coordinate of the given point index.
	Coord(i int) [3]float32
}

// CellCount returns the number of cells in the grid.
func CellCount(g ScalarGrid) int {
	nx, ny, nz := g.Dims()
	return (nx - 1) * (ny - 1) * (nz - 1)
}

// PointCount returns the number of lattice points in the grid.
func PointCount(g ScalarGrid) int {
	nx, ny, nz := g.Dims()
	return nx * ny * nz
}

// ValidateDims rejects lattices that cannot contain a single cell.
func ValidateDims(nx, ny, nz int) error {
	if nx < 2 || ny < 2 || nz < 2 {
		return fmt.Errorf("%w: got %dx%dx%d", ErrBadDims, nx, ny, nz)
	}
	return nil
}
