package isosurface

import "github.com/chazu/isomesh/pkg/grid"

// cellSpace holds the lattice arithmetic shared by classification and
// generation: decomposing a linear cell index into (x,y,z) and deriving the
// cell's 8 corner point indices.
type cellSpace struct {
	xdim, ydim, zdim int
	cellsPerLayer    int
	pointsPerLayer   int
}

func newCellSpace(g grid.ScalarGrid) cellSpace {
	nx, ny, nz := g.Dims()
	return cellSpace{
		xdim: nx, ydim: ny, zdim: nz,
		cellsPerLayer:  (nx - 1) * (ny - 1),
		pointsPerLayer: nx * ny,
	}
}

func (s cellSpace) cellCount() int {
	return s.cellsPerLayer * (s.zdim - 1)
}

// corners returns the point indices of a cell's 8 corners: corner 0 at the
// cell's base lattice point, 1..3 the +x, +x+y, +y ring on the same layer,
// 4..7 the same ring one layer up.
func (s cellSpace) corners(cellID int) [8]int {
	x := cellID % (s.xdim - 1)
	y := (cellID / (s.xdim - 1)) % (s.ydim - 1)
	z := cellID / s.cellsPerLayer

	i0 := x + y*s.xdim + z*s.pointsPerLayer
	return [8]int{
		i0,
		i0 + 1,
		i0 + 1 + s.xdim,
		i0 + s.xdim,
		i0 + s.pointsPerLayer,
		i0 + 1 + s.pointsPerLayer,
		i0 + 1 + s.xdim + s.pointsPerLayer,
		i0 + s.xdim + s.pointsPerLayer,
	}
}

// classifyRange computes, for every cell in [lo, hi), the 8-bit
// configuration index (bit k set iff corner k's scalar strictly exceeds the
// isovalue; a scalar exactly at the isovalue counts as below) and the
// triangle vertex count the tables predict for that configuration. Cells are
// independent; this runs under the executor with no ordering between cells.
func (e *Extractor) classifyRange(lo, hi int) {
	for id := lo; id < hi; id++ {
		ci := e.space.corners(id)

		cubeIndex := 0
		for k, pi := range ci {
			if e.grid.Scalar(pi) > e.isovalue {
				cubeIndex |= 1 << k
			}
		}

		// The discard-below-minimum filter is accepted as an option but
		// intentionally not applied; see the discardBelowMin note on
		// Extractor.

		e.caseIndex[id] = cubeIndex
		e.numVerts[id] = numVertsTable[cubeIndex]
	}
}
