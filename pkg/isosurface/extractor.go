// Package isosurface extracts a triangulated isosurface from a regular 3-D
// scalar grid using marching cubes. Extraction is a three-stage pipeline:
// classify every cell against the 256 corner-sign configurations, compact
// the sparse set of surface-crossing cells into a dense list with output
// offsets via prefix sums, then generate interpolated vertices and flat face
// normals into a contiguous sink. Each stage is a barrier; within a stage
// the per-cell work fans out over the configured executor.
package isosurface

import (
	"fmt"

	"github.com/chazu/isomesh/pkg/grid"
)

// Extractor runs the marching-cubes pipeline over one grid. It owns all
// transient per-cell and per-vertex buffers and rebuilds them on every
// Extract call; only the triangulation tables and its configuration survive
// between invocations. An Extractor must not be shared across concurrent
// Extract calls.
type Extractor struct {
	grid     grid.ScalarGrid
	source   grid.ScalarGrid // optional secondary attribute field
	isovalue float32
	exec     Executor

	// discardBelowMin is a recognized but inert option: the classifier is
	// meant to invalidate cells whose corners include sentinel readings
	// below a minimum valid value, but the filter has never been enabled in
	// production. The flag is carried so the call surface is stable.
	discardBelowMin bool

	space cellSpace

	// Per-cell working arrays, length = cell count.
	caseIndex []int
	numVerts  []int
	validEnum []int

	// Per-valid-cell arrays, length = valid cell count.
	validCells    []int
	vertexOffsets []int

	totalVerts int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithIsovalue sets the extraction threshold. The default is 0, the natural
// choice for signed-distance fields.
func WithIsovalue(v float32) Option {
	return func(e *Extractor) { e.isovalue = v }
}

// WithScalarSource attaches a secondary scalar field whose values are
// interpolated into the output scalar buffer. It must share the grid's
// point-lattice dimensions.
func WithScalarSource(src grid.ScalarGrid) Option {
	return func(e *Extractor) { e.source = src }
}

// WithExecutor sets the execution strategy. The default is Parallel.
func WithExecutor(x Executor) Option {
	return func(e *Extractor) { e.exec = x }
}

// WithDiscardBelowMin sets the inert sentinel-filter flag. See the
// discardBelowMin field note.
func WithDiscardBelowMin(on bool) Option {
	return func(e *Extractor) { e.discardBelowMin = on }
}

// New creates an Extractor for the given grid. Grids with any dimension
// below 2 points are rejected.
func New(g grid.ScalarGrid, opts ...Option) (*Extractor, error) {
	nx, ny, nz := g.Dims()
	if err := grid.ValidateDims(nx, ny, nz); err != nil {
		return nil, err
	}

	e := &Extractor{
		grid:  g,
		exec:  Parallel{},
		space: newCellSpace(g),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.source != nil {
		sx, sy, sz := e.source.Dims()
		if sx != nx || sy != ny || sz != nz {
			return nil, fmt.Errorf("isosurface: scalar source dims %dx%dx%d do not match grid dims %dx%dx%d",
				sx, sy, sz, nx, ny, nz)
		}
	}
	return e, nil
}

// SetIsovalue changes the extraction threshold for subsequent Extract calls.
func (e *Extractor) SetIsovalue(v float32) {
	e.isovalue = v
}

// Isovalue returns the current extraction threshold.
func (e *Extractor) Isovalue() float32 {
	return e.isovalue
}

// TotalVertices returns the vertex count produced by the last Extract call.
func (e *Extractor) TotalVertices() int {
	return e.totalVerts
}

// Extract runs the full pipeline and writes the resulting geometry into
// dst. Zero valid cells is a normal outcome: the sink is cleared and Extract
// returns nil. Partial results are never exposed; on error the sink contents
// are unspecified and the caller discards the invocation.
func (e *Extractor) Extract(dst Sink) error {
	nCells := e.space.cellCount()

	e.caseIndex = resizeInts(e.caseIndex, nCells)
	e.numVerts = resizeInts(e.numVerts, nCells)
	e.validEnum = resizeInts(e.validEnum, nCells)

	e.exec.For(nCells, e.classifyRange)

	numValid := e.compact()
	if numValid == 0 {
		if _, _, _, err := dst.Alloc(0, e.source != nil); err != nil {
			return fmt.Errorf("isosurface: clearing sink: %w", err)
		}
		return nil
	}

	verts, norms, scalars, err := dst.Alloc(e.totalVerts, e.source != nil)
	if err != nil {
		return fmt.Errorf("isosurface: allocating %d output vertices: %w", e.totalVerts, err)
	}

	e.exec.For(numValid, func(lo, hi int) {
		e.generateRange(verts, norms, scalars, lo, hi)
	})
	return nil
}

// ExtractMesh is a convenience wrapper that extracts into a fresh MeshSink
// and returns its mesh.
func (e *Extractor) ExtractMesh() (*Mesh, error) {
	var sink MeshSink
	if err := e.Extract(&sink); err != nil {
		return nil, err
	}
	return &sink.Mesh, nil
}
