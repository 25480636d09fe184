package isosurface

// Sink receives the extracted geometry. The pipeline asks the sink for flat
// output buffers sized to the final vertex count, then writes each valid
// cell's vertices into its disjoint [offset, offset+count) range. A sink
// backed by an externally mapped render buffer satisfies the same contract
// as the plain in-memory MeshSink; the pipeline is oblivious to who owns the
// destination memory.
type Sink interface {
	// Alloc provides buffers for totalVertices vertices: vertices with
	// VertexStride components each, normals with NormalStride, and, when
	// withScalars is set, one scalar per vertex (nil otherwise).
	// totalVertices of zero means no surface crosses the grid; the sink
	// must clear any previously held geometry.
	Alloc(totalVertices int, withScalars bool) (vertices, normals, scalars []float32, err error)
}

// MeshSink writes extraction output into a Mesh it owns.
type MeshSink struct {
	Mesh Mesh
}

// Compile-time interface check.
var _ Sink = (*MeshSink)(nil)

// Alloc resizes the mesh arrays for totalVertices vertices. Previous
// contents are discarded; capacity is reused across invocations when
// possible.
func (s *MeshSink) Alloc(totalVertices int, withScalars bool) (vertices, normals, scalars []float32, err error) {
	s.Mesh.Vertices = resize(s.Mesh.Vertices, totalVertices*VertexStride)
	s.Mesh.Normals = resize(s.Mesh.Normals, totalVertices*NormalStride)
	if withScalars {
		s.Mesh.Scalars = resize(s.Mesh.Scalars, totalVertices)
	} else {
		s.Mesh.Scalars = nil
	}
	return s.Mesh.Vertices, s.Mesh.Normals, s.Mesh.Scalars, nil
}

// resize returns a slice of length n, reusing buf's backing array when it is
// large enough.
func resize(buf []float32, n int) []float32 {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float32, n)
}
