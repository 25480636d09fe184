package isosurface

// Strides of the flat output buffers.
const (
	// VertexStride is components per vertex position (x, y, z, w with w=1).
	VertexStride = 4
	// NormalStride is components per vertex normal.
	NormalStride = 3
)

// Mesh is the extracted triangle soup. All arrays are flat and share the
// same implicit vertex index: Vertices has 4 floats per vertex (homogeneous,
// w=1), Normals has 3 floats per vertex, and Scalars, when present, has one
// interpolated attribute value per vertex. Consecutive vertex triples form
// triangles. Normals are flat per-face, replicated to all 3 triangle
// vertices.
type Mesh struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Scalars  []float32 `json:"scalars,omitempty"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / VertexStride
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return m.VertexCount() / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Position returns the xyz position of vertex v.
func (m *Mesh) Position(v int) [3]float32 {
	i := v * VertexStride
	return [3]float32{m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2]}
}

// Normal returns the normal of vertex v.
func (m *Mesh) Normal(v int) [3]float32 {
	i := v * NormalStride
	return [3]float32{m.Normals[i], m.Normals[i+1], m.Normals[i+2]}
}
