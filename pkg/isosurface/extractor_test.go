package isosurface

import (
	"errors"
	"math"
	"testing"

	"github.com/chewxy/math32"

	"github.com/chazu/isomesh/pkg/grid"
)

// sphereField returns a signed-distance sphere of the given radius centered
// at the origin.
func sphereField(radius float32) func(x, y, z float32) float32 {
	return func(x, y, z float32) float32 {
		return math32.Sqrt(x*x+y*y+z*z) - radius
	}
}

// newSphereGrid samples a radius-r sphere on an n^3 lattice spanning
// [-2, 2] per axis.
func newSphereGrid(n int, radius float32) (*grid.UniformGrid, error) {
	spacing := 4.0 / float32(n-1)
	g, err := grid.NewUniformGrid(n, n, n,
		[3]float32{-2, -2, -2}, [3]float32{spacing, spacing, spacing})
	if err != nil {
		return nil, err
	}
	g.Fill(sphereField(radius))
	return g, nil
}

func TestNewRejectsBadDims(t *testing.T) {
	tests := []struct {
		name       string
		nx, ny, nz int
	}{
		{"flat x", 1, 4, 4},
		{"flat y", 4, 1, 4},
		{"flat z", 4, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &fakeGrid{nx: tt.nx, ny: tt.ny, nz: tt.nz}
			if _, err := New(g); !errors.Is(err, grid.ErrBadDims) {
				t.Errorf("New() error = %v, want ErrBadDims", err)
			}
		})
	}
}

func TestNewRejectsMismatchedScalarSource(t *testing.T) {
	g := &fakeGrid{nx: 4, ny: 4, nz: 4}
	src := &fakeGrid{nx: 4, ny: 4, nz: 5}
	if _, err := New(g, WithScalarSource(src)); err == nil {
		t.Error("New() accepted a scalar source with mismatched dims")
	}
}

// fakeGrid is a minimal ScalarGrid for precondition tests.
type fakeGrid struct {
	nx, ny, nz int
}

func (f *fakeGrid) Dims() (int, int, int)  { return f.nx, f.ny, f.nz }
func (f *fakeGrid) Scalar(i int) float32   { return 0 }
func (f *fakeGrid) Coord(i int) [3]float32 { return [3]float32{} }

var _ grid.ScalarGrid = (*fakeGrid)(nil)

func TestExtractEmptyResult(t *testing.T) {
	values := make([]float32, 27)
	for i := range values {
		values[i] = -1
	}
	g := newTestGrid(t, 3, 3, 3, values)

	e, err := New(g, WithExecutor(Serial{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Pre-fill the sink so we can observe it being cleared.
	sink := &MeshSink{Mesh: Mesh{Vertices: []float32{1, 2, 3, 1}, Normals: []float32{0, 0, 1}}}
	if err := e.Extract(sink); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !sink.Mesh.IsEmpty() {
		t.Errorf("expected cleared sink, got %d vertices", sink.Mesh.VertexCount())
	}
	if e.TotalVertices() != 0 {
		t.Errorf("TotalVertices = %d, want 0", e.TotalVertices())
	}
}

func TestExtractSingleCellMidplane(t *testing.T) {
	// One cell with the z=1 layer above the threshold: case 240. All
	// vertices lie on the cell's vertical edges, interpolated exactly
	// halfway between the z=0 and z=1 corner coordinates.
	g := newTestGrid(t, 2, 2, 2, []float32{-1, -1, -1, -1, 1, 1, 1, 1})

	e, err := New(g, WithExecutor(Serial{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mesh, err := e.ExtractMesh()
	if err != nil {
		t.Fatalf("ExtractMesh: %v", err)
	}

	wantVerts := numVertsTable[240]
	if mesh.VertexCount() != wantVerts {
		t.Fatalf("VertexCount = %d, want %d", mesh.VertexCount(), wantVerts)
	}
	for v := 0; v < mesh.VertexCount(); v++ {
		p := mesh.Position(v)
		if p[2] != 0.5 {
			t.Errorf("vertex %d: z = %g, want 0.5", v, p[2])
		}
		if w := mesh.Vertices[v*VertexStride+3]; w != 1 {
			t.Errorf("vertex %d: w = %g, want 1", v, w)
		}
	}

	// The surface cuts the cell horizontally; face normals point along z.
	for v := 0; v < mesh.VertexCount(); v++ {
		n := mesh.Normal(v)
		if math32.Abs(math32.Abs(n[2])-1) > 1e-6 {
			t.Errorf("vertex %d: normal %v not aligned with z", v, n)
		}
	}
}

func TestExtractSphere(t *testing.T) {
	const radius = 1.5
	g, err := newSphereGrid(33, radius)
	if err != nil {
		t.Fatalf("newSphereGrid: %v", err)
	}

	e, err := New(g, WithExecutor(Serial{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mesh, err := e.ExtractMesh()
	if err != nil {
		t.Fatalf("ExtractMesh: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("sphere extraction produced no geometry")
	}

	// Every vertex lies on the sphere to within a cell diagonal.
	spacing := 4.0 / 32.0
	tol := float32(spacing * math.Sqrt(3))
	for v := 0; v < mesh.VertexCount(); v++ {
		p := mesh.Position(v)
		r := math32.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
		if math32.Abs(r-radius) > tol {
			t.Fatalf("vertex %d: radius %g deviates from %g by more than %g", v, r, radius, tol)
		}
	}

	// Triangle count tracks the analytic surface area over the cell size:
	// roughly area/h^2 surface cells, a few triangles each.
	area := 4 * math.Pi * radius * radius
	cells := area / (spacing * spacing)
	tris := float64(mesh.TriangleCount())
	if tris < cells*0.5 || tris > cells*5 {
		t.Errorf("TriangleCount = %d, outside plausible range for %g surface cells",
			mesh.TriangleCount(), cells)
	}

	// Non-degenerate face normals are unit length.
	for v := 0; v < mesh.VertexCount(); v += 3 {
		n := mesh.Normal(v)
		l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if l > 0 && math32.Abs(l-1) > 1e-3 {
			t.Errorf("triangle %d: normal length %g", v/3, l)
		}
	}
}

func TestExtractIdempotent(t *testing.T) {
	g, err := newSphereGrid(17, 1.5)
	if err != nil {
		t.Fatalf("newSphereGrid: %v", err)
	}
	e, err := New(g, WithExecutor(Serial{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first, err := e.ExtractMesh()
	if err != nil {
		t.Fatalf("first ExtractMesh: %v", err)
	}
	second, err := e.ExtractMesh()
	if err != nil {
		t.Fatalf("second ExtractMesh: %v", err)
	}

	assertMeshesEqual(t, first, second)
}

func TestParallelMatchesSerial(t *testing.T) {
	g, err := newSphereGrid(21, 1.5)
	if err != nil {
		t.Fatalf("newSphereGrid: %v", err)
	}

	serial, err := New(g, WithExecutor(Serial{}))
	if err != nil {
		t.Fatalf("New(serial): %v", err)
	}
	parallel, err := New(g, WithExecutor(Parallel{Workers: 7}))
	if err != nil {
		t.Fatalf("New(parallel): %v", err)
	}

	sm, err := serial.ExtractMesh()
	if err != nil {
		t.Fatalf("serial ExtractMesh: %v", err)
	}
	pm, err := parallel.ExtractMesh()
	if err != nil {
		t.Fatalf("parallel ExtractMesh: %v", err)
	}

	assertMeshesEqual(t, sm, pm)
}

func TestMirroredGridSameVertexCount(t *testing.T) {
	// Mirroring a reflection-symmetric field across z relabels cases but
	// leaves the amount of extracted surface unchanged.
	const n = 17
	g, err := newSphereGrid(n, 1.5)
	if err != nil {
		t.Fatalf("newSphereGrid: %v", err)
	}

	mirrored, err := grid.NewUniformGrid(n, n, n,
		[3]float32{-2, -2, -2}, [3]float32{0.25, 0.25, 0.25})
	if err != nil {
		t.Fatalf("NewUniformGrid: %v", err)
	}
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				mirrored.Set(x, y, z, g.Scalar(g.Index(x, y, n-1-z)))
			}
		}
	}

	e1, err := New(g, WithExecutor(Serial{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e2, err := New(mirrored, WithExecutor(Serial{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m1, err := e1.ExtractMesh()
	if err != nil {
		t.Fatalf("ExtractMesh: %v", err)
	}
	m2, err := e2.ExtractMesh()
	if err != nil {
		t.Fatalf("ExtractMesh: %v", err)
	}

	if m1.VertexCount() != m2.VertexCount() {
		t.Errorf("mirrored vertex count %d != original %d",
			m2.VertexCount(), m1.VertexCount())
	}
}

func TestExtractWithScalarSource(t *testing.T) {
	// Secondary attribute = z coordinate of each lattice point; the
	// interpolated output scalar must equal each vertex's z position.
	const n = 9
	g, err := newSphereGrid(n, 1.5)
	if err != nil {
		t.Fatalf("newSphereGrid: %v", err)
	}
	src, err := grid.NewUniformGrid(n, n, n,
		[3]float32{-2, -2, -2}, [3]float32{0.5, 0.5, 0.5})
	if err != nil {
		t.Fatalf("NewUniformGrid: %v", err)
	}
	src.Fill(func(x, y, z float32) float32 { return z })

	e, err := New(g, WithExecutor(Serial{}), WithScalarSource(src))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mesh, err := e.ExtractMesh()
	if err != nil {
		t.Fatalf("ExtractMesh: %v", err)
	}

	if len(mesh.Scalars) != mesh.VertexCount() {
		t.Fatalf("len(Scalars) = %d, want %d", len(mesh.Scalars), mesh.VertexCount())
	}
	for v := 0; v < mesh.VertexCount(); v++ {
		z := mesh.Position(v)[2]
		if math32.Abs(mesh.Scalars[v]-z) > 1e-5 {
			t.Fatalf("vertex %d: scalar %g, want z %g", v, mesh.Scalars[v], z)
		}
	}
}

func TestSetIsovalueChangesResult(t *testing.T) {
	g, err := newSphereGrid(17, 1.0)
	if err != nil {
		t.Fatalf("newSphereGrid: %v", err)
	}
	e, err := New(g, WithExecutor(Serial{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	inner, err := e.ExtractMesh()
	if err != nil {
		t.Fatalf("ExtractMesh: %v", err)
	}

	// Isovalue 0.5 on a signed-distance sphere is the radius-1.5 shell;
	// a bigger sphere means more surface cells.
	e.SetIsovalue(0.5)
	outer, err := e.ExtractMesh()
	if err != nil {
		t.Fatalf("ExtractMesh: %v", err)
	}

	if outer.VertexCount() <= inner.VertexCount() {
		t.Errorf("outer shell vertex count %d not greater than inner %d",
			outer.VertexCount(), inner.VertexCount())
	}
}

func assertMeshesEqual(t *testing.T, a, b *Mesh) {
	t.Helper()
	if len(a.Vertices) != len(b.Vertices) {
		t.Fatalf("vertex buffer lengths differ: %d vs %d", len(a.Vertices), len(b.Vertices))
	}
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex component %d differs: %g vs %g", i, a.Vertices[i], b.Vertices[i])
		}
	}
	for i := range a.Normals {
		if a.Normals[i] != b.Normals[i] {
			t.Fatalf("normal component %d differs: %g vs %g", i, a.Normals[i], b.Normals[i])
		}
	}
}
