package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/isomesh/pkg/isosurface"
)

// twoTriangleMesh builds a minimal mesh: two triangles of a unit quad in
// the z=0 plane.
func twoTriangleMesh() *isosurface.Mesh {
	return &isosurface.Mesh{
		Vertices: []float32{
			0, 0, 0, 1,
			1, 0, 0, 1,
			1, 1, 0, 1,
			0, 0, 0, 1,
			1, 1, 0, 1,
			0, 1, 0, 1,
		},
		Normals: []float32{
			0, 0, 1, 0, 0, 1, 0, 0, 1,
			0, 0, 1, 0, 0, 1, 0, 0, 1,
		},
	}
}

func TestSaveSTL(t *testing.T) {
	m := twoTriangleMesh()
	path := filepath.Join(t.TempDir(), "out.stl")

	if err := SaveSTL(m, path); err != nil {
		t.Fatalf("SaveSTL: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	// Binary STL: 80-byte header + 4-byte count + 50 bytes per triangle.
	if min := int64(84 + 50*2); info.Size() < min {
		t.Errorf("STL file size %d smaller than minimum %d", info.Size(), min)
	}
}

func TestSaveSTLRefusesEmptyMesh(t *testing.T) {
	var m isosurface.Mesh
	path := filepath.Join(t.TempDir(), "out.stl")
	if err := SaveSTL(&m, path); err == nil {
		t.Error("SaveSTL accepted an empty mesh")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty mesh still produced a file")
	}
}
