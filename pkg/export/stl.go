// Package export converts extracted meshes into interchange formats for
// downstream geometric analysis and fabrication tools.
package export

import (
	"fmt"

	"github.com/unixpickle/model3d/model3d"

	"github.com/chazu/isomesh/pkg/isosurface"
)

// ToModel3D converts an extracted mesh into a model3d triangle mesh.
// Degenerate (zero-area or non-finite) triangles from grazing isovalue
// crossings are carried through unchanged; model3d tolerates them.
func ToModel3D(m *isosurface.Mesh) *model3d.Mesh {
	tris := make([]*model3d.Triangle, 0, m.TriangleCount())
	for t := 0; t < m.TriangleCount(); t++ {
		var tri model3d.Triangle
		for j := 0; j < 3; j++ {
			p := m.Position(t*3 + j)
			tri[j] = model3d.Coord3D{
				X: float64(p[0]),
				Y: float64(p[1]),
				Z: float64(p[2]),
			}
		}
		tris = append(tris, &tri)
	}
	return model3d.NewMeshTriangles(tris)
}

// SaveSTL writes the mesh to path as a grouped binary STL file.
func SaveSTL(m *isosurface.Mesh, path string) error {
	if m.IsEmpty() {
		return fmt.Errorf("export: refusing to write empty mesh to %s", path)
	}
	return ToModel3D(m).SaveGroupedSTL(path)
}
