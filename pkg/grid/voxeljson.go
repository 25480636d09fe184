package grid

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// ReadVoxelJSON reads a JSON-encoded voxel grid into a UniformGrid. The
// input is a 3D array with z on the outer dimension, then y, then x, and
// must be a perfect N×N×N cube with N >= 2. The lattice spans the unit cube
// with its origin at (0,0,0).
func ReadVoxelJSON(r io.Reader) (*UniformGrid, error) {
	var object [][][]float64
	dec := json.NewDecoder(r)
	if err := dec.Decode(&object); err != nil {
		return nil, errors.Wrap(err, "read voxel grid")
	}
	size := len(object)
	if size < 2 {
		return nil, errors.Errorf("read voxel grid: need at least 2 samples per axis, got %d", size)
	}
	values := make([]float32, 0, size*size*size)
	for _, yPlane := range object {
		if len(yPlane) != size {
			return nil, errors.New("read voxel grid: invalid dimensions")
		}
		for _, xLine := range yPlane {
			if len(xLine) != size {
				return nil, errors.New("read voxel grid: invalid dimensions")
			}
			for _, v := range xLine {
				values = append(values, float32(v))
			}
		}
	}

	spacing := 1.0 / float32(size-1)
	g, err := NewUniformGrid(size, size, size,
		[3]float32{0, 0, 0}, [3]float32{spacing, spacing, spacing})
	if err != nil {
		return nil, err
	}
	if err := g.SetAll(values); err != nil {
		return nil, err
	}
	return g, nil
}
