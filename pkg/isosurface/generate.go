package isosurface

import "github.com/chewxy/math32"

// generateRange emits geometry for the valid cells with ranks [lo, hi).
// Each cell re-derives its corner samples, walks the table-specified edges
// to interpolate vertex positions (and optionally a secondary scalar
// attribute) at the isosurface crossing, then assigns a flat face normal to
// each emitted triangle. Distinct cells write disjoint offset ranges, so
// ranks need no synchronization between them.
func (e *Extractor) generateRange(verts, norms, scalars []float32, lo, hi int) {
	for r := lo; r < hi; r++ {
		cellID := e.validCells[r]
		offset := e.vertexOffsets[r]
		cubeIndex := e.caseIndex[cellID]
		numVerts := e.numVerts[cellID]

		ci := e.space.corners(cellID)

		var f [8]float32
		var p [8][3]float32
		for k, pi := range ci {
			f[k] = e.grid.Scalar(pi)
			p[k] = e.grid.Coord(pi)
		}

		var s [8]float32
		if scalars != nil {
			for k, pi := range ci {
				s[k] = e.source.Scalar(pi)
			}
		}

		row := &triTable[cubeIndex]
		for v := 0; v < numVerts; v++ {
			edge := row[v]
			c0 := edgeCorners[edge][0]
			c1 := edgeCorners[edge][1]

			// Equal corner values make t non-finite; the resulting
			// degenerate vertex is tolerated rather than special-cased.
			t := (e.isovalue - f[c0]) / (f[c1] - f[c0])

			vi := (offset + v) * VertexStride
			verts[vi+0] = lerp(p[c0][0], p[c1][0], t)
			verts[vi+1] = lerp(p[c0][1], p[c1][1], t)
			verts[vi+2] = lerp(p[c0][2], p[c1][2], t)
			verts[vi+3] = 1

			if scalars != nil {
				scalars[offset+v] = lerp(s[c0], s[c1], t)
			}
		}

		// One normal per triangle, replicated to its 3 vertices.
		for v := 0; v < numVerts; v += 3 {
			base := (offset + v) * VertexStride
			e0x := verts[base+4] - verts[base+0]
			e0y := verts[base+5] - verts[base+1]
			e0z := verts[base+6] - verts[base+2]
			e1x := verts[base+8] - verts[base+0]
			e1y := verts[base+9] - verts[base+1]
			e1z := verts[base+10] - verts[base+2]

			nx := e0y*e1z - e0z*e1y
			ny := e0z*e1x - e0x*e1z
			nz := e0x*e1y - e0y*e1x
			if l := math32.Sqrt(nx*nx + ny*ny + nz*nz); l > 0 {
				nx /= l
				ny /= l
				nz /= l
			}

			ni := (offset + v) * NormalStride
			for j := 0; j < 3; j++ {
				norms[ni+0] = nx
				norms[ni+1] = ny
				norms[ni+2] = nz
				ni += NormalStride
			}
		}
	}
}

func lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}
