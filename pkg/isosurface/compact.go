package isosurface

import "sort"

// compact turns the per-cell vertex counts into a dense enumeration of the
// cells the isosurface actually crosses. It computes, in grid order, the
// original index of every valid cell (vertex count != 0) and the exclusive
// prefix sum of their vertex counts, which is each cell's starting slot in
// the output buffers. Returns the number of valid cells; zero means no
// surface crosses the grid at this isovalue.
func (e *Extractor) compact() int {
	// Inclusive scan over the 0/1 valid projection. The scan itself is the
	// stage's serialization point; everything after it is parallel again.
	running := 0
	for i, nv := range e.numVerts {
		if nv != 0 {
			running++
		}
		e.validEnum[i] = running
	}
	numValid := running
	if numValid == 0 {
		e.validCells = e.validCells[:0]
		e.vertexOffsets = e.vertexOffsets[:0]
		e.totalVerts = 0
		return 0
	}

	// Recover, in output order, which original cells survived: the r-th
	// valid cell is the first index whose running count exceeds r.
	e.validCells = resizeInts(e.validCells, numValid)
	e.exec.For(numValid, func(lo, hi int) {
		for r := lo; r < hi; r++ {
			e.validCells[r] = sort.SearchInts(e.validEnum, r+1)
		}
	})

	// Exclusive scan of the gathered vertex counts gives each valid cell's
	// first output vertex index.
	e.vertexOffsets = resizeInts(e.vertexOffsets, numValid)
	sum := 0
	for r, cell := range e.validCells {
		e.vertexOffsets[r] = sum
		sum += e.numVerts[cell]
	}
	e.totalVerts = sum
	return numValid
}

// resizeInts returns a slice of length n, reusing buf's backing array when
// it is large enough.
func resizeInts(buf []int, n int) []int {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]int, n)
}
