package field

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// sdfField wraps an sdf.SDF3 to implement Field.
type sdfField struct {
	s sdf.SDF3
}

// Compile-time interface check.
var _ Field = (*sdfField)(nil)

// Evaluate returns the signed distance at a world coordinate.
func (f *sdfField) Evaluate(x, y, z float64) float64 {
	return f.s.Evaluate(v3.Vec{X: x, Y: y, Z: z})
}

// BoundingBox returns the solid's axis-aligned bounding box.
func (f *sdfField) BoundingBox() (min, max [3]float64) {
	bb := f.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// fieldSDF adapts any Field back into an sdf.SDF3 so fields that are not
// sdfx-native (e.g. Func) can still pass through the combinators.
type fieldSDF struct {
	f Field
}

func (a *fieldSDF) Evaluate(p v3.Vec) float64 {
	return a.f.Evaluate(p.X, p.Y, p.Z)
}

func (a *fieldSDF) BoundingBox() sdf.Box3 {
	min, max := a.f.BoundingBox()
	return sdf.Box3{
		Min: v3.Vec{X: min[0], Y: min[1], Z: min[2]},
		Max: v3.Vec{X: max[0], Y: max[1], Z: max[2]},
	}
}

// unwrap extracts the underlying sdf.SDF3 from a Field.
func unwrap(f Field) sdf.SDF3 {
	if sf, ok := f.(*sdfField); ok {
		return sf.s
	}
	return &fieldSDF{f: f}
}

// wrap creates a Field from an sdf.SDF3.
func wrap(s sdf.SDF3) Field {
	return &sdfField{s: s}
}

// Sphere creates a sphere of the given radius centered at the origin.
func Sphere(radius float64) Field {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Sphere3D: %v", err))
	}
	return wrap(s)
}

// Box creates a box with the given dimensions centered at the origin.
func Box(x, y, z float64) Field {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(s)
}

// Cylinder creates a z-axis cylinder with the given height and radius,
// centered at the origin.
func Cylinder(height, radius float64) Field {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Union returns the union of two fields.
func Union(a, b Field) Field {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func Difference(a, b Field) Field {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersect returns the intersection of two fields.
func Intersect(a, b Field) Field {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a field by (x, y, z).
func Translate(f Field, x, y, z float64) Field {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(f), m))
}

// Rotate rotates a field by Euler angles (degrees) around X, Y, Z axes.
func Rotate(f Field, x, y, z float64) Field {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(f), m))
}
