package engine

import "math"

// Vec3 is a three component vector used for points, directions and colors.
type Vec3 struct {
	X, Y, Z float64
}

// V builds a vector from three components.
func V(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Splat builds a vector with every component set to s.
func Splat(s float64) Vec3 { return Vec3{X: s, Y: s, Z: s} }

func (a Vec3) Add(b Vec3) Vec3    { return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3    { return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z} }
func (a Vec3) Mul(t float64) Vec3 { return Vec3{X: a.X * t, Y: a.Y * t, Z: a.Z * t} }
func (a Vec3) MulVec(b Vec3) Vec3 { return Vec3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z} }
func (a Vec3) Neg() Vec3          { return Vec3{X: -a.X, Y: -a.Y, Z: -a.Z} }
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Length2() float64   { return a.Dot(a) }
func (a Vec3) Length() float64    { return math.Sqrt(a.Length2()) }
func (a Vec3) IsZero() bool       { return a.X == 0 && a.Y == 0 && a.Z == 0 }

func (a Vec3) Cross(b Vec3) Vec3 {
	return V(
		a.Y*b.Z-a.Z*b.Y,
		a.Z*b.X-a.X*b.Z,
		a.X*b.Y-a.Y*b.X,
	)
}

// Normalize scales a to unit length in place and returns it.
// A vector with zero length is left unchanged.
func (a *Vec3) Normalize() *Vec3 {
	l2 := a.Length2()
	if l2 > 0 {
		inv := 1 / math.Sqrt(l2)
		a.X *= inv
		a.Y *= inv
		a.Z *= inv
	}
	return a
}

// Unit returns a normalized copy.
func (a Vec3) Unit() Vec3 {
	a.Normalize()
	return a
}

func reflectVec(d, n Vec3) Vec3 {
	return d.Sub(n.Mul(2 * d.Dot(n)))
}

// mix interpolates linearly from a (t=0) to b (t=1).
func mix(a, b, t float64) float64 {
	return b*t + a*(1-t)
}

type ray struct {
	orig Vec3
	dir  Vec3
}
