package engine

import (
	"math"

	"github.com/user/raytracer/internal/scene"
)

// kEpsilon is the determinant threshold below which a triangle is treated
// as parallel to the ray or back-facing.
const kEpsilon = 1e-8

// ShapeKind tags the geometry carried by an Object.
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeTriangle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// Object is one surface in the scene. Exactly one shape definition is
// meaningful, selected by Kind. Objects are immutable once built.
type Object struct {
	Kind ShapeKind
	Material

	// sphere
	Center  Vec3
	Radius  float64
	radius2 float64

	// triangle, counter-clockwise when seen from the front face
	A, B, C Vec3
	normal  Vec3
}

// Hit carries the outputs of an intersection test. For spheres T0 and T1
// are the near and far roots. For triangles T0 == T1 and U, V are the
// barycentric coordinates of the hit point.
type Hit struct {
	T0, T1 float64
	U, V   float64
}

// NewSphere builds a sphere object.
func NewSphere(center Vec3, radius float64, mat Material) Object {
	return Object{
		Kind:     ShapeSphere,
		Material: mat.sanitized(),
		Center:   center,
		Radius:   radius,
		radius2:  radius * radius,
	}
}

// NewTriangle builds a single-sided triangle object.
func NewTriangle(a, b, c Vec3, mat Material) Object {
	return Object{
		Kind:     ShapeTriangle,
		Material: mat.sanitized(),
		A:        a,
		B:        b,
		C:        c,
		Center:   a.Add(b).Add(c).Mul(1.0 / 3.0),
		normal:   b.Sub(a).Cross(c.Sub(a)).Unit(),
	}
}

// Intersect tests the ray against the object. dir must be normalized.
func (o *Object) Intersect(orig, dir Vec3) (Hit, bool) {
	switch o.Kind {
	case ShapeSphere:
		return o.intersectSphere(orig, dir)
	case ShapeTriangle:
		return o.intersectTriangle(orig, dir)
	}
	return Hit{}, false
}

// intersectSphere projects the sphere centre onto the ray. Spheres whose
// centre lies behind the origin are never hit, even when the origin is
// inside the sphere.
func (o *Object) intersectSphere(orig, dir Vec3) (Hit, bool) {
	l := o.Center.Sub(orig)
	tca := l.Dot(dir)
	if tca < 0 {
		return Hit{}, false
	}
	d2 := l.Dot(l) - tca*tca
	if d2 > o.radius2 {
		return Hit{}, false
	}
	thc := math.Sqrt(o.radius2 - d2)
	return Hit{T0: tca - thc, T1: tca + thc}, true
}

// intersectTriangle is Möller–Trumbore with back-face culling.
func (o *Object) intersectTriangle(orig, dir Vec3) (Hit, bool) {
	ab := o.B.Sub(o.A)
	ac := o.C.Sub(o.A)
	pvec := dir.Cross(ac)
	det := ab.Dot(pvec)
	if det < kEpsilon {
		return Hit{}, false
	}
	invDet := 1 / det

	tvec := orig.Sub(o.A)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return Hit{}, false
	}

	qvec := tvec.Cross(ab)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}

	t := ac.Dot(qvec) * invDet
	if t < kEpsilon {
		return Hit{}, false
	}
	return Hit{T0: t, T1: t, U: u, V: v}, true
}

// normalAt returns the outward geometric normal at p.
func (o *Object) normalAt(p Vec3) Vec3 {
	if o.Kind == ShapeTriangle {
		return o.normal
	}
	return p.Sub(o.Center).Unit()
}

// lightPosition is the point shadow rays aim at when the object is a light.
// For triangles it is the centroid.
func (o *Object) lightPosition() Vec3 {
	return o.Center
}

// BuildScene converts a scene description into the tracer's object list
// and camera settings.
func BuildScene(sc *scene.Scene) (*Scene, CameraConfig) {
	objects := make([]Object, 0, len(sc.Objects))
	for _, o := range sc.Objects {
		mat := convertMaterial(o.Material)
		switch o.Type {
		case scene.ObjectSphere:
			objects = append(objects, NewSphere(vec(o.Position), o.Radius, mat))
		case scene.ObjectTriangle:
			objects = append(objects, NewTriangle(vec(o.Vertices[0]), vec(o.Vertices[1]), vec(o.Vertices[2]), mat))
		}
	}

	world := NewScene(objects...)
	if sc.Background != nil {
		world.Background = V(sc.Background.R, sc.Background.G, sc.Background.B)
	}

	cam := CameraConfig{
		Origin: vec(sc.Camera.Position),
		FOV:    sc.Camera.FOV,
		Tilt:   vec(sc.Camera.Tilt),
	}
	return world, cam
}

func convertMaterial(m scene.Material) Material {
	return Material{
		SurfaceColor:  V(m.Surface.R, m.Surface.G, m.Surface.B),
		EmissionColor: V(m.Emission.R, m.Emission.G, m.Emission.B),
		Reflection:    m.Reflection,
		Transparency:  m.Transparency,
	}
}

func vec(v scene.Vec3) Vec3 { return V(v.X, v.Y, v.Z) }
