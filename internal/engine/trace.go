package engine

import "math"

const (
	// MaxRayDepth bounds the reflection/refraction recursion.
	MaxRayDepth = 5

	// bias pushes secondary ray origins off the surface they start from.
	bias = 1e-4

	// ior is the fixed index of refraction of every transparent object.
	ior = 1.1
)

// DefaultBackground is returned for rays that hit nothing.
var DefaultBackground = Splat(1)

// Scene is the ordered list of objects the tracer scans. Order only
// matters when two hits share the same distance.
type Scene struct {
	Objects    []Object
	Background Vec3
}

// NewScene wraps objects with the default background.
func NewScene(objects ...Object) *Scene {
	return &Scene{Objects: objects, Background: DefaultBackground}
}

// Lights returns the indices of the emissive objects.
func (s *Scene) Lights() []int {
	var idx []int
	for i := range s.Objects {
		if s.Objects[i].IsLight() {
			idx = append(idx, i)
		}
	}
	return idx
}

// nearest scans every object and returns the closest hit in front of orig.
func (s *Scene) nearest(orig, dir Vec3) (*Object, float64) {
	tnear := math.Inf(1)
	var hitObj *Object
	for i := range s.Objects {
		h, ok := s.Objects[i].Intersect(orig, dir)
		if !ok {
			continue
		}
		t := h.T0
		if t < 0 {
			t = h.T1
		}
		if t >= 0 && t < tnear {
			tnear = t
			hitObj = &s.Objects[i]
		}
	}
	return hitObj, tnear
}

// occluded reports whether any object other than skip blocks the ray.
// There is no distance check against the light, so an object beyond the
// light still casts a shadow.
func (s *Scene) occluded(orig, dir Vec3, skip int) bool {
	for j := range s.Objects {
		if j == skip {
			continue
		}
		if _, ok := s.Objects[j].Intersect(orig, dir); ok {
			return true
		}
	}
	return false
}

// Trace returns the color seen along the ray (orig, dir). dir must be
// normalized. The scene is only read.
func Trace(orig, dir Vec3, sc *Scene, depth int) Vec3 {
	obj, tnear := sc.nearest(orig, dir)
	if obj == nil {
		return sc.Background
	}

	phit := orig.Add(dir.Mul(tnear))
	nhit := obj.normalAt(phit)
	inside := false
	if dir.Dot(nhit) > 0 {
		nhit = nhit.Neg()
		inside = true
	}

	var surfaceColor Vec3
	if obj.specular() && depth < MaxRayDepth {
		surfaceColor = shadeSpecular(obj, phit, nhit, dir, inside, sc, depth)
	} else {
		surfaceColor = shadeDiffuse(obj, phit, nhit, sc)
	}
	return surfaceColor.Add(obj.EmissionColor)
}

func shadeSpecular(obj *Object, phit, nhit, dir Vec3, inside bool, sc *Scene, depth int) Vec3 {
	facingRatio := -dir.Dot(nhit)
	fresnel := mix(math.Pow(1-facingRatio, 3), 1, 0.1)

	reflDir := reflectVec(dir, nhit)
	reflDir.Normalize()
	reflection := Trace(phit.Add(nhit.Mul(bias)), reflDir, sc, depth+1)

	var refraction Vec3
	if obj.Transparency > 0 {
		eta := 1 / ior
		if inside {
			eta = ior
		}
		cosi := -nhit.Dot(dir)
		k := 1 - eta*eta*(1-cosi*cosi)
		if k < 0 {
			// total internal reflection: all light goes to the reflected ray
			refraction = reflection
		} else {
			refrDir := dir.Mul(eta).Add(nhit.Mul(eta*cosi - math.Sqrt(k)))
			refrDir.Normalize()
			refraction = Trace(phit.Sub(nhit.Mul(bias)), refrDir, sc, depth+1)
		}
	}

	return reflection.Mul(fresnel * obj.Reflection).
		Add(refraction.Mul((1 - fresnel) * obj.Transparency)).
		MulVec(obj.SurfaceColor)
}

func shadeDiffuse(obj *Object, phit, nhit Vec3, sc *Scene) Vec3 {
	var color Vec3
	shadowOrig := phit.Add(nhit.Mul(bias))
	for i := range sc.Objects {
		light := &sc.Objects[i]
		if !light.IsLight() {
			continue
		}
		lightDir := light.lightPosition().Sub(phit)
		lightDir.Normalize()
		if sc.occluded(shadowOrig, lightDir, i) {
			continue
		}
		cos := math.Max(0, nhit.Dot(lightDir))
		color = color.Add(obj.SurfaceColor.MulVec(light.EmissionColor).Mul(cos))
	}
	return color
}
