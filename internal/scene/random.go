package scene

import (
	"fmt"
	"math"
	"math/rand"
)

// randSource is a lightweight wrapper around math/rand.Rand.
// It is not safe for concurrent use.
type randSource struct {
	r *rand.Rand
}

func newRandSource(seed int64) *randSource {
	return &randSource{r: rand.New(rand.NewSource(seed))}
}

func (rs *randSource) Float64() float64 {
	return rs.r.Float64()
}

// between returns a uniform value in [lo, hi).
func (rs *randSource) between(lo, hi float64) float64 {
	return lo + (hi-lo)*rs.r.Float64()
}

// Field scatters n non-overlapping spheres over a ground sphere, lit from
// above. The same seed always produces the same scene.
func Field(seed int64, n int) *Scene {
	rng := newRandSource(seed)

	sc := &Scene{
		Name:   fmt.Sprintf("field-%d", seed),
		Camera: Camera{Position: Vec3{0, 4, 10}, FOV: 50, Tilt: Vec3{0, -0.15, 0}},
		Objects: []Object{
			Sphere("ground", Vec3{0, -10000, -20}, 10000, diffuse(0.4, 0.4, 0.4)),
			Sphere("light", Vec3{-10, 40, -10}, 2, Material{Emission: Color{2, 2, 2}}),
		},
	}

	placed := make([]Object, 0, n)
	for attempts := 0; len(placed) < n && attempts < n*20; attempts++ {
		r := rng.between(0.4, 1.6)
		c := Vec3{rng.between(-12, 12), r, rng.between(-40, -6)}
		if overlaps(placed, c, r) {
			continue
		}

		m := Material{Surface: Color{rng.between(0.2, 1), rng.between(0.2, 1), rng.between(0.2, 1)}}
		switch p := rng.Float64(); {
		case p < 0.25:
			m.Reflection = 1
		case p < 0.4:
			m.Reflection = 1
			m.Transparency = rng.between(0.5, 1)
		}
		placed = append(placed, Sphere(fmt.Sprintf("ball-%d", len(placed)), c, r, m))
	}
	sc.Objects = append(sc.Objects, placed...)
	return sc
}

func overlaps(objs []Object, c Vec3, r float64) bool {
	for _, o := range objs {
		dx, dy, dz := o.Position.X-c.X, o.Position.Y-c.Y, o.Position.Z-c.Z
		if math.Sqrt(dx*dx+dy*dy+dz*dz) < o.Radius+r {
			return true
		}
	}
	return false
}
