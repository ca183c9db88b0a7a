package engine

import (
	"testing"

	"github.com/user/raytracer/internal/scene"
)

func TestSphereIntersectHeadOn(t *testing.T) {
	s := NewSphere(V(0, 0, -10), 2, Material{})
	h, ok := s.Intersect(V(0, 0, 0), V(0, 0, -1))
	if !ok {
		t.Fatal("expected hit")
	}
	if !approx(h.T0, 8, tolerance) || !approx(h.T1, 12, tolerance) {
		t.Errorf("t0, t1 = %v, %v; want 8, 12", h.T0, h.T1)
	}
}

func TestSphereIntersect(t *testing.T) {
	s := NewSphere(V(0, 0, 0), 1, Material{})

	tests := []struct {
		name      string
		orig, dir Vec3
		hit       bool
	}{
		{"miss to the side", V(0, 5, 5), V(0, 0, -1), false},
		{"grazing", V(1, 0, 5), V(0, 0, -1), true},
		{"behind origin", V(0, 0, 5), V(0, 0, 1), false},
		// The centre is behind the origin, so a ray from inside looking
		// away from it is rejected.
		{"inside looking away from centre", V(0, 0, 0.5), V(0, 0, 1), false},
		{"inside looking at centre", V(0, 0, 0.5), V(0, 0, -1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := s.Intersect(tt.orig, tt.dir)
			if ok != tt.hit {
				t.Errorf("hit = %v, want %v", ok, tt.hit)
			}
		})
	}
}

func TestSphereInsideGivesNegativeNearRoot(t *testing.T) {
	s := NewSphere(V(0, 0, 0), 1, Material{})
	h, ok := s.Intersect(V(0, 0, 0.5), V(0, 0, -1))
	if !ok {
		t.Fatal("expected hit")
	}
	if h.T0 >= 0 || !approx(h.T1, 1.5, tolerance) {
		t.Errorf("t0, t1 = %v, %v; want negative, 1.5", h.T0, h.T1)
	}
}

func TestTriangleFrontFaceCentroid(t *testing.T) {
	tri := NewTriangle(V(0, 0, 0), V(1, 0, 0), V(0, 1, 0), Material{})
	centroid := V(1.0/3, 1.0/3, 0)

	// The normal of a counter-clockwise triangle in the XY plane is +Z.
	if !vecApprox(tri.normal, V(0, 0, 1), tolerance) {
		t.Fatalf("normal = %v, want (0,0,1)", tri.normal)
	}

	h, ok := tri.Intersect(centroid.Add(V(0, 0, 2)), V(0, 0, -1))
	if !ok {
		t.Fatal("front-face ray through the centroid should hit")
	}
	if !approx(h.T0, 2, tolerance) {
		t.Errorf("t = %v, want 2", h.T0)
	}
	if h.U < 0 || h.V < 0 || h.U+h.V > 1 {
		t.Errorf("barycentric (%v, %v) outside triangle", h.U, h.V)
	}
	if !approx(h.U, 1.0/3, 1e-12) || !approx(h.V, 1.0/3, 1e-12) {
		t.Errorf("barycentric (%v, %v), want (1/3, 1/3)", h.U, h.V)
	}
}

func TestTriangleRejects(t *testing.T) {
	tri := NewTriangle(V(0, 0, 0), V(1, 0, 0), V(0, 1, 0), Material{})

	tests := []struct {
		name      string
		orig, dir Vec3
	}{
		{"back face", V(0.25, 0.25, -2), V(0, 0, 1)},
		{"parallel", V(0.25, 0.25, 1), V(1, 0, 0)},
		{"outside u", V(-0.5, 0.25, 2), V(0, 0, -1)},
		{"outside u+v", V(0.8, 0.8, 2), V(0, 0, -1)},
		{"behind origin", V(0.25, 0.25, -2), V(0, 0, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := tri.Intersect(tt.orig, tt.dir); ok {
				t.Error("expected miss")
			}
		})
	}
}

func TestTriangleLightPositionIsCentroid(t *testing.T) {
	tri := NewTriangle(V(0, 0, 0), V(3, 0, 0), V(0, 3, 0), Material{})
	if got := tri.lightPosition(); !vecApprox(got, V(1, 1, 0), tolerance) {
		t.Errorf("lightPosition = %v, want (1,1,0)", got)
	}
}

func TestMaterialSanitized(t *testing.T) {
	s := NewSphere(V(0, 0, 0), 1, Material{Reflection: 2, Transparency: -1})
	if s.Reflection != 1 || s.Transparency != 0 {
		t.Errorf("reflection, transparency = %v, %v; want 1, 0", s.Reflection, s.Transparency)
	}
}

func TestBuildSceneCornell(t *testing.T) {
	world, cam := BuildScene(scene.Cornell())

	if len(world.Objects) != 10 {
		t.Fatalf("objects = %d, want 10", len(world.Objects))
	}
	if got := len(world.Lights()); got != 2 {
		t.Errorf("lights = %d, want 2", got)
	}
	if k := world.Objects[9].Kind; k != ShapeTriangle {
		t.Errorf("last object kind = %v, want triangle", k)
	}
	if world.Background != DefaultBackground {
		t.Errorf("background = %v, want default", world.Background)
	}
	want := DefaultCameraConfig()
	if cam.Origin != want.Origin || cam.FOV != want.FOV || cam.Tilt != want.Tilt {
		t.Errorf("camera = %+v, want %+v", cam, want)
	}
}

func TestBuildSceneBackground(t *testing.T) {
	desc := &scene.Scene{Background: &scene.Color{R: 0.1, G: 0.2, B: 0.3}}
	world, _ := BuildScene(desc)
	if world.Background != V(0.1, 0.2, 0.3) {
		t.Errorf("background = %v", world.Background)
	}
}
