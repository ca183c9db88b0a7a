package engine

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// CameraConfig describes a pinhole camera looking down -Z.
type CameraConfig struct {
	Origin Vec3
	FOV    float64 // vertical field of view, degrees
	Tilt   Vec3    // added to every normalized primary direction
	Yaw    float64 // rotation about +Y, radians
	Orbit  bool    // move the origin around the scene every frame
}

// DefaultCameraConfig matches the room scenes.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Origin: V(0, 52, 295.6),
		FOV:    70,
		Tilt:   V(0, -0.142612, 0),
	}
}

type camera struct {
	origin    Vec3
	angle     float64
	aspect    float64
	invWidth  float64
	invHeight float64
	tilt      Vec3
	yaw       r3.Rotation
	rotate    bool
}

func newCamera(cfg CameraConfig, width, height int) camera {
	fov := cfg.FOV
	if fov <= 0 {
		fov = 70
	}
	c := camera{
		origin:    cfg.Origin,
		angle:     math.Tan(math.Pi * 0.5 * fov / 180),
		aspect:    float64(width) / float64(height),
		invWidth:  1 / float64(width),
		invHeight: 1 / float64(height),
		tilt:      cfg.Tilt,
	}
	if cfg.Yaw != 0 {
		c.yaw = r3.NewRotation(cfg.Yaw, r3.Vec{Y: 1})
		c.rotate = true
	}
	return c
}

// withOrigin returns a copy of the camera placed at o.
func (c camera) withOrigin(o Vec3) camera {
	c.origin = o
	return c
}

// getRay returns the normalized primary ray through pixel (x, y).
func (c camera) getRay(x, y int) ray {
	xx := (2*(float64(x)*c.invWidth) - 1) * c.angle * c.aspect
	yy := (1 - 2*(float64(y)*c.invHeight)) * c.angle

	dir := V(xx, yy, -1)
	dir.Normalize()
	dir = dir.Add(c.tilt)
	if c.rotate {
		rd := c.yaw.Rotate(r3.Vec{X: dir.X, Y: dir.Y, Z: dir.Z})
		dir = V(rd.X, rd.Y, rd.Z)
	}
	dir.Normalize()
	return ray{orig: c.origin, dir: dir}
}

// OrbitOrigin is the camera position for frame when orbiting.
func OrbitOrigin(frame uint64) Vec3 {
	f := float64(frame)
	return V(math.Sin(f/250)*50, 52, 295.6+math.Cos(f/250)*50)
}
