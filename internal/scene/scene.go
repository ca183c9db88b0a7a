package scene

import (
	"fmt"
	"sort"
)

// Vec3 represents a simple 3D vector or point.
type Vec3 struct {
	X, Y, Z float64
}

// Color is an RGB color in linear space.
type Color struct {
	R, G, B float64
}

// Camera describes the viewpoint for the renderer. The camera looks down -Z.
type Camera struct {
	Position Vec3
	FOV      float64
	Tilt     Vec3 // added to every primary ray direction
}

// Material describes surface properties. An object whose Emission.R is
// positive is a light.
type Material struct {
	Surface      Color
	Emission     Color
	Reflection   float64
	Transparency float64
}

// ObjectType enumerates supported geometric primitives.
type ObjectType string

const (
	ObjectSphere   ObjectType = "sphere"
	ObjectTriangle ObjectType = "triangle"
)

// Object is a single entity in the scene.
type Object struct {
	ID   string
	Type ObjectType

	Position Vec3    // sphere centre
	Radius   float64 // sphere radius
	Vertices [3]Vec3 // triangle corners, counter-clockwise from the lit side

	Material Material
}

// Scene holds everything needed to render an image.
type Scene struct {
	Name       string
	Camera     Camera
	Objects    []Object
	Background *Color // nil uses the renderer default
}

// Sphere is shorthand for a sphere object.
func Sphere(id string, center Vec3, radius float64, m Material) Object {
	return Object{ID: id, Type: ObjectSphere, Position: center, Radius: radius, Material: m}
}

// Triangle is shorthand for a triangle object.
func Triangle(id string, a, b, c Vec3, m Material) Object {
	return Object{ID: id, Type: ObjectTriangle, Vertices: [3]Vec3{a, b, c}, Material: m}
}

// Default is the scene the renderer starts with.
const Default = "spheres"

var builders = map[string]func(seed int64) *Scene{
	"cornell": func(int64) *Scene { return Cornell() },
	"spheres": func(int64) *Scene { return Spheres() },
	"field":   func(seed int64) *Scene { return Field(seed, 24) },
}

// Names lists the built-in scenes.
func Names() []string {
	names := make([]string, 0, len(builders))
	for n := range builders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ByName builds a built-in scene. seed only affects generated scenes.
func ByName(name string, seed int64) (*Scene, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (have %v)", name, Names())
	}
	return b(seed), nil
}
