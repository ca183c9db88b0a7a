package scene

var roomCamera = Camera{
	Position: Vec3{0, 52, 295.6},
	FOV:      70,
	Tilt:     Vec3{0, -0.142612, 0},
}

func diffuse(r, g, b float64) Material {
	return Material{Surface: Color{r, g, b}}
}

// Cornell is a box built from six huge spheres with a mirror ball, a glass
// ball, a small spherical light and an emissive triangle.
//
// Shadow rays are not limited to the distance of the light, so the walls
// behind each light block it: diffuse surfaces seen directly stay black and
// only emitters and their mirror images show.
func Cornell() *Scene {
	return &Scene{
		Name:   "cornell",
		Camera: roomCamera,
		Objects: []Object{
			Sphere("left", Vec3{-1e5 - 100, 40.8, 81.6}, 1e5, diffuse(0.75, 0.25, 0.25)),
			Sphere("right", Vec3{1e5 + 100, 40.8, 81.6}, 1e5, diffuse(0.25, 0.25, 0.75)),
			Sphere("back", Vec3{0, 40.8, -1e5 - 81.6}, 1e5, Material{Surface: Color{0.25, 0.25, 0.25}, Reflection: 1}),
			Sphere("front", Vec3{0, 40.8, 1e5 + 81.6}, 1e5, diffuse(0.75, 0.75, 0.75)),
			Sphere("top", Vec3{0, 1e5 + 120.6, 81.6}, 1e5, diffuse(0.75, 0.25, 0.75)),
			Sphere("bottom", Vec3{0, -1e5 - 60.8, 81.6}, 1e5, diffuse(0.75, 0.75, 0.25)),

			Sphere("mirror", Vec3{-50, 16.5, 77}, 1, Material{Surface: Color{1, 1, 1}, Reflection: 1}),
			Sphere("glass", Vec3{50, 16.5, 78}, 4.5, Material{Surface: Color{1, 1, 1}, Transparency: 1}),

			Sphere("light", Vec3{0, 80.6, 50}, 1, Material{
				Surface:    Color{1, 1, 1},
				Emission:   Color{1, 1, 1},
				Reflection: 1,
			}),
			Triangle("panel", Vec3{90, 30, 10}, Vec3{10, 50, -30}, Vec3{10, -30, 70}, Material{
				Surface:  Color{0.2, 1, 0.2},
				Emission: Color{1, 1, 1},
			}),
		},
	}
}

// Spheres is the classic five-sphere scene: a grey ground, four shiny
// balls (one of them transparent) and an overhead light.
func Spheres() *Scene {
	return &Scene{
		Name:   "spheres",
		Camera: Camera{FOV: 30},
		Objects: []Object{
			Sphere("ground", Vec3{0, -10004, -20}, 10000, diffuse(0.20, 0.20, 0.20)),
			Sphere("red", Vec3{0, 0, -20}, 4, Material{Surface: Color{1.00, 0.32, 0.36}, Reflection: 1, Transparency: 0.5}),
			Sphere("yellow", Vec3{5, -1, -15}, 2, Material{Surface: Color{0.90, 0.76, 0.46}, Reflection: 1}),
			Sphere("blue", Vec3{5, 0, -25}, 3, Material{Surface: Color{0.65, 0.77, 0.97}, Reflection: 1}),
			Sphere("white", Vec3{-5.5, 0, -15}, 3, Material{Surface: Color{0.90, 0.90, 0.90}, Reflection: 1}),
			Sphere("light", Vec3{0, 20, -30}, 3, Material{Emission: Color{3, 3, 3}}),
		},
	}
}
