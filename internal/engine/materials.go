package engine

// Material holds the shading parameters of a scene object.
type Material struct {
	SurfaceColor  Vec3
	EmissionColor Vec3
	Reflection    float64 // 0..1
	Transparency  float64 // 0..1
}

// IsLight reports whether the material emits light.
// Only the first emission channel is consulted.
func (m Material) IsLight() bool {
	return m.EmissionColor.X > 0
}

func (m Material) specular() bool {
	return m.Reflection > 0 || m.Transparency > 0
}

// sanitized clamps reflection and transparency into [0,1].
func (m Material) sanitized() Material {
	m.Reflection = clamp(m.Reflection, 0, 1)
	m.Transparency = clamp(m.Transparency, 0, 1)
	return m
}

func clamp(x, minVal, maxVal float64) float64 {
	if x < minVal {
		return minVal
	}
	if x > maxVal {
		return maxVal
	}
	return x
}
