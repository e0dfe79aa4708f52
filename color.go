package tess

// Color is a linear RGBA color with components in [0, 1]. Tessellators pass
// it through to the patch color attribute untouched.
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	Black       = Color{R: 0, G: 0, B: 0, A: 1}
	White       = Color{R: 1, G: 1, B: 1, A: 1}
	Transparent = Color{}
)

// RGBA creates a color from components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Premultiply returns the color with R, G and B scaled by A.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}
