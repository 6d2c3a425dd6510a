package rcsim

// Projection maps a 2D reference frame point (meters) to a display point (pixels).
type Projection interface {
	Project(x, y float64) (px, py float64)
}

// ProjectionFunc adapts a function to the Projection interface.
type ProjectionFunc func(x, y float64) (px, py float64)

// Project implements the Projection interface.
func (f ProjectionFunc) Project(x, y float64) (px, py float64) {
	return f(x, y)
}

// LinearProjection scales meters into pixels around an origin. Screen y points down.
type LinearProjection struct {
	OriginX, OriginY float64 // pixels
	Scale            float64 // pixels per meter
}

// Project implements the Projection interface.
func (p LinearProjection) Project(x, y float64) (px, py float64) {
	return p.OriginX + x*p.Scale, p.OriginY - y*p.Scale
}

// Sprite is what a renderer needs to draw the aircraft. It only reads the model.
type Sprite struct {
	Model *Aircraft
	Proj  Projection
}

// NewSprite returns a new sprite for the provided aircraft.
func NewSprite(a *Aircraft, proj Projection) *Sprite {
	return &Sprite{a, proj}
}

// Update returns the display center of the aircraft and the image rotation, i.e. the yaw.
func (s *Sprite) Update() (center [2]float64, heading float64) {
	r := s.Model.ReferencePosition()
	center[0], center[1] = s.Proj.Project(r[0], r[1])
	return center, s.Model.Attitude().Yaw
}
