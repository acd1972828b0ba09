package jumpy

// Collides reports whether the body has hit the ceiling, the ground, or a
// pillar. A pillar only counts while its column overlaps the body's span,
// and then the body's y must lie within the gap. It stops at the first
// violation and never mutates its arguments.
func Collides(body *Body, field *ObstacleField, groundY float64) bool {
	if body.Y <= 0 || body.Y >= groundY {
		return true
	}

	box := body.Box()
	for _, o := range field.obstacles {
		if !box.OverlapsX(o.Span(field.height)) {
			continue
		}
		if body.Y < o.GapTop() || body.Y > o.GapBottom() {
			return true
		}
	}
	return false
}
