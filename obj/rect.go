package obj

// Rect is an axis-aligned box in screen pixels.
type Rect struct {
	X, Y int
	W, H int
}

// Intersects reports whether r and other share a region of positive area.
// Boxes that only touch along an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W &&
		r.X+r.W > other.X &&
		r.Y < other.Y+other.H &&
		r.Y+r.H > other.Y
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }
