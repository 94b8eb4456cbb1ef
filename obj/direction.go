package obj

import "fmt"

// Direction is the way the actor faces. It also selects the sprite sheet row
// the facing's frames are sliced from.
type Direction int

const (
	Front Direction = iota
	Right
	Back
	Left
)

// Directions lists every facing in sprite sheet row order.
var Directions = [...]Direction{Front, Right, Back, Left}

func (d Direction) String() string {
	switch d {
	case Front:
		return "front"
	case Right:
		return "right"
	case Back:
		return "back"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection maps a facing name back to its Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return Front, fmt.Errorf("obj: unknown direction %q", s)
}

// RowOffset is the y pixel of the facing's first frame on the character sheet.
func (d Direction) RowOffset() int {
	return int(d) * frameHeight
}

// Delta returns the unit step for walking toward d. Back walks up the screen.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Front:
		return 0, 1
	case Back:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}
