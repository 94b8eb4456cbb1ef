package obj

import "github.com/hajimehoshi/ebiten/v2"

// Keys is the held state of the four logical movement keys for one tick.
type Keys struct {
	Up, Down, Left, Right bool
}

// PollKeys reads the keyboard. Arrows and WASD drive the same logical keys.
func PollKeys() Keys {
	return KeysFrom(ebiten.IsKeyPressed)
}

// KeysFrom builds Keys from any key-held predicate.
func KeysFrom(pressed func(ebiten.Key) bool) Keys {
	return Keys{
		Up:    pressed(ebiten.KeyArrowUp) || pressed(ebiten.KeyW),
		Down:  pressed(ebiten.KeyArrowDown) || pressed(ebiten.KeyS),
		Left:  pressed(ebiten.KeyArrowLeft) || pressed(ebiten.KeyA),
		Right: pressed(ebiten.KeyArrowRight) || pressed(ebiten.KeyD),
	}
}

// Direction resolves the held keys to a single facing using the fixed
// priority up > down > left > right. ok is false when nothing is held.
func (k Keys) Direction() (d Direction, ok bool) {
	switch {
	case k.Up:
		return Back, true
	case k.Down:
		return Front, true
	case k.Left:
		return Left, true
	case k.Right:
		return Right, true
	}
	return Front, false
}

// Any reports whether a movement key is held.
func (k Keys) Any() bool {
	return k.Up || k.Down || k.Left || k.Right
}
