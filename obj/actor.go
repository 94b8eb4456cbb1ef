package obj

import (
	"errors"
	"fmt"

	"github.com/milk9111/lizzyinspace/atlas"
)

const (
	DefaultSpeed              = 5
	DefaultAnimationThreshold = 200.0 // ms per frame

	// DrawWidth and DrawHeight are the on-screen size of the actor and of its
	// collision box.
	DrawWidth  = 32
	DrawHeight = 64

	frameWidth         = 16
	frameHeight        = 32
	framesPerDirection = 4
)

type actorConfig struct {
	speed      int
	threshold  float64
	frameW     int
	frameH     int
	frameCount int
	drawW      int
	drawH      int
}

// ActorOption overrides one of the actor defaults.
type ActorOption func(*actorConfig)

// WithSpeed sets the pixels moved per input tick.
func WithSpeed(speed int) ActorOption {
	return func(c *actorConfig) { c.speed = speed }
}

// WithAnimationThreshold sets how many milliseconds of walking advance one
// frame.
func WithAnimationThreshold(ms float64) ActorOption {
	return func(c *actorConfig) { c.threshold = ms }
}

// WithFrameSize sets the source cell size on the character sheet.
func WithFrameSize(w, h int) ActorOption {
	return func(c *actorConfig) { c.frameW, c.frameH = w, h }
}

// WithFrameCount sets how many frames each facing has.
func WithFrameCount(n int) ActorOption {
	return func(c *actorConfig) { c.frameCount = n }
}

// WithDrawSize sets the on-screen and collision size.
func WithDrawSize(w, h int) ActorOption {
	return func(c *actorConfig) { c.drawW, c.drawH = w, h }
}

// Actor is a walking character animated from a four-row sprite sheet, one row
// per facing.
//
// Invariants: seq is always frames[dir]; current is in [0, len(seq)).
type Actor struct {
	x, y int
	dir  Direction

	speed     int
	threshold float64
	drawW     int
	drawH     int

	frames  map[Direction][]*Frame
	seq     []*Frame
	current int
	timer   float64
}

// NewActor slices the facings off sheet and places the actor at (x,y) facing
// front.
func NewActor(sheet *atlas.Sheet, x, y int, opts ...ActorOption) (*Actor, error) {
	cfg := actorConfig{
		speed:      DefaultSpeed,
		threshold:  DefaultAnimationThreshold,
		frameW:     frameWidth,
		frameH:     frameHeight,
		frameCount: framesPerDirection,
		drawW:      DrawWidth,
		drawH:      DrawHeight,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if sheet == nil {
		return nil, errors.New("obj: actor needs a sprite sheet")
	}
	if cfg.speed <= 0 {
		return nil, fmt.Errorf("obj: actor speed must be positive, got %d", cfg.speed)
	}
	if cfg.threshold <= 0 {
		return nil, fmt.Errorf("obj: animation threshold must be positive, got %v", cfg.threshold)
	}
	if cfg.drawW <= 0 || cfg.drawH <= 0 {
		return nil, fmt.Errorf("obj: invalid draw size %dx%d", cfg.drawW, cfg.drawH)
	}

	seqs, err := atlas.Sequences(sheet, cfg.frameW, cfg.frameH, Directions[:], cfg.frameCount, 0)
	if err != nil {
		return nil, fmt.Errorf("obj: slice actor frames: %w", err)
	}

	frames := make(map[Direction][]*Frame, len(Directions))
	for _, d := range Directions {
		if len(seqs[d]) == 0 {
			return nil, fmt.Errorf("obj: no frames for %s", d)
		}
		frames[d] = framesOf(seqs[d])
	}

	return &Actor{
		x:         x,
		y:         y,
		dir:       Front,
		speed:     cfg.speed,
		threshold: cfg.threshold,
		drawW:     cfg.drawW,
		drawH:     cfg.drawH,
		frames:    frames,
		seq:       frames[Front],
	}, nil
}

// HandleInput applies at most one step for this tick and reports whether a
// movement key was held. When the step would overlap an obstacle the position
// is restored, while the new facing is kept.
func (a *Actor) HandleInput(keys Keys, obstacles []Rect) bool {
	dir, ok := keys.Direction()
	if !ok {
		return false
	}

	prevX, prevY := a.x, a.y
	a.face(dir)
	dx, dy := dir.Delta()
	a.x += dx * a.speed
	a.y += dy * a.speed

	box := a.Bounds()
	for _, o := range obstacles {
		if box.Intersects(o) {
			a.x, a.y = prevX, prevY
			break
		}
	}
	return true
}

// Update advances the walk cycle by elapsedMs. Leftover time past the
// threshold is dropped. Standing still snaps back to the first frame.
func (a *Actor) Update(elapsedMs float64, moving bool) {
	if !moving {
		a.current = 0
		return
	}
	a.timer += elapsedMs
	if a.timer >= a.threshold {
		a.timer = 0
		a.current = (a.current + 1) % len(a.seq)
	}
}

// Draw composites the current frame scaled to the draw size at the actor's
// position.
func (a *Actor) Draw(c Canvas) {
	a.seq[a.current].drawScaled(c, a.x, a.y, a.drawW, a.drawH)
}

func (a *Actor) face(d Direction) {
	a.dir = d
	a.seq = a.frames[d]
}

// Bounds is the collision box: the draw size at the current position.
func (a *Actor) Bounds() Rect {
	return Rect{X: a.x, Y: a.y, W: a.drawW, H: a.drawH}
}

func (a *Actor) Position() (x, y int) { return a.x, a.y }

func (a *Actor) SetPosition(x, y int) {
	a.x, a.y = x, y
}

func (a *Actor) Direction() Direction { return a.dir }

// Frame returns the index of the current frame within Sequence().
func (a *Actor) Frame() int { return a.current }

// Timer returns the milliseconds accumulated toward the next frame.
func (a *Actor) Timer() float64 { return a.timer }

func (a *Actor) Speed() int { return a.speed }

func (a *Actor) AnimationThreshold() float64 { return a.threshold }

// Sequence returns the frames of the current facing.
func (a *Actor) Sequence() []*Frame { return a.seq }

// SequenceFor returns the frames sliced for d.
func (a *Actor) SequenceFor(d Direction) []*Frame { return a.frames[d] }

// SetSpeed changes the step size. Non-positive values are rejected.
func (a *Actor) SetSpeed(speed int) error {
	if speed <= 0 {
		return fmt.Errorf("obj: actor speed must be positive, got %d", speed)
	}
	a.speed = speed
	return nil
}

// SetAnimationThreshold changes the time per frame. Non-positive values are
// rejected.
func (a *Actor) SetAnimationThreshold(ms float64) error {
	if ms <= 0 {
		return fmt.Errorf("obj: animation threshold must be positive, got %v", ms)
	}
	a.threshold = ms
	return nil
}
