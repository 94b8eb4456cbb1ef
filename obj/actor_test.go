package obj

import (
	"image"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/lizzyinspace/atlas"
)

// testSheet is a 64×128 character sheet whose pixel at (x,y) has R=x, G=y.
func testSheet() *atlas.Sheet {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 128))
	for y := 0; y < 128; y++ {
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return atlas.New(img)
}

func newTestActor(t *testing.T, x, y int, opts ...ActorOption) *Actor {
	t.Helper()
	a, err := NewActor(testSheet(), x, y, opts...)
	if err != nil {
		t.Fatalf("NewActor: %v", err)
	}
	return a
}

func sameSequence(a, b []*Frame) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func frameOrigin(f *Frame) (int, int) {
	c := color.NRGBAModel.Convert(f.Source().At(0, 0)).(color.NRGBA)
	return int(c.R), int(c.G)
}

func TestNewActorDefaults(t *testing.T) {
	a := newTestActor(t, 10, 20)

	if x, y := a.Position(); x != 10 || y != 20 {
		t.Fatalf("expected (10,20), got (%d,%d)", x, y)
	}
	if a.Direction() != Front {
		t.Fatalf("expected front, got %s", a.Direction())
	}
	if a.Speed() != DefaultSpeed || a.AnimationThreshold() != DefaultAnimationThreshold {
		t.Fatalf("expected defaults, got speed=%d threshold=%v", a.Speed(), a.AnimationThreshold())
	}
	if a.Frame() != 0 || a.Timer() != 0 {
		t.Fatalf("expected frame 0 timer 0, got %d %v", a.Frame(), a.Timer())
	}
	if !sameSequence(a.Sequence(), a.SequenceFor(Front)) {
		t.Fatalf("expected current sequence to be the front sequence")
	}

	for _, d := range Directions {
		seq := a.SequenceFor(d)
		if len(seq) != framesPerDirection {
			t.Fatalf("%s: expected %d frames, got %d", d, framesPerDirection, len(seq))
		}
		for f, fr := range seq {
			w, h := fr.Size()
			if w != 16 || h != 32 {
				t.Fatalf("%s frame %d: expected 16x32, got %dx%d", d, f, w, h)
			}
			if x, y := frameOrigin(fr); x != 16*f || y != d.RowOffset() {
				t.Fatalf("%s frame %d: expected source (%d,%d), got (%d,%d)", d, f, 16*f, d.RowOffset(), x, y)
			}
		}
	}
}

func TestNewActorValidation(t *testing.T) {
	cases := []struct {
		name  string
		sheet *atlas.Sheet
		opts  []ActorOption
	}{
		{"nil_sheet", nil, nil},
		{"zero_speed", testSheet(), []ActorOption{WithSpeed(0)}},
		{"negative_threshold", testSheet(), []ActorOption{WithAnimationThreshold(-1)}},
		{"zero_frames", testSheet(), []ActorOption{WithFrameCount(0)}},
		{"bad_draw_size", testSheet(), []ActorOption{WithDrawSize(0, 64)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewActor(c.sheet, 0, 0, c.opts...); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestHandleInputPriority(t *testing.T) {
	cases := []struct {
		name   string
		keys   Keys
		dir    Direction
		dx, dy int
	}{
		{"up", Keys{Up: true}, Back, 0, -5},
		{"down", Keys{Down: true}, Front, 0, 5},
		{"left", Keys{Left: true}, Left, -5, 0},
		{"right", Keys{Right: true}, Right, 5, 0},
		{"up_beats_left", Keys{Up: true, Left: true}, Back, 0, -5},
		{"up_beats_down", Keys{Up: true, Down: true}, Back, 0, -5},
		{"down_beats_right", Keys{Down: true, Right: true}, Front, 0, 5},
		{"left_beats_right", Keys{Left: true, Right: true}, Left, -5, 0},
		{"all", Keys{Up: true, Down: true, Left: true, Right: true}, Back, 0, -5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := newTestActor(t, 100, 100)
			if !a.HandleInput(c.keys, nil) {
				t.Fatalf("expected moving=true")
			}
			if a.Direction() != c.dir {
				t.Fatalf("expected %s, got %s", c.dir, a.Direction())
			}
			if x, y := a.Position(); x != 100+c.dx || y != 100+c.dy {
				t.Fatalf("expected (%d,%d), got (%d,%d)", 100+c.dx, 100+c.dy, x, y)
			}
			if !sameSequence(a.Sequence(), a.SequenceFor(c.dir)) {
				t.Fatalf("sequence not re-resolved for %s", c.dir)
			}
		})
	}
}

func TestHandleInputNoKeys(t *testing.T) {
	a := newTestActor(t, 100, 100)
	a.HandleInput(Keys{Left: true}, nil)
	a.Update(250, true)

	if a.HandleInput(Keys{}, nil) {
		t.Fatalf("expected moving=false with no keys")
	}
	if x, y := a.Position(); x != 95 || y != 100 {
		t.Fatalf("expected no displacement, got (%d,%d)", x, y)
	}
	if a.Direction() != Left || !sameSequence(a.Sequence(), a.SequenceFor(Left)) {
		t.Fatalf("expected facing left to be kept")
	}
	if a.Frame() != 1 {
		t.Fatalf("HandleInput must not touch the frame, got %d", a.Frame())
	}
}

func TestDirectionSequenceCoupling(t *testing.T) {
	a := newTestActor(t, 200, 200)
	steps := []Keys{{Right: true}, {Up: true}, {Left: true}, {Down: true}, {Up: true}, {Right: true}}
	for i, k := range steps {
		a.HandleInput(k, nil)
		if !sameSequence(a.Sequence(), a.SequenceFor(a.Direction())) {
			t.Fatalf("step %d: sequence stale for %s", i, a.Direction())
		}
	}
}

func TestHandleInputObstacle(t *testing.T) {
	t.Run("exact_cover_reverts", func(t *testing.T) {
		a := newTestActor(t, 100, 100)
		obstacle := Rect{X: 105, Y: 100, W: DrawWidth, H: DrawHeight}
		if !a.HandleInput(Keys{Right: true}, []Rect{obstacle}) {
			t.Fatalf("expected moving=true even when blocked")
		}
		if x, y := a.Position(); x != 100 || y != 100 {
			t.Fatalf("expected no net displacement, got (%d,%d)", x, y)
		}
	})

	// Blocking restores the position only; the actor still turns toward the
	// obstacle. Kept on purpose pending a product decision.
	t.Run("facing_kept_when_blocked", func(t *testing.T) {
		a := newTestActor(t, 100, 100)
		a.HandleInput(Keys{Up: true}, []Rect{{X: 100, Y: 90, W: 10, H: 10}})
		if a.Direction() != Back {
			t.Fatalf("expected facing back after blocked move, got %s", a.Direction())
		}
		if !sameSequence(a.Sequence(), a.SequenceFor(Back)) {
			t.Fatalf("expected back sequence after blocked move")
		}
		if x, y := a.Position(); x != 100 || y != 100 {
			t.Fatalf("expected (100,100), got (%d,%d)", x, y)
		}
	})

	t.Run("touching_edge_allowed", func(t *testing.T) {
		a := newTestActor(t, 100, 100)
		// after the step the actor spans x 105..137; obstacle starts at 137
		a.HandleInput(Keys{Right: true}, []Rect{{X: 137, Y: 100, W: 20, H: 20}})
		if x, _ := a.Position(); x != 105 {
			t.Fatalf("expected move to be allowed, got x=%d", x)
		}
	})

	t.Run("any_of_many", func(t *testing.T) {
		a := newTestActor(t, 100, 100)
		obstacles := []Rect{
			{X: 0, Y: 0, W: 10, H: 10},
			{X: 500, Y: 500, W: 10, H: 10},
			{X: 90, Y: 160, W: 40, H: 10},
		}
		a.HandleInput(Keys{Down: true}, obstacles)
		if _, y := a.Position(); y != 100 {
			t.Fatalf("expected blocked by third obstacle, got y=%d", y)
		}
	})
}

func TestUpdateCyclesFrames(t *testing.T) {
	for _, n := range []int{1, 2, 4, 7} {
		t.Run("", func(t *testing.T) {
			a := newTestActor(t, 0, 0, WithFrameCount(n))
			a.HandleInput(Keys{Right: true}, nil)
			start := a.Frame()
			for i := 0; i < n; i++ {
				a.Update(a.AnimationThreshold(), true)
				if a.Frame() < 0 || a.Frame() >= len(a.Sequence()) {
					t.Fatalf("frame %d out of range [0,%d)", a.Frame(), len(a.Sequence()))
				}
			}
			if a.Frame() != start {
				t.Fatalf("expected frame back at %d after %d updates, got %d", start, n, a.Frame())
			}
		})
	}
}

func TestUpdateAccumulates(t *testing.T) {
	a := newTestActor(t, 0, 0)
	a.Update(120, true)
	if a.Frame() != 0 || a.Timer() != 120 {
		t.Fatalf("expected frame 0 timer 120, got %d %v", a.Frame(), a.Timer())
	}
	a.Update(80, true)
	if a.Frame() != 1 || a.Timer() != 0 {
		t.Fatalf("expected frame 1 timer 0, got %d %v", a.Frame(), a.Timer())
	}
}

func TestUpdateIdleResetsFrame(t *testing.T) {
	cases := []struct {
		name    string
		advance int
		elapsed float64
	}{
		{"from_zero", 0, 16},
		{"from_two", 2, 0},
		{"from_three_big_dt", 3, 10000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := newTestActor(t, 0, 0)
			for i := 0; i < c.advance; i++ {
				a.Update(DefaultAnimationThreshold, true)
			}
			a.Update(50, true)
			timer := a.Timer()
			a.Update(c.elapsed, false)
			if a.Frame() != 0 {
				t.Fatalf("expected idle frame 0, got %d", a.Frame())
			}
			if a.Timer() != timer {
				t.Fatalf("idle update should leave the timer alone: %v -> %v", timer, a.Timer())
			}
		})
	}
}

func TestWalkEndToEnd(t *testing.T) {
	a := newTestActor(t, 100, 100, WithSpeed(5), WithAnimationThreshold(200))

	moving := a.HandleInput(Keys{Right: true}, nil)
	if !moving {
		t.Fatalf("expected moving=true")
	}
	if x, y := a.Position(); x != 105 || y != 100 {
		t.Fatalf("expected (105,100), got (%d,%d)", x, y)
	}
	if a.Direction().String() != "right" {
		t.Fatalf("expected right, got %s", a.Direction())
	}

	a.Update(250, moving)
	if a.Frame() != 1 {
		t.Fatalf("expected frame 1, got %d", a.Frame())
	}
	if a.Timer() != 0 {
		t.Fatalf("expected timer hard reset to 0, got %v", a.Timer())
	}
}

func TestSetTuning(t *testing.T) {
	a := newTestActor(t, 0, 0)
	if err := a.SetSpeed(0); err == nil {
		t.Fatalf("expected error for zero speed")
	}
	if err := a.SetAnimationThreshold(0); err == nil {
		t.Fatalf("expected error for zero threshold")
	}
	if err := a.SetSpeed(8); err != nil || a.Speed() != 8 {
		t.Fatalf("expected speed 8, got %d (%v)", a.Speed(), err)
	}
	if err := a.SetAnimationThreshold(120); err != nil || a.AnimationThreshold() != 120 {
		t.Fatalf("expected threshold 120, got %v (%v)", a.AnimationThreshold(), err)
	}
	a.HandleInput(Keys{Down: true}, nil)
	if _, y := a.Position(); y != 8 {
		t.Fatalf("expected new speed to apply, got y=%d", y)
	}
}

type drawCall struct {
	img *ebiten.Image
	op  ebiten.DrawImageOptions
}

type recordingCanvas struct {
	calls []drawCall
}

func (c *recordingCanvas) DrawImage(img *ebiten.Image, op *ebiten.DrawImageOptions) {
	c.calls = append(c.calls, drawCall{img: img, op: *op})
}

func TestActorDraw(t *testing.T) {
	a := newTestActor(t, 40, 60)
	a.HandleInput(Keys{Left: true}, nil)
	a.Update(DefaultAnimationThreshold, true)

	c := &recordingCanvas{}
	a.Draw(c)
	if len(c.calls) != 1 {
		t.Fatalf("expected 1 draw call, got %d", len(c.calls))
	}
	call := c.calls[0]
	if call.img != a.Sequence()[1].Image() {
		t.Fatalf("expected current frame image to be drawn")
	}
	if call.op.Filter != ebiten.FilterNearest {
		t.Fatalf("expected nearest filter")
	}

	// 16x32 source stretched to 32x64 at (35,60)
	x0, y0 := call.op.GeoM.Apply(0, 0)
	x1, y1 := call.op.GeoM.Apply(16, 32)
	if x0 != 35 || y0 != 60 || x1 != 35+DrawWidth || y1 != 60+DrawHeight {
		t.Fatalf("unexpected placement (%v,%v)-(%v,%v)", x0, y0, x1, y1)
	}
}
