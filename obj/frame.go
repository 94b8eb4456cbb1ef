package obj

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Canvas is a surface frames can be composited onto. *ebiten.Image is one.
type Canvas interface {
	DrawImage(img *ebiten.Image, options *ebiten.DrawImageOptions)
}

// Frame is one sliced sprite. The GPU image is created on first draw so the
// sliced pixels can be inspected without a running game.
type Frame struct {
	src image.Image
	img *ebiten.Image
}

func NewFrame(src image.Image) *Frame {
	return &Frame{src: src}
}

// Source returns the sliced pixels.
func (f *Frame) Source() image.Image { return f.src }

// Size returns the frame's pixel size.
func (f *Frame) Size() (int, int) {
	if f == nil || f.src == nil {
		return 0, 0
	}
	b := f.src.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the frame as an ebiten image.
func (f *Frame) Image() *ebiten.Image {
	if f == nil || f.src == nil {
		return nil
	}
	if f.img == nil {
		f.img = ebiten.NewImageFromImage(f.src)
	}
	return f.img
}

// drawScaled composites f onto c stretched to w×h with its top-left at (x,y).
func (f *Frame) drawScaled(c Canvas, x, y, w, h int) {
	fw, fh := f.Size()
	if c == nil || fw == 0 || fh == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(fw), float64(h)/float64(fh))
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterNearest
	c.DrawImage(f.Image(), op)
}

func framesOf(imgs []image.Image) []*Frame {
	out := make([]*Frame, len(imgs))
	for i, img := range imgs {
		out[i] = NewFrame(img)
	}
	return out
}
