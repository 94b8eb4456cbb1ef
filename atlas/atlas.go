// Package atlas slices sprite sheets into standalone frame images.
//
// Frames are laid out on a fixed grid. Cells are addressed by raw pixel
// rectangle (Region), by a row-major list of names (Named) or by one row of
// frames per name (Sequences). Every returned image is an independent copy
// with its origin at (0,0), so a Sheet can be dropped once slicing is done.
package atlas

import (
	"errors"
	"fmt"
	"image"

	"github.com/milk9111/lizzyinspace/assets"
	"golang.org/x/image/draw"
)

// ErrOutOfBounds is wrapped when a requested region does not lie inside the
// sheet.
var ErrOutOfBounds = errors.New("region out of bounds")

// Loader resolves an asset path into a decoded image.
type Loader interface {
	LoadImage(path string) (image.Image, error)
}

// Sheet is an immutable decoded sprite sheet.
type Sheet struct {
	Path string
	img  image.Image
}

// Load decodes the sheet at path through l.
func Load(l Loader, path string) (*Sheet, error) {
	if l == nil {
		return nil, &assets.LoadError{Path: path, Err: errors.New("nil loader")}
	}
	img, err := l.LoadImage(path)
	if err != nil {
		var le *assets.LoadError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &assets.LoadError{Path: path, Err: err}
	}
	if img == nil {
		return nil, &assets.LoadError{Path: path, Err: errors.New("loader returned no image")}
	}
	return &Sheet{Path: path, img: img}, nil
}

// New wraps an already decoded image.
func New(img image.Image) *Sheet {
	return &Sheet{img: img}
}

// Bounds returns the sheet's pixel bounds.
func (s *Sheet) Bounds() image.Rectangle {
	if s == nil || s.img == nil {
		return image.Rectangle{}
	}
	return s.img.Bounds()
}

// Width returns the sheet width in pixels.
func (s *Sheet) Width() int { return s.Bounds().Dx() }

// Height returns the sheet height in pixels.
func (s *Sheet) Height() int { return s.Bounds().Dy() }

// Region copies [x,x+w) × [y,y+h) out of the sheet. The rectangle must be
// non-empty and lie fully inside the sheet.
func (s *Sheet) Region(x, y, w, h int) (image.Image, error) {
	if s == nil || s.img == nil {
		return nil, &assets.LoadError{Err: errors.New("nil sheet")}
	}
	b := s.img.Bounds()
	r := image.Rect(x, y, x+w, y+h).Add(b.Min)
	if w <= 0 || h <= 0 || !r.In(b) {
		return nil, &assets.LoadError{
			Path: s.Path,
			Err:  fmt.Errorf("%w: %dx%d at (%d,%d) in %dx%d sheet", ErrOutOfBounds, w, h, x, y, b.Dx(), b.Dy()),
		}
	}
	return s.copyRect(r), nil
}

// cell copies a w×h cell whose top-left is (x,y). Pixels outside the sheet
// stay transparent.
func (s *Sheet) cell(x, y, w, h int) image.Image {
	r := image.Rect(x, y, x+w, y+h).Add(s.img.Bounds().Min)
	return s.copyRect(r)
}

func (s *Sheet) copyRect(r image.Rectangle) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Copy(dst, image.Point{}, s.img, r, draw.Src, nil)
	return dst
}

func (s *Sheet) checkCell(w, h int) error {
	if s == nil || s.img == nil {
		return &assets.LoadError{Err: errors.New("nil sheet")}
	}
	if w <= 0 || h <= 0 {
		return &assets.LoadError{Path: s.Path, Err: fmt.Errorf("invalid cell size %dx%d", w, h)}
	}
	return nil
}

// Named lays names out row-major across the sheet, Width()/w cells per row,
// and returns the cell for each name. The i-th name takes cell
// (i / columns, i % columns). Names past the populated part of the sheet are
// still extracted; whatever the sheet holds there (or transparency) is what
// the caller gets. A repeated name keeps its last cell.
func Named[T comparable](s *Sheet, w, h int, names []T) (map[T]image.Image, error) {
	if err := s.checkCell(w, h); err != nil {
		return nil, err
	}
	columns := s.Width() / w
	if columns == 0 {
		return nil, &assets.LoadError{
			Path: s.Path,
			Err:  fmt.Errorf("%w: cell width %d wider than %d sheet", ErrOutOfBounds, w, s.Width()),
		}
	}

	out := make(map[T]image.Image, len(names))
	for i, name := range names {
		row := i / columns
		col := i % columns
		out[name] = s.cell(col*w, row*h, w, h)
	}
	return out, nil
}

// Sequences gives each name one row of the sheet, in order, and slices
// frameCount horizontally adjacent w×h frames from it starting at startX.
// Frame f of name i comes from (startX + f*w, i*h).
func Sequences[T comparable](s *Sheet, w, h int, names []T, frameCount, startX int) (map[T][]image.Image, error) {
	if err := s.checkCell(w, h); err != nil {
		return nil, err
	}
	if frameCount <= 0 {
		return nil, &assets.LoadError{Path: s.Path, Err: fmt.Errorf("invalid frame count %d", frameCount)}
	}

	out := make(map[T][]image.Image, len(names))
	for i, name := range names {
		frames := make([]image.Image, frameCount)
		for f := range frameCount {
			frames[f] = s.cell(startX+f*w, i*h, w, h)
		}
		out[name] = frames
	}
	return out, nil
}
