package obj

import "image"

// Item is a collectible sprite lying in the level.
type Item struct {
	Name  string
	Rect  Rect
	frame *Frame
}

// NewItem places img at (x,y). Its pickup box is the image's size.
func NewItem(name string, img image.Image, x, y int) *Item {
	f := NewFrame(img)
	w, h := f.Size()
	return &Item{
		Name:  name,
		Rect:  Rect{X: x, Y: y, W: w, H: h},
		frame: f,
	}
}

// Frame returns the item's sprite.
func (i *Item) Frame() *Frame { return i.frame }

// Draw composites the item stretched to its rect.
func (i *Item) Draw(c Canvas) {
	if i == nil || i.frame == nil {
		return
	}
	i.frame.drawScaled(c, i.Rect.X, i.Rect.Y, i.Rect.W, i.Rect.H)
}

// ItemSet holds the items still lying in the level, in placement order.
type ItemSet struct {
	items []*Item
}

func NewItemSet(items ...*Item) *ItemSet {
	s := &ItemSet{}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add places another item.
func (s *ItemSet) Add(it *Item) {
	if it == nil {
		return
	}
	s.items = append(s.items, it)
}

// Collect removes every item whose rect intersects box and returns their
// names in placement order. Removed items never come back.
func (s *ItemSet) Collect(box Rect) []string {
	var picked []string
	kept := s.items[:0]
	for _, it := range s.items {
		if box.Intersects(it.Rect) {
			picked = append(picked, it.Name)
			continue
		}
		kept = append(kept, it)
	}
	clear(s.items[len(kept):])
	s.items = kept
	return picked
}

// Active returns the items still present.
func (s *ItemSet) Active() []*Item {
	out := make([]*Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *ItemSet) Len() int { return len(s.items) }

// Draw composites every remaining item.
func (s *ItemSet) Draw(c Canvas) {
	for _, it := range s.items {
		it.Draw(c)
	}
}
