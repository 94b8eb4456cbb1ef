package assets

import (
	"image"
	"os"
)

// Cache decodes images once and hands out the same decoded image for every
// later request of the same path. A file under Dir/images/ shadows the
// embedded copy so art can be swapped without rebuilding.
//
// Cache is not safe for concurrent use; it belongs to the game loop.
type Cache struct {
	Dir    string
	images map[string]image.Image
}

// NewCache creates a cache that looks in dir before the embedded images. An
// empty dir disables the disk overlay.
func NewCache(dir string) *Cache {
	return &Cache{Dir: dir, images: make(map[string]image.Image)}
}

// LoadImage returns the decoded image for path, loading it on first use.
func (c *Cache) LoadImage(path string) (image.Image, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, &LoadError{Path: path, Err: ErrNotFound}
	}
	if img, ok := c.images[clean]; ok {
		return img, nil
	}

	img, err := c.load(clean)
	if err != nil {
		return nil, err
	}
	c.images[clean] = img
	return img, nil
}

// Register stores an already-decoded image under path.
func (c *Cache) Register(path string, img image.Image) {
	clean := cleanAssetPath(path)
	if clean == "" || img == nil {
		return
	}
	c.images[clean] = img
}

// Len reports how many images are cached.
func (c *Cache) Len() int { return len(c.images) }

func (c *Cache) load(clean string) (image.Image, error) {
	b, err := readDisk(c.Dir, clean)
	if err == nil {
		img, err := decode(b)
		if err != nil {
			return nil, &LoadError{Path: clean, Err: err}
		}
		return img, nil
	}
	if !os.IsNotExist(err) {
		return nil, &LoadError{Path: clean, Err: err}
	}
	return LoadImage(clean)
}
