package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

//go:embed images
var assetsFS embed.FS

// ErrNotFound is wrapped by LoadError when neither the disk overlay nor the
// embedded images contain the requested path.
var ErrNotFound = errors.New("asset not found")

// LoadError reports a sprite sheet or image that could not be turned into a
// decoded image. Nothing can be built without it, so callers propagate it to
// startup.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("assets: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadImage decodes an embedded image by images-relative path, e.g.
// "characters/test.png".
func LoadImage(path string) (image.Image, error) {
	clean := cleanAssetPath(path)
	b, err := assetsFS.ReadFile("images/" + clean)
	if err != nil {
		return nil, &LoadError{Path: clean, Err: ErrNotFound}
	}
	img, err := decode(b)
	if err != nil {
		return nil, &LoadError{Path: clean, Err: err}
	}
	return img, nil
}

// LoadFile returns the raw bytes of an embedded image.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile("images/" + cleanAssetPath(path))
}

func decode(b []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// cleanAssetPath reduces any of "assets/images/x.png", "images/x.png",
// "/abs/.../assets/images/x.png" or "x.png" to the images-relative "x.png".
func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/images/"); idx >= 0 {
			return s[idx+len("/assets/images/"):]
		}
		return filepath.Base(path)
	}
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "images/"); ok {
		s = after
	}
	return s
}

func readDisk(dir, clean string) ([]byte, error) {
	if dir == "" {
		return nil, os.ErrNotExist
	}
	return os.ReadFile(filepath.Join(dir, "images", filepath.FromSlash(clean)))
}
