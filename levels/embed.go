package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a single screen: where the actor starts, what blocks it, and
// which items lie around.
type Level struct {
	Name      string     `json:"name"`
	SpawnX    *int       `json:"spawn_x,omitempty"`
	SpawnY    *int       `json:"spawn_y,omitempty"`
	Obstacles []Obstacle `json:"obstacles,omitempty"`
	Items     []Item     `json:"items,omitempty"`
}

type Obstacle struct {
	Label  string `json:"label,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Item places one named cell of the item sheet.
type Item struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Spawn returns the start position, falling back to the centre of a
// screenW×screenH screen for any coordinate the level leaves out.
func (l *Level) Spawn(screenW, screenH int) (int, int) {
	x, y := screenW/2, screenH/2
	if l.SpawnX != nil {
		x = *l.SpawnX
	}
	if l.SpawnY != nil {
		y = *l.SpawnY
	}
	return x, y
}

func LoadLevelFromFS(name string) (*Level, error) {
	return LoadLevel(LevelsFS, name)
}

// LoadLevel reads levels/<name>.json from fsys; the extension and a leading
// "levels/" are optional.
func LoadLevel(fsys fs.FS, name string) (*Level, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(name), "levels/")
	if !strings.HasSuffix(clean, ".json") {
		clean += ".json"
	}
	data, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", clean, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(clean, ".json")
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	for i, o := range l.Obstacles {
		if o.Width <= 0 || o.Height <= 0 {
			return fmt.Errorf("obstacle %d (%s): invalid size %dx%d", i, o.Label, o.Width, o.Height)
		}
	}
	for i, it := range l.Items {
		if it.Name == "" {
			return fmt.Errorf("item %d: missing name", i)
		}
	}
	return nil
}
