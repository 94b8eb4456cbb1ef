package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Store reads prefab YAML. A file under Dir shadows the embedded copy of the
// same name; an empty Dir reads only the embedded prefabs.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if s != nil && s.Dir != "" {
		if data, err := os.ReadFile(s.diskPath(clean)); err == nil {
			return data, nil
		}
	}
	return PrefabsFS.ReadFile(clean)
}

func (s *Store) ModTime(name string) (time.Time, bool) {
	if s == nil || s.Dir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(s.diskPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func (s *Store) diskPath(clean string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(clean))
}
