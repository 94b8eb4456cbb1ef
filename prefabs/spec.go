package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	ActorFile = "actor.yaml"
	ItemsFile = "items.yaml"
)

type SizeSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type FrameSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Count  int `yaml:"count"`
}

// ActorSpec tunes the walking character.
type ActorSpec struct {
	Name                 string    `yaml:"name"`
	Sheet                string    `yaml:"sheet"`
	Frame                FrameSpec `yaml:"frame"`
	Draw                 SizeSpec  `yaml:"draw"`
	MoveSpeed            int       `yaml:"move_speed"`
	AnimationThresholdMs float64   `yaml:"animation_threshold_ms"`
}

// ItemsSpec names the cells of an item sheet in row-major order.
type ItemsSpec struct {
	Sheet string   `yaml:"sheet"`
	Cell  SizeSpec `yaml:"cell"`
	Names []string `yaml:"names"`
}

func LoadSpec[T any](s *Store, filename string) (T, error) {
	var zero T
	data, err := s.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func (s *Store) LoadActorSpec() (*ActorSpec, error) {
	spec, err := LoadSpec[ActorSpec](s, ActorFile)
	if err != nil {
		return nil, err
	}
	if spec.Sheet == "" {
		return nil, fmt.Errorf("prefabs: %s: missing sheet", ActorFile)
	}
	if spec.MoveSpeed <= 0 {
		return nil, fmt.Errorf("prefabs: %s: move_speed must be positive, got %d", ActorFile, spec.MoveSpeed)
	}
	if spec.AnimationThresholdMs <= 0 {
		return nil, fmt.Errorf("prefabs: %s: animation_threshold_ms must be positive, got %v", ActorFile, spec.AnimationThresholdMs)
	}
	return &spec, nil
}

func (s *Store) LoadItemsSpec() (*ItemsSpec, error) {
	spec, err := LoadSpec[ItemsSpec](s, ItemsFile)
	if err != nil {
		return nil, err
	}
	if spec.Sheet == "" {
		return nil, fmt.Errorf("prefabs: %s: missing sheet", ItemsFile)
	}
	if spec.Cell.Width <= 0 || spec.Cell.Height <= 0 {
		return nil, fmt.Errorf("prefabs: %s: invalid cell size %dx%d", ItemsFile, spec.Cell.Width, spec.Cell.Height)
	}
	seen := make(map[string]struct{}, len(spec.Names))
	for _, n := range spec.Names {
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("prefabs: %s: duplicate item name %q", ItemsFile, n)
		}
		seen[n] = struct{}{}
	}
	return &spec, nil
}
