// Package profiles maps exercise names to the landmark identifiers that are
// diagnostic for judging their form. The built-in table is embedded YAML; an
// operator can replace it wholesale with a file at startup. The table is
// immutable once loaded.
package profiles

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/exercises.yaml
var profileFS embed.FS

// Store holds the exercise-to-landmarks table. Keys are lower-cased.
type Store struct {
	profiles map[string][]string
}

// NewEmbeddedStore loads the built-in exercise table.
func NewEmbeddedStore() (*Store, error) {
	raw, err := profileFS.ReadFile("data/exercises.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded profiles: %w", err)
	}
	return parse(raw)
}

// NewFileStore loads a replacement table from path.
func NewFileStore(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}
	return parse(raw)
}

func parse(raw []byte) (*Store, error) {
	var table map[string][]string
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}

	profiles := make(map[string][]string, len(table))
	for name, landmarks := range table {
		profiles[strings.ToLower(name)] = landmarks
	}
	return &Store{profiles: profiles}, nil
}

// Landmarks returns the landmark identifiers for the exercise, nil when the
// exercise is unknown (meaning no filter applies).
func (s *Store) Landmarks(exercise string) []string {
	if exercise == "" {
		return nil
	}
	return s.profiles[strings.ToLower(exercise)]
}
