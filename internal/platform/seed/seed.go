// Package seed holds the built-in catalog and concept map. A YAML file with
// the same layout can replace it at startup.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/conceptmap"
	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/terminology"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is a catalog plus its concept map. It satisfies
// terminology.CatalogSource and conceptmap.Source.
type Seed struct {
	Catalog    []terminology.CatalogEntry `yaml:"catalog"`
	ConceptMap []conceptmap.Entry         `yaml:"conceptMap"`
}

// Default parses the embedded seed.
func Default() (*Seed, error) {
	return Parse(defaultSeed)
}

// LoadFile parses the seed at path.
func LoadFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Open returns the seed at path, or the embedded seed when path is empty.
func Open(path string) (*Seed, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(data []byte) (*Seed, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Seed
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if len(s.Catalog) == 0 {
		return nil, fmt.Errorf("decode seed: catalog is empty")
	}
	return &s, nil
}

func (s *Seed) LoadCatalog(ctx context.Context) ([]terminology.CatalogEntry, error) {
	return s.Catalog, ctx.Err()
}

func (s *Seed) LoadConceptMap(ctx context.Context) ([]conceptmap.Entry, error) {
	return s.ConceptMap, ctx.Err()
}
