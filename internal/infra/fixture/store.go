// Package fixture loads the reference inventory that verification cases compare against.
//
// Every accessor returns deep copies, so concurrent cases can never observe
// each other's changes to fixture data.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"petstore-verify/internal/domain/entity"
)

// Store is an immutable collection of expected pets.
type Store struct {
	pets []entity.Pet
}

// NewStore copies pets into a new store.
func NewStore(pets []entity.Pet) *Store {
	return &Store{pets: entity.CloneAll(pets)}
}

// Load reads a fixture file and decodes it against schema.
// Files ending in .yaml or .yml are read as YAML; everything else as JSON.
// Both formats hold a list of pets in their flat wire form.
func Load(path string, schema entity.Schema) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture file '%s': %w", path, err)
	}

	pets, err := Decode(data, filepath.Ext(path), schema)
	if err != nil {
		return nil, fmt.Errorf("decode fixture file '%s': %w", path, err)
	}
	return &Store{pets: pets}, nil
}

// Decode decodes fixture data; ext selects the format (".yaml", ".yml" or JSON otherwise).
func Decode(data []byte, ext string, schema entity.Schema) ([]entity.Pet, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var raws []map[string]any
		if err := yaml.Unmarshal(data, &raws); err != nil {
			return nil, &entity.MalformedEntityError{Reason: "invalid YAML list", Raw: data, Err: err}
		}
		return entity.FromRawList(raws, schema)
	default:
		return entity.DecodeJSONList(data, schema)
	}
}

// LoadAll returns every pet in file order.
func (s *Store) LoadAll() []entity.Pet {
	return entity.CloneAll(s.pets)
}

// FilterByDiscriminator returns the pets of type t in file order.
func (s *Store) FilterByDiscriminator(t entity.PetType) []entity.Pet {
	var out []entity.Pet
	for _, p := range s.pets {
		if p.Type == t {
			out = append(out, p.Clone())
		}
	}
	return out
}

// FindByID returns the first pet with the given ID.
func (s *Store) FindByID(id int64) (entity.Pet, bool) {
	for _, p := range s.pets {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return entity.Pet{}, false
}

// SortedByID returns every pet ordered by ascending ID.
func (s *Store) SortedByID() []entity.Pet {
	return entity.SortByID(s.pets)
}

// Len returns the number of pets in the store.
func (s *Store) Len() int {
	return len(s.pets)
}
