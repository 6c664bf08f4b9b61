package listview

import (
	"slices"

	"github.com/thesavant42/platewatch/internal/models"
)

// Store holds the most recently retrieved sighting collection
type Store struct {
	records    []models.Sighting
	generation uint64
}

// Replace installs a freshly retrieved collection
func (s *Store) Replace(records []models.Sighting) {
	s.records = slices.Clone(records)
	s.generation++
}

// Reset empties the store
func (s *Store) Reset() {
	s.records = nil
	s.generation++
}

// Current returns a snapshot of the collection
func (s *Store) Current() []models.Sighting {
	return slices.Clone(s.records)
}

// Len returns the number of stored records
func (s *Store) Len() int {
	return len(s.records)
}

// Generation increases on every Replace or Reset
func (s *Store) Generation() uint64 {
	return s.generation
}

// Find returns the record with the given id
func (s *Store) Find(id string) (models.Sighting, bool) {
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return models.Sighting{}, false
}

func (s *Store) view() []models.Sighting {
	return s.records
}
