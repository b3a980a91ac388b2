// Package memstore holds victims in process memory.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/msomdec/victim-store/internal/domain"
)

// VictimStore is an in-memory domain.VictimRepository.
// It is safe for concurrent use: reads share the lock, mutations and
// identity assignment hold it exclusively.
type VictimStore struct {
	mu      sync.RWMutex
	lastID  int64
	records map[int64]domain.Victim
	order   []int64 // insertion order
}

// NewVictimStore constructs an empty VictimStore.
func NewVictimStore() *VictimStore {
	return &VictimStore{
		records: make(map[int64]domain.Victim),
	}
}

// Create assigns the next identity and stores a copy of victim.
// Identities are never reused, even after deletion.
func (s *VictimStore) Create(ctx context.Context, victim *domain.Victim) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	victim.ID = s.lastID
	s.records[victim.ID] = *victim
	s.order = append(s.order, victim.ID)
	return nil
}

func (s *VictimStore) GetByID(ctx context.Context, id int64) (*domain.Victim, error) {
	s.mu.RLock()
	v, ok := s.records[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (s *VictimStore) List(ctx context.Context) ([]domain.Victim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	victims := make([]domain.Victim, 0, len(s.order))
	for _, id := range s.order {
		victims = append(victims, s.records[id])
	}
	return victims, nil
}

func (s *VictimStore) Update(ctx context.Context, id int64, patch domain.VictimPatch) (*domain.Victim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.Apply(&v)
	s.records[id] = v
	return &v, nil
}

func (s *VictimStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	// IDs in order are ascending, so the position can be binary searched.
	if i, found := slices.BinarySearch(s.order, id); found {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return nil
}

// Len returns the number of stored victims.
func (s *VictimStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
