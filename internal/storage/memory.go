package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"neuronet/internal/model"
)

var errNotInitialized = errors.New("store is not initialized")

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	profiles    map[string]model.Profile
	builds      map[string]model.BuildRecord
	buildOrder  []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.profiles = make(map[string]model.Profile)
	s.builds = make(map[string]model.BuildRecord)
	s.buildOrder = nil
	return nil
}

func (s *MemoryStore) SaveProfile(_ context.Context, profile model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	s.profiles[profile.Name] = profile
	return nil
}

func (s *MemoryStore) GetProfile(_ context.Context, name string) (model.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[name]
	return profile, ok, nil
}

func (s *MemoryStore) ListProfiles(_ context.Context) ([]model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := make([]model.Profile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		profiles = append(profiles, profile)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

func (s *MemoryStore) SaveBuildRecord(_ context.Context, record model.BuildRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	if _, err := createdAtKey(record.CreatedAtUTC); err != nil {
		return fmt.Errorf("build record %s: %w", record.ID, err)
	}
	if _, exists := s.builds[record.ID]; exists {
		for i, id := range s.buildOrder {
			if id == record.ID {
				s.buildOrder = append(s.buildOrder[:i], s.buildOrder[i+1:]...)
				break
			}
		}
	}
	s.buildOrder = append(s.buildOrder, record.ID)
	s.builds[record.ID] = copyBuildRecord(record)
	return nil
}

func (s *MemoryStore) GetBuildRecord(_ context.Context, id string) (model.BuildRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.builds[id]
	if !ok {
		return model.BuildRecord{}, false, nil
	}
	return copyBuildRecord(record), true, nil
}

func (s *MemoryStore) ListBuildRecords(_ context.Context, limit int) ([]model.BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest save first, then a stable sort on creation time keeps save order
	// as the tie-break, matching the sqlite listing.
	records := make([]model.BuildRecord, 0, len(s.buildOrder))
	for i := len(s.buildOrder) - 1; i >= 0; i-- {
		records = append(records, copyBuildRecord(s.builds[s.buildOrder[i]]))
	}
	sort.SliceStable(records, func(i, j int) bool {
		ki, _ := createdAtKey(records[i].CreatedAtUTC)
		kj, _ := createdAtKey(records[j].CreatedAtUTC)
		return ki > kj
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func copyBuildRecord(record model.BuildRecord) model.BuildRecord {
	record.Signal = append([]float64(nil), record.Signal...)
	record.Layers = append([]int(nil), record.Layers...)
	record.Outputs = append([]float64(nil), record.Outputs...)
	record.Derivatives = append([]float64(nil), record.Derivatives...)
	return record
}
