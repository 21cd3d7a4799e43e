package repository

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/okian/stride/internal/domain/model"
)

// MemoryStore keeps records in process memory behind the same Store
// interface as the document store. Used by tests and the "memory" backend
// for local development; nothing survives a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.StepRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert appends a record, assigning a fresh ObjectID.
func (s *MemoryStore) Insert(_ context.Context, rec model.StepRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = primitive.NewObjectID()
	s.records = append(s.records, rec)
	return rec.ID.Hex(), nil
}

// ListViews returns projected records for a device sorted by
// server_timestamp ascending; insertion order is kept for equal timestamps.
func (s *MemoryStore) ListViews(_ context.Context, deviceID string) ([]model.RecordView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]model.RecordView, 0)
	for _, rec := range s.records {
		if rec.DeviceID == deviceID {
			views = append(views, rec.View())
		}
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].ServerTimestamp < views[j].ServerTimestamp
	})
	return views, nil
}

// ListRecords returns copies of the full records for a device.
func (s *MemoryStore) ListRecords(_ context.Context, deviceID string) ([]model.StepRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.StepRecord, 0)
	for _, rec := range s.records {
		if rec.DeviceID == deviceID {
			records = append(records, rec)
		}
	}
	return records, nil
}

// Len reports the number of stored records across all devices.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
