// Package repository defines the step-record store interface and its
// implementations.
package repository

import (
	"context"

	"github.com/okian/stride/internal/domain/model"
)

// Store provides write and read access to persisted step records.
// Records are append-only; no update or delete exists.
type Store interface {
	// Insert persists one record and returns the store-assigned identifier.
	Insert(ctx context.Context, rec model.StepRecord) (string, error)

	// ListViews returns the projected records for a device, sorted by
	// server_timestamp ascending. Ties keep the store's stable order.
	ListViews(ctx context.Context, deviceID string) ([]model.RecordView, error)

	// ListRecords returns the full records for a device, unordered.
	ListRecords(ctx context.Context, deviceID string) ([]model.StepRecord, error)
}
