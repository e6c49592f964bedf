package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"assessio/internal/domain"
	"assessio/internal/ports"
	"assessio/pkg/logger"
)

var _ ports.RecordRepository = (*RecordRepository)(nil)

// RecordRepository stores each client's records as one JSON array under
// assessments_<sanitized client>. There is no index across clients.
type RecordRepository struct {
	store ports.KeyValueStore
	log   logger.Logger
}

// NewRecordRepository creates a record repository
func NewRecordRepository(store ports.KeyValueStore, log logger.Logger) *RecordRepository {
	return &RecordRepository{store: store, log: log.Named("records")}
}

// List returns the client's records in save order. Malformed data reads as empty.
func (r *RecordRepository) List(ctx context.Context, clientID string) ([]domain.Record, error) {
	key, ok := domain.RecordKey(clientID)
	if !ok {
		return nil, nil
	}
	return r.load(ctx, key)
}

// Append adds a record to the end of the client's collection
func (r *RecordRepository) Append(ctx context.Context, clientID string, record domain.Record) error {
	key, ok := domain.RecordKey(clientID)
	if !ok {
		return nil
	}
	records, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	return r.save(ctx, key, append(records, record))
}

// Remove drops the record with recordID; a missing record is a no-op
func (r *RecordRepository) Remove(ctx context.Context, clientID string, recordID int64) error {
	key, ok := domain.RecordKey(clientID)
	if !ok {
		return nil
	}
	records, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(records, func(rec domain.Record) bool {
		return rec.ID == recordID
	})
	return r.save(ctx, key, kept)
}

// Find returns the record with recordID, or nil
func (r *RecordRepository) Find(ctx context.Context, clientID string, recordID int64) (*domain.Record, error) {
	records, err := r.List(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == recordID {
			return &records[i], nil
		}
	}
	return nil, nil
}

func (r *RecordRepository) load(ctx context.Context, key string) ([]domain.Record, error) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}

	var records []domain.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		r.log.Warn(ctx, "ignoring malformed records", logger.String("key", key), logger.Error(err))
		return nil, nil
	}
	for i := range records {
		if records[i].Normalize() {
			r.log.Debug(ctx, "migrated legacy record", logger.String("key", key), logger.Int64("id", records[i].ID))
		}
	}
	return records, nil
}

func (r *RecordRepository) save(ctx context.Context, key string, records []domain.Record) error {
	if records == nil {
		records = []domain.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return r.store.Set(ctx, key, string(data))
}
