package application

import (
	"errors"
	"fmt"

	"assessio/internal/domain"
	"assessio/internal/ports"
)

// Sentinel errors for common conditions
var (
	ErrNotFound        = errors.New("not found")
	ErrNoStorage       = errors.New("no storage for blank client")
	ErrDuplicateItem   = domain.ErrDuplicateItem
	ErrIndexOutOfRange = domain.ErrIndexOutOfRange
	ErrInvalidScore    = domain.ErrInvalidScore
	ErrQuotaExceeded   = ports.ErrQuotaExceeded
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StorageKind classifies a failed write
type StorageKind string

const (
	StorageQuotaExceeded StorageKind = "quota_exceeded"
	StorageUnknown       StorageKind = "unknown"
)

// StorageError reports a write the persistence layer rejected
type StorageError struct {
	Op   string
	Key  string
	Kind StorageKind
	Err  error
}

// NewStorageError classifies err and wraps it
func NewStorageError(op, key string, err error) *StorageError {
	kind := StorageUnknown
	if errors.Is(err, ports.ErrQuotaExceeded) {
		kind = StorageQuotaExceeded
	}
	return &StorageError{Op: op, Key: key, Kind: kind, Err: err}
}

func (e *StorageError) Error() string {
	if e.Kind == StorageQuotaExceeded {
		return fmt.Sprintf("cannot %s %s: storage is full: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrQuotaExceeded && e.Kind == StorageQuotaExceeded
}
