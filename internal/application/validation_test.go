package application

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"assessio/internal/ports"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
		wantMsg   string
	}{
		{
			name:      "valid value",
			fieldName: "clientName",
			value:     "TY",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "clientName",
			value:     "",
			wantErr:   true,
			wantMsg:   "client name is required",
		},
		{
			name:      "whitespace only",
			fieldName: "periodEnd",
			value:     " \t ",
			wantErr:   true,
			wantMsg:   "period end is required",
		},
		{
			name:      "unknown field keeps its name",
			fieldName: "memo",
			value:     "",
			wantErr:   true,
			wantMsg:   "memo is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if valErr.Message != tt.wantMsg {
					t.Errorf("expected message %q, got %q", tt.wantMsg, valErr.Message)
				}
			}
		})
	}
}

func TestStorageError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantKind  StorageKind
		wantQuota bool
	}{
		{
			name:      "quota",
			err:       fmt.Errorf("write: %w", ports.ErrQuotaExceeded),
			wantKind:  StorageQuotaExceeded,
			wantQuota: true,
		},
		{
			name:     "other",
			err:      errors.New("disk on fire"),
			wantKind: StorageUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewStorageError("save", "assessments_TY", tt.err)
			if err.Kind != tt.wantKind {
				t.Errorf("expected kind %s, got %s", tt.wantKind, err.Kind)
			}
			if errors.Is(err, ErrQuotaExceeded) != tt.wantQuota {
				t.Errorf("errors.Is(ErrQuotaExceeded) = %v, want %v", !tt.wantQuota, tt.wantQuota)
			}
			if !errors.Is(err, tt.err) {
				t.Error("storage error should unwrap to the cause")
			}
			if !strings.Contains(err.Error(), "assessments_TY") {
				t.Errorf("message should name the key: %s", err.Error())
			}
		})
	}
}
