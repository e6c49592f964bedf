package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "clientName" -> "client name")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"clientName":    "client name",
		"evaluatorName": "evaluator name",
		"entryDate":     "entry date",
		"periodStart":   "period start",
		"periodEnd":     "period end",
		"itemID":        "item ID",
		"category":      "category",
		"name":          "name",
		"description":   "description",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}
