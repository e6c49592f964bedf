package domain

import (
	"fmt"
	"strings"
)

// DescriptionPlaceholder is used for bulk lines that omit a description
const DescriptionPlaceholder = "説明なし"

const fullWidthBar = "｜"

// LineErrorKind classifies why a bulk line was rejected
type LineErrorKind int

const (
	NoDelimiter LineErrorKind = iota
	InsufficientFields
	MissingCategory
	EmptyCategory
	EmptyName
)

func (k LineErrorKind) String() string {
	switch k {
	case NoDelimiter:
		return "no delimiter found (expected comma, ｜ or tab)"
	case InsufficientFields:
		return "not enough comma-separated fields"
	case MissingCategory:
		return "no category given and none selected"
	case EmptyCategory:
		return "category is empty"
	case EmptyName:
		return "item name is empty"
	default:
		return "unknown error"
	}
}

// LineError is a rejected bulk line. Line is 1-based.
type LineError struct {
	Line int
	Kind LineErrorKind
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Kind)
}

// SkippedLine is a bulk line whose item already exists. Line is 1-based.
type SkippedLine struct {
	Line     int
	Category string
	Name     string
}

func (s SkippedLine) String() string {
	return fmt.Sprintf("line %d: %s - %s (duplicate)", s.Line, s.Category, s.Name)
}

// BulkReport is the full accounting of a bulk parse
type BulkReport struct {
	Items   []Item
	Errors  []LineError
	Skipped []SkippedLine
}

// ErrorMessages renders the errors one per entry
func (r BulkReport) ErrorMessages() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Error()
	}
	return out
}

// SkippedMessages renders the skipped lines one per entry
func (r BulkReport) SkippedMessages() []string {
	out := make([]string, len(r.Skipped))
	for i, s := range r.Skipped {
		out[i] = s.String()
	}
	return out
}

// ParseBulkItems parses one item per non-blank line.
//
// A line is split on the first delimiter kind it contains, in order:
// comma, full-width bar, tab. Comma lines with three or more fields carry
// their own category; every other form takes fallbackCategory. Lines that
// duplicate an existing item or an earlier line are skipped, not errored.
func ParseBulkItems(text, fallbackCategory string, existing []Item) BulkReport {
	var report BulkReport

	seen := make(map[ItemKey]bool, len(existing))
	for _, item := range existing {
		seen[item.Key()] = true
	}
	fallback := strings.TrimSpace(fallbackCategory)

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		var category, name, description string
		switch {
		case strings.Contains(line, ","):
			parts := splitTrim(line, ",")
			switch {
			case len(parts) >= 3:
				category, name, description = parts[0], parts[1], parts[2]
			case len(parts) == 2:
				if fallback == "" {
					report.Errors = append(report.Errors, LineError{Line: lineNo, Kind: MissingCategory})
					continue
				}
				category, name, description = fallback, parts[0], parts[1]
			default:
				report.Errors = append(report.Errors, LineError{Line: lineNo, Kind: InsufficientFields})
				continue
			}
		case strings.Contains(line, fullWidthBar):
			parts := splitTrim(line, fullWidthBar)
			category, name, description = fallback, parts[0], parts[1]
		case strings.Contains(line, "\t"):
			parts := splitTrim(line, "\t")
			category, name, description = fallback, parts[0], parts[1]
		default:
			report.Errors = append(report.Errors, LineError{Line: lineNo, Kind: NoDelimiter})
			continue
		}

		if category == "" {
			report.Errors = append(report.Errors, LineError{Line: lineNo, Kind: EmptyCategory})
			continue
		}
		if name == "" {
			report.Errors = append(report.Errors, LineError{Line: lineNo, Kind: EmptyName})
			continue
		}
		if description == "" {
			description = DescriptionPlaceholder
		}

		key := ItemKey{Category: category, Name: name}
		if seen[key] {
			report.Skipped = append(report.Skipped, SkippedLine{Line: lineNo, Category: category, Name: name})
			continue
		}
		seen[key] = true
		report.Items = append(report.Items, NewItem(category, name, description))
	}

	return report
}

// splitTrim splits on sep and trims each field. A line that contains sep
// always yields at least two fields.
func splitTrim(line, sep string) []string {
	parts := strings.Split(line, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
