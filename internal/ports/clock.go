package ports

import "time"

// Clock supplies timestamps for record IDs and save times
type Clock interface {
	Now() time.Time
}

// Collator compares strings for display and export ordering
type Collator interface {
	Compare(a, b string) int
}
