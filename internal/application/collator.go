package application

import (
	"fmt"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the content language of the built-in catalog
const DefaultLocale = "ja"

// LocaleCollator orders strings by the collation rules of a language.
// A collate.Collator keeps internal buffers, so calls are serialized.
type LocaleCollator struct {
	mu  sync.Mutex
	col *collate.Collator
}

// NewCollator returns a collator for a BCP 47 locale such as "ja" or "en-US"
func NewCollator(locale string) (*LocaleCollator, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &LocaleCollator{col: collate.New(tag)}, nil
}

// Compare returns -1, 0 or 1
func (c *LocaleCollator) Compare(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.col.CompareString(a, b)
}
