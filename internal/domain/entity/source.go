package entity

import (
	"fmt"
	"strings"
)

// Column is the front-end column a source is rendered in.
type Column string

const (
	ColumnLeft   Column = "left"
	ColumnMiddle Column = "middle"
)

// ParseColumn converts a raw string (case-insensitive) into a Column.
func ParseColumn(s string) (Column, error) {
	switch c := Column(strings.ToLower(strings.TrimSpace(s))); c {
	case ColumnLeft, ColumnMiddle:
		return c, nil
	default:
		return "", &ValidationError{Field: "column", Message: fmt.Sprintf("unknown column %q (must be left or middle)", s)}
	}
}

// Valid reports whether c is one of the known columns.
func (c Column) Valid() bool {
	return c == ColumnLeft || c == ColumnMiddle
}

// Source represents one configured publisher feed together with its display metadata.
// Sources are defined at process start and never mutated afterwards.
type Source struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Column  Column `yaml:"column"`
	FeedURL string `yaml:"feedUrl"`
	MoreURL string `yaml:"moreUrl"`
}

// Validate validates the Source entity fields.
func (s Source) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if !s.Column.Valid() {
		return &ValidationError{Field: "column", Message: fmt.Sprintf("unknown column %q (must be left or middle)", s.Column)}
	}
	if err := ValidateURL(s.FeedURL); err != nil {
		return fmt.Errorf("source %s: feedUrl: %w", s.ID, err)
	}
	if err := ValidateURL(s.MoreURL); err != nil {
		return fmt.Errorf("source %s: moreUrl: %w", s.ID, err)
	}
	return nil
}

// ValidateSources validates every source and enforces id uniqueness across the set.
func ValidateSources(sources []Source) error {
	if len(sources) == 0 {
		return fmt.Errorf("%w: no sources configured", ErrValidationFailed)
	}

	seen := make(map[string]struct{}, len(sources))
	for i, s := range sources {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: sources[%d]: %w", ErrValidationFailed, i, err)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate source id %q", ErrValidationFailed, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
