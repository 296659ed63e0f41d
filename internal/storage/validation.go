package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/sift/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidIngestion = errors.New("invalid ingestion")
	ErrInvalidLimit     = errors.New("limit must be positive")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateIngestion validates an ingestion before it is saved.
func validateIngestion(ing *model.Ingestion) error {
	if ing == nil {
		return fmt.Errorf("%w: ingestion", ErrNilParameter)
	}
	if strings.TrimSpace(ing.Source) == "" {
		return fmt.Errorf("%w: missing source", ErrInvalidIngestion)
	}
	if ing.HeaderRow < -1 {
		return fmt.Errorf("%w: header row %d", ErrInvalidIngestion, ing.HeaderRow)
	}
	if ing.RowCount < 0 {
		return fmt.Errorf("%w: negative row count", ErrInvalidIngestion)
	}

	seen := make(map[int]struct{}, len(ing.Columns))
	for i, c := range ing.Columns {
		if _, dup := seen[c.Position]; dup {
			return fmt.Errorf("%w: column at index %d repeats position %d", ErrInvalidIngestion, i, c.Position)
		}
		seen[c.Position] = struct{}{}
	}
	return nil
}

// validateLimit ensures a list limit is usable.
func validateLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	return nil
}
