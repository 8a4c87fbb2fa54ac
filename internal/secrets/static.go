package secrets

import (
	"context"
	"fmt"

	"github.com/awesomefonts/foundry/internal/serviceerr"
)

// Static serves secrets from an in-memory map. Only version 1 exists. It
// backs local development and tests.
type Static struct {
	values map[string]string
}

func NewStatic(values map[string]string) *Static {
	return &Static{values: values}
}

func (s *Static) Get(_ context.Context, name string, version int) (string, error) {
	if version != 1 {
		return "", fmt.Errorf("static secret %q has no version %d: %w", name, version, serviceerr.ErrNotFound)
	}

	value, ok := s.values[name]
	if !ok {
		return "", fmt.Errorf("static secret %q: %w", name, serviceerr.ErrNotFound)
	}

	return value, nil
}
