package site

import (
	"context"
	"sync"
)

// Color schemes the theme selector offers.
const (
	SchemeAuto  = "light dark"
	SchemeLight = "light"
	SchemeDark  = "dark"
)

// SchemeOption is one entry of the theme selector.
type SchemeOption struct {
	Value    string
	Label    string
	Selected bool
}

// ValidScheme reports whether s is one of the offered schemes.
func ValidScheme(s string) bool {
	switch s {
	case SchemeAuto, SchemeLight, SchemeDark:
		return true
	}
	return false
}

// NormalizeScheme maps anything unknown to the automatic scheme.
func NormalizeScheme(s string) string {
	if ValidScheme(s) {
		return s
	}
	return SchemeAuto
}

// SchemeOptions returns the selector entries with current selected.
func SchemeOptions(current string) []SchemeOption {
	current = NormalizeScheme(current)
	opts := []SchemeOption{
		{Value: SchemeAuto, Label: "Automatic"},
		{Value: SchemeLight, Label: "Light"},
		{Value: SchemeDark, Label: "Dark"},
	}
	for i := range opts {
		opts[i].Selected = opts[i].Value == current
	}
	return opts
}

// ThemeStore persists one color scheme per visitor.
type ThemeStore interface {
	GetScheme(ctx context.Context, visitor string) (string, error)
	SetScheme(ctx context.Context, visitor, scheme string) error
}

// MemoryThemeStore is a ThemeStore for tests and cache-less runs.
type MemoryThemeStore struct {
	mu      sync.RWMutex
	schemes map[string]string
}

// NewMemoryThemeStore creates an empty in-memory store.
func NewMemoryThemeStore() *MemoryThemeStore {
	return &MemoryThemeStore{schemes: make(map[string]string)}
}

func (m *MemoryThemeStore) GetScheme(ctx context.Context, visitor string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return NormalizeScheme(m.schemes[visitor]), nil
}

func (m *MemoryThemeStore) SetScheme(ctx context.Context, visitor, scheme string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schemes[visitor] = NormalizeScheme(scheme)
	return nil
}
