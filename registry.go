package swiftmt

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var registry = struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}{schemas: make(map[string]*Schema)}

// Register makes s available to Lookup and to ParseFIN. Registering a
// second schema for the same type fails.
func Register(s *Schema) error {
	if s == nil || s.mt == "" {
		return fmt.Errorf("%w: cannot register schema without a type", ErrInvalidSchema)
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.schemas[s.mt]; exists {
		return fmt.Errorf("%w: MT%s", ErrDuplicateType, s.mt)
	}
	registry.schemas[s.mt] = s
	return nil
}

func mustRegister(s *Schema) *Schema {
	if err := Register(s); err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the schema registered for mt. Both "537" and "MT537" are accepted.
func Lookup(mt string) (*Schema, error) {
	key := normalizeType(mt)
	registry.mu.RLock()
	s, ok := registry.schemas[key]
	registry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, mt)
	}
	return s, nil
}

// Types lists the registered message types in ascending order.
func Types() []string {
	registry.mu.RLock()
	out := make([]string, 0, len(registry.schemas))
	for mt := range registry.schemas {
		out = append(out, mt)
	}
	registry.mu.RUnlock()
	sort.Strings(out)
	return out
}

func normalizeType(mt string) string {
	mt = strings.ToUpper(strings.TrimSpace(mt))
	return strings.TrimPrefix(mt, "MT")
}
