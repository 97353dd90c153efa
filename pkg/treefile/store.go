package treefile

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/reactive"
)

// Store holds the state signals of every component in a program. State is
// per component definition: every mounted instance of a component reads the
// same signals.
type Store struct {
	mu      sync.Mutex
	signals map[string]map[string]*reactive.Signal[any]
}

func newStore(doc *Document) *Store {
	s := &Store{signals: make(map[string]map[string]*reactive.Signal[any])}
	for name, spec := range doc.Components {
		if len(spec.State) == 0 {
			continue
		}
		m := make(map[string]*reactive.Signal[any], len(spec.State))
		for key, v := range spec.State {
			m[key] = reactive.NewSignal[any](v)
		}
		s.signals[name] = m
	}
	return s
}

// state returns the setup state of component: its signals keyed by name.
func (s *Store) state(component string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := make(map[string]any, len(s.signals[component]))
	for key, sig := range s.signals[component] {
		state[key] = sig
	}
	return state
}

func (s *Store) signal(component, key string) (*reactive.Signal[any], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sig, ok := s.signals[component][key]
	if !ok {
		return nil, errors.New("E043").WithComponent(component).WithDetailf("no state key %q", key)
	}
	return sig, nil
}

// Get returns the current value of component's key without tracking.
func (s *Store) Get(component, key string) (any, error) {
	sig, err := s.signal(component, key)
	if err != nil {
		return nil, err
	}
	return sig.Peek(), nil
}

// Set writes component's key. Mounted components reading it re-render
// synchronously, so Set must run wherever the app is owned.
func (s *Store) Set(component, key string, value any) error {
	sig, err := s.signal(component, key)
	if err != nil {
		return err
	}
	sig.Set(value)
	return nil
}

// SetPath is Set with a "Component.key" path.
func (s *Store) SetPath(path string, value any) error {
	component, key, ok := strings.Cut(path, ".")
	if !ok || component == "" || key == "" {
		return errors.New("E043").WithDetailf("state path %q is not Component.key", path)
	}
	return s.Set(component, key, value)
}

// ParseValue decodes a raw YAML scalar or flow value, so "3" becomes an int
// and "true" a bool. Anything that is not valid YAML is kept as a string.
func ParseValue(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw
	}
	return v
}

// Paths returns every "Component.key" path, sorted.
func (s *Store) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var paths []string
	for component, m := range s.signals {
		for key := range m {
			paths = append(paths, component+"."+key)
		}
	}
	sort.Strings(paths)
	return paths
}

// Snapshot returns the current value of every path.
func (s *Store) Snapshot() map[string]any {
	out := make(map[string]any)
	for _, path := range s.Paths() {
		component, key, _ := strings.Cut(path, ".")
		v, _ := s.Get(component, key)
		out[path] = v
	}
	return out
}

func format(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
