package reactive

import (
	"fmt"
	"sort"
)

// Ref is a reactive value that can be read without knowing its type.
// AnyValue is a tracked read.
type Ref interface {
	AnyValue() any
}

// WritableRef is a Ref that accepts untyped writes.
type WritableRef interface {
	Ref
	SetAny(v any) error
}

// IsRef reports whether v is a reactive reference.
func IsRef(v any) bool {
	_, ok := v.(Ref)
	return ok
}

// Record is a view over a state map in which reading a key dereferences
// reactive references automatically.
type Record struct {
	raw map[string]any
}

// Unwrap returns a Record over m. The map is not copied, so values added to
// m later are visible through the Record.
func Unwrap(m map[string]any) *Record {
	if m == nil {
		m = make(map[string]any)
	}
	return &Record{raw: m}
}

// Lookup returns the value for key, dereferencing refs.
func (r *Record) Lookup(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.raw[key]
	if !ok {
		return nil, false
	}
	if ref, isRef := v.(Ref); isRef {
		return ref.AnyValue(), true
	}
	return v, true
}

// Get returns the value for key or nil.
func (r *Record) Get(key string) any {
	v, _ := r.Lookup(key)
	return v
}

// Has reports whether key exists without reading it.
func (r *Record) Has(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r.raw[key]
	return ok
}

// Set writes through a WritableRef stored under key, or replaces a plain
// value. Writing a key that does not exist is an error.
func (r *Record) Set(key string, v any) error {
	if r == nil {
		return fmt.Errorf("reactive: set %q on nil record", key)
	}
	existing, ok := r.raw[key]
	if !ok {
		return fmt.Errorf("reactive: unknown key %q", key)
	}
	if ref, isRef := existing.(WritableRef); isRef {
		return ref.SetAny(v)
	}
	if IsRef(existing) {
		return fmt.Errorf("reactive: key %q is read-only", key)
	}
	r.raw[key] = v
	return nil
}

// Raw returns the underlying map, refs included.
func (r *Record) Raw() map[string]any {
	if r == nil {
		return nil
	}
	return r.raw
}

// Keys returns the record keys in sorted order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.raw))
	for k := range r.raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
