// Package multimap provides a string multimap that remembers key
// insertion order, so derived tables come out in first-appearance order
// instead of map order.
package multimap

// Multimap maps keys to ordered value lists. The zero value is not
// usable; call New.
type Multimap struct {
	order []string
	vals  map[string][]string
	seen  map[string]bool
}

// New returns an empty Multimap.
func New() *Multimap {
	return &Multimap{
		vals: make(map[string][]string),
		seen: make(map[string]bool),
	}
}

// AddKey registers key without appending a value. Registering an
// existing key is a no-op; the original position is kept.
func (m *Multimap) AddKey(key string) {
	if !m.seen[key] {
		m.seen[key] = true
		m.order = append(m.order, key)
	}
}

// Add appends value under key, registering the key if new.
func (m *Multimap) Add(key, value string) {
	m.AddKey(key)
	m.vals[key] = append(m.vals[key], value)
}

// Get returns the values appended under key, in order. Keys registered
// with AddKey only yield nil.
func (m *Multimap) Get(key string) []string {
	return m.vals[key]
}

// Has reports whether key has been registered.
func (m *Multimap) Has(key string) bool {
	return m.seen[key]
}

// Keys returns the keys in first-appearance order. The slice is shared;
// callers must not modify it.
func (m *Multimap) Keys() []string {
	return m.order
}

// Len returns the number of distinct keys.
func (m *Multimap) Len() int {
	return len(m.order)
}
