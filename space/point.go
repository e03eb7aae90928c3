package space

import "strings"

// Point is an ordered mapping from parameter name to Value, preserving
// insertion order (§3). Points are value objects: conceptually immutable
// after construction, though Set allows a Point to be amended in place
// (nothing in this module calls it).
type Point struct {
	labels []string
	values []Value
}

// NewPoint returns an empty Point.
func NewPoint() Point {
	return Point{}
}

// Add appends a (label, value) pair. If label is already present, Add
// still appends a duplicate entry — callers that want upsert semantics
// should use Set.
func (p *Point) Add(label string, value Value) {
	p.labels = append(p.labels, label)
	p.values = append(p.values, value)
}

// Set updates the value for label if present, or appends it otherwise.
func (p *Point) Set(label string, value Value) {
	for i, l := range p.labels {
		if l == label {
			p.values[i] = value
			return
		}
	}
	p.Add(label, value)
}

// Get returns the stored value for label and true, or the zero Value and
// false if label is absent — the sentinel referred to in §3.
func (p Point) Get(label string) (Value, bool) {
	for i, l := range p.labels {
		if l == label {
			return p.values[i], true
		}
	}
	return Value{}, false
}

// GetInt is a convenience accessor for parameters known to hold a plain
// integer. Returns 0 if absent.
func (p Point) GetInt(label string) int {
	v, ok := p.Get(label)
	if !ok {
		return 0
	}
	return v.Int
}

// GetInts is a convenience accessor for parameters known to hold an
// integer tuple (tile factorizations, subcluster factorizations). Returns
// nil if absent.
func (p Point) GetInts(label string) []int {
	v, ok := p.Get(label)
	if !ok {
		return nil
	}
	return v.Ints
}

// GetString is a convenience accessor for parameters known to hold a
// categorical string. Returns "" if absent.
func (p Point) GetString(label string) string {
	v, ok := p.Get(label)
	if !ok {
		return ""
	}
	return v.String
}

// Labels returns the parameter names in insertion order. The returned
// slice must not be mutated by the caller.
func (p Point) Labels() []string {
	return p.labels
}

// Len returns the number of (label, value) pairs in this Point.
func (p Point) Len() int {
	return len(p.labels)
}

func (p Point) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, l := range p.labels {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(l)
		b.WriteByte(':')
		b.WriteString(p.values[i].String_())
	}
	b.WriteByte('}')
	return b.String()
}
