// Package model defines the value and syntax trees shared by the editor layers.
package model

import (
	"iter"
	"slices"
)

// Kind is the shape class of a Value.
type Kind int

const (
	// KindScalar covers strings, numbers, booleans and null.
	KindScalar Kind = iota
	// KindMapping is an ordered string-keyed object.
	KindMapping
	// KindSequence is an ordered list.
	KindSequence
	// KindOpaque stands for any construct the editor cannot interpret.
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindOpaque:
		return "opaque"
	}

	return "unknown"
}

// Value is a sealed interface: only the types in this file implement it.
type Value interface {
	Kind() Kind
	// TypeName is the name reported in error messages.
	TypeName() string
	value()
}

// Scalar is the subset of Values that map to literal syntax.
type Scalar interface {
	Value
	scalar()
}

// String is a string scalar.
type String string

// Number is a numeric scalar. All numbers are float64, as in JavaScript.
type Number float64

// Bool is a boolean scalar.
type Bool bool

// Null is the null scalar.
type Null struct{}

// Opaque stands in for syntax the editor does not understand, such as
// functions or identifier references. It carries no payload.
type Opaque struct{}

func (String) Kind() Kind { return KindScalar }
func (Number) Kind() Kind { return KindScalar }
func (Bool) Kind() Kind   { return KindScalar }
func (Null) Kind() Kind   { return KindScalar }
func (Opaque) Kind() Kind { return KindOpaque }

func (String) TypeName() string { return "string" }
func (Number) TypeName() string { return "number" }
func (Bool) TypeName() string   { return "boolean" }
func (Null) TypeName() string   { return "null" }
func (Opaque) TypeName() string { return "opaque" }

func (String) value() {}
func (Number) value() {}
func (Bool) value()   {}
func (Null) value()   {}
func (Opaque) value() {}

func (String) scalar() {}
func (Number) scalar() {}
func (Bool) scalar()   {}
func (Null) scalar()   {}

// Mapping is an ordered key/value object. Keys keep their insertion order;
// overwriting an existing key does not move it.
type Mapping struct {
	keys []string
	vals map[string]Value
}

var _ Value = (*Mapping)(nil)

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{vals: make(map[string]Value)}
}

func (*Mapping) Kind() Kind       { return KindMapping }
func (*Mapping) TypeName() string { return "object" }
func (*Mapping) value()           {}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.vals[key]
	return ok
}

// Set stores v under key. New keys are appended; a nil v is stored as Null.
func (m *Mapping) Set(key string, v Value) {
	if m.vals == nil {
		m.vals = make(map[string]Value)
	}

	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.vals[key] = orNull(v)
}

// Delete removes key and reports whether it was present.
func (m *Mapping) Delete(key string) bool {
	if _, ok := m.vals[key]; !ok {
		return false
	}

	delete(m.vals, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })

	return true
}

// Keys returns a copy of the keys in order.
func (m *Mapping) Keys() []string {
	return slices.Clone(m.keys)
}

// All iterates over the entries in order.
func (m *Mapping) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

// Sequence is an ordered list of Values.
type Sequence struct {
	items []Value
}

var _ Value = (*Sequence)(nil)

// NewSequence returns a Sequence holding items.
func NewSequence(items ...Value) *Sequence {
	s := &Sequence{items: make([]Value, 0, len(items))}
	s.Append(items...)

	return s
}

func (*Sequence) Kind() Kind       { return KindSequence }
func (*Sequence) TypeName() string { return "array" }
func (*Sequence) value()           {}

// Len returns the number of elements.
func (s *Sequence) Len() int {
	return len(s.items)
}

// At returns the element at i. It panics when i is out of range, like a slice.
func (s *Sequence) At(i int) Value {
	return s.items[i]
}

// Set replaces the element at i.
func (s *Sequence) Set(i int, v Value) {
	s.items[i] = orNull(v)
}

// Append adds elements at the end.
func (s *Sequence) Append(vs ...Value) {
	for _, v := range vs {
		s.items = append(s.items, orNull(v))
	}
}

// Insert places v before index i; i == Len() appends.
func (s *Sequence) Insert(i int, v Value) {
	s.items = slices.Insert(s.items, i, orNull(v))
}

// Remove deletes the element at i.
func (s *Sequence) Remove(i int) {
	s.items = slices.Delete(s.items, i, i+1)
}

// Truncate drops every element from n on. It is a no-op when n >= Len().
func (s *Sequence) Truncate(n int) {
	if n < len(s.items) {
		s.items = s.items[:n]
	}
}

// Splice removes count elements starting at start and inserts vs there.
func (s *Sequence) Splice(start, count int, vs ...Value) {
	end := min(start+count, len(s.items))
	repl := make([]Value, 0, len(vs))

	for _, v := range vs {
		repl = append(repl, orNull(v))
	}

	s.items = slices.Replace(s.items, start, end, repl...)
}

// Values returns a copy of the elements.
func (s *Sequence) Values() []Value {
	return slices.Clone(s.items)
}

// All iterates over the elements with their index.
func (s *Sequence) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range s.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

func orNull(v Value) Value {
	if v == nil {
		return Null{}
	}

	return v
}

// Clone returns a deep copy of v. Scalars and Opaque are returned as is.
func Clone(v Value) Value {
	switch val := v.(type) {
	case *Mapping:
		out := NewMapping()
		for k, elem := range val.All() {
			out.Set(k, Clone(elem))
		}

		return out
	case *Sequence:
		out := NewSequence()
		for _, elem := range val.All() {
			out.Append(Clone(elem))
		}

		return out
	}

	return v
}
