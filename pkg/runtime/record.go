package runtime

import (
	"sort"
	"sync"
)

// NamedEntry is one keyword-named member in definition order.
type NamedEntry struct {
	Name  string
	Value Value
}

// recordStorage is the backend contract behind RecordValue. Both the
// basic and the compact layout satisfy it; every record algorithm runs
// against this surface so the two backends stay behaviourally
// indistinguishable.
type recordStorage interface {
	positionalCount() int
	positionalAt(i int) Value
	namedCount() int
	namedKey(i int) string
	lookup(name string) (Value, bool)
}

// RecordValue fuses a positional sequence and a keyword-named mapping
// into a single immutable value. Neither side changes after
// construction; the only mutable cell is the memoized hash, guarded at
// the cache write.
type RecordValue struct {
	store recordStorage

	mu     sync.Mutex
	hashed uint64
	hashOK bool
}

func (v *RecordValue) Kind() Kind { return KindRecord }

// NewRecord builds a record on the default backend. Duplicate names in
// entries resolve to the last occurrence, matching mapping update
// semantics.
func NewRecord(positionals []Value, entries []NamedEntry) *RecordValue {
	return NewCompactRecord(positionals, entries)
}

// NewBasicRecord builds a record on the reference slice+map backend.
func NewBasicRecord(positionals []Value, entries []NamedEntry) *RecordValue {
	return &RecordValue{store: newBasicStorage(positionals, entries)}
}

// NewCompactRecord builds a record on the flat single-array backend.
func NewCompactRecord(positionals []Value, entries []NamedEntry) *RecordValue {
	return &RecordValue{store: newCompactStorage(positionals, entries)}
}

// NewRecordMap is a convenience constructor from a Go map. Go maps
// carry no insertion order, so names are sorted to keep display
// deterministic; equality and hashing are order-independent anyway.
func NewRecordMap(positionals []Value, named map[string]Value) *RecordValue {
	return NewRecord(positionals, entriesFromMap(named))
}

func entriesFromMap(named map[string]Value) []NamedEntry {
	if len(named) == 0 {
		return nil
	}
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	entries := make([]NamedEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, NamedEntry{Name: name, Value: named[name]})
	}
	return entries
}

//-----------------------------------------------------------------------------
// Views
//-----------------------------------------------------------------------------

// Len reports the number of positional members.
func (v *RecordValue) Len() int { return v.store.positionalCount() }

// NamedLen reports the number of named members.
func (v *RecordValue) NamedLen() int { return v.store.namedCount() }

// Empty reports whether both sides are empty; the empty record is the
// only falsy record.
func (v *RecordValue) Empty() bool {
	return v.store.positionalCount() == 0 && v.store.namedCount() == 0
}

// At returns the positional member at index i. Negative indices count
// from the end.
func (v *RecordValue) At(i int) (Value, error) {
	length := v.store.positionalCount()
	idx := i
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return nil, &IndexRangeError{Index: i, Length: length}
	}
	return v.store.positionalAt(idx), nil
}

// Slice returns the positional members in [lo, hi) as a tuple, with
// both bounds clamped to the valid range.
func (v *RecordValue) Slice(lo, hi int) *TupleValue {
	length := v.store.positionalCount()
	if lo < 0 {
		lo += length
	}
	if hi < 0 {
		hi += length
	}
	lo = clamp(lo, 0, length)
	hi = clamp(hi, lo, length)
	els := make([]Value, 0, hi-lo)
	for i := lo; i < hi; i++ {
		els = append(els, v.store.positionalAt(i))
	}
	return &TupleValue{Elements: els}
}

func clamp(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

// Get returns the named member for name.
func (v *RecordValue) Get(name string) (Value, error) {
	if val, ok := v.store.lookup(name); ok {
		return val, nil
	}
	return nil, &KeyMissingError{Key: name}
}

// Index resolves a dynamic subscript: integer keys read the positional
// sequence, everything else is treated as a named lookup.
func (v *RecordValue) Index(key Value) (Value, error) {
	switch k := key.(type) {
	case IntegerValue:
		return v.At(int(k.Val))
	case StringValue:
		return v.Get(k.Val)
	default:
		return nil, &KeyMissingError{Key: Repr(key)}
	}
}

// Positionals returns a copy of the positional members in order.
// Iteration over a record yields these and never the named members.
func (v *RecordValue) Positionals() []Value {
	out := make([]Value, v.store.positionalCount())
	for i := range out {
		out[i] = v.store.positionalAt(i)
	}
	return out
}

// Keys returns the named member keys in definition order.
func (v *RecordValue) Keys() []string {
	out := make([]string, v.store.namedCount())
	for i := range out {
		out[i] = v.store.namedKey(i)
	}
	return out
}

// Named returns a copy of the named members, discarding order.
func (v *RecordValue) Named() map[string]Value {
	out := make(map[string]Value, v.store.namedCount())
	for i := 0; i < v.store.namedCount(); i++ {
		name := v.store.namedKey(i)
		val, _ := v.store.lookup(name)
		out[name] = val
	}
	return out
}

// ToTuple converts the positional members to a plain tuple.
func (v *RecordValue) ToTuple() *TupleValue {
	return &TupleValue{Elements: v.Positionals()}
}

// ToMap converts the named members to a plain map, discarding the
// positionals.
func (v *RecordValue) ToMap() *MapValue {
	return &MapValue{Entries: v.Named()}
}

//-----------------------------------------------------------------------------
// Basic storage backend
//-----------------------------------------------------------------------------

type basicStorage struct {
	args  []Value
	kwds  map[string]Value
	order []string
}

func newBasicStorage(positionals []Value, entries []NamedEntry) *basicStorage {
	s := &basicStorage{
		args: make([]Value, len(positionals)),
		kwds: make(map[string]Value, len(entries)),
	}
	copy(s.args, positionals)
	for _, e := range entries {
		if _, seen := s.kwds[e.Name]; !seen {
			s.order = append(s.order, e.Name)
		}
		s.kwds[e.Name] = e.Value
	}
	return s
}

func (s *basicStorage) positionalCount() int { return len(s.args) }

func (s *basicStorage) positionalAt(i int) Value { return s.args[i] }

func (s *basicStorage) namedCount() int { return len(s.order) }

func (s *basicStorage) namedKey(i int) string { return s.order[i] }

func (s *basicStorage) lookup(name string) (Value, bool) {
	val, ok := s.kwds[name]
	return val, ok
}
