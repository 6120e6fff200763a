package runtime

import (
	"errors"
	"testing"
)

func mustHash(t *testing.T, v Value) uint64 {
	t.Helper()
	h, err := HashValue(v)
	if err != nil {
		t.Fatalf("hash of %s failed: %v", Repr(v), err)
	}
	return h
}

func TestRecordHashStability(t *testing.T) {
	for _, bc := range backendCases() {
		t.Run(bc.name, func(t *testing.T) {
			a := bc.build(nil, nil)
			b := bc.build(nil, nil)
			if mustHash(t, a) != mustHash(t, a) {
				t.Fatalf("repeated hashing must agree")
			}
			if mustHash(t, a) != mustHash(t, b) {
				t.Fatalf("equal empty records must hash alike")
			}
			if mustHash(t, a) != mustHash(t, NewTuple()) {
				t.Fatalf("empty record must hash like the empty tuple")
			}

			c := bc.build(ints(1, 2, 3), nil)
			d := bc.build(ints(1, 2, 3), nil)
			e := bc.build(ints(4, 5, 6), nil)
			if mustHash(t, c) != mustHash(t, d) {
				t.Fatalf("equal records must hash alike")
			}
			if mustHash(t, c) == mustHash(t, e) {
				t.Fatalf("distinct positionals should not collide")
			}
			if mustHash(t, c) != mustHash(t, NewTuple(ints(1, 2, 3)...)) {
				t.Fatalf("args-only record must hash like its tuple")
			}
		})
	}
}

func TestRecordHashNamedOrderIndependent(t *testing.T) {
	for _, bc := range backendCases() {
		t.Run(bc.name, func(t *testing.T) {
			f := bc.build(nil, []NamedEntry{kw("foo", Int(11)), kw("bar", Int(12))})
			g1 := bc.build(nil, []NamedEntry{kw("foo", Int(11)), kw("bar", Int(12))})
			g2 := bc.build(nil, []NamedEntry{kw("bar", Int(12)), kw("foo", Int(11))})
			h := bc.build(nil, []NamedEntry{kw("foo", Int(21)), kw("bar", Int(22)), kw("baz", Int(99))})

			if mustHash(t, f) != mustHash(t, g1) || mustHash(t, f) != mustHash(t, g2) {
				t.Fatalf("named hashing must ignore definition order")
			}
			if mustHash(t, f) == mustHash(t, h) {
				t.Fatalf("different named members should not collide")
			}

			i := bc.build(ints(1, 2, 3), []NamedEntry{kw("foo", Int(4)), kw("bar", Int(5))})
			j := bc.build(ints(1, 2, 3), []NamedEntry{kw("bar", Int(5)), kw("foo", Int(4))})
			k := bc.build(ints(4, 5, 6), []NamedEntry{kw("foo", Int(4)), kw("bar", Int(5))})
			l := bc.build(ints(1, 2, 3), []NamedEntry{kw("foo", Int(9)), kw("bar", Int(10))})

			if mustHash(t, i) != mustHash(t, j) {
				t.Fatalf("mixed hashing must ignore named order")
			}
			if mustHash(t, i) == mustHash(t, k) || mustHash(t, i) == mustHash(t, l) {
				t.Fatalf("differing members should not collide")
			}
			if mustHash(t, i) == mustHash(t, NewTuple(ints(1, 2, 3)...)) {
				t.Fatalf("named members must shift the hash away from the bare tuple")
			}
		})
	}
}

func TestRecordHashAcrossBackends(t *testing.T) {
	a := NewBasicRecord(ints(1, 2), []NamedEntry{kw("foo", Int(3))})
	b := NewCompactRecord(ints(1, 2), []NamedEntry{kw("foo", Int(3))})
	if mustHash(t, a) != mustHash(t, b) {
		t.Fatalf("backends must hash identically")
	}
}

func TestUnhashableContents(t *testing.T) {
	for _, bc := range backendCases() {
		t.Run(bc.name, func(t *testing.T) {
			mutable := NewMap(map[string]Value{"a": Int(1)})

			cases := []*RecordValue{
				bc.build([]Value{mutable}, nil),
				bc.build(nil, []NamedEntry{kw("b", mutable)}),
				bc.build([]Value{mutable}, []NamedEntry{kw("b", mutable)}),
				bc.build([]Value{NewArray(Int(1))}, nil),
				bc.build([]Value{NewTuple(NewArray(Int(1)))}, nil),
			}
			for _, rec := range cases {
				_, err := rec.Hash()
				if err == nil {
					t.Fatalf("expected %s to be unhashable", Repr(rec))
				}
				var unhashable *UnhashableError
				if !errors.As(err, &unhashable) {
					t.Fatalf("expected UnhashableError, got %v", err)
				}
				// failures must not memoize into a bogus cached hash
				if _, err := rec.Hash(); err == nil {
					t.Fatalf("repeated hash of %s must keep failing", Repr(rec))
				}
			}
		})
	}
}

func TestScalarHashing(t *testing.T) {
	if mustHash(t, Int(1)) == mustHash(t, Int(2)) {
		t.Fatalf("distinct integers should not collide")
	}
	if mustHash(t, Int(1)) == mustHash(t, Float(1)) {
		t.Fatalf("kinds must be hash-tagged apart")
	}
	if mustHash(t, Str("ab")) != mustHash(t, Str("ab")) {
		t.Fatalf("string hashing must be stable")
	}
	if _, err := HashValue(NewArray()); err == nil {
		t.Fatalf("arrays must not hash")
	}
	if _, err := HashValue(NewMap(nil)); err == nil {
		t.Fatalf("maps must not hash")
	}
	if _, err := HashValue(Constructor()); err == nil {
		t.Fatalf("callables must not hash")
	}
}

func TestHashMapWithRecordKeys(t *testing.T) {
	for _, bc := range backendCases() {
		t.Run(bc.name, func(t *testing.T) {
			data := NewHashMap()
			if err := data.Set(bc.build(nil, nil), Str("wut")); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			if err := data.Set(bc.build(ints(1, 2, 3), nil), Str("tacos")); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			if err := data.Set(bc.build(nil, []NamedEntry{kw("foo", Int(9))}), Str("foo niner")); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			if err := data.Set(bc.build(ints(2, 2), []NamedEntry{kw("hands", Str("blue"))}), Str("serenity")); err != nil {
				t.Fatalf("set failed: %v", err)
			}

			// records and equivalent plain tuples index the same slot
			got, err := data.Get(NewTuple())
			if err != nil || !Equal(got, Str("wut")) {
				t.Fatalf("empty tuple lookup = %v, %v", got, err)
			}
			got, err = data.Get(NewTuple(ints(1, 2, 3)...))
			if err != nil || !Equal(got, Str("tacos")) {
				t.Fatalf("tuple lookup = %v, %v", got, err)
			}
			got, err = data.Get(bc.build(ints(1, 2, 3), nil))
			if err != nil || !Equal(got, Str("tacos")) {
				t.Fatalf("record lookup = %v, %v", got, err)
			}
			got, err = data.Get(bc.build(ints(2, 2), []NamedEntry{kw("hands", Str("blue"))}))
			if err != nil || !Equal(got, Str("serenity")) {
				t.Fatalf("mixed record lookup = %v, %v", got, err)
			}

			// unhashable keys fail the same way on get and set
			bad := bc.build([]Value{NewMap(map[string]Value{"a": Int(1)})}, nil)
			if err := data.Set(bad, Nil()); err == nil {
				t.Fatalf("unhashable key must fail to set")
			}
			if _, err := data.Get(bad); err == nil {
				t.Fatalf("unhashable key must fail to get")
			}

			// absent keys miss cleanly
			misses := []Value{
				NewTuple(ints(1, 2, 3, 4)...),
				bc.build(ints(1, 2, 3), []NamedEntry{kw("foo", Int(9))}),
				bc.build(ints(2, 2), []NamedEntry{kw("hands", Str("tiny"))}),
				bc.build(nil, []NamedEntry{kw("hands", Str("blue"))}),
				bc.build(nil, []NamedEntry{kw("bar", Nil())}),
			}
			for _, miss := range misses {
				if _, err := data.Get(miss); err == nil {
					t.Fatalf("expected %s to miss", Repr(miss))
				} else {
					var keyErr *KeyMissingError
					if !errors.As(err, &keyErr) {
						t.Fatalf("expected KeyMissingError, got %v", err)
					}
				}
			}
		})
	}
}

func TestHashMapDelete(t *testing.T) {
	data := NewHashMap()
	key := NewRecord(ints(1), nil)
	if err := data.Set(key, Int(10)); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	removed, err := data.Delete(NewTuple(Int(1)))
	if err != nil || !removed {
		t.Fatalf("delete via equivalent tuple = %v, %v", removed, err)
	}
	if data.Len() != 0 {
		t.Fatalf("map should be empty after delete")
	}
	removed, err = data.Delete(key)
	if err != nil || removed {
		t.Fatalf("second delete must report absence, got %v, %v", removed, err)
	}
}
