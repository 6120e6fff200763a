package runtime

import "testing"

func TestCombineRecords(t *testing.T) {
	left := NewRecord(ints(1, 2), []NamedEntry{kw("foo", Int(1)), kw("bar", Int(2))})
	right := NewRecord(ints(3), []NamedEntry{kw("bar", Int(9)), kw("baz", Int(3))})

	got, err := Combine(left, right)
	if err != nil {
		t.Fatalf("combine failed: %v", err)
	}
	want := NewRecord(ints(1, 2, 3), []NamedEntry{kw("foo", Int(1)), kw("bar", Int(9)), kw("baz", Int(3))})
	if !Equal(got, want) {
		t.Fatalf("combine = %s, want %s", Repr(got), Repr(want))
	}

	// operands stay untouched
	if left.Len() != 2 || right.NamedLen() != 2 {
		t.Fatalf("combine must not mutate its operands")
	}
}

func TestCombineWithSequences(t *testing.T) {
	rec := NewRecord(ints(1, 2), []NamedEntry{kw("foo", Int(1))})

	got, err := Combine(rec, NewTuple(ints(3, 4)...))
	if err != nil || !Equal(got, NewRecord(ints(1, 2, 3, 4), []NamedEntry{kw("foo", Int(1))})) {
		t.Fatalf("record+tuple = %v, %v", got, err)
	}

	got, err = Combine(NewTuple(ints(0)...), rec)
	if err != nil || !Equal(got, NewRecord(ints(0, 1, 2), []NamedEntry{kw("foo", Int(1))})) {
		t.Fatalf("tuple+record = %v, %v", got, err)
	}

	got, err = Combine(rec, NewArray(Int(3)))
	if err != nil || !Equal(got, NewRecord(ints(1, 2, 3), []NamedEntry{kw("foo", Int(1))})) {
		t.Fatalf("record+array = %v, %v", got, err)
	}
}

func TestCombineWithMaps(t *testing.T) {
	rec := NewRecord(ints(1), []NamedEntry{kw("foo", Int(1)), kw("bar", Int(2))})

	got, err := Combine(rec, NewMap(map[string]Value{"bar": Int(9), "baz": Int(3)}))
	if err != nil {
		t.Fatalf("record+map failed: %v", err)
	}
	want := NewRecord(ints(1), []NamedEntry{kw("foo", Int(1)), kw("bar", Int(9)), kw("baz", Int(3))})
	if !Equal(got, want) {
		t.Fatalf("record+map = %s, want %s", Repr(got), Repr(want))
	}

	// on the other side the record's members win collisions
	got, err = Combine(NewMap(map[string]Value{"foo": Int(9), "baz": Int(3)}), rec)
	if err != nil {
		t.Fatalf("map+record failed: %v", err)
	}
	want = NewRecord(ints(1), []NamedEntry{kw("foo", Int(1)), kw("bar", Int(2)), kw("baz", Int(3))})
	if !Equal(got, want) {
		t.Fatalf("map+record = %s, want %s", Repr(got), Repr(want))
	}
}

func TestCombineRejectsNonRecords(t *testing.T) {
	if _, err := Combine(Int(1), Int(2)); err == nil {
		t.Fatalf("combine without a record operand must fail")
	}
	if _, err := Combine(NewRecord(nil, nil), Int(2)); err == nil {
		t.Fatalf("combining a record with a scalar must fail")
	}
}
