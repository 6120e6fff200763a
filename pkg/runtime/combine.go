package runtime

import "fmt"

// Combine produces a new record from two operands, at least one of
// which must already be a record. Positional sequences concatenate
// left-to-right; named members merge with the right operand winning on
// collision. Tuples and arrays contribute to the positional side, maps
// to the named side.
func Combine(left Value, right Value) (*RecordValue, error) {
	if rec, ok := left.(*RecordValue); ok {
		return combineLeft(rec, right)
	}
	if rec, ok := right.(*RecordValue); ok {
		return combineRight(left, rec)
	}
	return nil, fmt.Errorf("combine requires a record operand, got %s and %s", left.Kind(), right.Kind())
}

func combineLeft(rec *RecordValue, right Value) (*RecordValue, error) {
	switch rv := right.(type) {
	case *RecordValue:
		pos := append(rec.Positionals(), rv.Positionals()...)
		entries := namedEntries(rec)
		entries = append(entries, namedEntries(rv)...)
		return NewRecord(pos, entries), nil
	case *MapValue:
		entries := namedEntries(rec)
		entries = append(entries, mapEntries(rv)...)
		return NewRecord(rec.Positionals(), entries), nil
	case *TupleValue:
		return NewRecord(append(rec.Positionals(), rv.Elements...), namedEntries(rec)), nil
	case *ArrayValue:
		return NewRecord(append(rec.Positionals(), rv.Elements...), namedEntries(rec)), nil
	default:
		return nil, fmt.Errorf("cannot combine record with value of kind %s", right.Kind())
	}
}

func combineRight(left Value, rec *RecordValue) (*RecordValue, error) {
	switch lv := left.(type) {
	case *MapValue:
		entries := mapEntries(lv)
		entries = append(entries, namedEntries(rec)...)
		return NewRecord(rec.Positionals(), entries), nil
	case *TupleValue:
		return NewRecord(append(append([]Value{}, lv.Elements...), rec.Positionals()...), namedEntries(rec)), nil
	case *ArrayValue:
		return NewRecord(append(append([]Value{}, lv.Elements...), rec.Positionals()...), namedEntries(rec)), nil
	default:
		return nil, fmt.Errorf("cannot combine value of kind %s with record", left.Kind())
	}
}

func namedEntries(rec *RecordValue) []NamedEntry {
	keys := rec.Keys()
	entries := make([]NamedEntry, 0, len(keys))
	for _, key := range keys {
		val, _ := rec.Get(key)
		entries = append(entries, NamedEntry{Name: key, Value: val})
	}
	return entries
}

func mapEntries(m *MapValue) []NamedEntry {
	return entriesFromMap(m.Entries)
}
