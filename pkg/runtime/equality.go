package runtime

// Equal compares two runtime values. Scalars compare within their own
// kind; tuples and arrays compare element-wise; maps compare by key set
// and per-key values. Records carry their own dispatch (see
// recordEquals) and the tuple/map cases hand a record operand back to
// it, so the comparison is symmetric no matter which side the record
// arrives on.
func Equal(left Value, right Value) bool {
	switch lv := left.(type) {
	case NilValue:
		_, ok := right.(NilValue)
		return ok
	case BoolValue:
		if rv, ok := right.(BoolValue); ok {
			return lv.Val == rv.Val
		}
	case IntegerValue:
		if rv, ok := right.(IntegerValue); ok {
			return lv.Val == rv.Val
		}
	case FloatValue:
		if rv, ok := right.(FloatValue); ok {
			return lv.Val == rv.Val
		}
	case CharValue:
		if rv, ok := right.(CharValue); ok {
			return lv.Val == rv.Val
		}
	case StringValue:
		if rv, ok := right.(StringValue); ok {
			return lv.Val == rv.Val
		}
	case *TupleValue:
		if rv, ok := right.(*TupleValue); ok {
			return elementsEqual(lv.Elements, rv.Elements)
		}
		if rv, ok := right.(*RecordValue); ok {
			return recordEquals(rv, lv)
		}
	case *ArrayValue:
		if rv, ok := right.(*ArrayValue); ok {
			return elementsEqual(lv.Elements, rv.Elements)
		}
	case *MapValue:
		if rv, ok := right.(*MapValue); ok {
			return mapsEqual(lv.Entries, rv.Entries)
		}
		if rv, ok := right.(*RecordValue); ok {
			return recordEquals(rv, lv)
		}
	case *RecordValue:
		return recordEquals(lv, right)
	}
	return false
}

func elementsEqual(left, right []Value) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if !Equal(left[i], right[i]) {
			return false
		}
	}
	return true
}

func mapsEqual(left, right map[string]Value) bool {
	if len(left) != len(right) {
		return false
	}
	for k, lv := range left {
		rv, ok := right[k]
		if !ok || !Equal(lv, rv) {
			return false
		}
	}
	return true
}

// recordEquals runs the record equality cases in contract order:
// identity, record-vs-record, record-vs-tuple (named side must be
// empty), record-vs-map (positional side must be empty), otherwise
// unequal. A record carrying both positionals and named members never
// equals a plain tuple or map.
func recordEquals(rec *RecordValue, other Value) bool {
	switch ov := other.(type) {
	case *RecordValue:
		if rec == ov {
			return true
		}
		return namedEqual(rec, ov.Named()) &&
			elementsEqual(rec.Positionals(), ov.Positionals())
	case *TupleValue:
		return rec.NamedLen() == 0 &&
			elementsEqual(rec.Positionals(), ov.Elements)
	case *MapValue:
		return rec.Len() == 0 && namedEqual(rec, ov.Entries)
	default:
		return false
	}
}

func namedEqual(rec *RecordValue, other map[string]Value) bool {
	if rec.NamedLen() != len(other) {
		return false
	}
	for _, key := range rec.Keys() {
		mine, _ := rec.Get(key)
		theirs, ok := other[key]
		if !ok || !Equal(mine, theirs) {
			return false
		}
	}
	return true
}

// Truthy reports the boolean interpretation of a value. Containers are
// truthy when non-empty; the empty record is the only falsy record.
func Truthy(val Value) bool {
	switch v := val.(type) {
	case BoolValue:
		return v.Val
	case NilValue:
		return false
	case *TupleValue:
		return len(v.Elements) > 0
	case *ArrayValue:
		return len(v.Elements) > 0
	case *MapValue:
		return len(v.Entries) > 0
	case *RecordValue:
		return !v.Empty()
	case *HashMapValue:
		return v.Len() > 0
	default:
		return true
	}
}
