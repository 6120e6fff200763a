package runtime

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Repr renders a value in its debugging form. Records render as
// "values()" / "values(1, 2, 3, foo=4)": positionals in order, then
// name=value pairs in definition order, comma separated. The format is
// a display contract only, never parsed back.
func Repr(val Value) string {
	switch v := val.(type) {
	case NilValue:
		return "nil"
	case BoolValue:
		return strconv.FormatBool(v.Val)
	case IntegerValue:
		return strconv.FormatInt(v.Val, 10)
	case FloatValue:
		return strconv.FormatFloat(v.Val, 'g', -1, 64)
	case CharValue:
		return strconv.QuoteRune(v.Val)
	case StringValue:
		return strconv.Quote(v.Val)
	case *TupleValue:
		return "(" + joinRepr(v.Elements) + ")"
	case *ArrayValue:
		return "[" + joinRepr(v.Elements) + "]"
	case *MapValue:
		return mapRepr(v)
	case *RecordValue:
		return recordRepr(v)
	case *FunctionValue:
		return fmt.Sprintf("<function %s>", v.displayName())
	case *HashMapValue:
		return fmt.Sprintf("<hash_map of %d entries>", v.Len())
	default:
		return fmt.Sprintf("<%s>", val.Kind())
	}
}

func joinRepr(elements []Value) string {
	parts := make([]string, len(elements))
	for i, el := range elements {
		parts[i] = Repr(el)
	}
	return strings.Join(parts, ", ")
}

func mapRepr(v *MapValue) string {
	keys := make([]string, 0, len(v.Entries))
	for k := range v.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + Repr(v.Entries[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func recordRepr(v *RecordValue) string {
	var sb strings.Builder
	sb.WriteString("values(")
	first := true
	for _, p := range v.Positionals() {
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString(Repr(p))
		first = false
	}
	for _, key := range v.Keys() {
		val, _ := v.Get(key)
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(Repr(val))
		first = false
	}
	sb.WriteByte(')')
	return sb.String()
}
