package runtime

import "fmt"

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindChar
	KindString
	KindTuple
	KindArray
	KindMap
	KindRecord
	KindFunction
	KindHashMap
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindTuple:
		return "tuple"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindRecord:
		return "record"
	case KindFunction:
		return "function"
	case KindHashMap:
		return "hash_map"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type CharValue struct {
	Val rune
}

func (v CharValue) Kind() Kind { return KindChar }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Composites
//-----------------------------------------------------------------------------

// TupleValue is the immutable ordered sequence. It is the "plain
// sequence" of the record equality contract and hashes when its
// elements do.
type TupleValue struct {
	Elements []Value
}

func (v *TupleValue) Kind() Kind { return KindTuple }

func (v *TupleValue) Len() int { return len(v.Elements) }

// ArrayValue is the mutable ordered sequence. Arrays never hash.
type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

// MapValue is the mutable string-keyed mapping. Maps never hash. It is
// the "plain mapping" of the record equality contract.
type MapValue struct {
	Entries map[string]Value
}

func (v *MapValue) Kind() Kind { return KindMap }

func (v *MapValue) Len() int { return len(v.Entries) }

//-----------------------------------------------------------------------------
// Construction helpers
//-----------------------------------------------------------------------------

func Nil() Value { return NilValue{} }

func Bool(b bool) Value { return BoolValue{Val: b} }

func Int(i int64) Value { return IntegerValue{Val: i} }

func Float(f float64) Value { return FloatValue{Val: f} }

func Char(r rune) Value { return CharValue{Val: r} }

func Str(s string) Value { return StringValue{Val: s} }

// NewTuple captures the given elements into an immutable tuple. The
// slice is copied so later mutation of the caller's storage cannot
// leak in.
func NewTuple(elements ...Value) *TupleValue {
	els := make([]Value, len(elements))
	copy(els, elements)
	return &TupleValue{Elements: els}
}

func NewArray(elements ...Value) *ArrayValue {
	els := make([]Value, len(elements))
	copy(els, elements)
	return &ArrayValue{Elements: els}
}

func NewMap(entries map[string]Value) *MapValue {
	m := make(map[string]Value, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return &MapValue{Entries: m}
}
