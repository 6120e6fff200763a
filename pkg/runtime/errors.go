package runtime

import "fmt"

// UnhashableError reports a hash request over contents that cannot be
// hashed (mutable arrays or maps, callables). It propagates unchanged
// whether the offending value sat in the positional or the named side
// of a record.
type UnhashableError struct {
	Kind Kind
}

func (e *UnhashableError) Error() string {
	return fmt.Sprintf("unhashable value of kind %s", e.Kind)
}

// IndexRangeError reports a positional subscript outside
// [-Length, Length).
type IndexRangeError struct {
	Index  int
	Length int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("positional index %d out of range for length %d", e.Index, e.Length)
}

// KeyMissingError reports a named lookup for an absent key.
type KeyMissingError struct {
	Key string
}

func (e *KeyMissingError) Error() string {
	return fmt.Sprintf("no named member %q", e.Key)
}

// SignatureError reports an invocation whose arguments do not satisfy
// the target's arity or keyword requirements, or an invocation of
// something that is not callable at all.
type SignatureError struct {
	Fn     string
	Reason string
}

func (e *SignatureError) Error() string {
	if e.Fn == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Fn, e.Reason)
}
