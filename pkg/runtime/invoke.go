package runtime

// Invoke applies the record's members as the arguments of target.
//
// Positionals: with no extras the record's own positionals are used;
// extras are accepted only when the record carries none, in which case
// they become the call's positionals outright. Supplying call-site
// positionals on top of bound ones is a signature mismatch, never a
// concatenation.
//
// Named: extras are merged over a copy of the record's named members,
// extras winning on key collision; with no extras the record's named
// members pass through unmodified.
func (v *RecordValue) Invoke(target Value, extra []Value, named map[string]Value) (Value, error) {
	if target == nil {
		return nil, &SignatureError{Reason: "no callable target to apply"}
	}

	var callPos []Value
	switch {
	case len(extra) == 0:
		callPos = v.Positionals()
	case v.Len() == 0:
		callPos = extra
	default:
		return nil, &SignatureError{
			Fn:     targetName(target),
			Reason: "positional members are already bound; call-site positionals cannot be merged",
		}
	}

	callNamed := v.Named()
	for name, val := range named {
		callNamed[name] = val
	}

	return Call(target, callPos, callNamed)
}

func targetName(target Value) string {
	if fn, ok := target.(*FunctionValue); ok {
		return fn.displayName()
	}
	return ""
}

// Copy rebuilds the record through its own constructor, producing an
// equal but distinct record on the default backend.
func (v *RecordValue) Copy() (*RecordValue, error) {
	result, err := v.Invoke(Constructor(), nil, nil)
	if err != nil {
		return nil, err
	}
	return result.(*RecordValue), nil
}
