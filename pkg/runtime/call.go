package runtime

import (
	"fmt"
	"sort"
)

// Param is one declared parameter of a callable. A nil Default marks
// the parameter as required.
type Param struct {
	Name    string
	Default Value
}

// CallContext carries the bound arguments into a native
// implementation: one Bound slot per declared parameter, plus the
// collected extras for variadic and keyword-collecting callables.
type CallContext struct {
	Bound []Value
	Rest  []Value
	Named map[string]Value
}

// NativeFunc is the implementation body of a callable.
type NativeFunc func(ctx *CallContext) (Value, error)

// FunctionValue is an invocable target: a declared signature over a
// native Go implementation.
type FunctionValue struct {
	Name         string
	Params       []Param
	Variadic     bool
	CollectNamed bool
	Impl         NativeFunc
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) displayName() string {
	if v.Name == "" {
		return "<anonymous>"
	}
	return v.Name
}

// Call binds positional and named arguments against the target's
// signature and runs it. Arity or keyword mismatches surface as
// *SignatureError before the implementation is entered.
func Call(target Value, positionals []Value, named map[string]Value) (Value, error) {
	fn, ok := target.(*FunctionValue)
	if !ok {
		if target == nil {
			return nil, &SignatureError{Reason: "no callable target to apply"}
		}
		return nil, &SignatureError{Reason: fmt.Sprintf("value of kind %s is not callable", target.Kind())}
	}
	ctx, err := bindArgs(fn, positionals, named)
	if err != nil {
		return nil, err
	}
	return fn.Impl(ctx)
}

func bindArgs(fn *FunctionValue, positionals []Value, named map[string]Value) (*CallContext, error) {
	ctx := &CallContext{Bound: make([]Value, len(fn.Params))}
	filled := make([]bool, len(fn.Params))

	direct := len(positionals)
	if direct > len(fn.Params) {
		if !fn.Variadic {
			return nil, &SignatureError{
				Fn:     fn.displayName(),
				Reason: fmt.Sprintf("expects %d arguments, got %d", len(fn.Params), direct),
			}
		}
		direct = len(fn.Params)
		ctx.Rest = append(ctx.Rest, positionals[direct:]...)
	}
	for i := 0; i < direct; i++ {
		ctx.Bound[i] = positionals[i]
		filled[i] = true
	}

	if fn.CollectNamed {
		ctx.Named = make(map[string]Value)
	}
	for _, name := range sortedNames(named) {
		idx := fn.paramIndex(name)
		if idx < 0 {
			if fn.CollectNamed {
				ctx.Named[name] = named[name]
				continue
			}
			return nil, &SignatureError{
				Fn:     fn.displayName(),
				Reason: fmt.Sprintf("got an unexpected keyword argument %q", name),
			}
		}
		if filled[idx] {
			return nil, &SignatureError{
				Fn:     fn.displayName(),
				Reason: fmt.Sprintf("got multiple bindings for argument %q", name),
			}
		}
		ctx.Bound[idx] = named[name]
		filled[idx] = true
	}

	for i, param := range fn.Params {
		if filled[i] {
			continue
		}
		if param.Default == nil {
			return nil, &SignatureError{
				Fn:     fn.displayName(),
				Reason: fmt.Sprintf("missing required argument %q", param.Name),
			}
		}
		ctx.Bound[i] = param.Default
	}
	return ctx, nil
}

func (v *FunctionValue) paramIndex(name string) int {
	for i, p := range v.Params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func sortedNames(named map[string]Value) []string {
	if len(named) == 0 {
		return nil
	}
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Constructor returns the record constructor as a callable: it accepts
// any combination of positional and named arguments and rebuilds them
// into a fresh record on the default backend. Invoking a record with
// this target is the canonical copy operation.
func Constructor() *FunctionValue {
	return ConstructorFor(NewRecord)
}

// ConstructorFor wraps a specific backend constructor as a callable,
// which lets the contract tests round-trip through every backend.
func ConstructorFor(build func([]Value, []NamedEntry) *RecordValue) *FunctionValue {
	return &FunctionValue{
		Name:         "values",
		Variadic:     true,
		CollectNamed: true,
		Impl: func(ctx *CallContext) (Value, error) {
			entries := make([]NamedEntry, 0, len(ctx.Named))
			for _, name := range sortedNames(ctx.Named) {
				entries = append(entries, NamedEntry{Name: name, Value: ctx.Named[name]})
			}
			return build(ctx.Rest, entries), nil
		},
	}
}
