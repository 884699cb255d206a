// Package capture classifies how a function argument resolves to a quoted
// column name. Its five operations are the friendly layer over the host
// quoting framework's own primitives: each one wraps either the expression
// a caller typed for an argument or the value the argument is bound to
// into a QuotedName artifact the framework's injection operators accept.
//
// All operations are pure. They read the explicit CallRecord handed to
// them and nothing else, so they must run while the enclosing call's
// record is still live; a record does not outlive its call.
package capture

import "fmt"

// TypedName quotes the expression the caller typed for the named slot, in
// a normal (non-assignment) position.
func TypedName(rec *CallRecord, slot string) (QuotedName, error) {
	b, err := typedBinding(rec, slot)
	if err != nil {
		return QuotedName{}, err
	}
	return newSingle(Symbol{Name: b.Text, Raw: b.Text, Env: b.Env}, false), nil
}

// TypedNameLHS quotes the expression the caller typed for the named slot
// and tags the artifact as an assignment target. The tag is only checked
// when the artifact is injected; capture itself cannot see the marker it
// will be used under.
func TypedNameLHS(rec *CallRecord, slot string) (QuotedName, error) {
	b, err := typedBinding(rec, slot)
	if err != nil {
		return QuotedName{}, err
	}
	return newSingle(Symbol{Name: b.Text, Raw: b.Text, Env: b.Env}, true), nil
}

// TypedListAsNameList quotes every expression in the enclosing call's
// variadic tail, left to right. An empty tail yields an empty list, not
// an error.
func TypedListAsNameList(rec *CallRecord) (QuotedName, error) {
	dots := rec.Variadic()
	syms := make([]Symbol, 0, len(dots))
	for _, b := range dots {
		syms = append(syms, Symbol{Name: b.Text, Raw: b.Text, Env: b.Env})
	}
	return newList(syms), nil
}

// ValueAsName quotes the value currently bound to the named slot, which
// must be a single name-like scalar.
func ValueAsName(rec *CallRecord, slot string) (QuotedName, error) {
	b, err := typedBinding(rec, slot)
	if err != nil {
		return QuotedName{}, err
	}
	name, ok := scalarName(b.Value)
	if !ok {
		return QuotedName{}, fmt.Errorf("argument %q: %w", slot, ErrNotScalarNameLike)
	}
	return newSingle(Symbol{Name: name, Raw: name}, false), nil
}

// ValueListAsNameList quotes an ordered collection of name-like scalars,
// preserving order. It accepts a string slice or an any slice whose
// elements are all name-like.
func ValueListAsNameList(values any) (QuotedName, error) {
	switch vs := values.(type) {
	case []string:
		syms := make([]Symbol, 0, len(vs))
		for _, v := range vs {
			if v == "" {
				return QuotedName{}, fmt.Errorf("empty name: %w", ErrNotNameLike)
			}
			syms = append(syms, Symbol{Name: v, Raw: v})
		}
		return newList(syms), nil
	case []any:
		syms := make([]Symbol, 0, len(vs))
		for i, v := range vs {
			name, ok := scalarName(v)
			if !ok {
				return QuotedName{}, fmt.Errorf("element %d: %w", i, ErrNotNameLike)
			}
			syms = append(syms, Symbol{Name: name, Raw: name})
		}
		return newList(syms), nil
	default:
		return QuotedName{}, fmt.Errorf("collection of type %T: %w", values, ErrNotNameLike)
	}
}

func typedBinding(rec *CallRecord, slot string) (ArgBinding, error) {
	if rec == nil {
		return ArgBinding{}, fmt.Errorf("argument %q: %w", slot, ErrNotAnArgument)
	}
	b, ok := rec.Arg(slot)
	if !ok {
		return ArgBinding{}, fmt.Errorf("argument %q: %w", slot, ErrNotAnArgument)
	}
	return b, nil
}

// scalarName reads a value as one name-like scalar: a non-empty string or
// a one-element slice holding one.
func scalarName(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, s != ""
	case []string:
		if len(s) == 1 && s[0] != "" {
			return s[0], true
		}
	case []any:
		if len(s) == 1 {
			if inner, ok := s[0].(string); ok && inner != "" {
				return inner, true
			}
		}
	}
	return "", false
}
