package capture

// ArgBinding pairs one formal parameter of a call with the raw expression
// text the caller typed for it, the value it evaluated to, and the
// environment the expression was written in.
type ArgBinding struct {
	Name  string // formal parameter name; "" for variadic bindings
	Text  string // the expression exactly as the caller typed it
	Value any    // the value the expression evaluated to
	Env   *Env   // the caller's environment
}

// CallRecord models the argument-passing record of one enclosing call:
// named formal parameters plus an ordered variadic tail. The caller
// constructs it at call time; capture operations only read it. Relying on
// ambient call-stack reflection is deliberately avoided.
type CallRecord struct {
	formals []ArgBinding
	byName  map[string]int
	dots    []ArgBinding
}

// NewCallRecord returns an empty call record.
func NewCallRecord() *CallRecord {
	return &CallRecord{byName: make(map[string]int)}
}

// Bind records one named formal parameter. Rebinding a name overwrites the
// earlier binding, mirroring how a call supplies each parameter once.
func (r *CallRecord) Bind(name, text string, value any, env *Env) *CallRecord {
	if i, ok := r.byName[name]; ok {
		r.formals[i] = ArgBinding{Name: name, Text: text, Value: value, Env: env}
		return r
	}
	r.byName[name] = len(r.formals)
	r.formals = append(r.formals, ArgBinding{Name: name, Text: text, Value: value, Env: env})
	return r
}

// BindVariadic appends one binding to the variadic tail, preserving
// left-to-right call order.
func (r *CallRecord) BindVariadic(text string, value any, env *Env) *CallRecord {
	r.dots = append(r.dots, ArgBinding{Text: text, Value: value, Env: env})
	return r
}

// Arg looks up a named formal parameter.
func (r *CallRecord) Arg(name string) (ArgBinding, bool) {
	i, ok := r.byName[name]
	if !ok {
		return ArgBinding{}, false
	}
	return r.formals[i], true
}

// Variadic returns the variadic tail in call order. The returned slice is
// shared; callers must not mutate it.
func (r *CallRecord) Variadic() []ArgBinding {
	return r.dots
}
