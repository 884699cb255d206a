package capture

// Env is a lexical binding environment: a name-to-value table with a
// parent chain. Typed captures record the environment an expression was
// written in so the host framework can later resolve it there.
type Env struct {
	parent *Env
	vars   map[string]any
}

// NewEnv returns an empty environment chained to parent. A nil parent
// makes a root environment.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		vars:   make(map[string]any),
	}
}

// Define binds name to value in this environment, shadowing any binding
// with the same name in the parent chain.
func (e *Env) Define(name string, value any) {
	e.vars[name] = value
}

// Lookup resolves name through the parent chain.
func (e *Env) Lookup(name string) (any, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}
