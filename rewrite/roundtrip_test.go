package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colref/colref/capture"
	"github.com/colref/colref/rewrite/syntax"
)

// evalSites evaluates every marker-over-call site in src against a fixed
// binding record, mapping both the friendly capture names and the native
// framework names onto the capture operations. It returns the injected
// name lists per site, in source order.
func evalSites(t *testing.T, src string, rec *capture.CallRecord, env *capture.Env) [][]string {
	t.Helper()
	prog, err := syntax.Parse(src)
	require.NoError(t, err)

	var results [][]string
	syntax.Inspect(prog, func(n syntax.Node) bool {
		u, ok := n.(*syntax.Unary)
		if !ok || (u.Op != syntax.OpInject && u.Op != syntax.OpSplice) {
			return true
		}
		call, ok := u.X.(*syntax.Call)
		if !ok {
			return true
		}
		q, known := evalQuote(t, call, src, rec, env)
		if !known {
			return true
		}
		var syms []capture.Symbol
		if u.Op == syntax.OpSplice {
			syms, err = capture.InjectSplice(q)
		} else if q.ForAssignment() {
			sym, serr := capture.InjectAssignTarget(q)
			syms, err = []capture.Symbol{sym}, serr
		} else {
			sym, serr := capture.InjectSingle(q)
			syms, err = []capture.Symbol{sym}, serr
		}
		require.NoError(t, err)
		names := make([]string, len(syms))
		for i, s := range syms {
			names[i] = s.Name
		}
		results = append(results, names)
		return false
	})
	return results
}

func evalQuote(t *testing.T, call *syntax.Call, src string, rec *capture.CallRecord, env *capture.Env) (capture.QuotedName, bool) {
	t.Helper()
	argText := func(i int) string {
		span := call.Args[i].Value.Span()
		return src[span.Start:span.End]
	}
	var (
		q   capture.QuotedName
		err error
	)
	switch call.Callee() {
	case "typed_as_name", "ensym":
		q, err = capture.TypedName(rec, argText(0))
	case "typed_as_name_lhs":
		q, err = capture.TypedNameLHS(rec, argText(0))
	case "typed_list_as_name_list", "ensyms":
		q, err = capture.TypedListAsNameList(rec)
	case "value_as_name", "sym":
		v, ok := env.Lookup(argText(0))
		require.True(t, ok, "unbound value %s", argText(0))
		sub := capture.NewCallRecord().Bind("x", argText(0), v, env)
		q, err = capture.ValueAsName(sub, "x")
	case "value_list_as_name_list", "syms":
		v, ok := env.Lookup(argText(0))
		require.True(t, ok, "unbound value %s", argText(0))
		q, err = capture.ValueListAsNameList(v)
	default:
		return capture.QuotedName{}, false
	}
	require.NoError(t, err)
	return q, true
}

// For inputs whose capture calls sit under matching markers, evaluating
// the original and the rewritten text against the same binding
// environment must inject the same names.
func TestRewriteRoundTrip(t *testing.T) {
	t.Parallel()

	env := capture.NewEnv(nil)
	env.Define("arg", "cyl")
	env.Define("cols", []string{"cyl", "am"})
	rec := capture.NewCallRecord().
		Bind("arg", "cyl", "cyl", env).
		BindVariadic("cyl", nil, env).
		BindVariadic("am", nil, env)

	tests := []struct {
		name  string
		input string
	}{
		{name: "typed single", input: `mutate(dat, result = !!typed_as_name(arg)*2)`},
		{name: "value single", input: `mutate(dat, result = !!value_as_name(arg)*2)`},
		{name: "typed list", input: `group_by(dat, !!!typed_list_as_name_list(...))`},
		{name: "value list", input: `group_by(dat, !!!value_list_as_name_list(cols))`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rewritten, err := Rewrite(tt.input)
			require.NoError(t, err)
			require.NotEqual(t, tt.input, rewritten)

			before := evalSites(t, tt.input, rec, env)
			after := evalSites(t, rewritten, rec, env)
			require.NotEmpty(t, before)
			assert.Equal(t, before, after)
		})
	}
}
