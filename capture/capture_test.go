package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callerRecord models mutate_by(dat, arg) where the caller typed `cyl`
// for arg, and cyl evaluates to "cyl" in the caller's environment.
func callerRecord() (*CallRecord, *Env) {
	env := NewEnv(nil)
	env.Define("cyl", []float64{6, 4, 8})
	rec := NewCallRecord().
		Bind("dat", "dat", "dataset", env).
		Bind("arg", "cyl", "cyl", env)
	return rec, env
}

func TestTypedName(t *testing.T) {
	t.Parallel()
	rec, env := callerRecord()

	q, err := TypedName(rec, "arg")
	require.NoError(t, err)
	assert.Equal(t, ShapeSingle, q.Shape())
	assert.False(t, q.ForAssignment())
	require.Equal(t, 1, q.Len())
	assert.Equal(t, "cyl", q.Symbols()[0].Name)
	assert.Same(t, env, q.Symbols()[0].Env)
}

func TestTypedNameNotAnArgument(t *testing.T) {
	t.Parallel()
	rec, _ := callerRecord()

	_, err := TypedName(rec, "missing")
	assert.ErrorIs(t, err, ErrNotAnArgument)

	_, err = TypedName(nil, "arg")
	assert.ErrorIs(t, err, ErrNotAnArgument)
}

func TestTypedNameLHS(t *testing.T) {
	t.Parallel()
	rec, _ := callerRecord()

	q, err := TypedNameLHS(rec, "arg")
	require.NoError(t, err)
	assert.Equal(t, ShapeSingle, q.Shape())
	assert.True(t, q.ForAssignment())

	// the tag surfaces at injection time, not at capture time
	_, err = InjectSingle(q)
	assert.ErrorIs(t, err, ErrAssignTargetOnly)
	sym, err := InjectAssignTarget(q)
	require.NoError(t, err)
	assert.Equal(t, "cyl", sym.Name)
}

func TestTypedListAsNameList(t *testing.T) {
	t.Parallel()
	env := NewEnv(nil)
	rec := NewCallRecord().
		Bind("dat", "dat", nil, env).
		BindVariadic("cyl", nil, env).
		BindVariadic("gear - 1", nil, env).
		BindVariadic("am", nil, env)

	q, err := TypedListAsNameList(rec)
	require.NoError(t, err)
	assert.Equal(t, ShapeList, q.Shape())
	require.Equal(t, 3, q.Len())
	assert.Equal(t, "cyl", q.Symbols()[0].Name)
	assert.Equal(t, "gear - 1", q.Symbols()[1].Name)
	assert.Equal(t, "am", q.Symbols()[2].Name)
}

func TestTypedListEmptyVariadic(t *testing.T) {
	t.Parallel()
	q, err := TypedListAsNameList(NewCallRecord())
	require.NoError(t, err)
	assert.Equal(t, ShapeList, q.Shape())
	assert.Equal(t, 0, q.Len())
}

func TestValueAsName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		value   any
		want    string
		wantErr error
	}{
		{name: "string scalar", value: "cyl", want: "cyl"},
		{name: "one element slice", value: []string{"cyl"}, want: "cyl"},
		{name: "one element any slice", value: []any{"cyl"}, want: "cyl"},
		{name: "empty string", value: "", wantErr: ErrNotScalarNameLike},
		{name: "multi element slice", value: []string{"cyl", "am"}, wantErr: ErrNotScalarNameLike},
		{name: "non string", value: 42, wantErr: ErrNotScalarNameLike},
		{name: "nil value", value: nil, wantErr: ErrNotScalarNameLike},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := NewCallRecord().Bind("arg", "colname", tt.value, NewEnv(nil))
			q, err := ValueAsName(rec, "arg")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ShapeSingle, q.Shape())
			assert.Equal(t, tt.want, q.Symbols()[0].Name)
		})
	}
}

func TestValueListAsNameList(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		values  any
		want    []string
		wantErr error
	}{
		{name: "string slice", values: []string{"cyl", "am"}, want: []string{"cyl", "am"}},
		{name: "any slice of strings", values: []any{"cyl", "am"}, want: []string{"cyl", "am"}},
		{name: "empty slice", values: []string{}, want: []string{}},
		{name: "empty name element", values: []string{"cyl", ""}, wantErr: ErrNotNameLike},
		{name: "non string element", values: []any{"cyl", 3}, wantErr: ErrNotNameLike},
		{name: "not a collection", values: "cyl", wantErr: ErrNotNameLike},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, err := ValueListAsNameList(tt.values)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ShapeList, q.Shape())
			got := make([]string, 0, q.Len())
			for _, s := range q.Symbols() {
				got = append(got, s.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// Capturing and then discarding must never raise: the only failures are
// the stated precondition checks.
func TestCaptureThenDiscard(t *testing.T) {
	t.Parallel()
	rec, _ := callerRecord()

	for _, op := range []func() (QuotedName, error){
		func() (QuotedName, error) { return TypedName(rec, "arg") },
		func() (QuotedName, error) { return TypedNameLHS(rec, "arg") },
		func() (QuotedName, error) { return TypedListAsNameList(rec) },
		func() (QuotedName, error) { return ValueAsName(rec, "arg") },
		func() (QuotedName, error) { return ValueListAsNameList([]string{"cyl"}) },
	} {
		_, err := op()
		assert.NoError(t, err)
	}
}

func TestInjectShapeChecks(t *testing.T) {
	t.Parallel()
	rec, _ := callerRecord()
	single, err := TypedName(rec, "arg")
	require.NoError(t, err)
	list, err := ValueListAsNameList([]string{"cyl", "am"})
	require.NoError(t, err)

	t.Run("single injection", func(t *testing.T) {
		t.Parallel()
		sym, err := InjectSingle(single)
		require.NoError(t, err)
		assert.Equal(t, "cyl", sym.Name)

		_, err = InjectSingle(list)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("splice injection", func(t *testing.T) {
		t.Parallel()
		syms, err := InjectSplice(list)
		require.NoError(t, err)
		assert.Len(t, syms, 2)

		_, err = InjectSplice(single)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("assignment target injection", func(t *testing.T) {
		t.Parallel()
		// a plain single is a fine assignment target; a list is not
		_, err := InjectAssignTarget(single)
		assert.NoError(t, err)

		_, err = InjectAssignTarget(list)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("zero value artifact", func(t *testing.T) {
		t.Parallel()
		// failed captures return QuotedName{} alongside their error;
		// injecting that must error, not panic
		empty, err := TypedName(rec, "missing")
		require.ErrorIs(t, err, ErrNotAnArgument)

		_, err = InjectSingle(empty)
		assert.ErrorIs(t, err, ErrShapeMismatch)

		_, err = InjectAssignTarget(empty)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})
}

func TestEnvLookup(t *testing.T) {
	t.Parallel()
	parent := NewEnv(nil)
	parent.Define("x", 1)
	child := NewEnv(parent)
	child.Define("y", 2)

	v, ok := child.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	child.Define("x", 3)
	v, _ = child.Lookup("x")
	assert.Equal(t, 3, v)

	_, ok = parent.Lookup("y")
	assert.False(t, ok)
}
