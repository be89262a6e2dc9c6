package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRegistrySeedsBuiltinScalars(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for _, name := range builtinScalars {
		typ := r.Lookup("$builtin." + name)
		require.NotNil(t, typ, "missing builtin %s", name)
		require.Equal(t, Terminal, typ.Kind)
	}
}

func TestTypeIDsAreMonotonic(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	seen := map[int]bool{}
	for _, name := range builtinScalars {
		typ := r.Lookup("$builtin." + name)
		require.False(t, seen[typ.ID], "duplicate id %d", typ.ID)
		seen[typ.ID] = true
	}

	a := r.DeclareType("pkg.A", Sum)
	b := r.DeclareType("pkg.B", Product)
	require.Equal(t, a.ID+1, b.ID)
	require.Greater(t, a.ID, len(builtinScalars)-1)
}

func TestDeclareTypeCreatesIntermediateNamespaces(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	declared := r.DeclareType("deep.nested.namespace.T", Product)

	require.Same(t, declared, r.Lookup("deep.nested.namespace.T"))
	require.Nil(t, r.Lookup("deep.nested.T"))
	require.Nil(t, r.Lookup("deep.nested.namespace.U"))
}

func TestLookupMissingPath(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.Nil(t, r.Lookup("nope"))
	require.Nil(t, r.Lookup("nope.at.all"))
	require.Nil(t, r.Lookup("$builtin.u7"))
}

func TestRegistriesAreIndependent(t *testing.T) {
	t.Parallel()

	a := NewRegistry()
	b := NewRegistry()
	a.DeclareType("only.here", Sum)
	require.NotNil(t, a.Lookup("only.here"))
	require.Nil(t, b.Lookup("only.here"))
}

func TestKindString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Terminal", Terminal.String())
	require.Equal(t, "Sum", Sum.String())
	require.Equal(t, "Product", Product.String())
}
