package symbols

import (
	"testing"

	"aslc/internal/types"
)

func TestScopeStackLookup(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	tbl := NewTable(in)

	global := tbl.PushNewScope(GlobalScopeName)
	tbl.AddFunction("f", in.MakeFunction(nil, b.Void))

	inner := tbl.PushNewScope("f")
	tbl.AddParameter("x", b.Integer)
	tbl.AddLocalVar("y", b.Float)

	if !tbl.FindInCurrentScope("x") {
		t.Fatalf("x not found in current scope")
	}
	if tbl.FindInCurrentScope("f") {
		t.Fatalf("f should not be in the function scope")
	}
	if got := tbl.FindInStack("f"); got != global {
		t.Fatalf("FindInStack(f) = %d, want %d", got, global)
	}
	if got := tbl.FindInStack("y"); got != inner {
		t.Fatalf("FindInStack(y) = %d, want %d", got, inner)
	}
	if got := tbl.FindInStack("zz"); got != NoScopeID {
		t.Fatalf("FindInStack(zz) = %d, want NoScopeID", got)
	}

	if tbl.GetType("x") != b.Integer {
		t.Fatalf("GetType(x) wrong")
	}
	if !tbl.IsParameterClass("x") || tbl.IsLocalVarClass("x") {
		t.Fatalf("x classified wrong")
	}
	if !tbl.IsLocalVarClass("y") {
		t.Fatalf("y classified wrong")
	}
	if !tbl.IsFunctionClass("f") {
		t.Fatalf("f classified wrong")
	}

	// Inner declaration shadows the outer one.
	tbl.AddLocalVar("f", b.Boolean)
	if tbl.IsFunctionClass("f") {
		t.Fatalf("shadowed f still classified as function")
	}

	tbl.PopScope()
	if !tbl.IsFunctionClass("f") {
		t.Fatalf("f lost after pop")
	}
	tbl.PopScope()
	if tbl.Depth() != 0 {
		t.Fatalf("Depth = %d, want 0", tbl.Depth())
	}
}

func TestPushExistingScope(t *testing.T) {
	in := types.NewInterner()
	tbl := NewTable(in)

	global := tbl.PushNewScope(GlobalScopeName)
	fnScope := tbl.PushNewScope("f")
	tbl.AddLocalVar("x", in.Builtins().Integer)
	tbl.PopScope()
	tbl.PopScope()

	tbl.PushScope(global)
	tbl.PushScope(fnScope)
	if !tbl.FindInCurrentScope("x") {
		t.Fatalf("x lost after re-entering scope")
	}
}

func TestNoMainProperlyDeclared(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	build := func(install func(tbl *Table)) *Table {
		tbl := NewTable(in)
		tbl.PushNewScope(GlobalScopeName)
		install(tbl)
		tbl.PopScope()
		return tbl
	}

	tbl := build(func(tbl *Table) {})
	if !tbl.NoMainProperlyDeclared() {
		t.Fatalf("missing main not detected")
	}

	tbl = build(func(tbl *Table) {
		tbl.AddFunction("main", in.MakeFunction(nil, b.Void))
	})
	if tbl.NoMainProperlyDeclared() {
		t.Fatalf("proper main flagged")
	}

	tbl = build(func(tbl *Table) {
		tbl.AddFunction("main", in.MakeFunction([]types.TypeID{b.Integer}, b.Void))
	})
	if !tbl.NoMainProperlyDeclared() {
		t.Fatalf("main with parameters accepted")
	}

	tbl = build(func(tbl *Table) {
		tbl.AddFunction("main", in.MakeFunction(nil, b.Integer))
	})
	if !tbl.NoMainProperlyDeclared() {
		t.Fatalf("main returning int accepted")
	}

	tbl = build(func(tbl *Table) {
		tbl.AddLocalVar("main", b.Integer)
	})
	if !tbl.NoMainProperlyDeclared() {
		t.Fatalf("variable named main accepted as entry point")
	}
}
