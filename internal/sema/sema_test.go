package sema

import (
	"testing"

	"aslc/internal/ast"
	"aslc/internal/diag"
	"aslc/internal/lexer"
	"aslc/internal/parser"
	"aslc/internal/source"
	"aslc/internal/symbols"
	"aslc/internal/types"
)

type checked struct {
	builder *ast.Builder
	program *ast.Program
	table   *symbols.Table
	interner *types.Interner
	dec     *Decorations
	bag     *diag.Bag
	result  Result
}

func checkText(t *testing.T, text string) checked {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.asl", []byte(text))
	bag := diag.NewBag(32)
	rep := diag.BagReporter{Bag: bag}

	toks := lexer.Scan(fs.Get(id), rep)
	res := parser.Parse(fs.Get(id), toks, rep)
	if res.HasErrors {
		t.Fatalf("syntax errors in test input: %+v", bag.Items())
	}

	in := types.NewInterner()
	tbl := symbols.NewTable(in)
	dec := NewDecorations()
	Declare(res.Builder, res.Program, tbl, in, dec, rep)
	result := Check(res.Builder, res.Program, tbl, in, dec, rep)
	return checked{
		builder: res.Builder, program: res.Program,
		table: tbl, interner: in, dec: dec, bag: bag, result: result,
	}
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func wantCodes(t *testing.T, bag *diag.Bag, want ...diag.Code) {
	t.Helper()
	got := codes(bag)
	if len(got) != len(want) {
		t.Fatalf("diagnostics = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("diagnostics = %v, want %v", got, want)
		}
	}
}

func TestCleanProgram(t *testing.T) {
	res := checkText(t, `
func f(x: int, v: array[8] of float) : float
  return v[x];
endfunc
func main()
  var a : array[8] of float; var y : float;
  y = f(3, a);
  write y;
endfunc
`)
	wantCodes(t, res.bag)
	if res.result.NoMain {
		t.Fatalf("NoMain set for a program with a proper main")
	}
}

func TestDuplicateIdent(t *testing.T) {
	res := checkText(t, `
func main()
  var x : int; var x : float;
endfunc
`)
	wantCodes(t, res.bag, diag.SemaDuplicateIdent)
}

func TestDuplicateParameterAndFunction(t *testing.T) {
	res := checkText(t, `
func f(a: int, a: int)
endfunc
func f()
endfunc
func main()
endfunc
`)
	wantCodes(t, res.bag, diag.SemaDuplicateIdent, diag.SemaDuplicateIdent)
	// The first signature survives: f still takes two ints.
	if res.table.NoMainProperlyDeclared() {
		t.Fatalf("main lost")
	}
}

func TestUndeclaredIdent(t *testing.T) {
	res := checkText(t, `
func main()
  var x : int endvar
  x = y;
endfunc
`)
	wantCodes(t, res.bag, diag.SemaUndeclaredIdent)
}

func TestIncompatibleAssignment(t *testing.T) {
	res := checkText(t, `
func main()
  var x : int; var b : bool;
  x = b;
endfunc
`)
	wantCodes(t, res.bag, diag.SemaIncompatibleAssignment)
}

func TestWideningAssignmentAccepted(t *testing.T) {
	res := checkText(t, `
func main()
  var f : float; var i : int;
  f = i;
endfunc
`)
	wantCodes(t, res.bag)
}

func TestNarrowingAssignmentRejected(t *testing.T) {
	res := checkText(t, `
func main()
  var f : float; var i : int;
  i = f;
endfunc
`)
	wantCodes(t, res.bag, diag.SemaIncompatibleAssignment)
}

func TestAssignToFunctionRejected(t *testing.T) {
	res := checkText(t, `
func g()
endfunc
func main()
  g = 3;
endfunc
`)
	wantCodes(t, res.bag, diag.SemaIncompatibleAssignment, diag.SemaNonReferenceableLeftExpr)
}

func TestBooleanRequired(t *testing.T) {
	res := checkText(t, `
func main()
  var b : bool endvar
  if 5 then endif
  while 1 + 2 do endwhile
endfunc
`)
	wantCodes(t, res.bag, diag.SemaBooleanRequired, diag.SemaBooleanRequired)
}

func TestCallDiagnostics(t *testing.T) {
	res := checkText(t, `
func f(x: int) : int
  return x;
endfunc
func main()
  var y : int; var b : bool;
  y = f(1, 2);
  y = f(b);
  y = y(3);
endfunc
`)
	wantCodes(t, res.bag,
		diag.SemaNumberOfParameters,
		diag.SemaIncompatibleParameter,
		diag.SemaIsNotCallable,
	)
}

func TestVoidCallInExpression(t *testing.T) {
	res := checkText(t, `
func p()
endfunc
func main()
  var y : int endvar
  y = p();
endfunc
`)
	// p() in expression position is not a function; the error type then
	// absorbs the assignment check.
	wantCodes(t, res.bag, diag.SemaIsNotFunction)
}

func TestProcCallStatement(t *testing.T) {
	res := checkText(t, `
func p(x: float)
endfunc
func main()
  p(3);
  p(true);
endfunc
`)
	// Int widens into the float parameter; bool does not.
	wantCodes(t, res.bag, diag.SemaIncompatibleParameter)
}

func TestReturnChecks(t *testing.T) {
	res := checkText(t, `
func v()
  return 3;
endfunc
func f() : int
  return;
endfunc
func g() : float
  return 3;
endfunc
func h() : int
  return true;
endfunc
func main()
endfunc
`)
	wantCodes(t, res.bag,
		diag.SemaIncompatibleReturn, // value from void function
		diag.SemaIncompatibleReturn, // bare return from int function
		diag.SemaIncompatibleReturn, // bool from int function
	)
}

func TestReadWriteChecks(t *testing.T) {
	res := checkText(t, `
func main()
  var a : array[4] of int; var x : int;
  read a;
  write a;
  read x;
  write x;
  write "ok";
endfunc
`)
	wantCodes(t, res.bag, diag.SemaReadWriteRequireBasic, diag.SemaReadWriteRequireBasic)
}

func TestArrayAccessChecks(t *testing.T) {
	res := checkText(t, `
func main()
  var a : array[4] of int; var x : int; var b : bool;
  x = x[0];
  x = a[b];
  a[b] = 1;
  x[0] = 1;
endfunc
`)
	wantCodes(t, res.bag,
		diag.SemaNonArrayInArrayAccess,
		diag.SemaNonIntegerIndexInArrayAccess,
		diag.SemaNonIntegerIndexInArrayAccess,
		diag.SemaNonArrayInArrayAccess,
	)
}

func TestOperatorChecks(t *testing.T) {
	res := checkText(t, `
func main()
  var x : int; var b : bool; var c : char;
  x = x + b;
  x = x % 2;
  x = 1.5 % 2;
  b = b and x;
  b = not x;
  b = c < x;
  b = x <= 2.5;
endfunc
`)
	wantCodes(t, res.bag,
		diag.SemaIncompatibleOperator, // x + b
		diag.SemaIncompatibleOperator, // 1.5 % 2
		diag.SemaIncompatibleOperator, // b and x
		diag.SemaIncompatibleOperator, // not x
		diag.SemaIncompatibleOperator, // c < x
	)
}

func TestNoMainDetected(t *testing.T) {
	res := checkText(t, `
func foo()
endfunc
`)
	wantCodes(t, res.bag, diag.SemaNoMainProperlyDeclared)
	if !res.result.NoMain {
		t.Fatalf("NoMain flag not set")
	}
}

func TestMainWithParamsIsNotEntryPoint(t *testing.T) {
	res := checkText(t, `
func main(x: int)
endfunc
`)
	wantCodes(t, res.bag, diag.SemaNoMainProperlyDeclared)
}

func TestErrorAbsorption(t *testing.T) {
	res := checkText(t, `
func main()
  var x : int endvar
  x = y + 1;
  x = y[2];
endfunc
`)
	// Only the undeclared reports survive; the dependent expressions are
	// poisoned instead of cascading.
	wantCodes(t, res.bag, diag.SemaUndeclaredIdent, diag.SemaUndeclaredIdent)
}

func TestDecorationTotality(t *testing.T) {
	res := checkText(t, `
func f(x: int) : int
  return x * 2;
endfunc
func main()
  var a : array[4] of int; var i : int;
  if i < 4 and true then
    a[i] = f(i) + -3;
  endif
  write "x\n";
endfunc
`)
	wantCodes(t, res.bag)
	for id := uint32(1); id <= res.builder.Exprs.Len(); id++ {
		if _, ok := res.dec.ExprType[ast.ExprID(id)]; !ok {
			t.Fatalf("expression %d has no type decoration", id)
		}
	}
}

func TestScopeStackBalanced(t *testing.T) {
	res := checkText(t, `
func f()
endfunc
func main()
endfunc
`)
	if res.table.Depth() != 0 {
		t.Fatalf("scope stack depth = %d after passes, want 0", res.table.Depth())
	}
}
