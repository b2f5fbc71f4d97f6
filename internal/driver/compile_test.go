package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aslc/internal/diag"
)

const goodProgram = `
func inc(x: int) : int
  return x + 1;
endfunc
func main()
  var y : int endvar
  y = inc(41);
  write y;
  write "\n";
endfunc
`

func writeTemp(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.asl")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	return path
}

func TestCompileFileProducesTac(t *testing.T) {
	path := writeTemp(t, goodProgram)
	res, err := CompileFile(path, Options{NoCache: true})
	if err != nil {
		t.Fatalf("CompileFile: %v", err)
	}
	if !res.Ok() {
		t.Fatalf("diagnostics: %+v", res.Bag.Items())
	}
	if res.Tac == nil || len(res.Tac.Subs) != 2 {
		t.Fatalf("tac = %+v", res.Tac)
	}
	if res.Tac.Subs[0].Name != "inc" || res.Tac.Subs[1].Name != "main" {
		t.Fatalf("subroutine order: %s, %s", res.Tac.Subs[0].Name, res.Tac.Subs[1].Name)
	}
}

func TestCompileFileMissing(t *testing.T) {
	_, err := CompileFile(filepath.Join(t.TempDir(), "nope.asl"), Options{NoCache: true})
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestSyntaxErrorSkipsSemanticPasses(t *testing.T) {
	path := writeTemp(t, "func main()\n  x = ;\nendfunc\n")
	res, err := CompileFile(path, Options{NoCache: true})
	if err != nil {
		t.Fatalf("CompileFile: %v", err)
	}
	if res.Ok() {
		t.Fatalf("expected diagnostics")
	}
	if res.Tac != nil {
		t.Fatalf("TAC generated despite syntax errors")
	}
	// Only syntax codes: the undeclared-x complaint would be SEM.
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SemaUndeclaredIdent {
			t.Fatalf("semantic pass ran on a broken parse: %+v", d)
		}
	}
}

func TestSemanticErrorSkipsLowering(t *testing.T) {
	path := writeTemp(t, "func main()\n  var b : bool endvar\n  if 5 then endif\nendfunc\n")
	res, err := CompileFile(path, Options{NoCache: true})
	if err != nil {
		t.Fatalf("CompileFile: %v", err)
	}
	if res.Tac != nil {
		t.Fatalf("TAC generated despite semantic errors")
	}
	if got := res.Bag.Items()[0].Code; got != diag.SemaBooleanRequired {
		t.Fatalf("code = %v", got)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	path := writeTemp(t, goodProgram)

	seq, err := CompileFile(path, Options{NoCache: true, Jobs: 1})
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	par, err := CompileFile(path, Options{NoCache: true, Jobs: 8})
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	var a, b strings.Builder
	if err := seq.Tac.Dump(&a); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if err := par.Tac.Dump(&b); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if a.String() != b.String() {
		t.Fatalf("parallel output differs from sequential:\n%s\n---\n%s", a.String(), b.String())
	}
}

func TestCacheRoundTrip(t *testing.T) {
	path := writeTemp(t, goodProgram)
	cacheDir := t.TempDir()

	cold, err := CompileFile(path, Options{CacheDir: cacheDir})
	if err != nil {
		t.Fatalf("cold: %v", err)
	}
	if cold.FromCache {
		t.Fatalf("cold run claims a cache hit")
	}

	warm, err := CompileFile(path, Options{CacheDir: cacheDir})
	if err != nil {
		t.Fatalf("warm: %v", err)
	}
	if !warm.FromCache {
		t.Fatalf("warm run missed the cache")
	}

	var a, b strings.Builder
	if err := cold.Tac.Dump(&a); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if err := warm.Tac.Dump(&b); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if a.String() != b.String() {
		t.Fatalf("cache does not byte-reproduce:\n%s\n---\n%s", a.String(), b.String())
	}
}

func TestErrorsAreNotCached(t *testing.T) {
	path := writeTemp(t, "func foo()\nendfunc\n") // NoMainProperlyDeclared
	cacheDir := t.TempDir()

	first, err := CompileFile(path, Options{CacheDir: cacheDir})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first.Ok() {
		t.Fatalf("expected the missing-main diagnostic")
	}

	second, err := CompileFile(path, Options{CacheDir: cacheDir})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second.FromCache {
		t.Fatalf("an erroring compilation was served from cache")
	}
	if second.Ok() {
		t.Fatalf("diagnostics lost on the second run")
	}
}
