package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"aslc/internal/diag"
	"aslc/internal/source"
)

func testBag() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("prog.asl", []byte("func main()\n  x = y;\nendfunc\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaUndeclaredIdent,
		Message:  "identifier 'y' is undeclared",
		Primary:  source.Span{File: id, Start: 18, End: 19},
	})
	return bag, fs
}

func TestPrettyPlain(t *testing.T) {
	bag, fs := testBag()
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowSource: true})
	out := sb.String()

	if !strings.Contains(out, "prog.asl:2:7: ERROR [SEM3002]: identifier 'y' is undeclared") {
		t.Fatalf("header missing:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("missing source context:\n%s", out)
	}
	if lines[1] != "      x = y;" {
		t.Fatalf("source line = %q", lines[1])
	}
	if lines[2] != "          ^" {
		t.Fatalf("caret line = %q", lines[2])
	}
}

func TestPrettyWithoutSource(t *testing.T) {
	bag, fs := testBag()
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	if strings.Count(sb.String(), "\n") != 1 {
		t.Fatalf("expected a single line:\n%s", sb.String())
	}
}

func TestSummary(t *testing.T) {
	bag, fs := testBag()
	_ = fs
	var sb strings.Builder
	Summary(&sb, bag, false)
	if got := sb.String(); got != "1 error\n" {
		t.Fatalf("summary = %q", got)
	}

	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SemaBooleanRequired})
	sb.Reset()
	Summary(&sb, bag, false)
	if got := sb.String(); got != "2 errors\n" {
		t.Fatalf("summary = %q", got)
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := testBag()
	var sb strings.Builder
	if err := JSON(&sb, bag, fs, JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded []JSONDiagnostic
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded = %+v", decoded)
	}
	d := decoded[0]
	if d.File != "prog.asl" || d.Line != 2 || d.Col != 7 || d.Code != "SEM3002" || d.Severity != "ERROR" {
		t.Fatalf("decoded = %+v", d)
	}
}
