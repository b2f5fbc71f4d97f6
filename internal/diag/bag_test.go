package diag

import (
	"testing"

	"aslc/internal/source"
)

func TestBagAddRespectsCap(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Diagnostic{Code: SemaUndeclaredIdent, Severity: SevError}) {
		t.Fatalf("first Add failed")
	}
	if !b.Add(Diagnostic{Code: SemaUndeclaredIdent, Severity: SevError}) {
		t.Fatalf("second Add failed")
	}
	if b.Add(Diagnostic{Code: SemaUndeclaredIdent, Severity: SevError}) {
		t.Fatalf("Add over cap succeeded")
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(4)
	b.Add(Diagnostic{Severity: SevWarning})
	if b.HasErrors() {
		t.Fatalf("warning counted as error")
	}
	b.Add(Diagnostic{Severity: SevError})
	if !b.HasErrors() {
		t.Fatalf("error not detected")
	}
}

func TestBagSortStableSourceOrder(t *testing.T) {
	b := NewBag(8)
	b.Add(Diagnostic{Code: SemaBooleanRequired, Primary: source.Span{Start: 40, End: 41}})
	b.Add(Diagnostic{Code: SemaUndeclaredIdent, Primary: source.Span{Start: 7, End: 10}})
	b.Add(Diagnostic{Code: SemaDuplicateIdent, Primary: source.Span{Start: 7, End: 10}, Severity: SevError})
	b.Sort()

	items := b.Items()
	if items[0].Primary.Start != 7 || items[2].Primary.Start != 40 {
		t.Fatalf("unexpected order: %+v", items)
	}
	// Same span: error before non-error.
	if items[0].Severity != SevError {
		t.Fatalf("severity tiebreak broken: %+v", items[0])
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(4)
	rb := ReportError(BagReporter{Bag: bag}, SemaUndeclaredIdent, source.Span{}, "identifier 'x' is undeclared")
	rb.WithNote(source.Span{}, "declare it in the enclosing function")
	rb.Emit()
	rb.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bag.Len())
	}
	if bag.Items()[0].Notes[0].Msg == "" {
		t.Fatalf("note lost")
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:             "LEX1001",
		SynUnexpectedToken:         "SYN2001",
		SemaNoMainProperlyDeclared: "SEM3016",
		IOLoadFileError:            "IO4001",
		UnknownCode:                "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("ID(%d) = %q, want %q", code, got, want)
		}
	}
}
