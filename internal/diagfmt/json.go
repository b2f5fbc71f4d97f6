package diagfmt

import (
	"encoding/json"
	"io"

	"aslc/internal/diag"
	"aslc/internal/source"
)

// JSONDiagnostic is the wire shape of one diagnostic.
type JSONDiagnostic struct {
	File     string     `json:"file"`
	Line     uint32     `json:"line"`
	Col      uint32     `json:"col"`
	EndLine  uint32     `json:"end_line"`
	EndCol   uint32     `json:"end_col"`
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Message  string     `json:"message"`
	Notes    []JSONNote `json:"notes,omitempty"`
}

// JSONNote is the wire shape of an attached note.
type JSONNote struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
	Msg  string `json:"msg"`
}

// JSON writes the bag as a JSON array.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	out := make([]JSONDiagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		file := fs.Get(d.Primary.File)
		start, end := fs.Resolve(d.Primary)
		jd := JSONDiagnostic{
			File:     file.Path,
			Line:     start.Line,
			Col:      start.Col,
			EndLine:  end.Line,
			EndCol:   end.Col,
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				nStart, _ := fs.Resolve(note.Span)
				jd.Notes = append(jd.Notes, JSONNote{Line: nStart.Line, Col: nStart.Col, Msg: note.Msg})
			}
		}
		out = append(out, jd)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
