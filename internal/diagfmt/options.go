// Package diagfmt renders diagnostics for humans and for tooling.
package diagfmt

// PrettyOpts configures human-readable diagnostic output.
type PrettyOpts struct {
	// Color enables ANSI colors.
	Color bool
	// ShowSource prints the offending line with a caret underline.
	ShowSource bool
	// ShowNotes prints attached notes under the diagnostic.
	ShowNotes bool
}

// JSONOpts configures machine-readable diagnostic output.
type JSONOpts struct {
	IncludeNotes bool
}
