// Package driver wires the compiler phases into a pipeline:
// lex -> parse -> symbol pass -> type check -> lowering.
package driver

import (
	"fmt"

	"aslc/internal/ast"
	"aslc/internal/diag"
	"aslc/internal/lexer"
	"aslc/internal/parser"
	"aslc/internal/sema"
	"aslc/internal/source"
	"aslc/internal/symbols"
	"aslc/internal/tac"
	"aslc/internal/types"
)

// DefaultMaxDiagnostics bounds the bag when the caller does not.
const DefaultMaxDiagnostics = 100

// Options configure one compilation.
type Options struct {
	// MaxDiagnostics caps the diagnostic bag; 0 means the default.
	MaxDiagnostics int
	// Jobs bounds parallel per-function lowering; 0 means GOMAXPROCS.
	Jobs int
	// NoCache skips the TAC disk cache entirely.
	NoCache bool
	// CacheDir overrides the cache location (mostly for tests).
	CacheDir string
}

// Result carries everything a caller may want after a compilation.
type Result struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Bag     *diag.Bag

	Builder *ast.Builder
	Program *ast.Program

	// Tac is nil when any error stopped the pipeline.
	Tac *tac.Program
	// NoMain mirrors the entry-point flag of the type-check pass.
	NoMain bool
	// FromCache is true when Tac was served from the disk cache.
	FromCache bool
}

// Ok reports whether the compilation produced no errors.
func (r *Result) Ok() bool {
	return !r.Bag.HasErrors()
}

// CompileFile loads a file from disk and compiles it.
func CompileFile(path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return CompileSource(fs, id, opts), nil
}

// CompileSource compiles one file already registered in a FileSet.
func CompileSource(fs *source.FileSet, id source.FileID, opts Options) *Result {
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = DefaultMaxDiagnostics
	}
	res := &Result{
		FileSet: fs,
		FileID:  id,
		Bag:     diag.NewBag(maxDiag),
	}
	rep := diag.BagReporter{Bag: res.Bag}
	file := fs.Get(id)

	var cache *diskCache
	if !opts.NoCache {
		cache = openCache(opts.CacheDir)
		if prog, ok := cache.load(file.Hash); ok {
			res.Tac = prog
			res.FromCache = true
			return res
		}
	}

	toks := lexer.Scan(file, rep)
	parsed := parser.Parse(file, toks, rep)
	res.Builder = parsed.Builder
	res.Program = parsed.Program
	if parsed.HasErrors || res.Bag.HasErrors() {
		return res
	}

	in := types.NewInterner()
	tbl := symbols.NewTable(in)
	dec := sema.NewDecorations()
	sema.Declare(parsed.Builder, parsed.Program, tbl, in, dec, rep)
	checked := sema.Check(parsed.Builder, parsed.Program, tbl, in, dec, rep)
	res.NoMain = checked.NoMain
	if res.Bag.HasErrors() {
		return res
	}

	res.Tac = lowerParallel(parsed.Builder, parsed.Program, tbl, in, dec, opts.Jobs)

	if cache != nil {
		cache.store(file.Hash, res.Tac)
	}
	return res
}
