package driver

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"aslc/internal/ast"
	"aslc/internal/sema"
	"aslc/internal/symbols"
	"aslc/internal/tac"
	"aslc/internal/types"
)

// lowerParallel lowers the functions of a program concurrently. Each
// function owns its temporary and label counters and the decorated tree
// is read-only by now, so the fan-out is safe; results land in
// declaration order, keeping the output byte-identical to a sequential
// run.
func lowerParallel(b *ast.Builder, prog *ast.Program, tbl *symbols.Table, in *types.Interner, dec *sema.Decorations, jobs int) *tac.Program {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	subs := make([]tac.Subroutine, len(prog.Funcs))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, fnID := range prog.Funcs {
		g.Go(func() error {
			subs[i] = tac.LowerFunc(b, fnID, tbl, in, dec)
			return nil
		})
	}
	// The workers never return errors; Wait is only a barrier.
	_ = g.Wait()

	return &tac.Program{Subs: subs}
}
