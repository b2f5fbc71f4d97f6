package tac

// Local is one declared local with its size in cells.
type Local struct {
	Name string
	Size uint32
}

// Subroutine is the generated code of one function: ordered parameter
// names (the synthetic _result slot first for value-returning
// functions), locals with sizes, and the instruction list.
type Subroutine struct {
	Name   string
	Params []string
	Locals []Local
	Code   []Instr
}

// Program is an ordered list of subroutines, one per source function.
type Program struct {
	Subs []Subroutine
}
