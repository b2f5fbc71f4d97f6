package tac

import (
	"fmt"
	"io"
)

// Dump writes the textual serialization of the program: one block per
// subroutine with its header, parameter list, local list, and
// instructions.
func (p *Program) Dump(w io.Writer) error {
	for i := range p.Subs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := p.Subs[i].dump(w); err != nil {
			return err
		}
	}
	return nil
}

func (s *Subroutine) dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "subroutine %s\n", s.Name); err != nil {
		return err
	}
	for _, param := range s.Params {
		if _, err := fmt.Fprintf(w, "  param %s\n", param); err != nil {
			return err
		}
	}
	for _, local := range s.Locals {
		if _, err := fmt.Fprintf(w, "  local %s %d\n", local.Name, local.Size); err != nil {
			return err
		}
	}
	for _, ins := range s.Code {
		if _, err := fmt.Fprintf(w, "  %s\n", ins.String()); err != nil {
			return err
		}
	}
	return nil
}
