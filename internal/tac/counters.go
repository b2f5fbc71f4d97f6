package tac

import (
	"fmt"
)

// counters generate temporaries and structured labels. They reset at
// every function entry so that a function's TAC is stable under program
// reordering.
type counters struct {
	temps  uint32
	ifs    uint32
	whiles uint32
}

func (c *counters) reset() {
	*c = counters{}
}

// newTemp returns the next temporary: %t1, %t2, ...
func (c *counters) newTemp() string {
	c.temps++
	return fmt.Sprintf("%%t%d", c.temps)
}

// newIfLabel returns the next if-label suffix: if<k>/else<k>/endif<k>.
func (c *counters) newIfLabel() string {
	c.ifs++
	return fmt.Sprintf("%d", c.ifs)
}

// newWhileLabel returns the next while-label suffix.
func (c *counters) newWhileLabel() string {
	c.whiles++
	return fmt.Sprintf("%d", c.whiles)
}
