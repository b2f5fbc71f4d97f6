// Package tac models three-address code: the instruction algebra, the
// per-function subroutine layout, and the lowering pass that produces
// them from a decorated parse tree.
package tac

import (
	"strings"
)

// Op enumerates TAC instruction opcodes.
type Op uint8

const (
	OpLoad Op = iota
	OpILoad
	OpFLoad
	OpChLoad
	OpALoad
	OpLoadX
	OpXLoad

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpNeg
	OpFNeg

	OpEq
	OpLt
	OpLe
	OpFEq
	OpFLt
	OpFLe

	OpAnd
	OpOr
	OpNot
	OpFloat

	OpPush
	OpPop
	OpCall
	OpReturn
	OpUJump
	OpFJump
	OpLabel

	OpReadI
	OpReadF
	OpReadC
	OpWriteI
	OpWriteF
	OpWriteC
	OpWriteLn
)

var opNames = [...]string{
	OpLoad:    "LOAD",
	OpILoad:   "ILOAD",
	OpFLoad:   "FLOAD",
	OpChLoad:  "CHLOAD",
	OpALoad:   "ALOAD",
	OpLoadX:   "LOADX",
	OpXLoad:   "XLOAD",
	OpAdd:     "ADD",
	OpSub:     "SUB",
	OpMul:     "MUL",
	OpDiv:     "DIV",
	OpFAdd:    "FADD",
	OpFSub:    "FSUB",
	OpFMul:    "FMUL",
	OpFDiv:    "FDIV",
	OpNeg:     "NEG",
	OpFNeg:    "FNEG",
	OpEq:      "EQ",
	OpLt:      "LT",
	OpLe:      "LE",
	OpFEq:     "FEQ",
	OpFLt:     "FLT",
	OpFLe:     "FLE",
	OpAnd:     "AND",
	OpOr:      "OR",
	OpNot:     "NOT",
	OpFloat:   "FLOAT",
	OpPush:    "PUSH",
	OpPop:     "POP",
	OpCall:    "CALL",
	OpReturn:  "RETURN",
	OpUJump:   "UJUMP",
	OpFJump:   "FJUMP",
	OpLabel:   "LABEL",
	OpReadI:   "READI",
	OpReadF:   "READF",
	OpReadC:   "READC",
	OpWriteI:  "WRITEI",
	OpWriteF:  "WRITEF",
	OpWriteC:  "WRITEC",
	OpWriteLn: "WRITELN",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "INVALID"
}

// Instr is one TAC instruction. Operands are textual: identifiers,
// temporaries (leading %), labels, or literals. Unused operands are
// empty strings.
type Instr struct {
	Op Op
	A  string
	B  string
	C  string
}

// String renders the instruction on one line.
func (ins Instr) String() string {
	var sb strings.Builder
	sb.WriteString(ins.Op.String())
	if ins.A != "" {
		sb.WriteString(" ")
		sb.WriteString(ins.A)
	}
	if ins.B != "" {
		sb.WriteString(", ")
		sb.WriteString(ins.B)
	}
	if ins.C != "" {
		sb.WriteString(", ")
		sb.WriteString(ins.C)
	}
	return sb.String()
}

// Instruction constructors, one per opcode shape.

func Load(dst, src string) Instr       { return Instr{Op: OpLoad, A: dst, B: src} }
func ILoad(dst, k string) Instr        { return Instr{Op: OpILoad, A: dst, B: k} }
func FLoad(dst, k string) Instr        { return Instr{Op: OpFLoad, A: dst, B: k} }
func ChLoad(dst, c string) Instr       { return Instr{Op: OpChLoad, A: dst, B: c} }
func ALoad(dst, arr string) Instr      { return Instr{Op: OpALoad, A: dst, B: arr} }
func LoadX(dst, base, idx string) Instr { return Instr{Op: OpLoadX, A: dst, B: base, C: idx} }
func XLoad(base, idx, src string) Instr { return Instr{Op: OpXLoad, A: base, B: idx, C: src} }

func Add(dst, a, b string) Instr  { return Instr{Op: OpAdd, A: dst, B: a, C: b} }
func Sub(dst, a, b string) Instr  { return Instr{Op: OpSub, A: dst, B: a, C: b} }
func Mul(dst, a, b string) Instr  { return Instr{Op: OpMul, A: dst, B: a, C: b} }
func Div(dst, a, b string) Instr  { return Instr{Op: OpDiv, A: dst, B: a, C: b} }
func FAdd(dst, a, b string) Instr { return Instr{Op: OpFAdd, A: dst, B: a, C: b} }
func FSub(dst, a, b string) Instr { return Instr{Op: OpFSub, A: dst, B: a, C: b} }
func FMul(dst, a, b string) Instr { return Instr{Op: OpFMul, A: dst, B: a, C: b} }
func FDiv(dst, a, b string) Instr { return Instr{Op: OpFDiv, A: dst, B: a, C: b} }
func Neg(dst, a string) Instr     { return Instr{Op: OpNeg, A: dst, B: a} }
func FNeg(dst, a string) Instr    { return Instr{Op: OpFNeg, A: dst, B: a} }

func Eq(dst, a, b string) Instr  { return Instr{Op: OpEq, A: dst, B: a, C: b} }
func Lt(dst, a, b string) Instr  { return Instr{Op: OpLt, A: dst, B: a, C: b} }
func Le(dst, a, b string) Instr  { return Instr{Op: OpLe, A: dst, B: a, C: b} }
func FEq(dst, a, b string) Instr { return Instr{Op: OpFEq, A: dst, B: a, C: b} }
func FLt(dst, a, b string) Instr { return Instr{Op: OpFLt, A: dst, B: a, C: b} }
func FLe(dst, a, b string) Instr { return Instr{Op: OpFLe, A: dst, B: a, C: b} }

func And(dst, a, b string) Instr { return Instr{Op: OpAnd, A: dst, B: a, C: b} }
func Or(dst, a, b string) Instr  { return Instr{Op: OpOr, A: dst, B: a, C: b} }
func Not(dst, a string) Instr    { return Instr{Op: OpNot, A: dst, B: a} }
func Float(dst, src string) Instr { return Instr{Op: OpFloat, A: dst, B: src} }

// Push with val pushes a value; PushEmpty reserves the return slot.
func Push(val string) Instr { return Instr{Op: OpPush, A: val} }
func PushEmpty() Instr      { return Instr{Op: OpPush} }

// Pop with dst stores the popped value; PopEmpty discards it.
func Pop(dst string) Instr { return Instr{Op: OpPop, A: dst} }
func PopEmpty() Instr      { return Instr{Op: OpPop} }

func Call(name string) Instr        { return Instr{Op: OpCall, A: name} }
func Return() Instr                 { return Instr{Op: OpReturn} }
func UJump(label string) Instr      { return Instr{Op: OpUJump, A: label} }
func FJump(cond, label string) Instr { return Instr{Op: OpFJump, A: cond, B: label} }
func Label(label string) Instr      { return Instr{Op: OpLabel, A: label} }

func ReadI(dst string) Instr  { return Instr{Op: OpReadI, A: dst} }
func ReadF(dst string) Instr  { return Instr{Op: OpReadF, A: dst} }
func ReadC(dst string) Instr  { return Instr{Op: OpReadC, A: dst} }
func WriteI(src string) Instr { return Instr{Op: OpWriteI, A: src} }
func WriteF(src string) Instr { return Instr{Op: OpWriteF, A: src} }
func WriteC(src string) Instr { return Instr{Op: OpWriteC, A: src} }
func WriteLn() Instr          { return Instr{Op: OpWriteLn} }
