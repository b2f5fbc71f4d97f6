package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedChar   Code = 1003
	LexBadNumber          Code = 1004
	LexBadEscape          Code = 1005

	// Syntactic
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectType       Code = 2003
	SynExpectExpression Code = 2004
	SynExpectStatement  Code = 2005
	SynExpectSemicolon  Code = 2006
	SynBadArraySize     Code = 2007
	SynExpectFunction   Code = 2008

	// Semantic
	SemaInfo                        Code = 3000
	SemaDuplicateIdent              Code = 3001
	SemaUndeclaredIdent             Code = 3002
	SemaIncompatibleAssignment      Code = 3003
	SemaNonReferenceableLeftExpr    Code = 3004
	SemaNonReferenceableExpression  Code = 3005
	SemaBooleanRequired             Code = 3006
	SemaIsNotCallable               Code = 3007
	SemaIsNotFunction               Code = 3008
	SemaNumberOfParameters          Code = 3009
	SemaIncompatibleParameter       Code = 3010
	SemaIncompatibleReturn          Code = 3011
	SemaReadWriteRequireBasic       Code = 3012
	SemaNonArrayInArrayAccess       Code = 3013
	SemaNonIntegerIndexInArrayAccess Code = 3014
	SemaIncompatibleOperator        Code = 3015
	SemaNoMainProperlyDeclared      Code = 3016

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string",
	LexUnterminatedChar:   "Unterminated character literal",
	LexBadNumber:          "Bad number",
	LexBadEscape:          "Bad escape sequence",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectIdentifier:   "Expect identifier",
	SynExpectType:         "Expect type",
	SynExpectExpression:   "Expect expression",
	SynExpectStatement:    "Expect statement",
	SynExpectSemicolon:    "Expect semicolon",
	SynBadArraySize:       "Bad array size",
	SynExpectFunction:     "Expect function",
	SemaInfo:              "Semantic information",
	SemaDuplicateIdent:    "Identifier already declared",
	SemaUndeclaredIdent:   "Undeclared identifier",
	SemaIncompatibleAssignment:       "Incompatible types in assignment",
	SemaNonReferenceableLeftExpr:     "Left expression is not referenceable",
	SemaNonReferenceableExpression:   "Expression is not referenceable",
	SemaBooleanRequired:              "Boolean expression required",
	SemaIsNotCallable:                "Identifier is not callable",
	SemaIsNotFunction:                "Call does not return a value",
	SemaNumberOfParameters:           "Wrong number of parameters",
	SemaIncompatibleParameter:        "Incompatible parameter",
	SemaIncompatibleReturn:           "Incompatible return",
	SemaReadWriteRequireBasic:        "Read/write require a basic type",
	SemaNonArrayInArrayAccess:        "Array access to a non-array",
	SemaNonIntegerIndexInArrayAccess: "Array index is not an integer",
	SemaIncompatibleOperator:         "Incompatible operands for operator",
	SemaNoMainProperlyDeclared:       "There is no main procedure properly declared",
	IOLoadFileError:                  "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
