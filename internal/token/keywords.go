package token

var keywords = map[string]Kind{
	"func":     KwFunc,
	"endfunc":  KwEndFunc,
	"var":      KwVar,
	"endvar":   KwEndVar,
	"int":      KwInt,
	"float":    KwFloat,
	"bool":     KwBool,
	"char":     KwChar,
	"array":    KwArray,
	"of":       KwOf,
	"if":       KwIf,
	"then":     KwThen,
	"else":     KwElse,
	"endif":    KwEndIf,
	"while":    KwWhile,
	"do":       KwDo,
	"endwhile": KwEndWhile,
	"return":   KwReturn,
	"read":     KwRead,
	"write":    KwWrite,
	"and":      KwAnd,
	"or":       KwOr,
	"not":      KwNot,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword maps a lexeme to its keyword kind, if it is one.
func LookupKeyword(lexeme string) (Kind, bool) {
	kind, ok := keywords[lexeme]
	return kind, ok
}
