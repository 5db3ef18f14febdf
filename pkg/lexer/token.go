// Package lexer tokenizes Pebble source text.
package lexer

// Type identifies the grammatical category of a Token.
type Type string

// The closed set of token types. Adding a new token requires extending
// both ValueStarts and canEndValue below.
const (
	Bof       Type = "BOF"
	Eof       Type = "EOF"
	Separator Type = "SEPARATOR" // newline, ';', or a comment to end of line

	UpperWord Type = "UPPER_WORD" // class/constant names: Array, Foo
	LowerWord Type = "LOWER_WORD" // identifiers/keywords-as-words: foo, x
	IVar      Type = "IVAR"       // @name
	Number    Type = "NUMBER"     // 42 or 3.14, disambiguated by '.' in Text
	Str       Type = "STRING"     // 'hello' or "hello"

	LParen     Type = "LPAREN"
	RParen     Type = "RPAREN"
	LSqBracket Type = "LSQBRACKET"
	RSqBracket Type = "RSQBRACKET"
	LBrace     Type = "LBRACE"
	RBrace     Type = "RBRACE"

	UnaryPlus   Type = "UNARY_PLUS"
	BinaryPlus  Type = "BINARY_PLUS"
	UnaryMinus  Type = "UNARY_MINUS"
	BinaryMinus Type = "BINARY_MINUS"
	RightArrow  Type = "RIGHT_ARROW" // ->

	Mul Type = "MUL"
	Div Type = "DIV"
	Mod Type = "MOD"

	EqEq        Type = "EQEQ"
	NotEq       Type = "NOTEQ"
	LessThan    Type = "LESS_THAN"
	GreaterThan Type = "GREATER_THAN"
	LessEq      Type = "LESS_EQ"
	GreaterEq   Type = "GREATER_EQ"
	Equal       Type = "EQUAL"
	Bang        Type = "BANG"

	Dot        Type = "DOT"
	At         Type = "AT"
	Tilde      Type = "TILDE"
	Question   Type = "QUESTION"
	Comma      Type = "COMMA"
	Colon      Type = "COLON"
	ColonColon Type = "COLONCOLON"

	AndAnd Type = "ANDAND"
	OrOr   Type = "OROR"
	And    Type = "AND"
	Or     Type = "OR"
	Xor    Type = "XOR"
	LShift Type = "LSHIFT"
	RShift Type = "RSHIFT"

	UPlusMethod  Type = "UPLUS_METHOD"  // +@
	UMinusMethod Type = "UMINUS_METHOD" // -@

	// Keywords
	KwClass  Type = "KW_CLASS"
	KwEnd    Type = "KW_END"
	KwDef    Type = "KW_DEF"
	KwVar    Type = "KW_VAR"
	KwAnd    Type = "KW_AND"
	KwOr     Type = "KW_OR"
	KwNot    Type = "KW_NOT"
	KwIf     Type = "KW_IF"
	KwUnless Type = "KW_UNLESS"
	KwWhile  Type = "KW_WHILE"
	KwBreak  Type = "KW_BREAK"
	KwThen   Type = "KW_THEN"
	KwElse   Type = "KW_ELSE"
	KwSelf   Type = "KW_SELF"
	KwTrue   Type = "KW_TRUE"
	KwFalse  Type = "KW_FALSE"
)

// keywords maps a lower-case word to its keyword token type.
var keywords = map[string]Type{
	"class":  KwClass,
	"end":    KwEnd,
	"def":    KwDef,
	"var":    KwVar,
	"and":    KwAnd,
	"or":     KwOr,
	"not":    KwNot,
	"if":     KwIf,
	"unless": KwUnless,
	"while":  KwWhile,
	"break":  KwBreak,
	"then":   KwThen,
	"else":   KwElse,
	"self":   KwSelf,
	"true":   KwTrue,
	"false":  KwFalse,
}

// Token is a single lexical token with its source position.
type Token struct {
	Type Type
	Text string
	Line int
	Col  int
}

// ValueStarts reports whether a value (operand, receiver, or unary
// expression) may begin with a token of this type. This table is closed
// and exhaustive over Type; extending the token set means extending it.
func (t Type) ValueStarts() bool {
	switch t {
	case UpperWord, LowerWord, IVar, Number, Str,
		LParen, LSqBracket,
		UnaryPlus, UnaryMinus,
		Bang, At, Tilde, ColonColon,
		KwNot, KwIf, KwUnless, KwWhile, KwSelf, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// canEndValue reports whether a token of this type may be the final
// token of a value expression — used only to disambiguate a following
// '+'/'-' as unary or binary (spec §4.1).
func canEndValue(t Type) bool {
	switch t {
	case UpperWord, LowerWord, IVar, Number, Str,
		RParen, RSqBracket, RBrace,
		KwSelf, KwTrue, KwFalse, KwEnd:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether word names a reserved keyword.
func IsKeyword(word string) (Type, bool) {
	t, ok := keywords[word]
	return t, ok
}
