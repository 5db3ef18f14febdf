package lexer

import (
	"testing"

	"github.com/chazu/pebble/pkg/diagnostics"
)

func typesOf(toks []Token) []Type {
	ts := make([]Type, len(toks))
	for i, t := range toks {
		ts[i] = t.Type
	}
	return ts
}

func assertTypes(t *testing.T, input string, want []Type) {
	t.Helper()
	got, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	gotTypes := typesOf(got)
	if len(gotTypes) != len(want) {
		t.Fatalf("Tokenize(%q) = %v, want %v", input, gotTypes, want)
	}
	for i := range want {
		if gotTypes[i] != want[i] {
			t.Fatalf("Tokenize(%q)[%d] = %s, want %s (full: %v)", input, i, gotTypes[i], want[i], gotTypes)
		}
	}
}

func TestTokenizeBasicTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Type
	}{
		{"empty", "", []Type{Bof, Eof}},
		{"lparen", "(", []Type{Bof, LParen, Eof}},
		{"number", "42", []Type{Bof, Number, Eof}},
		{"float", "3.14", []Type{Bof, Number, Eof}},
		{"upper word", "Array", []Type{Bof, UpperWord, Eof}},
		{"lower word", "foo", []Type{Bof, LowerWord, Eof}},
		{"ivar", "@x", []Type{Bof, IVar, Eof}},
		{"string", `"hi"`, []Type{Bof, Str, Eof}},
		{"keyword class", "class", []Type{Bof, KwClass, Eof}},
		{"coloncolon", "::", []Type{Bof, ColonColon, Eof}},
		{"arrow", "->", []Type{Bof, RightArrow, Eof}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertTypes(t, tc.input, tc.want)
		})
	}
}

// TestUnaryBinaryDisambiguation covers spec §4.1/§8's property #2: the
// Unary/Binary choice for +/- is a pure function of whether the
// preceding token can end a value.
func TestUnaryBinaryDisambiguation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Type
	}{
		{"leading plus is unary", "+1", []Type{Bof, UnaryPlus, Number, Eof}},
		{"leading minus is unary", "-1", []Type{Bof, UnaryMinus, Number, Eof}},
		{"plus after number is binary", "1 + 2", []Type{Bof, Number, BinaryPlus, Number, Eof}},
		{"minus after number is binary", "1 - 2", []Type{Bof, Number, BinaryMinus, Number, Eof}},
		{"plus after ident is binary", "x + y", []Type{Bof, LowerWord, BinaryPlus, LowerWord, Eof}},
		{"minus after rparen is binary", "(x) - 1", []Type{Bof, LParen, LowerWord, RParen, BinaryMinus, Number, Eof}},
		{"minus after lparen is unary", "(-1)", []Type{Bof, LParen, UnaryMinus, Number, RParen, Eof}},
		{"minus after comma is unary", "f(x, -1)", []Type{Bof, LowerWord, LParen, LowerWord, Comma, UnaryMinus, Number, RParen, Eof}},
		{"plus after separator is unary", "x\n+1", []Type{Bof, LowerWord, Separator, UnaryPlus, Number, Eof}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertTypes(t, tc.input, tc.want)
		})
	}
}

func TestTokenizeKeywordsVsIdentifiers(t *testing.T) {
	got, err := Tokenize("classy")
	if err != nil {
		t.Fatal(err)
	}
	want := []Type{Bof, LowerWord, Eof}
	if typesOf(got)[1] != want[1] {
		t.Fatalf("classy should lex as one LowerWord, got %v", typesOf(got))
	}
}

func TestTokenizeSeparators(t *testing.T) {
	assertTypes(t, "a; b", []Type{Bof, LowerWord, Separator, LowerWord, Eof})
	assertTypes(t, "a # comment\nb", []Type{Bof, LowerWord, Separator, LowerWord, Eof})
}

func TestTokenizeStringEscapes(t *testing.T) {
	got, err := Tokenize(`"a\nb"`)
	if err != nil {
		t.Fatal(err)
	}
	if got[1].Text != "a\nb" {
		t.Fatalf("got %q, want %q", got[1].Text, "a\nb")
	}
}

func TestTokenizeUnterminatedStringIsLexError(t *testing.T) {
	_, err := Tokenize(`"unterminated`)
	if err == nil {
		t.Fatal("expected a LexError for an unterminated string")
	}
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Kind != diagnostics.KindLexError {
		t.Fatalf("expected a LexError, got %v", err)
	}
}
