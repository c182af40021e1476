package lexer

import (
	"strings"
	"testing"

	plexer "github.com/alecthomas/participle/v2/lexer"
)

func TestCLexerStream(t *testing.T) {
	src := "void f() {\n  x;\n}\n"
	stream, err := CLexer.Lex("f.cpp", strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	type tok struct {
		value  string
		offset int
		line   int
		column int
	}
	want := []tok{
		{"void", 0, 1, 1},
		{"f", 5, 1, 6},
		{"(", 6, 1, 7},
		{")", 7, 1, 8},
		{"{", 9, 1, 10},
		{"x", 13, 2, 3},
		{";", 14, 2, 4},
		{"}", 16, 3, 1},
	}
	for i, w := range want {
		got, err := stream.Next()
		if err != nil {
			t.Fatal(err)
		}
		if got.EOF() {
			t.Fatalf("token %d: unexpected EOF", i)
		}
		if got.Value != w.value || got.Pos.Offset != w.offset ||
			got.Pos.Line != w.line || got.Pos.Column != w.column {
			t.Errorf("token %d = %q at %d (%d:%d), want %q at %d (%d:%d)",
				i, got.Value, got.Pos.Offset, got.Pos.Line, got.Pos.Column,
				w.value, w.offset, w.line, w.column)
		}
		if got.Pos.Filename != "f.cpp" {
			t.Errorf("token %d: filename = %q", i, got.Pos.Filename)
		}
	}
	last, err := stream.Next()
	if err != nil {
		t.Fatal(err)
	}
	if !last.EOF() {
		t.Fatalf("trailing token %v, want EOF", last)
	}
}

func TestCLexerSymbols(t *testing.T) {
	symbols := CLexer.Symbols()
	if symbols["EOF"] != plexer.EOF {
		t.Fatalf("EOF maps to %d", symbols["EOF"])
	}
	seen := map[plexer.TokenType]string{}
	for name, typ := range symbols {
		if prev, dup := seen[typ]; dup {
			t.Errorf("%s and %s share token type %d", prev, name, typ)
		}
		seen[typ] = name
	}
}
