package lexer

import (
	"io"

	plexer "github.com/alecthomas/participle/v2/lexer"
)

// CLexer exposes the assertion tokenizer as a participle lexer
// definition, so participle-based tooling can consume the exact token
// stream the structural scanner sees.
var CLexer plexer.Definition = &cLexerDefinition{}

type cLexerDefinition struct{}

func (d *cLexerDefinition) Lex(filename string, r io.Reader) (plexer.Lexer, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LexString(filename, string(src)), nil
}

func (d *cLexerDefinition) Symbols() map[string]plexer.TokenType {
	return map[string]plexer.TokenType{
		"EOF":        plexer.EOF,
		"LBrace":     plexer.TokenType(LBrace),
		"RBrace":     plexer.TokenType(RBrace),
		"LParen":     plexer.TokenType(LParen),
		"RParen":     plexer.TokenType(RParen),
		"LBracket":   plexer.TokenType(LBracket),
		"RBracket":   plexer.TokenType(RBracket),
		"LAngle":     plexer.TokenType(LAngle),
		"RAngle":     plexer.TokenType(RAngle),
		"ColonColon": plexer.TokenType(ColonColon),
		"Colon":      plexer.TokenType(Colon),
		"Semi":       plexer.TokenType(Semi),
		"Comma":      plexer.TokenType(Comma),
		"Assign":     plexer.TokenType(Assign),
		"Ident":      plexer.TokenType(Ident),
		"String":     plexer.TokenType(String),
		"Other":      plexer.TokenType(Other),
	}
}

// LexString returns a participle lexer over a source string.
func LexString(filename, text string) plexer.Lexer {
	return &tokenLexer{
		tz:       New(text),
		filename: filename,
		text:     text,
		line:     1,
		column:   1,
	}
}

// tokenLexer adapts the pull tokenizer to participle's Lexer interface,
// tracking line and column incrementally from byte offsets.
type tokenLexer struct {
	tz       *Tokenizer
	filename string
	text     string
	at       int
	line     int
	column   int
}

func (l *tokenLexer) Next() (plexer.Token, error) {
	for {
		start := l.tz.TokStart()
		tok, err := l.tz.Next()
		if err != nil {
			return plexer.Token{}, err
		}
		if tok.Kind == Start {
			continue
		}
		typ := plexer.TokenType(tok.Kind)
		if tok.Kind == EOF {
			typ = plexer.EOF
		}
		return plexer.Token{Type: typ, Value: tok.Text, Pos: l.position(start)}, nil
	}
}

func (l *tokenLexer) position(offset int) plexer.Position {
	for ; l.at < offset; l.at++ {
		if l.text[l.at] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	return plexer.Position{
		Filename: l.filename,
		Offset:   offset,
		Line:     l.line,
		Column:   l.column,
	}
}
