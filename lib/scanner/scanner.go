package scanner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nikomatsakis/mozilla-assertion-analyzer/lib/lexer"
)

// DefaultMacros is the assertion macro set recognized when no override
// is given: Mozilla's NS_ASSERTION and SpiderMonkey's JS_ASSERT.
var DefaultMacros = []string{"NS_ASSERTION", "JS_ASSERT"}

// Assertion records one assertion macro invocation. Offset is the byte
// position immediately after the macro's opening parenthesis.
// Statements counts the ';' and nested '}' tokens consumed since the
// enclosing function body opened, a deliberately coarse proxy for
// position within the function. Prelude reports that no assignment,
// call or other expression token had appeared in the body yet.
type Assertion struct {
	Args       []string `json:"args"`
	File       string   `json:"file"`
	Offset     int      `json:"offset"`
	Prelude    bool     `json:"prelude"`
	Statements int      `json:"statements"`
}

// String renders the record as a tuple, one field per position:
//
//	Assertion(["x > 0", "\"msg\""], "nsFoo.cpp", 27, true, 0)
func (a Assertion) String() string {
	args := make([]string, len(a.Args))
	for i, arg := range a.Args {
		args[i] = strconv.Quote(arg)
	}
	return fmt.Sprintf("Assertion([%s], %q, %d, %t, %d)",
		strings.Join(args, ", "), a.File, a.Offset, a.Prelude, a.Statements)
}

// UnterminatedError reports end of input inside a construct that never
// closed. Only produced in strict mode; by default the scanner stops
// quietly and returns what it gathered, like the original analyzer.
type UnterminatedError struct {
	Construct string
	Offset    int
}

func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("unterminated %s at offset %d", e.Construct, e.Offset)
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMacros replaces the recognized macro name set.
func WithMacros(names ...string) Option {
	return func(s *Scanner) {
		s.macros = make(map[string]bool, len(names))
		for _, name := range names {
			s.macros[name] = true
		}
	}
}

// Strict makes end of input inside an open class or function body an
// error instead of a silent stop.
func Strict() Option {
	return func(s *Scanner) { s.strict = true }
}

// Scanner walks one file's token stream through a small state machine:
// outer scope, class header, class body, and function body. Function
// bodies track brace nesting, a statement count, and the prelude flag;
// each recognized macro name directly followed by '(' yields one
// Assertion. A Scanner holds no global state, so independent instances
// may run in parallel.
type Scanner struct {
	tz         *lexer.Tokenizer
	file       string
	macros     map[string]bool
	strict     bool
	assertions []Assertion
}

func New(file, text string, opts ...Option) *Scanner {
	s := &Scanner{
		tz:   lexer.New(text),
		file: file,
	}
	WithMacros(DefaultMacros...)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan runs a fresh scanner over text to completion and returns the
// assertions in order of occurrence. On error no partial records are
// returned.
func Scan(file, text string, opts ...Option) ([]Assertion, error) {
	return New(file, text, opts...).Run()
}

func (s *Scanner) Run() ([]Assertion, error) {
	if err := s.outer(); err != nil {
		return nil, err
	}
	return s.assertions, nil
}

func (s *Scanner) outer() error {
	for s.tz.Tok() != lexer.TokEOF {
		tok, err := s.tz.Next()
		if err != nil {
			return err
		}
		switch {
		case tok.IsID("class"):
			if err := s.classHeader(); err != nil {
				return err
			}
		case tok == lexer.TokLBrace:
			if err := s.functionBody(); err != nil {
				return err
			}
		}
	}
	return nil
}

// classHeader consumes tokens between the 'class' keyword and either a
// ';' (forward declaration) or the '{' opening the class body.
func (s *Scanner) classHeader() error {
	for s.tz.Tok() != lexer.TokEOF {
		tok, err := s.tz.Next()
		if err != nil {
			return err
		}
		if tok == lexer.TokSemi {
			return nil
		}
		if tok == lexer.TokLBrace {
			return s.classBody()
		}
	}
	return s.unterminated("class header")
}

func (s *Scanner) classBody() error {
	for s.tz.Tok() != lexer.TokEOF {
		tok, err := s.tz.Next()
		if err != nil {
			return err
		}
		if tok == lexer.TokRBrace {
			return nil
		}
		if tok == lexer.TokLBrace {
			if err := s.functionBody(); err != nil {
				return err
			}
		}
	}
	return s.unterminated("class body")
}

func (s *Scanner) functionBody() error {
	nesting := 1
	statements := 0
	prelude := true
	for s.tz.Tok() != lexer.TokEOF {
		tok, err := s.tz.Next()
		if err != nil {
			return err
		}
		switch {
		case tok == lexer.TokRBrace:
			statements++
			nesting--
			if nesting == 0 {
				return nil
			}
		case tok == lexer.TokLBrace:
			nesting++
		case tok == lexer.TokSemi:
			statements++
		case tok == lexer.TokAssign || tok == lexer.TokLParen || tok.Kind == lexer.Other:
			// The body has moved past parameter checks into real
			// expressions; assertions from here on are not prelude.
			prelude = false
		case tok.Kind == lexer.Ident && s.macros[tok.Text] && s.tz.Tok() == lexer.TokLParen:
			offset := s.tz.Pos()
			args, err := s.tz.CaptureArgs()
			if err != nil {
				return err
			}
			s.assertions = append(s.assertions, Assertion{
				Args:       args,
				File:       s.file,
				Offset:     offset,
				Prelude:    prelude,
				Statements: statements,
			})
		}
	}
	return s.unterminated("function body")
}

func (s *Scanner) unterminated(construct string) error {
	if s.strict {
		return &UnterminatedError{Construct: construct, Offset: s.tz.Pos()}
	}
	return nil
}
