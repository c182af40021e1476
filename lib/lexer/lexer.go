package lexer

import (
	"fmt"
	"strings"
)

// ParseError messages. Msg is one of these constants, so callers can
// tell the failure modes apart without string matching on the rendered
// error.
const (
	UnterminatedString  = "unterminated string"
	UnterminatedComment = "unterminated comment"
	UnclosedParenthesis = "unclosed parenthesis"
)

// ParseError is an unrecoverable lexing failure. Offset is the byte
// position of the construct that never terminated.
type ParseError struct {
	Msg    string
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// Tokenizer is a pull-based lexer over an in-memory source buffer.
// It keeps one token of lookahead: Next returns the token that was
// current before the call and leaves the following token in Tok. The
// structural scanner relies on this to check what follows a macro name
// without consuming it.
type Tokenizer struct {
	text     string
	position int
	tok      Token
	tokStart int
}

func New(text string) *Tokenizer {
	return &Tokenizer{text: text, tok: TokStart}
}

// Tok returns the upcoming token, i.e. the one the next call to Next
// will return.
func (t *Tokenizer) Tok() Token { return t.tok }

// Pos returns the byte offset immediately past the upcoming token.
func (t *Tokenizer) Pos() int { return t.position }

// TokStart returns the byte offset at which the upcoming token begins.
func (t *Tokenizer) TokStart() int { return t.tokStart }

// Next returns the token consumed by the previous call (TokStart on the
// first call) and advances past the next token in the buffer. Comments
// and whitespace are skipped. At end of input it returns TokEOF forever.
func (t *Tokenizer) Next() (Token, error) {
	prev := t.tok
	for {
		start := t.position
		switch {
		case start == len(t.text):
			t.tok = TokEOF
		case t.lookingAt("("):
			t.tok = TokLParen
		case t.lookingAt(")"):
			t.tok = TokRParen
		case t.lookingAt("{"):
			t.tok = TokLBrace
		case t.lookingAt("}"):
			t.tok = TokRBrace
		case t.lookingAt("["):
			t.tok = TokLBracket
		case t.lookingAt("]"):
			t.tok = TokRBracket
		case t.lookingAt("<"):
			t.tok = TokLAngle
		case t.lookingAt(">"):
			t.tok = TokRAngle
		case t.lookingAt("::"):
			t.tok = TokColonColon
		case t.lookingAt(":"):
			t.tok = TokColon
		case t.lookingAt(";"):
			t.tok = TokSemi
		case t.lookingAt(","):
			t.tok = TokComma
		case t.lookingAt("="):
			t.tok = TokAssign
		case t.lookingAt(`"`):
			end, err := t.stringEnd()
			if err != nil {
				return Token{}, err
			}
			t.tok = Token{String, t.text[start:end]}
		case t.lookingAt("/*"):
			end, err := t.commentEnd()
			if err != nil {
				return Token{}, err
			}
			t.position = end
			continue
		case t.lookingAt("//"):
			t.position = t.lineEnd()
			continue
		case isSpace(t.text[start]):
			t.position++
			continue
		default:
			if isIdentStart(t.text[start]) {
				t.tok = Token{Ident, t.text[start:t.identEnd()]}
			} else {
				t.tok = Token{Other, t.text[start : start+1]}
			}
		}
		t.tokStart = start
		t.position += len(t.tok.Text)
		return prev, nil
	}
}

// CaptureArgs consumes a parenthesized argument list as raw characters,
// without re-tokenizing: argument expressions may contain strings, casts
// and template punctuation the coarse tokenizer has no business
// understanding. The upcoming token must be the opening parenthesis.
// Segments are split at commas seen at depth 1 and trimmed of
// surrounding whitespace. On return the upcoming token is the matching
// closing parenthesis and the cursor sits just past it.
func (t *Tokenizer) CaptureArgs() ([]string, error) {
	start := t.position
	segStart := start
	depth := 1
	var args []string
	for pos := start; pos < len(t.text); pos++ {
		switch t.text[pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				args = append(args, strings.TrimSpace(t.text[segStart:pos]))
				t.position = pos + 1
				t.tok = TokRParen
				t.tokStart = pos
				return args, nil
			}
		case ',':
			if depth == 1 {
				args = append(args, strings.TrimSpace(t.text[segStart:pos]))
				segStart = pos + 1
			}
		}
	}
	return nil, &ParseError{UnclosedParenthesis, start}
}

// stringEnd scans from the opening quote to just past the closing one.
// A backslash always escapes exactly one following byte.
func (t *Tokenizer) stringEnd() (int, error) {
	pos := t.position + 1
	for pos < len(t.text) {
		switch t.text[pos] {
		case '"':
			return pos + 1, nil
		case '\\':
			pos += 2
		default:
			pos++
		}
	}
	return 0, &ParseError{UnterminatedString, t.position}
}

func (t *Tokenizer) commentEnd() (int, error) {
	for pos := t.position + 1; pos < len(t.text); pos++ {
		if strings.HasPrefix(t.text[pos:], "*/") {
			return pos + 2, nil
		}
	}
	return 0, &ParseError{UnterminatedComment, t.position}
}

// lineEnd returns the position just past the next newline, or end of
// input. A // comment on the last line is not an error.
func (t *Tokenizer) lineEnd() int {
	pos := t.position + 1
	for pos < len(t.text) {
		if t.text[pos] == '\n' {
			return pos + 1
		}
		pos++
	}
	return pos
}

func (t *Tokenizer) identEnd() int {
	pos := t.position + 1
	for pos < len(t.text) && isIdentPart(t.text[pos]) {
		pos++
	}
	return pos
}

func (t *Tokenizer) lookingAt(s string) bool {
	return strings.HasPrefix(t.text[t.position:], s)
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || ('0' <= ch && ch <= '9')
}
