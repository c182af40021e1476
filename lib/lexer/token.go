package lexer

// Kind identifies the lexical class of a token.
type Kind int

const (
	Start Kind = iota // sentinel returned by the first Next call
	EOF
	LBrace
	RBrace
	LParen
	RParen
	LBracket
	RBracket
	LAngle
	RAngle
	ColonColon
	Colon
	Semi
	Comma
	Assign
	Ident
	String
	Other
)

var kindNames = map[Kind]string{
	Start:      "Start",
	EOF:        "EOF",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	LParen:     "LParen",
	RParen:     "RParen",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
	LAngle:     "LAngle",
	RAngle:     "RAngle",
	ColonColon: "ColonColon",
	Colon:      "Colon",
	Semi:       "Semi",
	Comma:      "Comma",
	Assign:     "Assign",
	Ident:      "Ident",
	String:     "String",
	Other:      "Other",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is a (kind, text) pair. Tokens compare by both fields, so the
// fixed punctuation tokens below can be matched with ==.
type Token struct {
	Kind Kind
	Text string
}

// IsID reports whether t is the identifier name.
func (t Token) IsID(name string) bool {
	return t.Kind == Ident && t.Text == name
}

var (
	TokStart      = Token{Start, ""}
	TokEOF        = Token{EOF, ""}
	TokLBrace     = Token{LBrace, "{"}
	TokRBrace     = Token{RBrace, "}"}
	TokLParen     = Token{LParen, "("}
	TokRParen     = Token{RParen, ")"}
	TokLBracket   = Token{LBracket, "["}
	TokRBracket   = Token{RBracket, "]"}
	TokLAngle     = Token{LAngle, "<"}
	TokRAngle     = Token{RAngle, ">"}
	TokColonColon = Token{ColonColon, "::"}
	TokColon      = Token{Colon, ":"}
	TokSemi       = Token{Semi, ";"}
	TokComma      = Token{Comma, ","}
	TokAssign     = Token{Assign, "="}
)
