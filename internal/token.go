package internal

import "fmt"

// tokenKind identifies the lexical class of a token. The zero value,
// kindError, marks a diagnostic token.
type tokenKind int

const (
	kindError tokenKind = iota
	kindNone
	kindAssign
	kindLBrace
	kindRBrace
	kindLParen
	kindRParen
	kindLSquare
	kindRSquare
	kindSemicolon
	kindComma
	kindDot
	kindColon
	kindAdd
	kindSub
	kindMul
	kindDiv
	kindEq
	kindLt
	kindGt
	kindLeq
	kindGeq
	kindAnd
	kindOr
	kindNot
	kindIntLiteral
	kindStringLiteral
	kindBooleanLiteral
	kindKeyword
	kindIdentifier
	kindEOF
)

var tokenKindNames = map[tokenKind]string{
	kindError:          "ERROR",
	kindNone:           "NONE",
	kindAssign:         "=",
	kindLBrace:         "{",
	kindRBrace:         "}",
	kindLParen:         "(",
	kindRParen:         ")",
	kindLSquare:        "[",
	kindRSquare:        "]",
	kindSemicolon:      ";",
	kindComma:          ",",
	kindDot:            ".",
	kindColon:          ":",
	kindAdd:            "+",
	kindSub:            "-",
	kindMul:            "*",
	kindDiv:            "/",
	kindEq:             "==",
	kindLt:             "<",
	kindGt:             ">",
	kindLeq:            "<=",
	kindGeq:            ">=",
	kindAnd:            "&",
	kindOr:             "|",
	kindNot:            "!",
	kindIntLiteral:     "INTLITERAL",
	kindStringLiteral:  "STRINGLITERAL",
	kindBooleanLiteral: "BOOLEANLITERAL",
	kindKeyword:        "KEYWORD",
	kindIdentifier:     "IDENTIFIER",
	kindEOF:            "EOF",
}

func (k tokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("tokenKind(%d)", int(k))
}

// scanKindLabel is the label used by the `scan` subcommand's output
// format (spec.md §6.3): only literal/identifier kinds get a label,
// everything else prints as an empty label followed by the bare text.
func (k tokenKind) scanKindLabel() string {
	switch k {
	case kindStringLiteral:
		return "STRINGLITERAL"
	case kindIntLiteral:
		return "INTLITERAL"
	case kindBooleanLiteral:
		return "BOOLEANLITERAL"
	case kindIdentifier:
		return "IDENTIFIER"
	default:
		return ""
	}
}

// token is the lexer's unit of output: a kind, the token's literal
// source text, and the 1-based source line it started on. An Error
// token additionally carries a human-readable diagnostic in text.
type token struct {
	kind tokenKind
	text string
	line int
}

var keywords = map[string]bool{
	"global": true,
	"return": true,
	"while":  true,
	"if":     true,
	"else":   true,
	"fun":    true,
	"None":   true,
}
