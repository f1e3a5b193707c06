// Package bytecode implements the front end (lexer, parser,
// pretty-printer) for MITScript's bytecode text format. There is no
// virtual machine here: this package only round-trips the wire format
// spec.md §4.5 describes, the same "read it, model it, print it back"
// scope the format's original C++ front end has.
package bytecode

import "fmt"

type tokenKind int

const (
	kindEOF tokenKind = iota
	kindInt
	kindString
	kindIdentifier

	// structural keywords
	kindFunction
	kindFunctions
	kindConstants
	kindParameterCount
	kindLocalVars
	kindLocalRefVars
	kindFreeVars
	kindNames
	kindInstructions
	kindNone
	kindTrue
	kindFalse

	// instruction mnemonics
	kindLoadConst
	kindLoadFunc
	kindLoadLocal
	kindStoreLocal
	kindLoadGlobal
	kindStoreGlobal
	kindPushRef
	kindLoadRef
	kindStoreRef
	kindAllocRecord
	kindFieldLoad
	kindFieldStore
	kindIndexLoad
	kindIndexStore
	kindAllocClosure
	kindCall
	kindReturn
	kindAdd
	kindSub
	kindMul
	kindDiv
	kindNeg
	kindGt
	kindGeq
	kindEq
	kindAnd
	kindOr
	kindNot
	kindGoto
	kindIf
	kindDup
	kindSwap
	kindPop

	// symbols
	kindLBracket
	kindRBracket
	kindLParen
	kindRParen
	kindLBrace
	kindRBrace
	kindAssign
	kindComma
)

// keywords maps every reserved word — both structural field names and
// instruction mnemonics — to its token kind, mirroring the flat
// keyword_to_token table the original lexer builds.
var keywords = map[string]tokenKind{
	"None":            kindNone,
	"true":            kindTrue,
	"false":           kindFalse,
	"function":        kindFunction,
	"functions":       kindFunctions,
	"constants":       kindConstants,
	"parameter_count": kindParameterCount,
	"local_vars":      kindLocalVars,
	"local_ref_vars":  kindLocalRefVars,
	"names":           kindNames,
	"free_vars":       kindFreeVars,
	"instructions":    kindInstructions,
	"load_const":      kindLoadConst,
	"load_func":       kindLoadFunc,
	"load_local":      kindLoadLocal,
	"store_local":     kindStoreLocal,
	"load_global":     kindLoadGlobal,
	"store_global":    kindStoreGlobal,
	"push_ref":        kindPushRef,
	"load_ref":        kindLoadRef,
	"store_ref":       kindStoreRef,
	"alloc_record":    kindAllocRecord,
	"field_load":      kindFieldLoad,
	"field_store":     kindFieldStore,
	"index_load":      kindIndexLoad,
	"index_store":     kindIndexStore,
	"alloc_closure":   kindAllocClosure,
	"call":            kindCall,
	"return":          kindReturn,
	"add":             kindAdd,
	"sub":             kindSub,
	"mul":             kindMul,
	"div":             kindDiv,
	"neg":             kindNeg,
	"gt":              kindGt,
	"geq":             kindGeq,
	"eq":              kindEq,
	"and":             kindAnd,
	"or":              kindOr,
	"not":             kindNot,
	"goto":            kindGoto,
	"if":              kindIf,
	"dup":             kindDup,
	"swap":            kindSwap,
	"pop":             kindPop,
}

var symbols = []struct {
	text string
	kind tokenKind
}{
	{"[", kindLBracket},
	{"]", kindRBracket},
	{"(", kindLParen},
	{")", kindRParen},
	{"{", kindLBrace},
	{"}", kindRBrace},
	{"=", kindAssign},
	{",", kindComma},
}

// token carries its decoded text: for a kindString token, text has
// already had \n/\t/\"/\\ escapes resolved to their literal bytes,
// matching Lexer::escape_string in the format this was grounded on.
type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

func (t token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.kind, t.text, t.line, t.col)
}

func (k tokenKind) String() string {
	for text, kk := range keywords {
		if kk == k {
			return text
		}
	}
	switch k {
	case kindEOF:
		return "EOF"
	case kindInt:
		return "INT"
	case kindString:
		return "STRING"
	case kindIdentifier:
		return "IDENTIFIER"
	default:
		for _, s := range symbols {
			if s.kind == k {
				return s.text
			}
		}
		return fmt.Sprintf("tokenKind(%d)", int(k))
	}
}
