package internal

import "mitscript/internal/bytecode"

// ParseBytecodeText lexes and parses bytecode text-format source into
// its Function AST, per spec.md §4.5. There is no execution step here
// — the `vm` subcommand only round-trips the format (spec.md's
// explicit non-goal: no virtual machine).
func ParseBytecodeText(source string) (*bytecode.Function, error) {
	tokens, err := bytecode.Lex(source)
	if err != nil {
		return nil, err
	}
	return bytecode.Parse(tokens)
}

// PrettyPrintBytecode renders a bytecode Function back to its text
// form.
func PrettyPrintBytecode(fn *bytecode.Function) string {
	return bytecode.Print(fn)
}
