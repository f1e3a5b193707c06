package bytecode

import (
	"fmt"
	"strconv"
	"strings"
)

// printer accumulates pretty-printed bytecode text one buffer write at
// a time, indenting with tabs — grounded on this codebase's own
// stringVisitor accumulator (a struct wrapping a builder, one method
// per node kind) applied to the format's own PrettyPrinter, which
// indents/unindents around each bracketed section.
type printer struct {
	buf    strings.Builder
	indent int
}

// Print renders fn as bytecode text-format source; Parse(Lex(Print(fn)))
// reproduces fn exactly (spec.md §4.5.4's round-trip property).
func Print(fn *Function) string {
	p := &printer{}
	p.printFunction(fn)
	return p.buf.String()
}

func (p *printer) writeIndent() {
	p.buf.WriteString(strings.Repeat("\t", p.indent))
}

func (p *printer) printFunction(fn *Function) {
	p.writeIndent()
	p.buf.WriteString("function\n")
	p.writeIndent()
	p.buf.WriteString("{\n")
	p.indent++

	p.writeIndent()
	p.buf.WriteString("functions =")
	if len(fn.Functions) == 0 {
		p.buf.WriteString(" [],\n")
	} else {
		p.buf.WriteString("\n")
		p.writeIndent()
		p.buf.WriteString("[\n")
		p.indent++
		for i, nested := range fn.Functions {
			p.printFunction(nested)
			if i != len(fn.Functions)-1 {
				p.buf.WriteString(",\n")
			}
		}
		p.indent--
		p.buf.WriteString("\n")
		p.writeIndent()
		p.buf.WriteString("],\n")
	}

	p.writeIndent()
	p.buf.WriteString("constants = [")
	for i, c := range fn.Constants {
		if i != 0 {
			p.buf.WriteString(", ")
		}
		p.printConstant(c)
	}
	p.buf.WriteString("],\n")

	p.writeIndent()
	p.buf.WriteString(fmt.Sprintf("parameter_count = %d,\n", fn.ParameterCount))

	p.printNameList("local_vars", fn.LocalVars)
	p.printNameList("local_ref_vars", fn.LocalRefVars)
	p.printNameList("free_vars", fn.FreeVars)
	p.printNameList("names", fn.Names)

	p.writeIndent()
	p.buf.WriteString("instructions = \n")
	p.writeIndent()
	p.buf.WriteString("[\n")
	p.indent++
	for _, inst := range fn.Instructions {
		p.writeIndent()
		p.printInstruction(inst)
		p.buf.WriteString("\n")
	}
	p.indent--
	p.writeIndent()
	p.buf.WriteString("]\n")

	p.indent--
	p.writeIndent()
	p.buf.WriteString("}")
}

func (p *printer) printNameList(name string, names []string) {
	p.writeIndent()
	p.buf.WriteString(name)
	p.buf.WriteString(" = [")
	for i, n := range names {
		if i != 0 {
			p.buf.WriteString(", ")
		}
		p.buf.WriteString(n)
	}
	p.buf.WriteString("],\n")
}

func (p *printer) printConstant(c Constant) {
	switch v := c.(type) {
	case NoneConstant:
		p.buf.WriteString("None")
	case BooleanConstant:
		if v.Value {
			p.buf.WriteString("true")
		} else {
			p.buf.WriteString("false")
		}
	case IntegerConstant:
		p.buf.WriteString(strconv.FormatInt(int64(v.Value), 10))
	case StringConstant:
		p.buf.WriteByte('"')
		p.buf.WriteString(escapeString(v.Value))
		p.buf.WriteByte('"')
	}
}

func (p *printer) printInstruction(inst Instruction) {
	p.buf.WriteString(inst.Op.String())
	if inst.Op.hasOperand() {
		p.buf.WriteByte('\t')
		p.buf.WriteString(strconv.FormatInt(int64(inst.Operand), 10))
	}
}

// escapeString is the inverse of the lexer's unescapeString: it turns
// literal newline/tab/quote/backslash bytes back into their two-
// character source form for printing.
func escapeString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '"':
			b.WriteString("\\\"")
		case '\\':
			b.WriteString("\\\\")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
