package internal

import "strings"

// installNatives binds MITScript's three native functions (spec.md
// §4.4.4) into the root frame, grounded on this codebase's
// nativeFn/defineGlobals shape: each is a small closure over the
// interpreter's I/O, installed into the environment by name once at
// startup.
func installNatives(root *Frame, interp *Interpreter) {
	root.define("print", &NativeFunction{
		name:  "print",
		arity: 1,
		fn: func(_ *Interpreter, args []value, line int) value {
			interp.stdout(valueToDisplayString(args[0]))
			return none
		},
	})

	root.define("input", &NativeFunction{
		name:  "input",
		arity: 0,
		fn: func(_ *Interpreter, args []value, line int) value {
			text, ok := interp.readLine()
			if !ok {
				return stringValue("")
			}
			return stringValue(strings.TrimRight(text, "\r\n"))
		},
	})

	root.define("intcast", &NativeFunction{
		name:  "intcast",
		arity: 1,
		fn: func(_ *Interpreter, args []value, line int) value {
			switch v := args[0].(type) {
			case intValue:
				return v
			case stringValue:
				s := string(v)
				if len(s) == 0 || s == "-" || (s[0] != '-' && !isASCIIDigit(s[0])) {
					panic(newRuntimeFault(illegalCastFault, line, "cannot cast '"+s+"' to Integer"))
				}
				for i := 1; i < len(s); i++ {
					if !isASCIIDigit(s[i]) {
						panic(newRuntimeFault(illegalCastFault, line, "cannot cast '"+s+"' to Integer"))
					}
				}
				return intValue(atoiWrap(s))
			default:
				panic(newRuntimeFault(illegalCastFault, line, "intcast expects an Integer or String, got "+typeName(args[0])))
			}
		},
	})
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

// atoiWrap converts a string already validated as an optional leading
// '-' followed by decimal digits into its int32 value, wrapping
// silently on overflow like parser.go's parseInt32 rather than
// failing the cast.
func atoiWrap(s string) int32 {
	neg := false
	i := 0
	if len(s) > 0 && s[0] == '-' {
		neg = true
		i = 1
	}
	var n int64
	for ; i < len(s); i++ {
		n = n*10 + int64(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return int32(n)
}
