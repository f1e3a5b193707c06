// Command mitscript is the five-subcommand driver spec.md §6.1
// describes: scan, parse, compile, interpret, and vm. Its argument
// handling (subcommand, positional input file, -o/--output, -m/--mem,
// -h/--help) is adapted from this project's own cli.cpp/main.cpp
// dispatch, generalized from a single-mode CLI into the subcommand
// table spec.md requires.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/labstack/gommon/bytes"
	"github.com/labstack/gommon/color"
	"github.com/sirupsen/logrus"

	"mitscript/internal"
)

type subcommand int

const (
	cmdScan subcommand = iota
	cmdParse
	cmdCompile
	cmdInterpret
	cmdVM
)

var subcommandNames = map[string]subcommand{
	"scan":      cmdScan,
	"parse":     cmdParse,
	"compile":   cmdCompile,
	"interpret": cmdInterpret,
	"vm":        cmdVM,
}

type options struct {
	cmd        subcommand
	inputFile  string
	outputFile string
	memLimitMB uint64
	verbose    bool
	noColor    bool
}

// subcommandName reverses subcommandNames for log tagging.
func (o *options) subcommandName() string {
	for name, kind := range subcommandNames {
		if kind == o.cmd {
			return name
		}
	}
	return "unknown"
}

func printHelp(argv0 string, out io.Writer) {
	fmt.Fprintf(out, "Usage: %s [SUBCOMMAND] [input_file] [OPTIONS]\n\n", argv0)
	fmt.Fprintln(out, "POSITIONALS:")
	fmt.Fprintln(out, "  input_file TEXT             Path to input file, use '-' for stdin")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "OPTIONS:")
	fmt.Fprintln(out, "  -h,     --help              Print this help message and exit")
	fmt.Fprintln(out, "  -o,     --output TEXT       Path to output file, use '-' for stdout")
	fmt.Fprintln(out, "  -m,     --mem UINT          Memory limit in MB -- Only enabled for VM subcommand")
	fmt.Fprintln(out, "  -v,     --verbose           Print structured debug tracing to stderr")
	fmt.Fprintln(out, "          --no-color          Disable colorized diagnostics")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "SUBCOMMANDS:")
	fmt.Fprintln(out, "  scan")
	fmt.Fprintln(out, "  parse")
	fmt.Fprintln(out, "  compile")
	fmt.Fprintln(out, "  interpret")
	fmt.Fprintln(out, "  vm")
}

// parseArgs mirrors cli_parse_internal's loop: a required subcommand
// in argv[1], then flags and at most one positional input file in any
// order among the rest.
func parseArgs(argv []string) (*options, error) {
	if len(argv) < 2 {
		printHelp(argv[0], os.Stdout)
		os.Exit(1)
	}

	sub := argv[1]
	if sub == "-h" || sub == "--help" {
		printHelp(argv[0], os.Stdout)
		os.Exit(0)
	}
	kind, ok := subcommandNames[sub]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: Unknown subcommand '%s'\n", sub)
		printHelp(argv[0], os.Stderr)
		os.Exit(1)
	}

	opts := &options{cmd: kind, inputFile: "-", outputFile: "-", memLimitMB: 4}
	inputSet := false

	for i := 2; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "-h" || arg == "--help":
			printHelp(argv[0], os.Stdout)
			os.Exit(0)
		case arg == "-o" || arg == "--output":
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("-o/--output requires a value")
			}
			i++
			opts.outputFile = argv[i]
		case arg == "-m" || arg == "--mem":
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("-m/--mem requires a value")
			}
			i++
			n, err := strconv.ParseUint(argv[i], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("-m/--mem expects an unsigned integer: %w", err)
			}
			opts.memLimitMB = n
		case arg == "-v" || arg == "--verbose":
			opts.verbose = true
		case arg == "--no-color":
			opts.noColor = true
		case !inputSet:
			opts.inputFile = arg
			inputSet = true
		default:
			return nil, fmt.Errorf("Too many positional arguments")
		}
	}

	if opts.inputFile != "-" {
		if _, err := os.Stat(opts.inputFile); err != nil {
			return nil, fmt.Errorf("Input file '%s' does not exist", opts.inputFile)
		}
	}

	return opts, nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func main() {
	opts, err := parseArgs(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	in, err := openInput(opts.inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer in.Close()

	out, err := openOutput(opts.outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer out.Close()

	contents, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cfg, err := internal.LoadConfig(".mitscript.yaml")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logLevel := cfg.LogLevel
	if opts.verbose {
		logLevel = "debug"
	}
	logger := internal.NewLogger(os.Stderr, logLevel)
	log := internal.ComponentLogger(logger, opts.subcommandName())

	useColor := !opts.noColor && (cfg.Color == nil || *cfg.Color) && colorEnabled()
	diag := color.New()
	if useColor {
		diag.Enable()
	} else {
		diag.Disable()
	}

	if opts.memLimitMB > 0 {
		log.WithField("mem_limit", bytes.Format(int64(opts.memLimitMB)*1024*1024)).Debug("memory limit configured")
	}

	os.Exit(dispatch(opts, string(contents), out, cfg, log, diag))
}

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// diagf prints a fault/error line to stderr, colorized red when diag
// is enabled — colorization never changes the text itself, only its
// styling (SPEC_FULL.md §4.7).
func diagf(diag *color.Color, format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, diag.Red(fmt.Sprintf(format, args...)))
}

func dispatch(opts *options, source string, out io.Writer, cfg *internal.Config, log *logrus.Entry, diag *color.Color) int {
	switch opts.cmd {
	case cmdScan:
		return runScan(source, out, log)
	case cmdParse:
		return runParse(source, out, log)
	case cmdCompile:
		diagf(diag, "Error: Compile command not yet implemented")
		return 0
	case cmdInterpret:
		return runInterpret(source, out, cfg, log, diag)
	case cmdVM:
		return runVM(source, out, diag)
	default:
		return 1
	}
}

func runScan(source string, out io.Writer, log *logrus.Entry) int {
	tokens := internal.ScanTokens(source, log)
	internal.PrintTokens(tokens, func(s string) { fmt.Fprintln(out, s) })
	if internal.AnyErrorToken(tokens) {
		return 1
	}
	return 0
}

func runParse(source string, out io.Writer, log *logrus.Entry) int {
	tokens := internal.ScanTokens(source, log)
	if internal.AnyErrorToken(tokens) {
		return 1
	}
	_, err := internal.ParseTokens(tokens, log)
	if err != nil {
		fmt.Fprintln(out, "parse error")
		return 1
	}
	return 0
}

func runInterpret(source string, out io.Writer, cfg *internal.Config, log *logrus.Entry, diag *color.Color) int {
	tokens := internal.ScanTokens(source, log)
	if internal.AnyErrorToken(tokens) {
		internal.PrintErrors(tokens, func(s string) { fmt.Fprintln(os.Stderr, s) })
		return 1
	}
	program, err := internal.ParseTokens(tokens, log)
	if err != nil {
		fmt.Fprintln(out, "parse error")
		return 1
	}
	interp := internal.NewInterpreter(out, os.Stdin, cfg.GCThreshold, log)
	if err := interp.Interpret(program); err != nil {
		diagf(diag, "%s", err.Error())
		return 1
	}
	return 0
}

func runVM(source string, out io.Writer, diag *color.Color) int {
	fn, err := internal.ParseBytecodeText(source)
	if err != nil {
		diagf(diag, "%s", err.Error())
		return 1
	}
	fmt.Fprint(out, internal.PrettyPrintBytecode(fn))
	return 0
}
