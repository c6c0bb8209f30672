// Package cmd implements stackc's command-line interface: a single root
// command that runs the whole pipeline (lex, parse, codegen, assemble,
// link, and optionally run) over one input file.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinylang/stackc/internal/codegen"
	cerrors "github.com/tinylang/stackc/internal/errors"
	"github.com/tinylang/stackc/internal/lexer"
	"github.com/tinylang/stackc/internal/parser"
	"github.com/tinylang/stackc/internal/toolchain"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	flagRun        bool
	flagAssembly   bool
	flagParseTree  bool
	flagTokens     bool
	flagOutputFile string
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "stackc <input-file>",
	Short: "Compile a stackc program to a Linux x86-64 executable",
	Long: `stackc compiles a small imperative language to NASM assembly and
links it into a native Linux x86-64 executable via nasm and ld.

Examples:
  # Compile to ./output (change the path with -o)
  stackc program.tc

  # Compile, then immediately run the resulting binary
  stackc program.tc -r

  # Keep the generated assembly alongside the binary
  stackc program.tc -a

  # Dump the token stream instead of compiling
  stackc program.tc -t

  # Dump the parse tree instead of compiling
  stackc program.tc --pt`,
	Version: Version,
	Args:    cobra.ExactArgs(1),
	RunE:    runCompiler,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().BoolVarP(&flagRun, "run", "r", false, "run the compiled binary after linking")
	rootCmd.Flags().BoolVarP(&flagAssembly, "assembly", "a", false, "keep the generated .asm file")
	rootCmd.Flags().BoolVarP(&flagTokens, "tokens", "t", false, "dump the token stream and exit")
	rootCmd.Flags().StringVarP(&flagOutputFile, "output", "o", "output", "output binary path")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "print stage-by-stage progress to stderr")

	// "-pt" is two characters, which pflag's single-rune shorthand can't
	// express; register it as its own long flag sharing flagParseTree's
	// storage instead of forcing it through the shorthand mechanism.
	rootCmd.Flags().BoolVar(&flagParseTree, "pt", false, "dump the parse tree and exit")
	rootCmd.Flags().BoolVar(&flagParseTree, "parse-tree", false, "dump the parse tree and exit")
}

func runCompiler(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	verbosef("Tokenizing: %s", filename)
	tokens, err := lexer.Lex(source)
	if err != nil {
		return reportAndFail(err, source, filename)
	}

	if flagTokens {
		for _, tok := range tokens {
			fmt.Fprintln(os.Stderr, tok.String())
		}
		return nil
	}

	verbosef("Parsing: %s", filename)
	program, err := parser.Parse(tokens)
	if err != nil {
		return reportAndFail(err, source, filename)
	}

	if flagParseTree {
		dumpProgram(os.Stderr, program)
		return nil
	}

	verbosef("Generating assembly")
	asm, err := codegen.Generate(program)
	if err != nil {
		return reportAndFail(err, source, filename)
	}

	binPath := flagOutputFile
	asmPath := binPath + ".asm"
	objPath := binPath + ".o"

	verbosef("Assembling and linking: %s", binPath)
	result, err := toolchain.Build(asm, asmPath, objPath, binPath)
	if err != nil {
		return err
	}
	defer toolchain.Cleanup(result, flagAssembly)

	fmt.Printf("Compiled %s -> %s\n", filename, binPath)

	if flagRun {
		verbosef("Running: %s", result.BinaryPath)
		code, err := toolchain.Run(result.BinaryPath)
		if err != nil {
			return err
		}
		fmt.Printf("Program exited with code %d\n", code)
	}

	return nil
}

func verbosef(format string, args ...any) {
	if flagVerbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func reportAndFail(err error, source, filename string) error {
	ce := cerrors.FromError(err, source, filename)
	fmt.Fprintln(os.Stderr, ce.Format(true))
	return fmt.Errorf("compilation failed")
}
