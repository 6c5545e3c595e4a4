// Command styio is the Styio front-end CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/styio-lang/styio/pkg/compiler"
	"github.com/styio-lang/styio/pkg/config"
)

// Exit codes.
const (
	exitOK          = 0
	exitUsage       = 1
	exitDiagnostics = 2
	exitBackend     = 4
)

// exitError carries a process exit code out of a command.
type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// app holds the state shared by every subcommand.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfgFile string
	verbose bool
	pretty  bool

	cfg      *config.Config
	logger   *slog.Logger
	styles   styles
	backends *compiler.Registry
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, backends: compiler.NewRegistry()}
	compiler.RegisterDefaults(a.backends)

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	var code exitError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &code):
		return int(code)
	}
	fmt.Fprintf(stderr, "error: %s\n", err)
	return exitUsage
}

func (a *app) rootCmd() *cobra.Command {
	var (
		format  string
		noInfer bool
		backend string
	)

	root := &cobra.Command{
		Use:   "styio [file]",
		Short: "Styio front end: parse, infer and dump Styio programs",
		Long: `styio parses a Styio source file, resolves its scalar types and hands
the typed tree to a backend.

Run 'styio ref' for the syntax reference.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return exitError(exitUsage)
			}
			opts := compileOptions{format: a.cfg.Output.Format, infer: a.cfg.Infer.Enabled, backend: a.cfg.Backend.Name}
			if cmd.Flags().Changed("format") {
				opts.format = format
			}
			if noInfer {
				opts.infer = false
			}
			if cmd.Flags().Changed("backend") {
				opts.backend = backend
			}
			return a.compileFile(cmd.Context(), args[0], opts)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./styio.toml or $STYIO_CONFIG)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&a.pretty, "pretty", false, "human-readable diagnostics even when the config says otherwise")

	root.Flags().StringVar(&format, "format", "text", "final dump format: text, json or yaml")
	root.Flags().BoolVar(&noInfer, "no-infer", false, "skip type inference")
	root.Flags().StringVar(&backend, "backend", "nop", "backend name: "+strings.Join(a.backends.Names(), ", "))

	root.AddCommand(a.checkCmd(), a.replCmd(), a.refCmd())
	return root
}

// setup loads the config and builds the logger and styles.
func (a *app) setup() error {
	cfg, err := config.Resolve(a.cfgFile)
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %s\n", err)
		return exitError(exitUsage)
	}
	if a.pretty {
		cfg.Output.Pretty = true
	}
	a.cfg = cfg

	level := cfg.SlogLevel()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	a.styles = newStyles(cfg.Output.Color)
	return nil
}
