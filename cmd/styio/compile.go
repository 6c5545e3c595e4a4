package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/styio-lang/styio/pkg/ast"
	"github.com/styio-lang/styio/pkg/compiler"
	"github.com/styio-lang/styio/pkg/diagnostics"
	"github.com/styio-lang/styio/pkg/printer"
)

type compileOptions struct {
	format  string
	infer   bool
	backend string
}

// compileFile streams statement dumps while parsing, then prints the typed
// program. An unreadable file is reported and is not a failure.
func (a *app) compileFile(ctx context.Context, path string, opts compileOptions) error {
	switch opts.format {
	case "text", "json", "yaml":
	default:
		fmt.Fprintf(a.stderr, "error: unknown format %q (want text, json or yaml)\n", opts.format)
		return exitError(exitUsage)
	}
	backend, ok := a.backends.Get(opts.backend, a.stdout)
	if !ok {
		fmt.Fprintf(a.stderr, "error: unknown backend %q\n", opts.backend)
		return exitError(exitUsage)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		a.logger.Error("cannot read source", "path", path, "error", err)
		fmt.Fprintln(a.stdout, a.styles.err.Render("Failed: "+err.Error()))
		return nil
	}

	copts := []compiler.Option{
		compiler.WithBackend(backend),
		compiler.WithLogger(a.logger),
		compiler.WithInference(opts.infer),
	}
	if opts.format == "text" {
		copts = append(copts, compiler.WithStatementHook(func(n ast.Node) {
			fmt.Fprintln(a.stdout, printer.Dump(n))
		}))
	}

	res, err := compiler.New(copts...).Compile(ctx, string(source), path)
	if err != nil {
		var de *compiler.DiagnosticError
		if !errors.As(err, &de) {
			return err
		}
		a.printDiagnostics(a.stderr, de.Diagnostics)
		if de.Code() == diagnostics.EBackend {
			return exitError(exitBackend)
		}
		return exitError(exitDiagnostics)
	}
	a.printDiagnostics(a.stderr, res.Warnings)

	if opts.format == "text" {
		if !opts.infer {
			return nil
		}
		fmt.Fprintln(a.stdout, a.styles.title.Render("Typed program"))
	}
	return a.writeTree(a.stdout, res.Program, opts.format)
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and infer a file, reporting diagnostics only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(args[0])
		},
	}
}

func (a *app) check(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		d := diagnostics.MakeDiag(diagnostics.EIO, err.Error(), nil, "")
		a.printDiagnostics(a.stderr, []diagnostics.Diagnostic{d})
		return exitError(exitDiagnostics)
	}

	c := compiler.New(compiler.WithLogger(a.logger), compiler.WithInference(a.cfg.Infer.Enabled))
	_, diags := c.Check(string(source), path)
	a.printDiagnostics(a.stderr, diags)
	if diagnostics.HasErrors(diags) {
		return exitError(exitDiagnostics)
	}

	if a.cfg.Output.Pretty {
		if len(diags) == 0 {
			fmt.Fprintln(a.stdout, "No errors found.")
		} else {
			fmt.Fprintf(a.stdout, "No errors found, %d warning(s).\n", len(diags))
		}
	} else if len(diags) == 0 {
		fmt.Fprintln(a.stdout, "[]")
	}
	return nil
}
