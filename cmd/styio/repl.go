package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/styio-lang/styio/pkg/compiler"
	"github.com/styio-lang/styio/pkg/parser"
	"github.com/styio-lang/styio/pkg/printer"
)

const (
	promptMain = "styio> "
	promptCont = "  ...> "
)

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive session: each entry is parsed, inferred and dumped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.repl(cmd.Context())
		},
	}
}

func (a *app) repl(ctx context.Context) error {
	fmt.Fprintln(a.stdout, a.styles.title.Render("Styio REPL")+a.styles.muted.Render("  :help for commands, :quit to exit"))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := a.cfg.Repl.History
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		} else {
			a.logger.Debug("history not saved", "path", histPath, "error", err)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		if _, ok := <-sigc; ok {
			ln.Close()
			os.Exit(130)
		}
	}()

	c := compiler.New(compiler.WithLogger(a.logger), compiler.WithInference(a.cfg.Infer.Enabled))
	for {
		code, ok := readEntry(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(a.stdout)
			return nil
		}
		entry := strings.TrimSpace(code)
		if entry == "" {
			continue
		}
		if strings.HasPrefix(entry, ":") {
			if a.replCommand(entry) {
				return nil
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		res, err := c.Compile(ctx, code, "<repl>")
		if err != nil {
			var de *compiler.DiagnosticError
			if errors.As(err, &de) {
				a.printDiagnostics(a.stderr, de.Diagnostics)
				continue
			}
			return err
		}
		a.printDiagnostics(a.stderr, res.Warnings)
		for _, stmt := range res.Program.Stmts {
			fmt.Fprintln(a.stdout, printer.Dump(stmt))
		}
	}
}

// replCommand runs a ':' command and reports whether the session should end.
func (a *app) replCommand(entry string) bool {
	name, arg, _ := strings.Cut(strings.TrimPrefix(entry, ":"), " ")
	switch strings.ToLower(name) {
	case "quit", "q", "exit":
		return true
	case "help":
		fmt.Fprintln(a.stdout, ":quit  leave the session\n:ref [topic]  syntax reference")
	case "ref":
		a.printRef(strings.TrimSpace(arg))
	default:
		fmt.Fprintf(a.stdout, "unknown command %q. Type :help for commands.\n", entry)
	}
	return false
}

// readEntry keeps prompting while the buffered input fails only
// because it ended early.
func readEntry(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !needsMore(b.String()) {
			return b.String(), true
		}
	}
}

// needsMore reports whether src is an unfinished program that more lines
// could complete.
func needsMore(src string) bool {
	if strings.HasPrefix(strings.TrimSpace(src), ":") {
		return false
	}
	_, err := parser.ParseStatements(src, "<repl>", nil)
	return err != nil && parser.IsIncomplete(err)
}
