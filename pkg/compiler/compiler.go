// Package compiler provides the top-level Styio compile pipeline: parse,
// infer types, then hand the program to a backend.
package compiler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/styio-lang/styio/pkg/ast"
	"github.com/styio-lang/styio/pkg/diagnostics"
	"github.com/styio-lang/styio/pkg/infer"
	"github.com/styio-lang/styio/pkg/parser"
)

// Result holds the outcome of a compilation.
type Result struct {
	Program   *ast.Program
	Warnings  []diagnostics.Diagnostic
	SessionID string
}

// Compiler wires the front end to a backend.
type Compiler struct {
	backend   Backend
	logger    *slog.Logger
	infer     bool
	sessionID string
	hook      func(ast.Node)
}

// Option is a functional option for configuring the Compiler.
type Option func(*Compiler)

// WithBackend sets the backend that receives typed programs.
func WithBackend(b Backend) Option {
	return func(c *Compiler) {
		c.backend = b
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = l
	}
}

// WithInference turns the type-inference pass on or off.
func WithInference(enabled bool) Option {
	return func(c *Compiler) {
		c.infer = enabled
	}
}

// WithSessionID pins the session id instead of generating one per compilation.
func WithSessionID(id string) Option {
	return func(c *Compiler) {
		c.sessionID = id
	}
}

// WithStatementHook sets a callback run on every top-level statement as soon
// as it is parsed.
func WithStatementHook(fn func(ast.Node)) Option {
	return func(c *Compiler) {
		c.hook = fn
	}
}

// New creates a Compiler. By default it infers types, uses the no-op backend
// and logs nowhere.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		backend: NopBackend{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		infer:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check parses and infers source without running the backend. Parse errors
// and inference warnings are returned together.
func (c *Compiler) Check(source, filename string) (*ast.Program, []diagnostics.Diagnostic) {
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return nil, diags
	}
	if !c.infer {
		return program, nil
	}
	return program, infer.Infer(program, infer.WithLogger(c.logger))
}

// Compile runs the whole pipeline. Parse failures and backend failures are
// returned as a *DiagnosticError; warnings never stop compilation.
func (c *Compiler) Compile(ctx context.Context, source, filename string) (*Result, error) {
	id := c.sessionID
	if id == "" {
		id = uuid.NewString()
	}
	logger := c.logger.With("session", id, "file", filename)
	logger.Debug("compile started", "bytes", len(source))

	program, err := parser.ParseStatements(source, filename, c.hook)
	if err != nil {
		d := diagnostics.AsDiagnostic(err)
		logger.Debug("parse failed", "code", d.Code)
		return nil, &DiagnosticError{Diagnostics: []diagnostics.Diagnostic{d}}
	}

	res := &Result{Program: program, SessionID: id}
	if c.infer {
		res.Warnings = infer.Infer(program, infer.WithLogger(logger))
		for _, w := range res.Warnings {
			logger.Warn(w.Message, "code", w.Code)
		}
	}

	if err := c.backend.Generate(ctx, program); err != nil {
		logger.Error("backend failed", "error", err)
		return res, &DiagnosticError{Diagnostics: []diagnostics.Diagnostic{
			diagnostics.MakeDiag(diagnostics.EBackend, err.Error(), nil, ""),
		}}
	}
	logger.Debug("compile finished", "statements", len(program.Stmts), "warnings", len(res.Warnings))
	return res, nil
}

// DiagnosticError wraps diagnostics as an error.
type DiagnosticError struct {
	Diagnostics []diagnostics.Diagnostic
}

func (e *DiagnosticError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return strings.Join(msgs, "; ")
}

// Code returns the code of the first diagnostic.
func (e *DiagnosticError) Code() string {
	if len(e.Diagnostics) == 0 {
		return ""
	}
	return e.Diagnostics[0].Code
}
