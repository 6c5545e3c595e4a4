package compiler

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/styio-lang/styio/pkg/ast"
)

// Backend consumes a typed program. It is the hand-off point to code generation.
type Backend interface {
	// ResolveType maps a type tag to the backend's own type name.
	ResolveType(t ast.DataType) (string, error)
	// Generate consumes the whole program.
	Generate(ctx context.Context, program *ast.Program) error
}

// NopBackend accepts every program and maps type tags to their names.
type NopBackend struct{}

func (NopBackend) ResolveType(t ast.DataType) (string, error) {
	if t == ast.Undefined {
		return "", fmt.Errorf("type is undefined")
	}
	return t.String(), nil
}

func (NopBackend) Generate(ctx context.Context, _ *ast.Program) error {
	return ctx.Err()
}

// TypeTableBackend writes the resolved type of every top-level binding and
// the parameters of every top-level function, sorted by name.
type TypeTableBackend struct {
	Out io.Writer
}

func (b *TypeTableBackend) ResolveType(t ast.DataType) (string, error) {
	return NopBackend{}.ResolveType(t)
}

func (b *TypeTableBackend) Generate(ctx context.Context, program *ast.Program) error {
	rows := make(map[string]string)
	for _, stmt := range program.Stmts {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch s := stmt.(type) {
		case *ast.FlexBind:
			rows[s.Var.Name] = b.typeName(s.Var.Type)
		case *ast.FinalBind:
			rows[s.Var.Name] = b.typeName(s.Var.Type)
		case *ast.Func:
			if s.Name == nil || s.Forward == nil || s.Forward.Params == nil {
				continue
			}
			for _, p := range s.Forward.Params.Params {
				rows[s.Name.Name+"."+p.Name] = b.typeName(p.Type)
			}
		}
	}

	names := make([]string, 0, len(rows))
	for name := range rows {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(b.Out, "%s\t%s\n", name, rows[name]); err != nil {
			return err
		}
	}
	return nil
}

func (b *TypeTableBackend) typeName(t ast.DataType) string {
	name, err := b.ResolveType(t)
	if err != nil {
		return "?"
	}
	return name
}

// Registry holds the backends selectable by name.
type Registry struct {
	backends map[string]func(out io.Writer) Backend
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]func(io.Writer) Backend)}
}

// Register adds a backend constructor under name.
func (r *Registry) Register(name string, build func(out io.Writer) Backend) {
	r.backends[name] = build
}

// Get builds the named backend writing to out.
func (r *Registry) Get(name string, out io.Writer) (Backend, bool) {
	build, ok := r.backends[name]
	if !ok {
		return nil, false
	}
	return build(out), true
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterDefaults adds the built-in backends.
func RegisterDefaults(r *Registry) {
	r.Register("nop", func(io.Writer) Backend { return NopBackend{} })
	r.Register("types", func(out io.Writer) Backend { return &TypeTableBackend{Out: out} })
}
