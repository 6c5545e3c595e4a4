package printer

import (
	"fmt"

	"github.com/styio-lang/styio/pkg/ast"
)

// TreeNode is the serializable form of a syntax node, shared by the JSON and
// YAML outputs.
type TreeNode struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Role     string      `json:"role,omitempty" yaml:"role,omitempty"`
	Summary  string      `json:"summary" yaml:"summary"`
	Span     string      `json:"span,omitempty" yaml:"span,omitempty"`
	Children []*TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Tree converts n into a TreeNode. Absent optional children are omitted.
func Tree(n ast.Node) *TreeNode {
	if isNil(n) {
		return nil
	}
	return tree("", n)
}

func tree(role string, n ast.Node) *TreeNode {
	t := &TreeNode{
		Kind:    n.Kind(),
		Role:    role,
		Summary: header(n),
		Span:    spanString(n.NodeSpan()),
	}
	for _, c := range children(n) {
		if isNil(c.node) {
			continue
		}
		t.Children = append(t.Children, tree(c.label, c.node))
	}
	return t
}

func spanString(s ast.Span) string {
	if s.StartLine == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}
