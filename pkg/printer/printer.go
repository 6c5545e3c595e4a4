// Package printer renders Styio syntax trees for people and tools.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/styio-lang/styio/pkg/ast"
)

const indent = "  "

// child is a sub-node with an optional role label.
type child struct {
	label string
	node  ast.Node
}

// Dump renders n as an indented tree, one node per line. Literals keep their
// source text and resolved types are shown after a colon.
func Dump(n ast.Node) string {
	var b strings.Builder
	dump(&b, "", n, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func dump(b *strings.Builder, label string, n ast.Node, depth int) {
	b.WriteString(strings.Repeat(indent, depth))
	if label != "" {
		b.WriteString(label)
		b.WriteString(": ")
	}
	if isNil(n) {
		b.WriteString("<none>\n")
		return
	}
	b.WriteString(header(n))
	b.WriteByte('\n')
	for _, c := range children(n) {
		dump(b, c.label, c.node, depth+1)
	}
}

func isNil(n ast.Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *ast.Block:
		return v == nil
	case *ast.Cond:
		return v == nil
	case *ast.Infinite:
		return v == nil
	case *ast.IntLit:
		return v == nil
	case *ast.VarTuple:
		return v == nil
	case *ast.Forward:
		return v == nil
	case *ast.Name:
		return v == nil
	}
	return false
}

func typed(s string, t ast.DataType) string {
	if t == ast.Undefined {
		return s
	}
	return s + " : " + t.String()
}

func param(p *ast.Param) string {
	s := p.Name
	if p.TypeName != "" {
		s += ": " + p.TypeName
	}
	if p.Type != ast.Undefined && p.Type.String() != p.TypeName {
		s += " (" + p.Type.String() + ")"
	}
	return s
}

func header(n ast.Node) string {
	switch n := n.(type) {
	case *ast.IntLit:
		return typed("Int "+n.Text, n.Type)
	case *ast.FloatLit:
		return typed("Float "+n.Text, n.Type)
	case *ast.BoolLit:
		return "Bool " + strconv.FormatBool(n.Value)
	case *ast.CharLit:
		return "Char " + strconv.Quote(n.Value)
	case *ast.StringLit:
		return "String " + strconv.Quote(n.Value)
	case *ast.FmtString:
		return "FmtString " + strconv.Quote(strings.Join(n.Fragments, "{}"))
	case *ast.Name:
		return "Name " + n.Name
	case *ast.Param:
		return "Param " + param(n)
	case *ast.VarTuple:
		parts := make([]string, len(n.Params))
		for i, p := range n.Params {
			parts[i] = param(p)
		}
		return "VarTuple (" + strings.Join(parts, ", ") + ")"
	case *ast.FlexBind:
		return "FlexBind " + param(n.Var)
	case *ast.FinalBind:
		return "FinalBind " + param(n.Var)
	case *ast.List:
		return collection("List", n.Consistent, n.ElemType)
	case *ast.Tuple:
		return collection("Tuple", n.Consistent, n.ElemType)
	case *ast.Set:
		return collection("Set", n.Consistent, n.ElemType)
	case *ast.BinOp:
		return typed("BinOp "+string(n.Op), n.Type)
	case *ast.BinComp:
		return "BinComp " + string(n.Op)
	case *ast.Cond:
		return "Cond " + string(n.Logic)
	case *ast.ListOp:
		return "ListOp " + string(n.Op)
	case *ast.CondFlow:
		return "CondFlow " + n.Branches.String()
	case *ast.Forward:
		return "Forward " + n.Variant().String()
	case *ast.Func:
		s := "Func"
		if n.Name != nil {
			s += " " + n.Name.Name
		} else {
			s += " <anonymous>"
		}
		if n.Final {
			s += " final"
		} else {
			s += " flexible"
		}
		if n.RetTypeName != "" {
			s += " -> " + n.RetTypeName
		}
		return s
	case *ast.Call:
		return "Call " + n.Name.Name
	case *ast.Loop:
		if n.Start == nil {
			return "Loop"
		}
		return "Loop from start"
	case *ast.LocalPath:
		return "LocalPath " + strconv.Quote(n.Path)
	case *ast.RemotePath:
		return "RemotePath " + strconv.Quote(n.Path)
	case *ast.WebURL:
		return "WebURL " + strconv.Quote(n.URL)
	case *ast.DBURL:
		return "DBURL " + strconv.Quote(n.URL)
	case *ast.ReadFile:
		return "ReadFile " + n.Var.Name
	case *ast.ExtPack:
		quoted := make([]string, len(n.Packages))
		for i, p := range n.Packages {
			quoted[i] = strconv.Quote(p)
		}
		return "ExtPack [" + strings.Join(quoted, ", ") + "]"
	case *ast.ResourceBinding:
		return "ResourceBinding " + n.Name.Name
	}
	return n.Kind()
}

func collection(kind string, consistent bool, elem ast.DataType) string {
	if consistent {
		return kind + " of " + elem.String()
	}
	return kind
}

func nodes(ns []ast.Node) []child {
	out := make([]child, len(ns))
	for i, n := range ns {
		out[i] = child{node: n}
	}
	return out
}

func children(n ast.Node) []child {
	switch n := n.(type) {
	case *ast.Program:
		return nodes(n.Stmts)
	case *ast.Block:
		return nodes(n.Stmts)
	case *ast.FmtString:
		return nodes(n.Exprs)
	case *ast.FlexBind:
		return []child{{node: n.Value}}
	case *ast.FinalBind:
		return []child{{node: n.Value}}
	case *ast.List:
		return nodes(n.Elements)
	case *ast.Tuple:
		return nodes(n.Elements)
	case *ast.Set:
		return nodes(n.Elements)
	case *ast.Range:
		return []child{{"start", n.Start}, {"end", n.End}, {"step", n.Step}}
	case *ast.Infinite:
		if !n.Explicit() {
			return nil
		}
		return []child{{"start", n.Start}, {"increment", n.Increment}}
	case *ast.BinOp:
		return []child{{node: n.Left}, {node: n.Right}}
	case *ast.BinComp:
		return []child{{node: n.Left}, {node: n.Right}}
	case *ast.Cond:
		if n.Right == nil {
			return []child{{node: n.Left}}
		}
		return []child{{node: n.Left}, {node: n.Right}}
	case *ast.Call:
		return nodes(n.Args)
	case *ast.SizeOf:
		return []child{{node: n.Value}}
	case *ast.ListOp:
		out := []child{{"list", n.List}}
		if n.Index != nil {
			out = append(out, child{"index", n.Index})
		}
		if n.Value != nil {
			out = append(out, child{"value", n.Value})
		}
		for _, v := range n.Values {
			out = append(out, child{"value", v})
		}
		return out
	case *ast.CondFlow:
		out := []child{{"cond", n.Cond}}
		if n.Then != nil {
			out = append(out, child{"then", n.Then})
		}
		if n.Else != nil {
			out = append(out, child{"else", n.Else})
		}
		return out
	case *ast.CheckEq:
		return []child{{node: n.Value}}
	case *ast.CheckIsIn:
		return []child{{node: n.Iterable}}
	case *ast.Case:
		return []child{{"pattern", n.Pattern}, {"result", n.Result}}
	case *ast.Cases:
		out := make([]child, 0, len(n.Cases)+1)
		for _, c := range n.Cases {
			out = append(out, child{node: c})
		}
		return append(out, child{"default", n.Default})
	case *ast.Forward:
		var out []child
		if n.Params != nil {
			out = append(out, child{"params", n.Params})
		}
		if n.Guard != nil {
			out = append(out, child{"guard", n.Guard})
		}
		if n.Body != nil {
			out = append(out, child{"body", n.Body})
		}
		return out
	case *ast.Iter:
		return []child{{"collection", n.Collection}, {node: n.Forward}}
	case *ast.Loop:
		if n.Start != nil {
			return []child{{"start", n.Start}, {node: n.Forward}}
		}
		return []child{{node: n.Forward}}
	case *ast.Func:
		return []child{{node: n.Forward}}
	case *ast.Return:
		return []child{{node: n.Value}}
	case *ast.ReadFile:
		return []child{{node: n.Source}}
	case *ast.Print:
		return nodes(n.Exprs)
	case *ast.ResourceBinding:
		return []child{{node: n.Value}}
	case *ast.ResourceBlock:
		out := make([]child, 0, len(n.Entries)+1)
		for _, e := range n.Entries {
			out = append(out, child{node: e})
		}
		if n.Then != nil {
			out = append(out, child{"then", n.Then})
		}
		return out
	}
	return nil
}

// Inline renders an expression on one line, parenthesizing every binary
// operation so the tree shape is explicit.
func Inline(n ast.Node) string {
	switch n := n.(type) {
	case nil:
		return ""
	case *ast.IntLit:
		return n.Text
	case *ast.FloatLit:
		return n.Text
	case *ast.BoolLit:
		return strconv.FormatBool(n.Value)
	case *ast.CharLit:
		return "'" + n.Value + "'"
	case *ast.StringLit:
		return strconv.Quote(n.Value)
	case *ast.Name:
		return n.Name
	case *ast.BinOp:
		return fmt.Sprintf("(%s %s %s)", Inline(n.Left), n.Op, Inline(n.Right))
	case *ast.BinComp:
		return fmt.Sprintf("%s %s %s", Inline(n.Left), n.Op, Inline(n.Right))
	case *ast.Cond:
		switch n.Logic {
		case ast.LogicRaw:
			return Inline(n.Left)
		case ast.LogicNot:
			return "!(" + Inline(n.Left) + ")"
		case ast.LogicAnd:
			return "(" + Inline(n.Left) + " && " + Inline(n.Right) + ")"
		default:
			return "(" + Inline(n.Left) + " || " + Inline(n.Right) + ")"
		}
	case *ast.List:
		return "[" + inlineList(n.Elements) + "]"
	case *ast.Tuple:
		return "(" + inlineList(n.Elements) + ")"
	case *ast.Set:
		return "{" + inlineList(n.Elements) + "}"
	case *ast.Range:
		return "[" + n.Start.Text + ".." + n.End.Text + "]"
	case *ast.Infinite:
		if n.Explicit() {
			return "[" + Inline(n.Start) + ".." + Inline(n.Increment) + "]"
		}
		return "[...]"
	case *ast.Call:
		return n.Name.Name + "(" + inlineList(n.Args) + ")"
	case *ast.SizeOf:
		return "|" + Inline(n.Value) + "|"
	}
	return "<" + n.Kind() + ">"
}

func inlineList(ns []ast.Node) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = Inline(n)
	}
	return strings.Join(parts, ", ")
}
