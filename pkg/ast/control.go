package ast

import "fmt"

// BranchKind records which branches a conditional flow carries.
type BranchKind int

const (
	TrueOnly BranchKind = iota
	FalseOnly
	BothBranches
)

func (b BranchKind) String() string {
	switch b {
	case TrueOnly:
		return "true"
	case FalseOnly:
		return "false"
	default:
		return "both"
	}
}

// CondFlow is `?(cond) \t\ {...} \f\ {...}`. Then is nil for FalseOnly and
// Else is nil for TrueOnly.
type CondFlow struct {
	Span     Span
	Branches BranchKind
	Cond     *Cond
	Then     *Block
	Else     *Block
}

func (n *CondFlow) Kind() string   { return "CondFlow" }
func (n *CondFlow) NodeSpan() Span { return n.Span }
func (n *CondFlow) node()          {}

// CheckEq is the `?= value` guard.
type CheckEq struct {
	Span  Span
	Value Node
}

func (n *CheckEq) Kind() string   { return "CheckEq" }
func (n *CheckEq) NodeSpan() Span { return n.Span }
func (n *CheckEq) node()          {}

// CheckIsIn is the `?^ collection` guard.
type CheckIsIn struct {
	Span     Span
	Iterable Node
}

func (n *CheckIsIn) Kind() string   { return "CheckIsIn" }
func (n *CheckIsIn) NodeSpan() Span { return n.Span }
func (n *CheckIsIn) node()          {}

type Case struct {
	Span    Span
	Pattern Node
	Result  Node
}

func (n *Case) Kind() string   { return "Case" }
func (n *Case) NodeSpan() Span { return n.Span }
func (n *Case) node()          {}

// Cases is a pattern table. Default is always present.
type Cases struct {
	Span    Span
	Cases   []*Case
	Default Node
}

func (n *Cases) Kind() string   { return "Cases" }
func (n *Cases) NodeSpan() Span { return n.Span }
func (n *Cases) node()          {}

// ForwardVariant identifies the shape of a Forward. Fill variants carry parameters.
type ForwardVariant int

const (
	FwdRun ForwardVariant = iota
	FwdIfEqual
	FwdIfIsIn
	FwdIfCond
	FwdCases
	FwdFillRun
	FwdFillIfEqual
	FwdFillIfIsIn
	FwdFillIfCond
	FwdFillCases
)

var forwardVariantNames = [...]string{
	FwdRun:         "Forward",
	FwdIfEqual:     "IfEqualTo",
	FwdIfIsIn:      "IfIsIn",
	FwdIfCond:      "IfCond",
	FwdCases:       "Cases",
	FwdFillRun:     "FillForward",
	FwdFillIfEqual: "FillIfEqualTo",
	FwdFillIfIsIn:  "FillIfIsIn",
	FwdFillIfCond:  "FillIfCond",
	FwdFillCases:   "FillCases",
}

func (v ForwardVariant) String() string { return forwardVariantNames[v] }

// Fill reports whether the variant carries a parameter tuple.
func (v ForwardVariant) Fill() bool { return v >= FwdFillRun }

// Forward binds optional parameters, an optional guard and a body. Build it
// with NewForward so the variant matches its parts.
type Forward struct {
	Span    Span
	Params  *VarTuple
	Guard   Node
	Body    Node
	variant ForwardVariant
}

func (n *Forward) Kind() string   { return "Forward" }
func (n *Forward) NodeSpan() Span { return n.Span }
func (n *Forward) node()          {}

// Variant returns the shape computed at construction.
func (n *Forward) Variant() ForwardVariant { return n.variant }

// NewForward builds a Forward and fixes its variant. guard must be nil,
// *CheckEq, *CheckIsIn, *CondFlow or *Cases. For *CondFlow and *Cases the
// guard carries its own bodies and body may be nil.
func NewForward(span Span, params *VarTuple, guard Node, body Node) *Forward {
	var v ForwardVariant
	switch guard.(type) {
	case nil:
		v = FwdRun
	case *CheckEq:
		v = FwdIfEqual
	case *CheckIsIn:
		v = FwdIfIsIn
	case *CondFlow:
		v = FwdIfCond
	case *Cases:
		v = FwdCases
	default:
		panic(fmt.Sprintf("ast: invalid forward guard %s", guard.Kind()))
	}
	if params != nil {
		v += FwdFillRun
	}
	return &Forward{Span: span, Params: params, Guard: guard, Body: body, variant: v}
}

// Iter is `collection >> forward`.
type Iter struct {
	Span       Span
	Collection Node
	Forward    *Forward
}

func (n *Iter) Kind() string   { return "Iter" }
func (n *Iter) NodeSpan() Span { return n.Span }
func (n *Iter) node()          {}

// Loop is unbounded iteration. Start is nil for `[...] >> forward`.
type Loop struct {
	Span    Span
	Start   *Infinite
	Forward *Forward
}

func (n *Loop) Kind() string   { return "Loop" }
func (n *Loop) NodeSpan() Span { return n.Span }
func (n *Loop) node()          {}

// Func is a `#` definition. Name is nil for anonymous functions.
type Func struct {
	Span        Span
	Name        *Name
	Forward     *Forward
	Final       bool
	RetTypeName string
	RetType     DataType
}

func (n *Func) Kind() string   { return "Func" }
func (n *Func) NodeSpan() Span { return n.Span }
func (n *Func) node()          {}
