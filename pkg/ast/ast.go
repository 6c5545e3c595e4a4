// Package ast defines the Styio syntax tree node types.
package ast

// Span represents a source location range.
type Span struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	StartCol  int    `json:"startCol"`
	EndLine   int    `json:"endLine"`
	EndCol    int    `json:"endCol"`
}

// Node is the interface implemented by all AST nodes. The set of variants is closed.
type Node interface {
	Kind() string
	NodeSpan() Span
	node() // sealed marker
}

// BinaryOp represents an arithmetic operator.
type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpMod BinaryOp = "%"
	OpPow BinaryOp = "**"

	OpAddAssign BinaryOp = "+="
	OpSubAssign BinaryOp = "-="
	OpMulAssign BinaryOp = "*="
	OpDivAssign BinaryOp = "/="
	OpModAssign BinaryOp = "%="
	OpPowAssign BinaryOp = "**="
)

// InPlace reports whether op is a self-assigning variant.
func (op BinaryOp) InPlace() bool {
	n := len(op)
	return n > 1 && op[n-1] == '='
}

// Base strips the in-place suffix.
func (op BinaryOp) Base() BinaryOp {
	if op.InPlace() {
		return op[:len(op)-1]
	}
	return op
}

// Assign returns the in-place variant of op.
func (op BinaryOp) Assign() BinaryOp {
	if op.InPlace() {
		return op
	}
	return op + "="
}

// CompareOp represents a comparison operator.
type CompareOp string

const (
	CmpEq   CompareOp = "=="
	CmpNeq  CompareOp = "!="
	CmpGt   CompareOp = ">"
	CmpGtEq CompareOp = ">="
	CmpLt   CompareOp = "<"
	CmpLtEq CompareOp = "<="
)

// LogicOp represents the connective of a condition node.
type LogicOp string

const (
	LogicAnd LogicOp = "and"
	LogicOr  LogicOp = "or"
	LogicNot LogicOp = "not"
	LogicRaw LogicOp = "raw"
)

// --- Scalars ---

type BoolLit struct {
	Span  Span
	Value bool
}

func (n *BoolLit) Kind() string   { return "Bool" }
func (n *BoolLit) NodeSpan() Span { return n.Span }
func (n *BoolLit) node()          {}

// IntLit keeps the decimal text; Type stays Undefined until inference or a declared type resolves it.
type IntLit struct {
	Span Span
	Text string
	Type DataType
}

func (n *IntLit) Kind() string   { return "Int" }
func (n *IntLit) NodeSpan() Span { return n.Span }
func (n *IntLit) node()          {}

type FloatLit struct {
	Span Span
	Text string
	Type DataType
}

func (n *FloatLit) Kind() string   { return "Float" }
func (n *FloatLit) NodeSpan() Span { return n.Span }
func (n *FloatLit) node()          {}

type CharLit struct {
	Span  Span
	Value string
}

func (n *CharLit) Kind() string   { return "Char" }
func (n *CharLit) NodeSpan() Span { return n.Span }
func (n *CharLit) node()          {}

type StringLit struct {
	Span  Span
	Value string
}

func (n *StringLit) Kind() string   { return "String" }
func (n *StringLit) NodeSpan() Span { return n.Span }
func (n *StringLit) node()          {}

// FmtString is an interpolated string. len(Fragments) == len(Exprs)+1 and
// Exprs[i] sits between Fragments[i] and Fragments[i+1].
type FmtString struct {
	Span      Span
	Fragments []string
	Exprs     []Node
}

func (n *FmtString) Kind() string   { return "FmtString" }
func (n *FmtString) NodeSpan() Span { return n.Span }
func (n *FmtString) node()          {}

// --- Names ---

type Name struct {
	Span Span
	Name string
}

func (n *Name) Kind() string   { return "Name" }
func (n *Name) NodeSpan() Span { return n.Span }
func (n *Name) node()          {}

// Param is a variable with an optional declared type. It appears on the left of
// bindings and inside parameter tuples.
type Param struct {
	Span     Span
	Name     string
	TypeName string
	Type     DataType
}

func (n *Param) Kind() string   { return "Param" }
func (n *Param) NodeSpan() Span { return n.Span }
func (n *Param) node()          {}

// Declared reports whether the source gave the variable an explicit type.
func (n *Param) Declared() bool { return n.TypeName != "" }

type VarTuple struct {
	Span   Span
	Params []*Param
}

func (n *VarTuple) Kind() string   { return "VarTuple" }
func (n *VarTuple) NodeSpan() Span { return n.Span }
func (n *VarTuple) node()          {}

// --- Bindings ---

type FlexBind struct {
	Span  Span
	Var   *Param
	Value Node
}

func (n *FlexBind) Kind() string   { return "FlexBind" }
func (n *FlexBind) NodeSpan() Span { return n.Span }
func (n *FlexBind) node()          {}

type FinalBind struct {
	Span  Span
	Var   *Param
	Value Node
}

func (n *FinalBind) Kind() string   { return "FinalBind" }
func (n *FinalBind) NodeSpan() Span { return n.Span }
func (n *FinalBind) node()          {}

// --- Collections ---

// List, Tuple and Set share the consistency flag: Consistent is true only when
// every element carries the same defined type, which is then stored in ElemType.
type List struct {
	Span       Span
	Elements   []Node
	Consistent bool
	ElemType   DataType
}

func (n *List) Kind() string   { return "List" }
func (n *List) NodeSpan() Span { return n.Span }
func (n *List) node()          {}

type Tuple struct {
	Span       Span
	Elements   []Node
	Consistent bool
	ElemType   DataType
}

func (n *Tuple) Kind() string   { return "Tuple" }
func (n *Tuple) NodeSpan() Span { return n.Span }
func (n *Tuple) node()          {}

type Set struct {
	Span       Span
	Elements   []Node
	Consistent bool
	ElemType   DataType
}

func (n *Set) Kind() string   { return "Set" }
func (n *Set) NodeSpan() Span { return n.Span }
func (n *Set) node()          {}

// Range bounds are integer literals resolved at parse time.
type Range struct {
	Span  Span
	Start *IntLit
	End   *IntLit
	Step  *IntLit
}

func (n *Range) Kind() string   { return "Range" }
func (n *Range) NodeSpan() Span { return n.Span }
func (n *Range) node()          {}

// Infinite is an unbounded sequence. Start and Increment are both nil for `[...]`.
type Infinite struct {
	Span      Span
	Start     Node
	Increment Node
}

func (n *Infinite) Kind() string   { return "Infinite" }
func (n *Infinite) NodeSpan() Span { return n.Span }
func (n *Infinite) node()          {}

// Explicit reports whether the sequence carries a start and increment.
func (n *Infinite) Explicit() bool { return n.Start != nil }

// --- Operators ---

type BinOp struct {
	Span  Span
	Op    BinaryOp
	Left  Node
	Right Node
	Type  DataType
}

func (n *BinOp) Kind() string   { return "BinOp" }
func (n *BinOp) NodeSpan() Span { return n.Span }
func (n *BinOp) node()          {}

type BinComp struct {
	Span  Span
	Op    CompareOp
	Left  Node
	Right Node
}

func (n *BinComp) Kind() string   { return "BinComp" }
func (n *BinComp) NodeSpan() Span { return n.Span }
func (n *BinComp) node()          {}

// Cond is a logical condition. Raw and Not only use Left.
type Cond struct {
	Span  Span
	Logic LogicOp
	Left  Node
	Right Node
}

func (n *Cond) Kind() string   { return "Cond" }
func (n *Cond) NodeSpan() Span { return n.Span }
func (n *Cond) node()          {}

// --- Calls and methods ---

type Call struct {
	Span Span
	Name *Name
	Args []Node
}

func (n *Call) Kind() string   { return "Call" }
func (n *Call) NodeSpan() Span { return n.Span }
func (n *Call) node()          {}

type SizeOf struct {
	Span  Span
	Value Node
}

func (n *SizeOf) Kind() string   { return "SizeOf" }
func (n *SizeOf) NodeSpan() Span { return n.Span }
func (n *SizeOf) node()          {}

// ListOpKind names a list method.
type ListOpKind string

const (
	ListReverse       ListOpKind = "reverse"
	ListGetIndex      ListOpKind = "get_index"
	ListGetKey        ListOpKind = "get_key"
	ListIndexOf       ListOpKind = "index_of"
	ListIndicesOf     ListOpKind = "indices_of"
	ListAppend        ListOpKind = "append"
	ListInsert        ListOpKind = "insert"
	ListRemoveAt      ListOpKind = "remove_at"
	ListRemoveIndices ListOpKind = "remove_indices"
	ListRemoveValue   ListOpKind = "remove_value"
	ListRemoveValues  ListOpKind = "remove_values"
)

// ListOp applies a list method to List. Index is set for positional kinds,
// Value for single-value kinds and Values for the many-values kinds.
type ListOp struct {
	Span   Span
	Op     ListOpKind
	List   Node
	Index  Node
	Value  Node
	Values []Node
}

func (n *ListOp) Kind() string   { return "ListOp" }
func (n *ListOp) NodeSpan() Span { return n.Span }
func (n *ListOp) node()          {}

// --- Flow statements ---

type Pass struct {
	Span Span
}

func (n *Pass) Kind() string   { return "Pass" }
func (n *Pass) NodeSpan() Span { return n.Span }
func (n *Pass) node()          {}

type Break struct {
	Span Span
}

func (n *Break) Kind() string   { return "Break" }
func (n *Break) NodeSpan() Span { return n.Span }
func (n *Break) node()          {}

type Return struct {
	Span  Span
	Value Node
}

func (n *Return) Kind() string   { return "Return" }
func (n *Return) NodeSpan() Span { return n.Span }
func (n *Return) node()          {}

// End marks the end of input. Parsers return it but never store it in a block.
type End struct {
	Span Span
}

func (n *End) Kind() string   { return "End" }
func (n *End) NodeSpan() Span { return n.Span }
func (n *End) node()          {}

// --- Blocks ---

type Block struct {
	Span  Span
	Stmts []Node
}

func (n *Block) Kind() string   { return "Block" }
func (n *Block) NodeSpan() Span { return n.Span }
func (n *Block) node()          {}

// Program is the top-level main block.
type Program struct {
	Span  Span
	Stmts []Node
}

func (n *Program) Kind() string   { return "Program" }
func (n *Program) NodeSpan() Span { return n.Span }
func (n *Program) node()          {}
