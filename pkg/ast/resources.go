package ast

type LocalPath struct {
	Span Span
	Path string
}

func (n *LocalPath) Kind() string   { return "LocalPath" }
func (n *LocalPath) NodeSpan() Span { return n.Span }
func (n *LocalPath) node()          {}

type RemotePath struct {
	Span Span
	Path string
}

func (n *RemotePath) Kind() string   { return "RemotePath" }
func (n *RemotePath) NodeSpan() Span { return n.Span }
func (n *RemotePath) node()          {}

type WebURL struct {
	Span Span
	URL  string
}

func (n *WebURL) Kind() string   { return "WebURL" }
func (n *WebURL) NodeSpan() Span { return n.Span }
func (n *WebURL) node()          {}

type DBURL struct {
	Span Span
	URL  string
}

func (n *DBURL) Kind() string   { return "DBURL" }
func (n *DBURL) NodeSpan() Span { return n.Span }
func (n *DBURL) node()          {}

// ReadFile is `name <- @("path")`.
type ReadFile struct {
	Span   Span
	Var    *Name
	Source Node
}

func (n *ReadFile) Kind() string   { return "ReadFile" }
func (n *ReadFile) NodeSpan() Span { return n.Span }
func (n *ReadFile) node()          {}

type Print struct {
	Span  Span
	Exprs []Node
}

func (n *Print) Kind() string   { return "Print" }
func (n *Print) NodeSpan() Span { return n.Span }
func (n *Print) node()          {}

type ExtPack struct {
	Span     Span
	Packages []string
}

func (n *ExtPack) Kind() string   { return "ExtPack" }
func (n *ExtPack) NodeSpan() Span { return n.Span }
func (n *ExtPack) node()          {}

type ResourceBinding struct {
	Span  Span
	Name  *Name
	Value Node
}

func (n *ResourceBinding) Kind() string   { return "ResourceBinding" }
func (n *ResourceBinding) NodeSpan() Span { return n.Span }
func (n *ResourceBinding) node()          {}

// ResourceBlock is `@(name <- res, ...)`, optionally chained into Then with `->`.
type ResourceBlock struct {
	Span    Span
	Entries []*ResourceBinding
	Then    *Block
}

func (n *ResourceBlock) Kind() string   { return "ResourceBlock" }
func (n *ResourceBlock) NodeSpan() Span { return n.Span }
func (n *ResourceBlock) node()          {}
