package model

// Language identifies a supported source language
type Language string

const (
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangJava       Language = "java"
	LangRust       Language = "rust"
	LangCPP        Language = "cpp"
	LangCSharp     Language = "csharp"
)

// SourceUnit is one analyzed file. It is created once per file at the start
// of a run and never mutated afterwards.
type SourceUnit struct {
	Path     string
	Language Language
	Source   []byte
	Lines    int
}

// Span is a byte and line range inside a SourceUnit. Lines are 1-based.
type Span struct {
	StartByte uint `json:"start_byte"`
	EndByte   uint `json:"end_byte"`
	StartLine int  `json:"start_line"`
	EndLine   int  `json:"end_line"`
}

// NodeKind is the shared taxonomy all language grammars are normalized into
type NodeKind uint8

const (
	KindOther NodeKind = iota
	KindIf
	KindLoop
	KindSwitch
	KindCase
	KindCatch
	KindLogicalAnd
	KindLogicalOr
	KindTernary
	KindFunctionLike
	KindBlock
)

var kindNames = [...]string{
	"other", "if", "loop", "switch", "case", "catch",
	"logical_and", "logical_or", "ternary", "function", "block",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "other"
}

// TokenClass tags a leaf node for identifier/literal normalization
type TokenClass uint8

const (
	TokenNone TokenClass = iota
	TokenIdent
	TokenLiteral
	TokenPunct
)

// GenericNode is a node in the normalized tree. The tree is strictly owned
// by its root: no back-references, no sharing between trees.
type GenericNode struct {
	Kind     NodeKind
	Span     Span
	Children []*GenericNode

	// Leaf token fields, set only on leaves that contribute to the
	// duplication token stream.
	TokenClass TokenClass
	TokenText  string
}

// IsLeaf reports whether the node has no children
func (n *GenericNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// FunctionUnit is a function-like node plus derived metadata. The implicit
// file-level unit (top-level statements outside any function) has
// FileLevel set and spans the whole file.
type FunctionUnit struct {
	Name           string
	Path           string
	Node           *GenericNode
	Span           Span
	Params         int
	BodyLines      int
	RecursiveCalls int
	FileLevel      bool
}

// EntityType returns the entity label used in issues and reports
func (f *FunctionUnit) EntityType() string {
	if f.FileLevel {
		return "file"
	}
	return "function"
}
