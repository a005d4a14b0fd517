// Package parser is the boundary to the upstream parsing layer. It owns the
// tree-sitter grammars and produces concrete syntax trees; everything past
// the returned root node is the analysis engine's business.
package parser

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"codesage/src/model"
)

// Registry holds one tree-sitter language per supported model.Language.
// Languages are immutable and safe to share; parsers are not, so Parse
// creates a short-lived parser per call and callers may parse concurrently.
type Registry struct {
	languages map[model.Language]*tree_sitter.Language
}

// NewRegistry creates a registry with all supported grammars loaded
func NewRegistry() *Registry {
	return &Registry{
		languages: map[model.Language]*tree_sitter.Language{
			model.LangGo:         tree_sitter.NewLanguage(tree_sitter_go.Language()),
			model.LangPython:     tree_sitter.NewLanguage(tree_sitter_python.Language()),
			model.LangJavaScript: tree_sitter.NewLanguage(tree_sitter_javascript.Language()),
			model.LangTypeScript: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
			model.LangJava:       tree_sitter.NewLanguage(tree_sitter_java.Language()),
			model.LangRust:       tree_sitter.NewLanguage(tree_sitter_rust.Language()),
			model.LangCPP:        tree_sitter.NewLanguage(tree_sitter_cpp.Language()),
			model.LangCSharp:     tree_sitter.NewLanguage(tree_sitter_csharp.Language()),
		},
	}
}

// Supports reports whether a grammar is registered for the language
func (r *Registry) Supports(lang model.Language) bool {
	_, ok := r.languages[lang]
	return ok
}

// Parse parses a source unit and returns its syntax tree. A tree containing
// ERROR nodes is rejected as a ParseError located at the first such node;
// the caller skips the unit with a warning instead of aborting the run.
// The returned tree must be closed by the caller once adapted.
func (r *Registry) Parse(unit *model.SourceUnit) (*tree_sitter.Tree, error) {
	lang, ok := r.languages[unit.Language]
	if !ok {
		return nil, &model.UnsupportedLanguageError{Path: unit.Path, Extension: string(unit.Language)}
	}

	p := tree_sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(lang); err != nil {
		return nil, &model.ParseError{Path: unit.Path, Line: 1, Column: 1, Message: err.Error()}
	}

	tree := p.Parse(unit.Source, nil)
	if tree == nil {
		return nil, &model.ParseError{Path: unit.Path, Line: 1, Column: 1, Message: "parser returned no tree"}
	}

	root := tree.RootNode()
	if root.HasError() {
		line, col, msg := firstError(root)
		tree.Close()
		return nil, &model.ParseError{Path: unit.Path, Line: line, Column: col, Message: msg}
	}

	return tree, nil
}

// firstError locates the first ERROR or missing node in a tree
func firstError(node *tree_sitter.Node) (line, col int, msg string) {
	if node.IsError() {
		pos := node.StartPosition()
		return int(pos.Row) + 1, int(pos.Column) + 1, "syntax error"
	}
	if node.IsMissing() {
		pos := node.StartPosition()
		return int(pos.Row) + 1, int(pos.Column) + 1, "missing " + node.Kind()
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsMissing() {
			return firstError(child)
		}
	}
	pos := node.StartPosition()
	return int(pos.Row) + 1, int(pos.Column) + 1, "syntax error"
}
