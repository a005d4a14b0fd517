// Package syntax normalizes language-specific concrete syntax trees into
// the generic node model shared by all analyzers.
package syntax

import (
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"codesage/src/model"
)

// Result is the adapter output for one source unit
type Result struct {
	Root         *model.GenericNode
	Functions    []*model.FunctionUnit
	CommentLines int
	CodeLines    int
	Warnings     []model.Warning
}

// Adapter normalizes one language's syntax trees. Construction fails for
// languages without a mapping; everything else degrades per node via
// UnsupportedConstruct warnings, never aborting the unit.
type Adapter struct {
	lang model.Language
	m    *mapping
}

// NewAdapter creates an adapter for the given language tag
func NewAdapter(lang model.Language) (*Adapter, error) {
	m := mappingFor(lang)
	if m == nil {
		return nil, &model.UnsupportedLanguageError{Extension: string(lang)}
	}
	return &Adapter{lang: lang, m: m}, nil
}

// Adapt converts a concrete syntax tree into a GenericNode tree and
// extracts its function-like units. Top-level statements outside any
// function are aggregated into an implicit file-level unit.
func (a *Adapter) Adapt(unit *model.SourceUnit, root *tree_sitter.Node) *Result {
	w := &walker{unit: unit, m: a.m, lang: a.lang}

	rootNode := &model.GenericNode{Kind: model.KindBlock, Span: spanOf(root)}
	for i := uint(0); i < root.ChildCount(); i++ {
		w.convert(root.Child(i), &rootNode.Children)
	}

	fileUnit := &model.FunctionUnit{
		Name:      filepath.Base(unit.Path),
		Path:      unit.Path,
		Node:      rootNode,
		Span:      spanOf(root),
		BodyLines: unit.Lines,
		FileLevel: true,
	}

	return &Result{
		Root:         rootNode,
		Functions:    append([]*model.FunctionUnit{fileUnit}, w.functions...),
		CommentLines: w.commentLines,
		CodeLines:    codeLines(unit.Source, w.commentLines),
		Warnings:     w.warnings,
	}
}

var classToKind = map[nodeClass]model.NodeKind{
	classIf:       model.KindIf,
	classLoop:     model.KindLoop,
	classSwitch:   model.KindSwitch,
	classCase:     model.KindCase,
	classCatch:    model.KindCatch,
	classTernary:  model.KindTernary,
	classFunction: model.KindFunctionLike,
	classBlock:    model.KindBlock,
}

type walker struct {
	unit *model.SourceUnit
	m    *mapping
	lang model.Language

	functions    []*model.FunctionUnit
	warnings     []model.Warning
	commentLines int
	fnStack      []*model.FunctionUnit
}

func (w *walker) convert(n *tree_sitter.Node, out *[]*model.GenericNode) {
	kind := n.Kind()

	if commentKinds[kind] {
		sp := spanOf(n)
		w.commentLines += sp.EndLine - sp.StartLine + 1
		return
	}

	if n.ChildCount() == 0 {
		w.emitLeaf(n, out)
		return
	}

	if kind == w.m.callKind {
		w.noteCall(n)
	}

	class, known := w.m.kinds[kind]
	if !known {
		class = classTransparent
	}

	switch class {
	case classTransparent:
		for i := uint(0); i < n.ChildCount(); i++ {
			w.convert(n.Child(i), out)
		}

	case classIgnore:
		return

	case classUnsupported:
		sp := spanOf(n)
		w.warnings = append(w.warnings, model.Warning{
			Kind: "unsupported_construct",
			Path: w.unit.Path,
			Line: sp.StartLine,
			Message: (&model.UnsupportedConstructError{
				Language: w.lang, Kind: kind, Line: sp.StartLine,
			}).Error(),
		})
		*out = append(*out, &model.GenericNode{
			Kind: model.KindOther, Span: sp,
			TokenClass: model.TokenPunct, TokenText: kind,
		})

	case classBoolean:
		k := logicalOperator(n)
		if k == model.KindOther {
			// Not a short-circuit operator; keep operands in place.
			for i := uint(0); i < n.ChildCount(); i++ {
				w.convert(n.Child(i), out)
			}
			return
		}
		node := &model.GenericNode{Kind: k, Span: spanOf(n)}
		for i := uint(0); i < n.ChildCount(); i++ {
			w.convert(n.Child(i), &node.Children)
		}
		*out = append(*out, node)

	case classCase:
		k := model.KindCase
		if w.m.defaultArm != nil && w.m.defaultArm(n, w.unit.Source) {
			k = model.KindBlock
		}
		node := &model.GenericNode{Kind: k, Span: spanOf(n)}
		for i := uint(0); i < n.ChildCount(); i++ {
			w.convert(n.Child(i), &node.Children)
		}
		*out = append(*out, node)

	case classFunction:
		w.convertFunction(n, out)

	case classIf, classLoop, classCatch:
		node := &model.GenericNode{Kind: classToKind[class], Span: spanOf(n)}
		w.convertBranching(n, node, class == classIf)
		*out = append(*out, node)

	default:
		node := &model.GenericNode{Kind: classToKind[class], Span: spanOf(n)}
		for i := uint(0); i < n.ChildCount(); i++ {
			w.convert(n.Child(i), &node.Children)
		}
		*out = append(*out, node)
	}
}

// convertBranching converts an if/loop/catch node, wrapping braceless body
// and else statements in synthetic blocks so nesting depth is uniform
// across grammars that allow single-statement bodies.
func (w *walker) convertBranching(n *tree_sitter.Node, node *model.GenericNode, isIf bool) {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		field := n.FieldNameForChild(uint32(i))

		switch {
		case field == "consequence" || field == "body":
			var tmp []*model.GenericNode
			w.convert(child, &tmp)
			node.Children = append(node.Children, wrapBlock(tmp, spanOf(child))...)

		case isIf && field == "alternative":
			w.convertElse(child, node)

		default:
			w.convert(child, &node.Children)
		}
	}
}

// convertElse attaches an else branch. Go and Java put the branch node
// directly in the alternative field; the other grammars wrap it in an
// else_clause whose first child is the `else` keyword, which must not be
// mistaken for a braceless body.
func (w *walker) convertElse(n *tree_sitter.Node, node *model.GenericNode) {
	if n.Kind() == "else_clause" {
		for i := uint(0); i < n.ChildCount(); i++ {
			c := n.Child(i)
			if c.ChildCount() == 0 && !c.IsNamed() {
				w.emitLeaf(c, &node.Children)
				continue
			}
			w.attachElseBranch(c, node)
		}
		return
	}
	w.attachElseBranch(n, node)
}

func (w *walker) attachElseBranch(n *tree_sitter.Node, node *model.GenericNode) {
	var tmp []*model.GenericNode
	w.convert(n, &tmp)
	if len(tmp) == 0 {
		return
	}
	if len(tmp) == 1 && (tmp[0].Kind == model.KindIf || tmp[0].Kind == model.KindBlock) {
		// else-if chain or braced else
		node.Children = append(node.Children, tmp[0])
		return
	}
	node.Children = append(node.Children, wrapBlock(tmp, spanOf(n))...)
}

// wrapBlock ensures a converted body is a single Block node
func wrapBlock(nodes []*model.GenericNode, sp model.Span) []*model.GenericNode {
	if len(nodes) == 1 && nodes[0].Kind == model.KindBlock {
		return nodes
	}
	if len(nodes) == 0 {
		return []*model.GenericNode{{Kind: model.KindBlock, Span: sp}}
	}
	return []*model.GenericNode{{Kind: model.KindBlock, Span: sp, Children: nodes}}
}

func (w *walker) convertFunction(n *tree_sitter.Node, out *[]*model.GenericNode) {
	node := &model.GenericNode{Kind: model.KindFunctionLike, Span: spanOf(n)}
	sp := spanOf(n)

	fn := &model.FunctionUnit{
		Name:      functionName(n, w.unit.Source),
		Path:      w.unit.Path,
		Node:      node,
		Span:      sp,
		Params:    functionParams(n),
		BodyLines: sp.EndLine - sp.StartLine + 1,
	}

	// record in encounter order, outer before nested
	w.functions = append(w.functions, fn)

	w.fnStack = append(w.fnStack, fn)
	for i := uint(0); i < n.ChildCount(); i++ {
		w.convert(n.Child(i), &node.Children)
	}
	w.fnStack = w.fnStack[:len(w.fnStack)-1]

	*out = append(*out, node)
}

// noteCall counts call sites that target the nearest enclosing function's
// own name; each site adds a flat +1 to cognitive complexity.
func (w *walker) noteCall(n *tree_sitter.Node) {
	if len(w.fnStack) == 0 {
		return
	}
	callee := n.ChildByFieldName(w.m.calleeField)
	if callee == nil {
		return
	}
	name := nodeText(callee, w.unit.Source)
	if idx := strings.LastIndexAny(name, ".:"); idx >= 0 {
		name = name[idx+1:]
	}
	enclosing := w.fnStack[len(w.fnStack)-1]
	if name != "" && name == enclosing.Name {
		enclosing.RecursiveCalls++
	}
}

func (w *walker) emitLeaf(n *tree_sitter.Node, out *[]*model.GenericNode) {
	kind := n.Kind()
	class := model.TokenPunct
	text := kind // anonymous leaves: kind is the literal token

	if n.IsNamed() {
		text = nodeText(n, w.unit.Source)
		switch {
		case identifierKinds[kind]:
			class = model.TokenIdent
		case literalKinds[kind]:
			class = model.TokenLiteral
		}
	} else if literalKinds[kind] {
		// keyword literals: true, false, nil, null, ...
		class = model.TokenLiteral
	}

	*out = append(*out, &model.GenericNode{
		Kind: model.KindOther, Span: spanOf(n),
		TokenClass: class, TokenText: text,
	})
}

func spanOf(n *tree_sitter.Node) model.Span {
	return model.Span{
		StartByte: n.StartByte(),
		EndByte:   n.EndByte(),
		StartLine: int(n.StartPosition().Row) + 1,
		EndLine:   int(n.EndPosition().Row) + 1,
	}
}

// functionName extracts the declared name, walking declarator chains for
// grammars (C++) that bury it; anonymous function-likes get a placeholder.
func functionName(n *tree_sitter.Node, src []byte) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return nodeText(name, src)
	}
	if d := n.ChildByFieldName("declarator"); d != nil {
		if name := firstIdentifier(d, src); name != "" {
			return name
		}
	}
	return "(anonymous)"
}

func firstIdentifier(n *tree_sitter.Node, src []byte) string {
	if n.ChildCount() == 0 {
		if identifierKinds[n.Kind()] {
			return nodeText(n, src)
		}
		return ""
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if name := firstIdentifier(n.Child(i), src); name != "" {
			return name
		}
	}
	return ""
}

// functionParams counts declared parameters. Go groups several names under
// one declaration, so grouped names are counted individually.
func functionParams(n *tree_sitter.Node) int {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		if d := n.ChildByFieldName("declarator"); d != nil {
			params = d.ChildByFieldName("parameters")
		}
	}
	if params == nil {
		if n.ChildByFieldName("parameter") != nil {
			return 1
		}
		return 0
	}

	count := 0
	for i := uint(0); i < params.ChildCount(); i++ {
		child := params.Child(i)
		if !child.IsNamed() || commentKinds[child.Kind()] {
			continue
		}
		switch child.Kind() {
		case "parameter_declaration", "variadic_parameter_declaration":
			names := 0
			for j := uint(0); j < child.ChildCount(); j++ {
				if child.FieldNameForChild(uint32(j)) == "name" {
					names++
				}
			}
			if names == 0 {
				names = 1
			}
			count += names
		default:
			count++
		}
	}
	return count
}

// codeLines counts non-blank lines minus comment lines, floored at zero
func codeLines(src []byte, commentLines int) int {
	nonBlank := 0
	blank := true
	for _, b := range src {
		if b == '\n' {
			if !blank {
				nonBlank++
			}
			blank = true
			continue
		}
		if b != ' ' && b != '\t' && b != '\r' {
			blank = false
		}
	}
	if !blank {
		nonBlank++
	}
	if n := nonBlank - commentLines; n > 0 {
		return n
	}
	return 0
}
