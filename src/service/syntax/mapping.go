package syntax

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"codesage/src/model"
)

// nodeClass is the adapter-internal classification of a grammar node kind.
// It is resolved to a model.NodeKind during adaptation; boolean operators
// and default switch arms need a second look at the node itself.
type nodeClass uint8

const (
	// classTransparent drops the node and hoists its children; the default
	// for grammar kinds with no complexity relevance.
	classTransparent nodeClass = iota
	classIf
	classLoop
	classSwitch
	classCase
	classCatch
	classTernary
	classBoolean
	classFunction
	classBlock
	classIgnore
	classUnsupported
)

// mapping is the per-language dispatch table: grammar node kinds onto the
// shared taxonomy. One table per supported language, selected by language
// tag at adapter construction; plain data, no inheritance.
type mapping struct {
	kinds map[string]nodeClass

	// callKind/calleeField locate call expressions for recursion detection.
	callKind    string
	calleeField string

	// defaultArm reports whether a classCase node is the default arm of its
	// switch; default arms are excluded from cyclomatic counts.
	defaultArm func(n *tree_sitter.Node, src []byte) bool
}

// identifierKinds and literalKinds classify leaves for the duplication
// token stream. Shared across languages; kinds are distinct enough that a
// union set is unambiguous.
var identifierKinds = map[string]bool{
	"identifier":                            true,
	"field_identifier":                      true,
	"property_identifier":                   true,
	"type_identifier":                       true,
	"package_identifier":                    true,
	"statement_identifier":                  true,
	"shorthand_property_identifier":         true,
	"shorthand_property_identifier_pattern": true,
	"label_name":                            true,
}

var literalKinds = map[string]bool{
	// go
	"int_literal": true, "float_literal": true, "imaginary_literal": true,
	"rune_literal": true, "interpreted_string_literal": true,
	"raw_string_literal": true, "nil": true, "iota": true,
	// python
	"integer": true, "float": true, "string_content": true,
	"none": true, "true": true, "false": true,
	// javascript / typescript
	"number": true, "string_fragment": true, "regex_pattern": true,
	"null": true, "undefined": true,
	// java
	"decimal_integer_literal": true, "hex_integer_literal": true,
	"octal_integer_literal": true, "binary_integer_literal": true,
	"decimal_floating_point_literal": true, "string_literal": true,
	"character_literal": true, "null_literal": true,
	// rust
	"integer_literal": true, "char_literal": true, "boolean_literal": true,
	// c++
	"number_literal": true, "nullptr": true,
	// c#
	"real_literal": true, "verbatim_string_literal": true,
	"string_literal_content": true,
}

var commentKinds = map[string]bool{
	"comment":       true,
	"line_comment":  true,
	"block_comment": true,
	"doc_comment":   true,
}

// mappingFor returns the dispatch table for a language, or nil when the
// language has no mapping.
func mappingFor(lang model.Language) *mapping {
	switch lang {
	case model.LangGo:
		return goMapping
	case model.LangPython:
		return pythonMapping
	case model.LangJavaScript, model.LangTypeScript:
		return javascriptMapping
	case model.LangJava:
		return javaMapping
	case model.LangRust:
		return rustMapping
	case model.LangCPP:
		return cppMapping
	case model.LangCSharp:
		return csharpMapping
	default:
		return nil
	}
}

var goMapping = &mapping{
	kinds: map[string]nodeClass{
		"if_statement":                classIf,
		"for_statement":               classLoop,
		"expression_switch_statement": classSwitch,
		"type_switch_statement":       classSwitch,
		"select_statement":            classSwitch,
		"expression_case":             classCase,
		"type_case":                   classCase,
		"communication_case":          classCase,
		"default_case":                classBlock,
		"binary_expression":           classBoolean,
		"function_declaration":        classFunction,
		"method_declaration":          classFunction,
		"func_literal":                classFunction,
		"block":                       classBlock,
		"goto_statement":              classUnsupported,
	},
	callKind:    "call_expression",
	calleeField: "function",
}

var pythonMapping = &mapping{
	kinds: map[string]nodeClass{
		"if_statement":           classIf,
		"elif_clause":            classIf,
		"for_statement":          classLoop,
		"while_statement":        classLoop,
		"match_statement":        classSwitch,
		"case_clause":            classCase,
		"except_clause":          classCatch,
		"boolean_operator":       classBoolean,
		"conditional_expression": classTernary,
		"function_definition":    classFunction,
		"lambda":                 classFunction,
		"block":                  classBlock,
	},
	callKind:    "call",
	calleeField: "function",
	// `case _:` is Python's default arm
	defaultArm: func(n *tree_sitter.Node, src []byte) bool {
		for i := uint(0); i < n.NamedChildCount(); i++ {
			c := n.NamedChild(i)
			if c.Kind() == "case_pattern" {
				return nodeText(c, src) == "_"
			}
		}
		return false
	},
}

var javascriptMapping = &mapping{
	kinds: map[string]nodeClass{
		"if_statement":                   classIf,
		"for_statement":                  classLoop,
		"for_in_statement":               classLoop,
		"while_statement":                classLoop,
		"do_statement":                   classLoop,
		"switch_statement":               classSwitch,
		"switch_case":                    classCase,
		"switch_default":                 classBlock,
		"catch_clause":                   classCatch,
		"binary_expression":              classBoolean,
		"ternary_expression":             classTernary,
		"function_declaration":           classFunction,
		"function_expression":            classFunction,
		"generator_function_declaration": classFunction,
		"generator_function":             classFunction,
		"arrow_function":                 classFunction,
		"method_definition":              classFunction,
		"statement_block":                classBlock,
	},
	callKind:    "call_expression",
	calleeField: "function",
}

var javaMapping = &mapping{
	kinds: map[string]nodeClass{
		"if_statement":            classIf,
		"for_statement":           classLoop,
		"enhanced_for_statement":  classLoop,
		"while_statement":         classLoop,
		"do_statement":            classLoop,
		"switch_expression":       classSwitch,
		"switch_label":            classCase,
		"catch_clause":            classCatch,
		"binary_expression":       classBoolean,
		"ternary_expression":      classTernary,
		"method_declaration":      classFunction,
		"constructor_declaration": classFunction,
		"lambda_expression":       classFunction,
		"block":                   classBlock,
	},
	callKind:    "method_invocation",
	calleeField: "name",
	defaultArm: func(n *tree_sitter.Node, src []byte) bool {
		return n.ChildCount() > 0 && n.Child(0).Kind() == "default"
	},
}

var rustMapping = &mapping{
	kinds: map[string]nodeClass{
		"if_expression":      classIf,
		"for_expression":     classLoop,
		"while_expression":   classLoop,
		"loop_expression":    classLoop,
		"match_expression":   classSwitch,
		"match_arm":          classCase,
		"binary_expression":  classBoolean,
		"function_item":      classFunction,
		"closure_expression": classFunction,
		"block":              classBlock,
	},
	callKind:    "call_expression",
	calleeField: "function",
	// `_ => ...` is the catch-all arm
	defaultArm: func(n *tree_sitter.Node, src []byte) bool {
		if pat := n.ChildByFieldName("pattern"); pat != nil {
			return nodeText(pat, src) == "_"
		}
		return false
	},
}

var cppMapping = &mapping{
	kinds: map[string]nodeClass{
		"if_statement":           classIf,
		"for_statement":          classLoop,
		"for_range_loop":         classLoop,
		"while_statement":        classLoop,
		"do_statement":           classLoop,
		"switch_statement":       classSwitch,
		"case_statement":         classCase,
		"catch_clause":           classCatch,
		"binary_expression":      classBoolean,
		"conditional_expression": classTernary,
		"function_definition":    classFunction,
		"lambda_expression":      classFunction,
		"compound_statement":     classBlock,
		"goto_statement":         classUnsupported,
	},
	callKind:    "call_expression",
	calleeField: "function",
	defaultArm: func(n *tree_sitter.Node, src []byte) bool {
		return n.ChildCount() > 0 && n.Child(0).Kind() == "default"
	},
}

var csharpMapping = &mapping{
	kinds: map[string]nodeClass{
		"if_statement":                classIf,
		"for_statement":               classLoop,
		"foreach_statement":           classLoop,
		"while_statement":             classLoop,
		"do_statement":                classLoop,
		"switch_statement":            classSwitch,
		"switch_expression":           classSwitch,
		"case_switch_label":           classCase,
		"switch_expression_arm":       classCase,
		"default_switch_label":        classBlock,
		"catch_clause":                classCatch,
		"binary_expression":           classBoolean,
		"conditional_expression":      classTernary,
		"method_declaration":          classFunction,
		"constructor_declaration":     classFunction,
		"local_function_statement":    classFunction,
		"lambda_expression":           classFunction,
		"anonymous_method_expression": classFunction,
		"block":                       classBlock,
		"goto_statement":              classUnsupported,
	},
	callKind:    "invocation_expression",
	calleeField: "function",
	defaultArm: func(n *tree_sitter.Node, src []byte) bool {
		if n.Kind() != "switch_expression_arm" {
			return false
		}
		return n.ChildCount() > 0 && n.Child(0).Kind() == "discard_pattern"
	},
}

// logicalOperator resolves a classBoolean node to a logical kind, or
// KindOther when the operator is not short-circuit boolean.
func logicalOperator(n *tree_sitter.Node) model.NodeKind {
	op := n.ChildByFieldName("operator")
	if op == nil {
		return model.KindOther
	}
	switch op.Kind() {
	case "&&", "and":
		return model.KindLogicalAnd
	case "||", "or", "??":
		return model.KindLogicalOr
	default:
		return model.KindOther
	}
}

func nodeText(n *tree_sitter.Node, src []byte) string {
	start, end := n.StartByte(), n.EndByte()
	if start > end || end > uint(len(src)) {
		return ""
	}
	return string(src[start:end])
}
