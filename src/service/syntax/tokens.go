package syntax

import "codesage/src/model"

// Token is one lexical token of a unit's stream, carrying enough position
// to map shingle matches back to source spans.
type Token struct {
	Text      string
	StartByte uint
	EndByte   uint
	Line      int
}

// Tokens flattens a unit's node tree into its lexical token stream in
// source order. Duplicate detection works on one stream per source file,
// so the file-level unit's stream carries the tokens of every function
// declared in it. With normalize set, identifiers collapse to "ID" and
// literals to "LIT" so renamed copies still hash equal.
func Tokens(unit *model.FunctionUnit, normalize bool) []Token {
	if unit.Node == nil {
		return nil
	}

	var tokens []Token
	stack := []*model.GenericNode{unit.Node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.IsLeaf() {
			text := n.TokenText
			if normalize {
				switch n.TokenClass {
				case model.TokenIdent:
					text = "ID"
				case model.TokenLiteral:
					text = "LIT"
				}
			}
			tokens = append(tokens, Token{
				Text:      text,
				StartByte: n.Span.StartByte,
				EndByte:   n.Span.EndByte,
				Line:      n.Span.StartLine,
			})
			continue
		}

		// reverse push keeps source order on a LIFO stack
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return tokens
}
