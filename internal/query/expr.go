// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query compiles keyword expressions such as
// "(transformer AND attention) OR (GPT AND (LLM OR language))" into an
// expression tree and evaluates it against a corpus of text fields.
//
// Two input formats compile to the same tree:
//
//   - boolean: terms combined with the case-sensitive keywords AND and OR and
//     grouped with parentheses; AND binds tighter than OR;
//   - legacy: a comma-separated list of terms with no operators, read as the
//     AND of all terms ("transformer, attention").
//
// A term matches an item when it occurs in the item as a case-insensitive
// substring. The empty query matches every item.
package query

import "strings"

// Expr is a compiled keyword expression: one of Term, And or Or.
type Expr interface {
	// Mask evaluates the expression against every item of corpus. Items must
	// already be lowercased.
	Mask(corpus []string) []bool

	// String renders the expression fully parenthesized.
	String() string

	expr()
}

// Term matches items containing Text. Text is stored lowercased.
type Term struct {
	Text string
}

// And matches items matched by both operands.
type And struct {
	Left, Right Expr
}

// Or matches items matched by either operand.
type Or struct {
	Left, Right Expr
}

func (Term) expr() {}
func (And) expr()  {}
func (Or) expr()   {}

func (t Term) Mask(corpus []string) []bool {
	mask := make([]bool, len(corpus))
	for i, text := range corpus {
		mask[i] = strings.Contains(text, t.Text)
	}
	return mask
}

func (a And) Mask(corpus []string) []bool {
	mask := a.Left.Mask(corpus)
	right := a.Right.Mask(corpus)
	for i := range mask {
		mask[i] = mask[i] && right[i]
	}
	return mask
}

func (o Or) Mask(corpus []string) []bool {
	mask := o.Left.Mask(corpus)
	right := o.Right.Mask(corpus)
	for i := range mask {
		mask[i] = mask[i] || right[i]
	}
	return mask
}

func (t Term) String() string { return "\"" + t.Text + "\"" }
func (a And) String() string  { return "(" + a.Left.String() + " AND " + a.Right.String() + ")" }
func (o Or) String() string   { return "(" + o.Left.String() + " OR " + o.Right.String() + ")" }

// Matcher applies a compiled query to text. The zero Matcher, and the one
// compiled from an empty query, matches everything.
type Matcher struct {
	expr Expr
}

// Expr returns the compiled tree, or nil for the match-all query.
func (m Matcher) Expr() Expr { return m.expr }

// MatchAll reports whether the matcher applies no filter.
func (m Matcher) MatchAll() bool { return m.expr == nil }

// Mask returns one boolean per item of corpus.
func (m Matcher) Mask(corpus []string) []bool {
	if m.expr == nil {
		mask := make([]bool, len(corpus))
		for i := range mask {
			mask[i] = true
		}
		return mask
	}
	lowered := make([]string, len(corpus))
	for i, text := range corpus {
		lowered[i] = strings.ToLower(text)
	}
	return m.expr.Mask(lowered)
}

// Match reports whether a single text satisfies the query.
func (m Matcher) Match(text string) bool {
	return m.Mask([]string{text})[0]
}

func (m Matcher) String() string {
	if m.expr == nil {
		return "*"
	}
	return m.expr.String()
}

// Evaluate compiles query and evaluates it against corpus.
func Evaluate(query string, corpus []string) ([]bool, error) {
	m, err := Compile(query)
	if err != nil {
		return nil, err
	}
	return m.Mask(corpus), nil
}
