// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/author-scout/pkg/types"
)

// Stage labels parse errors raised for keyword expressions.
const Stage = "keywords"

// maxFragment bounds the excerpt quoted in parse errors.
const maxFragment = 32

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokAnd
	tokOr
	tokLParen
	tokRParen
	tokEOF
)

func (k tokenKind) String() string {
	switch k {
	case tokAnd:
		return "AND"
	case tokOr:
		return "OR"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokEOF:
		return "end of input"
	default:
		return "term"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int // byte offset in the input
}

// tokenize splits s into words and parentheses. Only the exact words AND and
// OR are operators, so "ORACLE", "ANDROID" and "or" stay literals.
func tokenize(s string) []token {
	var toks []token
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i += size
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i += size
		default:
			start := i
			for i < len(s) {
				r, size = utf8.DecodeRuneInString(s[i:])
				if unicode.IsSpace(r) || r == '(' || r == ')' {
					break
				}
				i += size
			}
			word := s[start:i]
			kind := tokLiteral
			switch word {
			case "AND":
				kind = tokAnd
			case "OR":
				kind = tokOr
			}
			toks = append(toks, token{kind: kind, text: word, pos: start})
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(s)})
}

// Compile parses query into a Matcher. An empty query compiles to the
// match-all Matcher; any other query that yields no terms is an error.
func Compile(query string) (Matcher, error) {
	if query == "" {
		return Matcher{}, nil
	}
	toks := tokenize(query)
	if len(toks) == 1 {
		return Matcher{}, &types.ParseError{
			Stage:  Stage,
			Input:  query,
			Offset: -1,
			Reason: "query contains only whitespace",
		}
	}

	if isLegacy(toks) && strings.Contains(query, ",") {
		e, err := compileList(query)
		if err != nil {
			return Matcher{}, err
		}
		return Matcher{expr: e}, nil
	}

	p := &parser{input: query, toks: toks}
	e, err := p.parseExpr()
	if err != nil {
		return Matcher{}, err
	}
	if t := p.peek(); t.kind != tokEOF {
		if t.kind == tokRParen {
			return Matcher{}, p.errorAt(t, "unmatched ')'")
		}
		return Matcher{}, p.errorAt(t, fmt.Sprintf("expected AND or OR before %s", describe(t)))
	}
	return Matcher{expr: e}, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// fixed expressions.
func MustCompile(query string) Matcher {
	m, err := Compile(query)
	if err != nil {
		panic(err)
	}
	return m
}

// isLegacy reports whether toks hold only literal words.
func isLegacy(toks []token) bool {
	for _, t := range toks {
		if t.kind != tokLiteral && t.kind != tokEOF {
			return false
		}
	}
	return true
}

// compileList reads a comma-separated term list as the AND of its terms.
func compileList(query string) (Expr, error) {
	var e Expr
	for _, part := range strings.Split(query, ",") {
		phrase := strings.Join(strings.Fields(part), " ")
		if phrase == "" {
			continue
		}
		t := Term{Text: strings.ToLower(phrase)}
		if e == nil {
			e = t
		} else {
			e = And{Left: e, Right: t}
		}
	}
	if e == nil {
		return nil, &types.ParseError{
			Stage:    Stage,
			Input:    query,
			Fragment: excerpt(query),
			Offset:   0,
			Reason:   "term list contains no terms",
		}
	}
	return e, nil
}

// parser is a recursive-descent parser over the token stream:
//
//	expr    := andExpr ( OR andExpr )*
//	andExpr := primary ( AND primary )*
//	primary := '(' expr ')' | LITERAL+
type parser struct {
	input string
	toks  []token
	pos   int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.peek()
	switch t.kind {
	case tokLiteral:
		// Adjacent words form one phrase.
		var words []string
		for p.peek().kind == tokLiteral {
			words = append(words, p.next().text)
		}
		return Term{Text: strings.ToLower(strings.Join(words, " "))}, nil

	case tokLParen:
		open := p.next()
		if p.peek().kind == tokRParen {
			return nil, p.errorAt(open, "empty parentheses")
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		switch closing := p.peek(); closing.kind {
		case tokRParen:
			p.next()
			return e, nil
		case tokEOF:
			return nil, p.errorAt(open, "unmatched '('")
		default:
			return nil, p.errorAt(closing, fmt.Sprintf("expected AND, OR or ')' before %s", describe(closing)))
		}

	case tokRParen:
		return nil, p.errorAt(t, "unmatched ')'")

	case tokAnd, tokOr:
		return nil, p.errorAt(t, fmt.Sprintf("operator %s is missing its left operand", t.text))

	default:
		if p.pos > 0 {
			prev := p.toks[p.pos-1]
			return nil, p.errorAt(prev, fmt.Sprintf("expression ends after %s", describe(prev)))
		}
		return nil, p.errorAt(t, "unexpected end of input")
	}
}

func (p *parser) errorAt(t token, reason string) *types.ParseError {
	return &types.ParseError{
		Stage:    Stage,
		Input:    p.input,
		Fragment: excerpt(p.input[t.pos:]),
		Offset:   t.pos,
		Reason:   reason,
	}
}

func describe(t token) string {
	if t.kind == tokLiteral {
		return fmt.Sprintf("%q", t.text)
	}
	return t.kind.String()
}

func excerpt(s string) string {
	if len(s) <= maxFragment {
		return s
	}
	cut := maxFragment
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
