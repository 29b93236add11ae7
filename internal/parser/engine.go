package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/iec-st/pdganalyzer/internal/ast"
	"github.com/iec-st/pdganalyzer/internal/grammar"
)

var wordRe = regexp.MustCompile(`^\w+`)

// engine is the recursive-descent interpreter for grammar.Expr values. One
// engine is used per top-level Parse call; it tracks the shortest
// remaining-text length seen across the whole attempt so a failed parse can
// be localized to a source line even though backtracking discards the
// positions of any individual failed branch.
type engine struct {
	comment    CommentSkipper
	restLength int // -1 until the first successful match
	log        zerolog.Logger
}

func newEngine(comment CommentSkipper, log zerolog.Logger) *engine {
	return &engine{comment: comment, restLength: -1, log: log}
}

func (e *engine) track(rest string) {
	n := len(rest)
	if e.restLength == -1 || n < e.restLength {
		e.restLength = n
	}
}

// skip strips leading whitespace, then leading comments (repeatedly, so
// runs of comments and blank lines between them are all consumed).
func skip(text string, comment CommentSkipper) string {
	t := strings.TrimLeftFunc(text, unicode.IsSpace)
	if comment == nil {
		return t
	}
	for {
		n := comment(t)
		if n <= 0 {
			return t
		}
		t = strings.TrimLeftFunc(t[n:], unicode.IsSpace)
	}
}

// matchRule evaluates a named or anonymous rule reference, wrapping its
// children in a tagged ast.Inner unless the rule is anonymous.
func (e *engine) matchRule(text string, r grammar.Rule, acc []ast.Node) ([]ast.Node, string, error) {
	name, anon := grammar.Name(r)
	inner := r()
	sub, rest, err := e.matchExpr(text, inner, nil)
	if err != nil {
		return nil, "", err
	}
	e.track(rest)
	if anon {
		acc = append(acc, sub...)
		return acc, rest, nil
	}
	acc = append(acc, &ast.Inner{Tag: name, Children: sub})
	return acc, rest, nil
}

// matchExpr evaluates any resolved grammar pattern against text, merging
// whatever it produces into acc. Terminals merge directly; sequences and
// choices accumulate into a fresh local list first, then merge that list as
// a unit (an anonymous rule's matches flatten the same way).
func (e *engine) matchExpr(text string, expr grammar.Expr, acc []ast.Node) ([]ast.Node, string, error) {
	switch v := expr.(type) {

	case grammar.Lit:
		s := string(v)
		if !strings.HasPrefix(text, s) {
			return nil, "", fail("expected " + s)
		}
		rest := skip(text[len(s):], e.comment)
		e.track(rest)
		return acc, rest, nil

	case grammar.KeywordLit:
		m := wordRe.FindString(text)
		if m == "" || m != string(v) {
			return nil, "", fail("expected keyword " + string(v))
		}
		rest := skip(text[len(m):], e.comment)
		e.track(rest)
		return acc, rest, nil

	case grammar.Regex:
		loc := v.Re.FindStringIndex(text)
		if loc == nil {
			return nil, "", fail("no match")
		}
		matched := text[loc[0]:loc[1]]
		rest := skip(text[loc[1]:], e.comment)
		e.track(rest)
		acc = append(acc, ast.Leaf(matched))
		return acc, rest, nil

	case grammar.Rule:
		return e.matchRule(text, v, acc)

	case grammar.SeqExpr:
		result := []ast.Node{}
		cur := text
		for _, item := range v {
			var err error
			switch {
			case item.N > 0:
				for i := 0; i < item.N; i++ {
					result, cur, err = e.matchExpr(cur, item.Pat, result)
					if err != nil {
						return nil, "", err
					}
				}
			case item.N == 0:
				newResult, newCur, err := e.matchExpr(cur, item.Pat, result)
				if err == nil {
					result, cur = newResult, newCur
				}
			default: // -1 zero-or-more, -2 one-or-more
				found := false
				for {
					newResult, newCur, err := e.matchExpr(cur, item.Pat, result)
					if err != nil {
						break
					}
					result, cur, found = newResult, newCur, true
				}
				if item.N == -2 && !found {
					return nil, "", fail("expected at least one match")
				}
			}
		}
		if len(result) > 0 {
			acc = append(acc, result...)
		}
		e.track(cur)
		return acc, cur, nil

	case grammar.ChoiceExpr:
		for _, alt := range v {
			result, rest, err := e.matchExpr(text, alt, nil)
			if err == nil {
				if len(result) > 0 {
					acc = append(acc, result...)
				}
				e.track(rest)
				return acc, rest, nil
			}
		}
		return nil, "", fail("no alternative matched")

	case grammar.AndExpr:
		if _, _, err := e.matchExpr(text, v.Inner, nil); err != nil {
			return nil, "", err
		}
		return acc, text, nil

	case grammar.NotExpr:
		if _, _, err := e.matchExpr(text, v.Inner, nil); err == nil {
			return nil, "", fail("negative lookahead matched")
		}
		return acc, text, nil

	default:
		return nil, "", fail("illegal grammar pattern")
	}
}
