// Package ast defines the heterogeneous parse tree produced by internal/parser.
//
// A node is either a leaf string token, or an internal node tagged with a
// rule name and holding an ordered list of children. Tag names originate
// from grammar rule identifiers; anonymous rules (leading underscore) never
// produce a node of their own — their matches are flattened into the
// parent's child list by the parser.
package ast

// Node is the common interface implemented by Leaf and *Inner.
type Node interface {
	isNode()
	// Text renders the node's matched source text, recursively
	// concatenating leaves in source order. Used for statement display
	// text and expression printing.
	Text() string
}

// Leaf is a matched token string (from a regex terminal).
type Leaf string

func (Leaf) isNode()        {}
func (l Leaf) Text() string { return string(l) }

// Inner is a tagged internal node produced by a named rule.
type Inner struct {
	Tag      string
	Children []Node
}

func (*Inner) isNode() {}

func (n *Inner) Text() string {
	s := ""
	for i, c := range n.Children {
		t := c.Text()
		if i > 0 && s != "" && t != "" {
			s += " "
		}
		s += t
	}
	return s
}

// Find returns the first descendant (including n itself) whose tag matches,
// or nil. Depth-first, pre-order.
func Find(n Node, tag string) *Inner {
	inner, ok := n.(*Inner)
	if !ok {
		return nil
	}
	if inner.Tag == tag {
		return inner
	}
	for _, c := range inner.Children {
		if found := Find(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant (including n itself) whose tag matches,
// in document order.
func FindAll(n Node, tag string) []*Inner {
	var out []*Inner
	inner, ok := n.(*Inner)
	if !ok {
		return out
	}
	if inner.Tag == tag {
		out = append(out, inner)
	}
	for _, c := range inner.Children {
		out = append(out, FindAll(c, tag)...)
	}
	return out
}

// ContainsLeaf reports whether any leaf equal to s occurs anywhere in n's
// subtree (including n itself, if n is a Leaf).
func ContainsLeaf(n Node, s string) bool {
	switch v := n.(type) {
	case Leaf:
		return string(v) == s
	case *Inner:
		for _, c := range v.Children {
			if ContainsLeaf(c, s) {
				return true
			}
		}
	}
	return false
}
