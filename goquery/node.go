package goquery

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kitchensage"
	"golang.org/x/net/html"
)

// Ensure Node implements kitchensage.Node at compile time.
var _ kitchensage.Node = (*Node)(nil)

// Node adapts a single-element goquery selection to kitchensage.Node.
type Node struct {
	sel *goquery.Selection
}

// NewNode wraps the first element of sel.
func NewNode(sel *goquery.Selection) *Node {
	return &Node{sel: sel.First()}
}

// Tag returns the element name, or "" for non-element nodes.
func (n *Node) Tag() string {
	node := n.sel.Get(0)
	if node == nil || node.Type != html.ElementNode {
		return ""
	}
	return node.Data
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// Text returns the combined text of the element and its descendants.
func (n *Node) Text() string {
	return n.sel.Text()
}

// HTML returns the inner markup of the element. Rendering failures yield "".
func (n *Node) HTML() string {
	s, err := n.sel.Html()
	if err != nil {
		return ""
	}
	return s
}

// Find returns the first descendant matching m.
func (n *Node) Find(m kitchensage.Match) (kitchensage.Node, bool) {
	found := n.sel.Find(Selector(m))
	if found.Length() == 0 {
		return nil, false
	}
	return NewNode(found), true
}

// FindAll returns all descendants matching m in document order.
func (n *Node) FindAll(m kitchensage.Match) []kitchensage.Node {
	found := n.sel.Find(Selector(m))
	nodes := make([]kitchensage.Node, 0, found.Length())
	found.Each(func(_ int, sel *goquery.Selection) {
		nodes = append(nodes, &Node{sel: sel})
	})
	return nodes
}

// Selector renders m as a CSS selector. Attributes are emitted in name
// order so equal matches produce equal selectors.
func Selector(m kitchensage.Match) string {
	var b strings.Builder
	if m.Tag == "" {
		b.WriteString("*")
	} else {
		b.WriteString(m.Tag)
	}

	names := make([]string, 0, len(m.Attrs))
	for name := range m.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		op := "="
		if name == "class" {
			op = "~="
		}
		b.WriteString("[")
		b.WriteString(name)
		b.WriteString(op)
		b.WriteString(quote(m.Attrs[name]))
		b.WriteString("]")
	}
	return b.String()
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
