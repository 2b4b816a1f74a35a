package kitchensage

// Node is an element of a parsed markup document. It is the only capability
// the recipe extractors need from a markup library.
type Node interface {
	// Tag returns the element name, e.g. "div".
	Tag() string

	// Attr returns the value of the named attribute and whether it is present.
	Attr(name string) (string, bool)

	// Text returns the combined text of the element and its descendants.
	Text() string

	// HTML returns the inner markup of the element.
	HTML() string

	// Find returns the first descendant matching m, in document order.
	Find(m Match) (Node, bool)

	// FindAll returns all descendants matching m, in document order.
	FindAll(m Match) []Node
}

// Match selects descendant elements by tag and attributes.
//
// An empty Tag matches any element. The "class" attribute matches when the
// value is one of the element's whitespace-separated classes; all other
// attributes must match exactly.
type Match struct {
	Tag   string
	Attrs map[string]string
}

// Tag returns a Match for elements with the given name.
func Tag(name string) Match {
	return Match{Tag: name}
}

// WithClass returns a copy of m that also requires the given class.
func (m Match) WithClass(class string) Match {
	return m.WithAttr("class", class)
}

// WithAttr returns a copy of m that also requires the attribute value.
func (m Match) WithAttr(name, value string) Match {
	attrs := make(map[string]string, len(m.Attrs)+1)
	for k, v := range m.Attrs {
		attrs[k] = v
	}
	attrs[name] = value
	return Match{Tag: m.Tag, Attrs: attrs}
}
