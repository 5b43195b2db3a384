// Package wxr reads WordPress eXtended RSS documents as a tag-name
// addressable tree.
//
// Lookups match literal tag names, prefix included ("wp:post_id" is a plain
// string, not a namespace-qualified name). Many real-world WXR files omit or
// mangle the namespace declarations, so a namespace-aware API would drop
// exactly the elements this package needs.
package wxr

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// ErrMalformedDocument reports XML that could not be parsed at all.
var ErrMalformedDocument = errors.New("wxr: malformed document")

// Document wraps a parsed WXR tree.
type Document struct {
	root *Node
}

// Node wraps one element of the tree.
type Node struct {
	el *etree.Element
}

// Parse reads a WXR document string. Structural XML errors are the only
// failure mode; an empty but well-formed document parses fine.
func Parse(raw string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}
	return &Document{root: &Node{el: root}}, nil
}

// Root returns the document's root element.
func (d *Document) Root() *Node { return d.root }

// Text returns the text of the first descendant matching name, or "".
func (d *Document) Text(name string) string { return d.root.Text(name) }

// Find returns the first descendant matching name, or nil.
func (d *Document) Find(name string) *Node { return d.root.Find(name) }

// FindAll returns every descendant matching name, in document order.
func (d *Document) FindAll(name string) []*Node { return d.root.FindAll(name) }

// Text returns the text of the first descendant matching name, or "".
func (n *Node) Text(name string) string {
	if found := n.Find(name); found != nil {
		return found.Value()
	}
	return ""
}

// Value returns the node's own character data, CDATA included.
func (n *Node) Value() string {
	if n == nil || n.el == nil {
		return ""
	}
	return n.el.Text()
}

// Attr returns the named attribute value, or "".
func (n *Node) Attr(name string) string {
	if n == nil || n.el == nil {
		return ""
	}
	return n.el.SelectAttrValue(name, "")
}

// Find returns the first descendant whose literal tag matches name.
func (n *Node) Find(name string) *Node {
	if n == nil || n.el == nil {
		return nil
	}
	return findFirst(n.el, name)
}

// FindAll returns every descendant whose literal tag matches name.
func (n *Node) FindAll(name string) []*Node {
	if n == nil || n.el == nil {
		return nil
	}
	var out []*Node
	collect(n.el, name, &out)
	return out
}

func findFirst(el *etree.Element, name string) *Node {
	for _, child := range el.ChildElements() {
		if child.FullTag() == name {
			return &Node{el: child}
		}
		if found := findFirst(child, name); found != nil {
			return found
		}
	}
	return nil
}

func collect(el *etree.Element, name string, out *[]*Node) {
	for _, child := range el.ChildElements() {
		if child.FullTag() == name {
			*out = append(*out, &Node{el: child})
		}
		collect(child, name, out)
	}
}
