// Package dom provides the small set of document primitives the dashboard
// needs, on top of golang.org/x/net/html nodes. None of these functions are
// safe for concurrent use; callers serialize access to a Document.
package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element creates an element node with the given children.
func Element(tag string, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// Text creates a text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// TextElement creates an element holding a single text node.
func TextElement(tag, text string) *html.Node {
	return Element(tag, Text(text))
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func HasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}

// SetAttr sets or adds the named attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr removes the named attribute if present.
func RemoveAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}

// Children returns the element children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Clear removes every child of n.
func Clear(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// ReplaceOrAppend appends el when n has no element children, otherwise it
// replaces the first element child with el.
func ReplaceOrAppend(n, el *html.Node) {
	children := Children(n)
	if len(children) == 0 {
		n.AppendChild(el)
		return
	}
	first := children[0]
	n.InsertBefore(el, first)
	n.RemoveChild(first)
}

// InnerText returns the concatenated text content of n.
func InnerText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// SetText replaces every child of n with a single text node.
func SetText(n *html.Node, text string) {
	Clear(n)
	n.AppendChild(Text(text))
}

// Lines returns the text of each element child of n that carries text,
// descending into wrapper elements. It is a plain-text view of a rendered
// fragment.
func Lines(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		hasText := false
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
				hasText = true
				break
			}
		}
		if hasText {
			out = append(out, strings.TrimSpace(InnerText(n)))
			return
		}
		for _, c := range Children(n) {
			walk(c)
		}
	}
	for _, c := range Children(n) {
		walk(c)
	}
	return out
}
