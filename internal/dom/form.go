package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Option creates an <option> with the given value and label.
func Option(value, label string) *html.Node {
	opt := TextElement("option", label)
	SetAttr(opt, "value", value)
	return opt
}

// Options returns the <option> children of a <select>.
func Options(sel *html.Node) []*html.Node {
	var out []*html.Node
	for _, c := range Children(sel) {
		if c.DataAtom == atom.Option {
			out = append(out, c)
		}
	}
	return out
}

// SelectedOption returns the selected option of sel. As in a browser, the
// first option is selected when none carries the selected attribute.
func SelectedOption(sel *html.Node) *html.Node {
	opts := Options(sel)
	for _, o := range opts {
		if HasAttr(o, "selected") {
			return o
		}
	}
	if len(opts) > 0 {
		return opts[0]
	}
	return nil
}

// OptionValue returns the value of an option, falling back to its text.
func OptionValue(opt *html.Node) string {
	if HasAttr(opt, "value") {
		return Attr(opt, "value")
	}
	return InnerText(opt)
}

// Select marks the first option whose value or label equals key as selected
// and reports whether one was found.
func Select(sel *html.Node, key string) bool {
	var match *html.Node
	for _, o := range Options(sel) {
		if match == nil && (OptionValue(o) == key || InnerText(o) == key) {
			match = o
		}
	}
	if match == nil {
		return false
	}
	for _, o := range Options(sel) {
		RemoveAttr(o, "selected")
	}
	SetAttr(match, "selected", "")
	return true
}

// InputValue returns the value attribute of an <input>.
func InputValue(input *html.Node) string {
	return Attr(input, "value")
}

// SetInputValue sets the value attribute of an <input>.
func SetInputValue(input *html.Node, val string) {
	SetAttr(input, "value", val)
}
