package dom

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"golang.org/x/net/html"

	"github.com/manifest-network/ledgerdash/internal/peers"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

// Document is the dashboard page: the skeleton rendered for a peer set, then
// mutated in place by the renderers.
type Document struct {
	root *html.Node
}

type pageData struct {
	Title string
	Peers []peers.Peer
}

// NewDocument renders the page skeleton for reg and parses it into a tree.
func NewDocument(title string, reg *peers.Registry) (*Document, error) {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "dashboard.html", pageData{Title: title, Peers: reg.Peers()}); err != nil {
		return nil, fmt.Errorf("failed to execute page template: %w", err)
	}

	root, err := html.Parse(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page skeleton: %w", err)
	}

	doc := &Document{root: root}
	for _, p := range reg.Peers() {
		for _, id := range []string{p.BlocksID(), p.BalanceID(), p.AddressID(), p.PayeeID(), p.AmountID(), p.TransferID()} {
			if doc.GetElementByID(id) == nil {
				return nil, fmt.Errorf("page skeleton is missing element %q", id)
			}
		}
	}
	return doc, nil
}

// GetElementByID returns the first element whose id attribute is id, or nil.
func (d *Document) GetElementByID(id string) *html.Node {
	var found *html.Node
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && Attr(n, "id") == id {
			found = n
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(d.root)
	return found
}

// MustGetElementByID is GetElementByID for ids guaranteed by NewDocument.
func (d *Document) MustGetElementByID(id string) *html.Node {
	n := d.GetElementByID(id)
	if n == nil {
		panic(fmt.Sprintf("dom: no element with id %q", id))
	}
	return n
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}
