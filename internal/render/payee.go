package render

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/manifest-network/ledgerdash/internal/dom"
)

// PayeeOption is one selectable transfer destination.
type PayeeOption struct {
	Label string
	Value string
}

// PayeeOptions builds the destinations offered to peer self. Candidates are
// visited in order and building stops at the first candidate whose address
// is not known yet.
func PayeeOptions(self int, candidates []int, addresses map[int]string) []PayeeOption {
	var out []PayeeOption
	for _, k := range candidates {
		if k == self {
			continue
		}
		addr := addresses[k]
		if addr == "" {
			break
		}
		out = append(out, PayeeOption{
			Label: "Node" + strconv.Itoa(k+1),
			Value: addr,
		})
	}
	return out
}

// LoadOptions rebuilds sel from opts, keeping the previous selection when
// its value is still offered.
func LoadOptions(sel *html.Node, opts []PayeeOption) {
	var selected string
	if cur := dom.SelectedOption(sel); cur != nil && dom.HasAttr(cur, "selected") {
		selected = dom.OptionValue(cur)
	}

	dom.Clear(sel)
	for _, o := range opts {
		sel.AppendChild(dom.Option(o.Value, o.Label))
	}

	if selected != "" {
		dom.Select(sel, selected)
	}
}
