package render

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/manifest-network/ledgerdash/internal/dom"
	"github.com/manifest-network/ledgerdash/internal/models"
)

func Balance(text string) *html.Node {
	return dom.Element("div", dom.TextElement("span", "Balance:"+text))
}

func BalanceFailed() *html.Node {
	return dom.Element("div", dom.TextElement("span", BalanceFailedText))
}

// Address strips the JSON quoting from an address response. Responses shorter
// than two characters carry no address.
func Address(body string) string {
	r := []rune(body)
	if len(r) < 2 {
		return ""
	}
	return string(r[1 : len(r)-1])
}

// TransferOutcome renders the result of a submitted transfer.
func TransferOutcome(t *models.Transfer) *html.Node {
	if t.OK {
		return dom.Element("div", dom.TextElement("span", fmt.Sprintf("Transfer of %s to %s submitted.", t.Amount, t.Payee)))
	}
	if t.Status == 0 {
		return dom.Element("div", dom.TextElement("span", "Transfer failed."))
	}
	return dom.Element("div", dom.TextElement("span", fmt.Sprintf("Transfer failed (status %d).", t.Status)))
}
