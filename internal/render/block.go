// Package render turns ledger-node responses into document fragments.
package render

import (
	"encoding/json"
	"strconv"

	"golang.org/x/net/html"

	"github.com/manifest-network/ledgerdash/internal/dom"
	"github.com/manifest-network/ledgerdash/internal/models"
)

const (
	BlocksFailedText  = "Failed to fetch blockchain."
	EmptyChainText    = "No blocks yet."
	BalanceFailedText = "Failed to fetch balance."
	AddressFailedText = "Failed to fetch address."

	shortHashLen = 7
)

// BlockName is "Genesis" for position 0 and "Block<position>" otherwise.
func BlockName(position int) string {
	if position == 0 {
		return "Genesis"
	}
	return "Block" + strconv.Itoa(position)
}

// ShortHash returns the first 7 characters of hash, or hash itself when shorter.
func ShortHash(hash string) string {
	r := []rune(hash)
	if len(r) <= shortHashLen {
		return hash
	}
	return string(r[:shortHashLen])
}

// ParseBlocks decodes a blocks endpoint response.
func ParseBlocks(body string) ([]models.Block, error) {
	var blocks []models.Block
	if err := json.Unmarshal([]byte(body), &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// LatestBlock renders the last block of a chain. An empty chain renders the
// empty-state element.
func LatestBlock(blocks []models.Block) *html.Node {
	if len(blocks) == 0 {
		return dom.Element("div", dom.TextElement("span", EmptyChainText))
	}
	position := len(blocks) - 1
	return BlockFragment(position, blocks[position])
}

// BlockFragment renders one block: its name, hashes, nonce and transactions.
func BlockFragment(position int, block models.Block) *html.Node {
	el := dom.Element("div", dom.TextElement("h3", BlockName(position)))
	addInfoText(el, block)
	return el
}

func addInfoText(container *html.Node, block models.Block) {
	container.AppendChild(dom.TextElement("p", "Hash: "+ShortHash(block.Hash)))
	container.AppendChild(dom.TextElement("p", "Previous hash: "+ShortHash(block.PreviousHash)))
	container.AppendChild(dom.TextElement("p", "Nonce: "+block.Nonce.String()))

	txs := dom.Element("div", dom.TextElement("p", "Transactions:"))
	for _, line := range TransactionLines(block) {
		txs.AppendChild(dom.TextElement("p", line))
	}
	container.AppendChild(txs)
}

// TransactionLines returns one "- <short hash>" line per transaction.
func TransactionLines(block models.Block) []string {
	lines := make([]string, 0, len(block.SignedTransactions))
	for _, st := range block.SignedTransactions {
		lines = append(lines, "- "+ShortHash(st.Transaction.Hash))
	}
	return lines
}

// BlocksFailed is the element shown when the chain could not be fetched.
func BlocksFailed() *html.Node {
	return dom.Element("div", dom.TextElement("span", BlocksFailedText))
}
