package render_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifest-network/ledgerdash/internal/dom"
	"github.com/manifest-network/ledgerdash/internal/models"
	"github.com/manifest-network/ledgerdash/internal/render"
)

func TestBlockName(t *testing.T) {
	assert.Equal(t, "Genesis", render.BlockName(0))
	for k := 1; k < 50; k++ {
		assert.Equal(t, fmt.Sprintf("Block%d", k), render.BlockName(k))
	}
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "aaaaaaa", render.ShortHash("aaaaaaa1"))
	assert.Equal(t, "0000000", render.ShortHash("000000000"))
	assert.Equal(t, "abc", render.ShortHash("abc"))
	assert.Equal(t, "", render.ShortHash(""))
	assert.Equal(t, "1234567", render.ShortHash("1234567"))
	assert.Equal(t, "ééééééé", render.ShortHash("éééééééé"))
}

func TestLatestBlockGenesis(t *testing.T) {
	blocks, err := render.ParseBlocks(`[{"hash":"aaaaaaa1","previousHash":"000000000","nonce":5,"signedTransaction":[{"transaction":{"hash":"tx1234567"}}]}]`)
	require.NoError(t, err)

	el := render.LatestBlock(blocks)
	assert.Equal(t, []string{
		"Genesis",
		"Hash: aaaaaaa",
		"Previous hash: 0000000",
		"Nonce: 5",
		"Transactions:",
		"- tx12345",
	}, dom.Lines(el))
}

func TestLatestBlockUsesLastElement(t *testing.T) {
	blocks, err := render.ParseBlocks(`[
		{"hash":"g000000000","previousHash":"","nonce":1,"signedTransaction":[]},
		{"hash":"b100000000","previousHash":"g000000000","nonce":2,"signedTransaction":[]},
		{"hash":"b200000000","previousHash":"b100000000","nonce":12345678901234567890,"signedTransaction":[
			{"transaction":{"hash":"aaaaaaaaaa"}},
			{"transaction":{"hash":"bbbbbbbbbb"}}
		]}
	]`)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Block2",
		"Hash: b200000",
		"Previous hash: b100000",
		"Nonce: 12345678901234567890",
		"Transactions:",
		"- aaaaaaa",
		"- bbbbbbb",
	}, dom.Lines(render.LatestBlock(blocks)))
}

func TestLatestBlockEmptyChain(t *testing.T) {
	blocks, err := render.ParseBlocks(`[]`)
	require.NoError(t, err)
	assert.Equal(t, []string{render.EmptyChainText}, dom.Lines(render.LatestBlock(blocks)))
}

func TestParseBlocksMalformed(t *testing.T) {
	_, err := render.ParseBlocks(`{"not":"an array"}`)
	assert.Error(t, err)
	_, err = render.ParseBlocks(``)
	assert.Error(t, err)
}

func TestFailureElements(t *testing.T) {
	assert.Equal(t, []string{render.BlocksFailedText}, dom.Lines(render.BlocksFailed()))
	assert.Equal(t, []string{render.BalanceFailedText}, dom.Lines(render.BalanceFailed()))
	assert.Equal(t, []string{"Balance:100"}, dom.Lines(render.Balance("100")))
}

func TestAddress(t *testing.T) {
	assert.Equal(t, "0xABCDEF", render.Address(`"0xABCDEF"`))
	assert.Equal(t, "", render.Address(`""`))
	assert.Equal(t, "", render.Address(`x`))
	assert.Equal(t, "", render.Address(``))
}

func TestTransferOutcome(t *testing.T) {
	tr := models.NewTransfer(0, "0xDEAD", "10")
	tr.OK = true
	tr.Status = 200
	assert.Equal(t, []string{"Transfer of 10 to 0xDEAD submitted."}, dom.Lines(render.TransferOutcome(tr)))

	tr.OK = false
	tr.Status = 400
	assert.Equal(t, []string{"Transfer failed (status 400)."}, dom.Lines(render.TransferOutcome(tr)))

	tr.Status = 0
	assert.Equal(t, []string{"Transfer failed."}, dom.Lines(render.TransferOutcome(tr)))
}
