package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifest-network/ledgerdash/internal/dom"
	"github.com/manifest-network/ledgerdash/internal/peers"
	"github.com/manifest-network/ledgerdash/internal/render"
)

func TestPayeeOptionsTwoPeers(t *testing.T) {
	addresses := map[int]string{0: "0xAAA", 1: "0xBBB"}

	assert.Equal(t, []render.PayeeOption{{Label: "Node2", Value: "0xBBB"}}, render.PayeeOptions(0, []int{1}, addresses))
	assert.Equal(t, []render.PayeeOption{{Label: "Node1", Value: "0xAAA"}}, render.PayeeOptions(1, []int{0}, addresses))
}

func TestPayeeOptionsNeverOffersSelf(t *testing.T) {
	for n := 2; n <= 6; n++ {
		reg, err := peers.NewRegistry("localhost", 8080, n)
		require.NoError(t, err)

		addresses := make(map[int]string, n)
		for i := 0; i < n; i++ {
			addresses[i] = "addr-" + string(rune('a'+i))
		}

		for i := 0; i < n; i++ {
			opts := render.PayeeOptions(i, reg.Candidates(i), addresses)
			assert.Len(t, opts, n-1)
			for _, o := range opts {
				assert.NotEqual(t, addresses[i], o.Value)
			}
		}

		// A self index slipped into the candidate list is still skipped.
		opts := render.PayeeOptions(0, []int{0, 1}, addresses)
		assert.Equal(t, []render.PayeeOption{{Label: "Node2", Value: addresses[1]}}, opts)
	}
}

func TestPayeeOptionsStopsAtFirstUnknownAddress(t *testing.T) {
	addresses := map[int]string{0: "0xA", 1: "0xB", 2: "", 3: "0xD"}

	opts := render.PayeeOptions(0, []int{1, 2, 3}, addresses)
	assert.Equal(t, []render.PayeeOption{{Label: "Node2", Value: "0xB"}}, opts)

	assert.Empty(t, render.PayeeOptions(3, []int{0, 1, 2}, map[int]string{1: "0xB"}))
	assert.Empty(t, render.PayeeOptions(0, []int{1}, map[int]string{}))
}

func TestLoadOptions(t *testing.T) {
	sel := dom.Element("select")

	render.LoadOptions(sel, []render.PayeeOption{{Label: "Node2", Value: "0xB"}, {Label: "Node3", Value: "0xC"}})
	require.Len(t, dom.Options(sel), 2)
	assert.Equal(t, "0xB", dom.OptionValue(dom.SelectedOption(sel)))

	require.True(t, dom.Select(sel, "0xC"))

	// Rebuilding never duplicates and keeps the operator's choice.
	render.LoadOptions(sel, []render.PayeeOption{{Label: "Node2", Value: "0xB"}, {Label: "Node3", Value: "0xC"}})
	require.Len(t, dom.Options(sel), 2)
	assert.Equal(t, "0xC", dom.OptionValue(dom.SelectedOption(sel)))

	// A selection that is no longer offered falls back to the first option.
	render.LoadOptions(sel, []render.PayeeOption{{Label: "Node2", Value: "0xB2"}})
	require.Len(t, dom.Options(sel), 1)
	assert.Equal(t, "0xB2", dom.OptionValue(dom.SelectedOption(sel)))

	render.LoadOptions(sel, nil)
	assert.Empty(t, dom.Options(sel))
	assert.Nil(t, dom.SelectedOption(sel))
}
