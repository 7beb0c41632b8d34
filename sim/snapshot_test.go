package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/papertrade/market"
)

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, nil)
	assert.True(t, p.Buy("AAPL", 10))
	assert.True(t, p.CreateVenture("Garage Startup", "GRGE", "Technology"))
	p.ProgressDay()
	p.ProgressDay()

	snap := p.Snapshot()
	restored := FromSnapshot(snap, &scriptRand{}, nil, nil)

	assert.Equal(t, p.Name(), restored.Name())
	assert.Equal(t, p.Day(), restored.Day())
	assert.InDelta(t, p.Balance(), restored.Balance(), 1e-9)
	assert.InDelta(t, p.TotalPnl(), restored.TotalPnl(), 1e-9)
	assert.Equal(t, p.MarketState(), restored.MarketState())
	assert.Equal(t, p.PnlHistory(), restored.PnlHistory())
	assert.Equal(t, p.PoolCodes(), restored.PoolCodes())
	assert.Equal(t, p.HeldCodes(), restored.HeldCodes())

	for _, code := range p.PoolCodes() {
		want, _ := p.Stock(code)
		got, ok := restored.Stock(code)
		if assert.True(t, ok, "missing %s", code) {
			assert.Equal(t, *want, *got)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, nil)
	snap := p.Snapshot()

	snap.Pool[0].CurrentPrice = 999

	s, _ := p.Stock(snap.Pool[0].Code)
	assert.NotEqual(t, 999.0, s.CurrentPrice)
}

func TestFromSnapshotHeldRejoinsPool(t *testing.T) {
	t.Parallel()

	// Held and pool arrive as independent lists; after restore there is
	// one stock per code, held and pooled at once.
	stock := market.NewStock("Apple", "AAPL", "Technology", 0.5)
	stock.Buy(10)

	snap := Snapshot{
		Name:        "Restored",
		Balance:     4000,
		MarketState: market.Confident,
		Held:        []*market.Stock{stock},
		Pool:        []*market.Stock{stock},
	}
	p := FromSnapshot(snap, &scriptRand{}, nil, nil)

	assert.Equal(t, []string{"AAPL"}, p.PoolCodes())
	assert.Equal(t, []string{"AAPL"}, p.HeldCodes())

	pooled, _ := p.Stock("AAPL")
	held := p.Held()[0]
	assert.Same(t, pooled, held)

	assert.True(t, p.Sell("AAPL"))
	assert.Zero(t, p.NumHeld())
}

func TestFromSnapshotInvalidSentimentFallsBackToNeutral(t *testing.T) {
	t.Parallel()

	p := FromSnapshot(Snapshot{Name: "X", MarketState: "Panicking"}, &scriptRand{}, nil, nil)
	assert.Equal(t, market.Neutral, p.MarketState())
}
