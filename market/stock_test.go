package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStockPriceBounds(t *testing.T) {
	t.Parallel()

	low := NewStock("Low", "LOW", "Test", 0)
	assert.Equal(t, float64(MinOriginalPrice), low.OriginalPrice)

	high := NewStock("High", "HIGH", "Test", 0.9999)
	assert.Less(t, high.OriginalPrice, float64(MaxOriginalPrice))

	mid := NewStock("Mid", "MID", "Test", 0.5)
	assert.Equal(t, 52.5, mid.OriginalPrice)
	assert.Equal(t, mid.OriginalPrice, mid.CurrentPrice)
	assert.Equal(t, []float64{mid.OriginalPrice}, mid.PriceHistory)
	assert.Zero(t, mid.SharesOwned)
	assert.Zero(t, mid.BuyPrice)
	assert.Zero(t, mid.RealizedProfit)
}

func TestUpdatePrice(t *testing.T) {
	t.Parallel()

	s := NewStock("Mid", "MID", "Test", 0.5) // 52.50

	s.UpdatePrice(0.10)
	assert.InDelta(t, 57.75, s.CurrentPrice, 1e-9)

	s.UpdatePrice(-0.50)
	assert.InDelta(t, 28.875, s.CurrentPrice, 1e-9)

	// No floor: a move below -100% goes negative.
	s.UpdatePrice(-1.5)
	assert.Negative(t, s.CurrentPrice)
}

func TestDailyVariationUsesPriorClose(t *testing.T) {
	t.Parallel()

	s := NewStock("Mid", "MID", "Test", 0.5) // history [52.50]

	s.UpdatePrice(0.05)
	s.UpdateDailyVariation()
	assert.InDelta(t, 0.05, s.DailyVariation, 1e-9)

	// After the history append the same comparison reads today's close
	// and collapses to zero, which is why the engine orders the calls
	// variation-then-append.
	s.AddPriceToHistory()
	s.UpdateDailyVariation()
	assert.InDelta(t, 0, s.DailyVariation, 1e-9)
}

func TestBuyAndSell(t *testing.T) {
	t.Parallel()

	s := NewStock("Mid", "MID", "Test", 0.5)

	assert.False(t, s.Buy(0))
	assert.False(t, s.Buy(-5))
	assert.Zero(t, s.SharesOwned)

	assert.True(t, s.Buy(10))
	assert.Equal(t, 10, s.SharesOwned)
	assert.Equal(t, s.CurrentPrice, s.BuyPrice)

	// A second buy overwrites the position, it does not add to it.
	assert.True(t, s.Buy(4))
	assert.Equal(t, 4, s.SharesOwned)

	s.UpdatePrice(0.25)
	s.Sell()
	assert.Zero(t, s.SharesOwned)
	assert.Equal(t, s.CurrentPrice, s.SellPrice)
	assert.InDelta(t, (s.SellPrice-s.BuyPrice)*4, s.RealizedProfit, 1e-9)
}

func TestPotentialProfit(t *testing.T) {
	t.Parallel()

	s := NewStock("Mid", "MID", "Test", 0.5)

	// Flat when nothing is owned.
	s.UpdatePotentialProfit()
	assert.Zero(t, s.PotentialProfit)

	s.Buy(10)
	s.UpdatePrice(0.10)
	s.UpdatePotentialProfit()
	assert.InDelta(t, (s.CurrentPrice-s.BuyPrice)*10, s.PotentialProfit, 1e-9)
}

func TestSentimentRanges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state    Sentiment
		min, max float64
	}{
		{VeryConfident, 0.10, 0.30},
		{Confident, 0.05, 0.10},
		{Neutral, -0.05, 0.05},
		{Afraid, -0.10, -0.05},
		{VeryAfraid, -0.30, -0.10},
	}

	for _, tt := range tests {
		min, max := tt.state.Range()
		assert.Equal(t, tt.min, min, "min for %s", tt.state)
		assert.Equal(t, tt.max, max, "max for %s", tt.state)
		assert.True(t, tt.state.Valid())
	}

	min, max := Sentiment("Euphoric").Range()
	assert.Zero(t, min)
	assert.Zero(t, max)
	assert.False(t, Sentiment("Euphoric").Valid())
}
