package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/papertrade/eventlog"
	"github.com/rustyeddy/papertrade/journal"
	"github.com/rustyeddy/papertrade/market"
)

// scriptRand replays scripted rolls and falls back to flat values. The
// 0.5 Float64 fallback makes every market draw land dead-center: no
// outliers, zero variation under a Neutral market, seed prices of 52.5.
type scriptRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptRand) Float64() float64 {
	if r.fi < len(r.floats) {
		v := r.floats[r.fi]
		r.fi++
		return v
	}
	return 0.5
}

func (r *scriptRand) Intn(n int) int {
	if r.ii < len(r.ints) {
		v := r.ints[r.ii] % n
		r.ii++
		return v
	}
	return 0
}

func newTestPortfolio(t *testing.T, rng Rand) (*Portfolio, *journal.Memory) {
	t.Helper()
	if rng == nil {
		rng = &scriptRand{}
	}
	jnl := &journal.Memory{}
	return New("Test Portfolio", rng, eventlog.New(), jnl), jnl
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewPortfolioSeedPool(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, nil)

	wantCodes := []string{"AAPL", "GOOGL", "META", "PFE", "AZN", "HSBC", "JPM", "SHEL", "XOM", "KO", "PEP"}
	assert.Equal(t, wantCodes, p.PoolCodes())

	assert.Equal(t, StartingBalance, p.Balance())
	assert.Equal(t, 0, p.Day())
	assert.Equal(t, market.Neutral, p.MarketState())
	assert.Empty(t, p.HeldCodes())
	assert.Empty(t, p.PnlHistory())

	for _, s := range p.Pool() {
		assert.GreaterOrEqual(t, s.OriginalPrice, float64(market.MinOriginalPrice))
		assert.Less(t, s.OriginalPrice, float64(market.MaxOriginalPrice))
		assert.Equal(t, s.OriginalPrice, s.CurrentPrice)
		assert.Equal(t, []float64{s.OriginalPrice}, s.PriceHistory)
		assert.Zero(t, s.SharesOwned)
	}
}

func TestBuyDeductsExactCost(t *testing.T) {
	t.Parallel()

	p, jnl := newTestPortfolio(t, nil)

	price, ok := p.PriceForCode("AAPL")
	if !ok {
		t.Fatal("AAPL missing from pool")
	}

	assert.True(t, p.Buy("AAPL", 10))
	assert.Equal(t, 1, p.NumHeld())
	assert.Equal(t, []string{"AAPL"}, p.HeldCodes())
	assert.InDelta(t, StartingBalance-price*10, p.Balance(), 1e-9)

	s, _ := p.Stock("AAPL")
	assert.Equal(t, 10, s.SharesOwned)
	assert.Equal(t, price, s.BuyPrice)

	if assert.Len(t, jnl.Trades, 1) {
		rec := jnl.Trades[0]
		assert.Equal(t, journal.ActionBuy, rec.Action)
		assert.Equal(t, "AAPL", rec.Code)
		assert.Equal(t, 10, rec.Shares)
		assert.Equal(t, price, rec.Price)
		assert.InDelta(t, p.Balance(), rec.CashAfter, 1e-9)
		assert.NotEmpty(t, rec.TradeID)
	}
}

func TestBuyIsNotAdditive(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, nil)

	assert.True(t, p.Buy("AAPL", 10))
	assert.True(t, p.Buy("AAPL", 5))

	s, _ := p.Stock("AAPL")
	assert.Equal(t, 5, s.SharesOwned)
	// Still one held entry, never a duplicate.
	assert.Equal(t, []string{"AAPL"}, p.HeldCodes())
}

func TestBuyRejections(t *testing.T) {
	t.Parallel()

	p, jnl := newTestPortfolio(t, nil)

	tests := []struct {
		name   string
		code   string
		shares int
	}{
		{"unknown code", "NOPE", 10},
		{"zero shares", "AAPL", 0},
		{"negative shares", "AAPL", -3},
		{"insufficient funds", "AAPL", 100}, // 100 * 52.50 = 5250 >= 5000
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, p.Buy(tt.code, tt.shares))
			assert.Equal(t, StartingBalance, p.Balance())
			assert.Zero(t, p.NumHeld())
		})
	}

	assert.Empty(t, jnl.Trades)
}

func TestBuyCostAtBalanceFails(t *testing.T) {
	t.Parallel()

	// Cost exactly equal to the balance is rejected: the check is strictly
	// "cost < balance".
	rng := &scriptRand{floats: []float64{0.0}} // AAPL lists at exactly 5.00
	p, _ := newTestPortfolio(t, rng)

	assert.False(t, p.Buy("AAPL", 1000)) // 1000 * 5.00 == 5000
	assert.True(t, p.Buy("AAPL", 999))
}

func TestSellRoundTripRestoresBalance(t *testing.T) {
	t.Parallel()

	p, jnl := newTestPortfolio(t, nil)

	assert.True(t, p.Buy("AAPL", 10))
	assert.True(t, p.Sell("AAPL"))

	// No price movement between buy and sell: balance is restored exactly.
	assert.InDelta(t, StartingBalance, p.Balance(), 1e-9)
	assert.Zero(t, p.NumHeld())

	// The stock stays in the pool with the position closed.
	s, ok := p.Stock("AAPL")
	if assert.True(t, ok) {
		assert.Zero(t, s.SharesOwned)
		assert.Zero(t, s.RealizedProfit)
	}
	assert.Len(t, jnl.Trades, 2)
	assert.Equal(t, journal.ActionSell, jnl.Trades[1].Action)
}

func TestSellCreditsRealizedProfit(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, nil)

	assert.True(t, p.Buy("AAPL", 10))
	balanceAfterBuy := p.Balance()

	s, _ := p.Stock("AAPL")
	s.UpdatePrice(0.10) // +10% before the sale

	assert.True(t, p.Sell("AAPL"))

	wantProfit := (s.SellPrice - s.BuyPrice) * 10
	assert.InDelta(t, balanceAfterBuy+s.BuyPrice*10+wantProfit, p.Balance(), 1e-9)
	assert.InDelta(t, wantProfit, s.RealizedProfit, 1e-9)
}

func TestSellNotHeld(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, nil)

	assert.False(t, p.Sell("AAPL"))
	assert.Equal(t, StartingBalance, p.Balance())
}

func TestSellAllHeld(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, nil)

	// Nothing held yet.
	assert.False(t, p.SellAllHeld())
	assert.Equal(t, StartingBalance, p.Balance())

	assert.True(t, p.Buy("AAPL", 10))
	assert.True(t, p.Buy("KO", 20))

	assert.True(t, p.SellAllHeld())
	assert.Zero(t, p.NumHeld())
	assert.InDelta(t, StartingBalance, p.Balance(), 1e-9)
}

func TestCreateVenture(t *testing.T) {
	t.Parallel()

	p, jnl := newTestPortfolio(t, nil)

	assert.True(t, p.CreateVenture("Garage Startup", "GRGE", "Technology"))
	assert.InDelta(t, StartingBalance-1000, p.Balance(), 1e-9)
	assert.Equal(t, 12, len(p.PoolCodes()))
	assert.Contains(t, p.HeldCodes(), "GRGE")

	s, ok := p.Stock("GRGE")
	if assert.True(t, ok) {
		assert.Equal(t, 10.0, s.OriginalPrice)
		assert.Equal(t, 10.0, s.CurrentPrice)
		assert.Equal(t, []float64{10.0}, s.PriceHistory)
		assert.Equal(t, 100, s.SharesOwned)
		assert.Equal(t, 10.0, s.BuyPrice)
	}

	if assert.Len(t, jnl.Trades, 1) {
		assert.Equal(t, journal.ActionVenture, jnl.Trades[0].Action)
		assert.Equal(t, 100, jnl.Trades[0].Shares)
	}
}

func TestCreateVentureInsufficientFunds(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, nil)

	// Five ventures drain 5000 to 0; the sixth must fail untouched.
	codes := []string{"V1", "V2", "V3", "V4", "V5"}
	for _, code := range codes {
		assert.True(t, p.CreateVenture("Venture "+code, code, "Misc"))
	}
	assert.InDelta(t, 0, p.Balance(), 1e-9)

	poolBefore := len(p.PoolCodes())
	assert.False(t, p.CreateVenture("One Too Many", "V6", "Misc"))
	assert.InDelta(t, 0, p.Balance(), 1e-9)
	assert.Equal(t, poolBefore, len(p.PoolCodes()))
	assert.NotContains(t, p.HeldCodes(), "V6")
}

func TestProgressDayStructure(t *testing.T) {
	t.Parallel()

	p, jnl := newTestPortfolio(t, nil)

	for i := 1; i <= 3; i++ {
		p.ProgressDay()
		assert.Equal(t, i, p.Day())
		assert.Len(t, p.PnlHistory(), i)
		for _, s := range p.Pool() {
			assert.Len(t, s.PriceHistory, i+1)
		}
	}

	if assert.Len(t, jnl.Days, 3) {
		assert.Equal(t, 1, jnl.Days[0].Day)
		assert.Equal(t, market.Neutral.String(), jnl.Days[0].Sentiment)
	}
}

func TestProgressDayFlatMarket(t *testing.T) {
	t.Parallel()

	// The flat scripted source draws dead-center of the Neutral range,
	// so prices do not move and the daily variation is zero.
	p, _ := newTestPortfolio(t, nil)

	assert.True(t, p.Buy("AAPL", 10))
	p.ProgressDay()

	s, _ := p.Stock("AAPL")
	assert.InDelta(t, 0, s.DailyVariation, 1e-9)
	assert.InDelta(t, 0, s.PotentialProfit, 1e-9)
	assert.InDelta(t, 0, p.TotalPnl(), 1e-9)
}

func TestProgressDayVariationAgainstPriorClose(t *testing.T) {
	t.Parallel()

	// Script one day of uniform +2.5% moves: per stock the engine rolls
	// outlier (0.5, miss) then variation (0.75 of the Neutral range).
	floats := make([]float64, 0, 11+22)
	for i := 0; i < 11; i++ {
		floats = append(floats, 0.5) // seed listing prices, 52.50 each
	}
	for i := 0; i < 11; i++ {
		floats = append(floats, 0.5, 0.75)
	}
	p, _ := newTestPortfolio(t, &scriptRand{floats: floats})

	assert.True(t, p.Buy("AAPL", 10))
	p.ProgressDay()

	s, _ := p.Stock("AAPL")
	// Neutral range [-0.05, 0.05): 0.75 of the way in is +0.025.
	assert.InDelta(t, 52.5*1.025, s.CurrentPrice, 1e-9)
	// Variation compares against yesterday's close, recorded before
	// today's history append.
	assert.InDelta(t, 0.025, s.DailyVariation, 1e-9)
	assert.Equal(t, []float64{52.5, 52.5 * 1.025}, s.PriceHistory)
	// Held position marked to market.
	assert.InDelta(t, (52.5*0.025)*10, s.PotentialProfit, 1e-9)
	assert.InDelta(t, s.PotentialProfit, p.TotalPnl(), 1e-9)
}

func TestActualVariationOutlier(t *testing.T) {
	t.Parallel()

	// First roll hits the 5% outlier window, second picks the midpoint of
	// the fat-tail range [-1, 5).
	p, _ := newTestPortfolio(t, nil)
	p.rng = &scriptRand{floats: []float64{0.01, 0.5}}

	v := p.actualVariation()
	assert.InDelta(t, 2.0, v, 1e-9)
}

func TestActualVariationSentimentRanges(t *testing.T) {
	t.Parallel()

	for _, st := range market.Sentiments {
		p, _ := newTestPortfolio(t, nil)
		p.state = st
		p.rng = &scriptRand{floats: []float64{0.9, 0.0}} // no outlier, range minimum

		min, _ := st.Range()
		assert.InDelta(t, min, p.actualVariation(), 1e-9, "sentiment %s", st)
	}
}

func TestDetermineMarketState(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, &scriptRand{ints: []int{3}})

	got := p.DetermineMarketState()
	assert.Equal(t, market.Afraid, got)
	assert.Equal(t, market.Afraid, p.MarketState())
}

func TestProgressDayDoesNotRerollSentiment(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, nil)
	p.state = market.VeryAfraid

	p.ProgressDay()
	assert.Equal(t, market.VeryAfraid, p.MarketState())
}

func TestRequestLoan(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, nil)

	p.rng = &scriptRand{floats: []float64{0.1}}
	assert.True(t, p.RequestLoan())
	assert.InDelta(t, StartingBalance+2000, p.Balance(), 1e-9)

	p.rng = &scriptRand{floats: []float64{0.9}}
	assert.False(t, p.RequestLoan())
	assert.InDelta(t, StartingBalance+2000, p.Balance(), 1e-9)
}

func TestRequestLoanApproximateRate(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, rand.New(rand.NewSource(42)))

	const trials = 10000
	granted := 0
	for i := 0; i < trials; i++ {
		if p.RequestLoan() {
			granted++
		}
	}

	rate := float64(granted) / trials
	if !approxEqual(rate, 0.25, 0.02) {
		t.Fatalf("loan rate %.4f too far from 0.25", rate)
	}
}

func TestPriceForCode(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, nil)

	price, ok := p.PriceForCode("AAPL")
	assert.True(t, ok)
	assert.Greater(t, price, 0.0)

	_, ok = p.PriceForCode("NOPE")
	assert.False(t, ok)
}

func TestAddToPoolReplacesByCode(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, nil)
	before := len(p.PoolCodes())

	relisted := market.NewStock("Apple Computer", "AAPL", "Technology", 0.5)
	p.AddToPool(relisted)

	codes := p.PoolCodes()
	assert.Equal(t, before, len(codes))
	// The replacement moves to the end of the pool.
	assert.Equal(t, "AAPL", codes[len(codes)-1])

	s, _ := p.Stock("AAPL")
	assert.Equal(t, "Apple Computer", s.Name)
}

func TestRemoveFromPoolKeepsHeldPosition(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, nil)

	assert.True(t, p.Buy("AAPL", 10))
	p.RemoveFromPool("AAPL")

	_, ok := p.PriceForCode("AAPL")
	assert.False(t, ok, "delisted stock is not purchasable")

	// The open position survives and can still be closed.
	assert.Contains(t, p.HeldCodes(), "AAPL")
	assert.True(t, p.Sell("AAPL"))
	assert.InDelta(t, StartingBalance, p.Balance(), 1e-9)
}

func TestEventsRecorded(t *testing.T) {
	t.Parallel()

	p, _ := newTestPortfolio(t, nil)

	p.Buy("AAPL", 10)
	p.Sell("AAPL")
	p.Buy("NOPE", 1)

	events := p.Events().Events()
	if assert.Len(t, events, 3) {
		assert.Contains(t, events[0].Description, "Bought 10 shares")
		assert.Contains(t, events[1].Description, "Sold a stock: AAPL")
		assert.Contains(t, events[2].Description, "Failed at buying")
	}
}
