package market

// Price bounds for a freshly listed stock.
const (
	MinOriginalPrice = 5
	MaxOriginalPrice = 100
)

// Stock is a single tradable instrument. It carries identity, price state,
// ownership and profit bookkeeping. A stock performs no I/O and draws no
// randomness of its own; all mutation is driven by the portfolio engine.
type Stock struct {
	Name   string
	Code   string
	Sector string

	OriginalPrice float64
	CurrentPrice  float64
	PriceHistory  []float64

	// SharesOwned == 0 means no open position. BuyPrice and SellPrice are
	// the prices of the last buy/sell and are historical once shares hit 0.
	SharesOwned int
	BuyPrice    float64
	SellPrice   float64

	RealizedProfit  float64
	PotentialProfit float64
	DailyVariation  float64
}

// NewStock lists a stock with an original price derived from roll, which
// must be in [0, 1). The resulting price lands in [MinOriginalPrice,
// MaxOriginalPrice) and seeds the price history at index 0.
func NewStock(name, code, sector string, roll float64) *Stock {
	price := MinOriginalPrice + roll*(MaxOriginalPrice-MinOriginalPrice)
	return &Stock{
		Name:          name,
		Code:          code,
		Sector:        sector,
		OriginalPrice: price,
		CurrentPrice:  price,
		PriceHistory:  []float64{price},
	}
}

// UpdatePrice moves the current price by the given fractional percentage,
// e.g. 0.05 raises it 5%. No bounds are enforced.
func (s *Stock) UpdatePrice(pct float64) {
	s.CurrentPrice += s.CurrentPrice * pct
}

// AddPriceToHistory appends the current price to the history.
func (s *Stock) AddPriceToHistory() {
	s.PriceHistory = append(s.PriceHistory, s.CurrentPrice)
}

// UpdateDailyVariation recomputes the fractional day-over-day change against
// the last recorded history entry. Call it before AddPriceToHistory, so the
// comparison runs against yesterday's close rather than today's.
func (s *Stock) UpdateDailyVariation() {
	prev := s.PriceHistory[len(s.PriceHistory)-1]
	s.DailyVariation = (s.CurrentPrice - prev) / prev
}

// UpdatePotentialProfit marks the open position to the current price.
// With no shares owned the potential profit is 0.
func (s *Stock) UpdatePotentialProfit() {
	s.PotentialProfit = (s.CurrentPrice - s.BuyPrice) * float64(s.SharesOwned)
}

// Buy opens a position of exactly shares at the current price. The share
// count is not additive: buying while already holding repositions the whole
// stake at today's price. Returns false for a non-positive share count.
func (s *Stock) Buy(shares int) bool {
	if shares <= 0 {
		return false
	}
	s.SharesOwned = shares
	s.BuyPrice = s.CurrentPrice
	return true
}

// Sell closes the position at the current price, locking in the realized
// profit and zeroing the share count.
func (s *Stock) Sell() {
	s.SellPrice = s.CurrentPrice
	s.RealizedProfit = (s.SellPrice - s.BuyPrice) * float64(s.SharesOwned)
	s.SharesOwned = 0
}
