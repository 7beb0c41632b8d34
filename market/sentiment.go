package market

// Sentiment is the coarse market mood. It bounds the daily price variation
// drawn for every stock on a normal (non-outlier) trading day.
type Sentiment string

const (
	VeryConfident Sentiment = "Very Confident"
	Confident     Sentiment = "Confident"
	Neutral       Sentiment = "Neutral"
	Afraid        Sentiment = "Afraid"
	VeryAfraid    Sentiment = "Very Afraid"
)

// Sentiments lists every market state, most bullish first.
var Sentiments = []Sentiment{VeryConfident, Confident, Neutral, Afraid, VeryAfraid}

// Range returns the [min, max) bounds for a normal day's fractional price
// variation under this sentiment. An unknown sentiment yields (0, 0).
func (s Sentiment) Range() (min, max float64) {
	switch s {
	case VeryConfident:
		return 0.10, 0.30
	case Confident:
		return 0.05, 0.10
	case Neutral:
		return -0.05, 0.05
	case Afraid:
		return -0.10, -0.05
	case VeryAfraid:
		return -0.30, -0.10
	}
	return 0, 0
}

// Valid reports whether s is one of the five known market states.
func (s Sentiment) Valid() bool {
	switch s {
	case VeryConfident, Confident, Neutral, Afraid, VeryAfraid:
		return true
	}
	return false
}

func (s Sentiment) String() string { return string(s) }
