package entity

import "time"

// Valuation is the derived view of one stock's position, recomputed on every
// read from the stored record, its news sentiments, the held quantity and a
// best-effort live quote. None of these fields are persisted.
type Valuation struct {
	Price           float64 // Resolved price (live quote first, stored value second)
	PreviousClose   float64 // Resolved previous close
	Quantity        int64   // Held quantity, 0 when no holding exists
	DaysGain        float64 // (Price - PreviousClose) * Quantity
	DaysGainPercent float64 // Day's move in percent, 0 when PreviousClose is 0
	TotalValue      float64 // Price * Quantity
	Sentiment       float64 // Combined news + price-action sentiment in [-1, 1]
	SentimentLabel  string  // "Positive" / "Negative" / "Neutral"
	ImpactLabel     string  // "Small" / "Medium" / "Large"
}

// StockView pairs a stored stock with its read-time valuation.
type StockView struct {
	Stock     Stock
	Valuation Valuation
}

// HoldingView pairs a holding with the view of the stock it references.
type HoldingView struct {
	Holding Holding
	Stock   StockView
}

// MarketSummary aggregates the whole portfolio over live quotes.
type MarketSummary struct {
	TotalValue  float64
	TotalChange float64
	StockCount  int
	LastUpdated time.Time
}
