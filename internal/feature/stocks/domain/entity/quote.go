package entity

import "time"

// Quote is a live price snapshot returned by an external quote provider.
// It is never persisted as-is; refreshes copy Price and PreviousClose onto
// the stored Stock.
type Quote struct {
	Symbol        string    // Ticker symbol the quote belongs to
	Price         float64   // Current market price
	PreviousClose float64   // Previous session's closing price
	Change        float64   // Price - PreviousClose
	ChangePercent float64   // Change relative to PreviousClose, in percent
	Volume        int64     // Traded volume
	Time          time.Time // Provider timestamp for this snapshot
}
