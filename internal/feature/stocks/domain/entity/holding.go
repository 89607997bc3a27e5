package entity

// Holding is the quantity of a stock currently owned in the portfolio.
// Uniqueness per stock is not enforced; reads resolve the earliest row,
// and no row means a quantity of zero.
type Holding struct {
	ID       uint  `gorm:"primaryKey"`
	StockID  uint  `gorm:"not null;index"`
	Quantity int64 `gorm:"not null;default:0"`
}
