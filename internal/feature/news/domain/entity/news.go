// Package entity defines the domain models for the news feature.
package entity

import "time"

// NewsItem is a stored news article tied to a stock. Sentiment and the
// labels are computed once at ingestion time; rows are immutable afterwards.
type NewsItem struct {
	ID             uint      `gorm:"primaryKey"`
	StockID        uint      `gorm:"not null;index"`
	Headline       string    `gorm:"size:512;not null"`
	Content        string    `gorm:"type:text"`
	Source         string    `gorm:"size:100"`
	Sentiment      float64   `gorm:"not null;default:0"`
	SentimentLabel string    `gorm:"size:16"`
	ImpactLabel    string    `gorm:"size:16"`
	PublishedAt    time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// Article is a raw news record as returned by an external provider,
// before sentiment scoring.
type Article struct {
	Headline    string
	Content     string
	Source      string
	PublishedAt time.Time
}
