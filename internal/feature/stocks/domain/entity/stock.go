// Package entity defines the domain models for the stocks feature.
package entity

import "time"

// Stock represents a tracked stock in the system.
// Price and PreviousClose hold the last known values from a quote refresh;
// Sentiment is the persisted news-sentiment aggregate, rewritten after each
// news ingestion so plain reads reflect fresh news without a live quote.
type Stock struct {
	ID            uint      `gorm:"primaryKey"`
	Symbol        string    `gorm:"size:20;not null;uniqueIndex"`
	Name          string    `gorm:"size:255;not null"`
	Price         float64   `gorm:"not null;default:0"`
	PreviousClose float64   `gorm:"not null;default:0"`
	Sentiment     float64   `gorm:"not null;default:0"`
	LastUpdated   time.Time `gorm:"autoUpdateTime"`
}
