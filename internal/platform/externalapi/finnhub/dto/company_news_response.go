// Package dto defines data transfer objects for the Finnhub API responses.
package dto

// CompanyNewsItem represents one article in the company-news endpoint response.
type CompanyNewsItem struct {
	Category string `json:"category"`
	Datetime int64  `json:"datetime"` // Unix seconds
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Image    string `json:"image"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}
