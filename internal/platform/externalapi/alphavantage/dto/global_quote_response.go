// Package dto defines data transfer objects for the Alpha Vantage API responses.
package dto

// GlobalQuoteResponse represents the JSON response from the GLOBAL_QUOTE endpoint.
// Alpha Vantage prefixes field names with ordinal numbers and returns all
// numeric values as strings.
type GlobalQuoteResponse struct {
	GlobalQuote struct {
		Symbol        string `json:"01. symbol"`
		Price         string `json:"05. price"`
		Volume        string `json:"06. volume"`
		PreviousClose string `json:"08. previous close"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`

	// Note はレート制限時にAPIが返すメッセージです（HTTP 200のまま返ります）。
	Note string `json:"Note,omitempty"`
	// ErrorMessage は無効なシンボルなどのエラー時に設定されます。
	ErrorMessage string `json:"Error Message,omitempty"`
}
