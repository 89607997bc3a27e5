// Package dto はstocksフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"portfolio_backend/internal/feature/stocks/domain/entity"
)

// CreateStockReq は POST /stocks のリクエストボディを表します。
type CreateStockReq struct {
	Symbol string  `json:"symbol" binding:"required"`
	Name   string  `json:"name"`
	Price  float64 `json:"price" binding:"omitempty,gte=0"`
}

// CreateHoldingReq は POST /portfolio のリクエストボディを表します。
type CreateHoldingReq struct {
	StockID  uint  `json:"stock_id" binding:"required"`
	Quantity int64 `json:"quantity" binding:"gte=0"`
}

// AddStockReq は POST /add-stock のリクエストボディを表します。
type AddStockReq struct {
	Symbol   string  `json:"symbol" binding:"required"`
	Name     string  `json:"name"`
	Price    float64 `json:"price" binding:"omitempty,gte=0"`
	Quantity int64   `json:"quantity" binding:"gte=0"`
}

// StockRes は読み取り時に計算された派生フィールド付きの銘柄ビューです。
type StockRes struct {
	ID              uint    `json:"id"`
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	PreviousClose   float64 `json:"previous_close"`
	Quantity        int64   `json:"quantity"`
	DaysGain        float64 `json:"days_gain"`
	DaysGainPercent float64 `json:"days_gain_percent"`
	TotalValue      float64 `json:"total_value"`
	Sentiment       float64 `json:"sentiment"`
	SentimentLabel  string  `json:"sentiment_label"`
	ImpactLabel     string  `json:"impact_label"`
	LastUpdated     string  `json:"last_updated"`
}

// HoldingRes は保有行と参照先銘柄のビューです。
type HoldingRes struct {
	ID       uint     `json:"id"`
	StockID  uint     `json:"stock_id"`
	Quantity int64    `json:"quantity"`
	Stock    StockRes `json:"stock"`
}

// QuoteRes は GET /stocks/:symbol/live のレスポンスボディです。
type QuoteRes struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
	Time          string  `json:"time"`
}

// MarketSummaryRes は GET /market-summary のレスポンスボディです。
type MarketSummaryRes struct {
	TotalValue  float64 `json:"total_value"`
	TotalChange float64 `json:"total_change"`
	StockCount  int     `json:"stock_count"`
	LastUpdated string  `json:"last_updated"`
}

// UpdateAllRes は POST /stocks/update-all のレスポンスボディです。
type UpdateAllRes struct {
	Updated int `json:"updated"`
}

// FromStockView はドメインのStockViewをレスポンスDTOに変換します。
func FromStockView(v entity.StockView) StockRes {
	return StockRes{
		ID:              v.Stock.ID,
		Symbol:          v.Stock.Symbol,
		Name:            v.Stock.Name,
		Price:           v.Valuation.Price,
		PreviousClose:   v.Valuation.PreviousClose,
		Quantity:        v.Valuation.Quantity,
		DaysGain:        v.Valuation.DaysGain,
		DaysGainPercent: v.Valuation.DaysGainPercent,
		TotalValue:      v.Valuation.TotalValue,
		Sentiment:       v.Valuation.Sentiment,
		SentimentLabel:  v.Valuation.SentimentLabel,
		ImpactLabel:     v.Valuation.ImpactLabel,
		LastUpdated:     v.Stock.LastUpdated.UTC().Format(time.RFC3339),
	}
}

// FromHoldingView はドメインのHoldingViewをレスポンスDTOに変換します。
func FromHoldingView(v entity.HoldingView) HoldingRes {
	return HoldingRes{
		ID:       v.Holding.ID,
		StockID:  v.Holding.StockID,
		Quantity: v.Holding.Quantity,
		Stock:    FromStockView(v.Stock),
	}
}

// FromQuote はドメインのQuoteをレスポンスDTOに変換します。
func FromQuote(q entity.Quote) QuoteRes {
	return QuoteRes{
		Symbol:        q.Symbol,
		Price:         q.Price,
		PreviousClose: q.PreviousClose,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		Volume:        q.Volume,
		Time:          q.Time.UTC().Format(time.RFC3339),
	}
}
