// Package dto はnewsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"portfolio_backend/internal/feature/news/domain/entity"
)

// NewsRes は保存済みニュース記事のレスポンスビューです。
type NewsRes struct {
	ID             uint    `json:"id"`
	StockID        uint    `json:"stock_id"`
	Headline       string  `json:"headline"`
	Content        string  `json:"content"`
	Source         string  `json:"source"`
	Sentiment      float64 `json:"sentiment"`
	SentimentLabel string  `json:"sentiment_label"`
	ImpactLabel    string  `json:"impact_label"`
	PublishedAt    string  `json:"published_at"`
}

// MessageRes は受付応答などの単純なメッセージボディです。
type MessageRes struct {
	Message string `json:"message"`
}

// FromNewsItem はドメインのNewsItemをレスポンスDTOに変換します。
func FromNewsItem(n entity.NewsItem) NewsRes {
	return NewsRes{
		ID:             n.ID,
		StockID:        n.StockID,
		Headline:       n.Headline,
		Content:        n.Content,
		Source:         n.Source,
		Sentiment:      n.Sentiment,
		SentimentLabel: n.SentimentLabel,
		ImpactLabel:    n.ImpactLabel,
		PublishedAt:    n.PublishedAt.UTC().Format(time.RFC3339),
	}
}
