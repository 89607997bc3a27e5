// Package yahoo provides a quote source backed by Yahoo Finance.
package yahoo

import (
	"context"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/quote"

	"portfolio_backend/internal/feature/stocks/domain/entity"
	"portfolio_backend/internal/feature/stocks/usecase"
)

// YahooQuotes はYahoo Financeからライブクォートを取得するQuoteRepository実装です。
// APIキー不要のため、Alpha Vantageのレート制限時のフォールバック先として使われます。
type YahooQuotes struct {
	// fetch はテストで差し替え可能なクォート取得関数です。
	fetch func(symbol string) (*finance.Quote, error)
}

var _ usecase.QuoteRepository = (*YahooQuotes)(nil)

// NewYahooQuotes はYahooQuotesの新しいインスタンスを生成します。
func NewYahooQuotes() *YahooQuotes {
	return &YahooQuotes{fetch: quote.Get}
}

// GetQuote はYahoo Financeからシンボルのライブクォートを取得します。
func (y *YahooQuotes) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q, err := y.fetch(symbol)
	if err != nil {
		return nil, fmt.Errorf("yahoo: %w", err)
	}
	if q == nil || q.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("yahoo: empty quote for %s", symbol)
	}

	return toEntity(symbol, q), nil
}

// toEntity はYahooのクォートをドメインエンティティに変換します。
func toEntity(symbol string, q *finance.Quote) *entity.Quote {
	ts := time.Now().UTC()
	if q.RegularMarketTime > 0 {
		ts = time.Unix(int64(q.RegularMarketTime), 0).UTC()
	}
	return &entity.Quote{
		Symbol:        symbol,
		Price:         q.RegularMarketPrice,
		PreviousClose: q.RegularMarketPreviousClose,
		Change:        q.RegularMarketChange,
		ChangePercent: q.RegularMarketChangePercent,
		Volume:        int64(q.RegularMarketVolume),
		Time:          ts,
	}
}
