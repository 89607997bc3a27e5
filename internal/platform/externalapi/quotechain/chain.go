// Package quotechain composes multiple quote sources into a fallback chain.
package quotechain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"portfolio_backend/internal/feature/stocks/domain/entity"
	"portfolio_backend/internal/feature/stocks/usecase"
)

// Source は名前付きのクォート取得元です。
type Source struct {
	Name string
	Repo usecase.QuoteRepository
}

// Chain は複数のクォート取得元を優先順に試すQuoteRepository実装です。
// 取得元の選択はリクエストごとに行われ、先頭の取得元が復旧すれば
// 自動的にそちらへ戻ります。
type Chain struct {
	sources []Source
}

var _ usecase.QuoteRepository = (*Chain)(nil)

// NewChain は指定された取得元のチェーンを生成します。
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

// GetQuote は先頭から順に取得元を試し、最初に成功した結果を返します。
// 全滅した場合は各取得元のエラーを結合して返します。
func (c *Chain) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	if len(c.sources) == 0 {
		return nil, fmt.Errorf("quotechain: no sources configured")
	}

	var errs []error
	for _, s := range c.sources {
		q, err := s.Repo.GetQuote(ctx, symbol)
		if err == nil {
			return q, nil
		}
		slog.Warn("quote source failed, trying next", "source", s.Name, "symbol", symbol, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))

		// コンテキスト起因の失敗は後続を試しても無駄なので打ち切る
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("quotechain: all sources failed for %s: %w", symbol, errors.Join(errs...))
}
