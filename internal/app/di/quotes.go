// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio_backend/internal/feature/stocks/usecase"
	"portfolio_backend/internal/platform/cache"
	"portfolio_backend/internal/platform/externalapi/alphavantage"
	"portfolio_backend/internal/platform/externalapi/mockmarket"
	"portfolio_backend/internal/platform/externalapi/quotechain"
	"portfolio_backend/internal/platform/externalapi/yahoo"
	infrahttp "portfolio_backend/internal/platform/http"
)

// quoteCacheTTL はライブクォートのキャッシュ保持時間です。
const quoteCacheTTL = 60 * time.Second

// NewQuoteRepository builds the quote provider fallback chain and wraps it
// with a Redis cache. Alpha Vantage joins the chain only when an API key is
// configured; Yahoo Finance and the deterministic mock always follow, so a
// quote request degrades instead of failing when an upstream is down.
func NewQuoteRepository(rdb *redis.Client) usecase.QuoteRepository {
	var sources []quotechain.Source

	cfg := alphavantage.LoadConfig()
	if cfg.APIKey != "" {
		client := infrahttp.NewHTTPClient(cfg.Timeout)
		sources = append(sources, quotechain.Source{
			Name: "alphavantage",
			Repo: alphavantage.NewAlphaVantageQuotes(cfg, client),
		})
	} else {
		slog.Info("alpha vantage api key not set; skipping provider")
	}

	sources = append(sources,
		quotechain.Source{Name: "yahoo", Repo: yahoo.NewYahooQuotes()},
		quotechain.Source{Name: "mock", Repo: mockmarket.NewMockMarket()},
	)

	chain := quotechain.NewChain(sources...)
	return cache.NewCachingQuoteRepository(rdb, quoteCacheTTL, chain, "quotes")
}
