package di

import (
	"log/slog"

	newsusecase "portfolio_backend/internal/feature/news/usecase"
	"portfolio_backend/internal/platform/externalapi/finnhub"
	"portfolio_backend/internal/platform/externalapi/mockmarket"
	infrahttp "portfolio_backend/internal/platform/http"
)

// NewArticleProvider returns the news source for ingestion.
// Finnhub is used when an API key is configured; otherwise the
// deterministic mock provider keeps development environments working.
func NewArticleProvider() newsusecase.ArticleProvider {
	cfg := finnhub.LoadConfig()
	if cfg.APIKey == "" {
		slog.Info("finnhub api key not set; using mock news provider")
		return mockmarket.NewMockMarket()
	}
	return finnhub.NewFinnhubNews(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}
