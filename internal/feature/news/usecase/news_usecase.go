// Package usecase はnewsフィーチャーのビジネスロジック（取り込みと参照）を実装します。
package usecase

import (
	"context"
	"log/slog"

	"portfolio_backend/internal/feature/news/domain/entity"
	stockentity "portfolio_backend/internal/feature/stocks/domain/entity"
	"portfolio_backend/internal/shared/ratelimiter"
	"portfolio_backend/internal/shared/sentiment"
)

const (
	// DefaultListLimit は一覧取得のデフォルト件数です。
	DefaultListLimit = 100
	// MaxListLimit は一覧取得の最大件数です。
	MaxListLimit = 500

	// maxArticlesPerStock は1銘柄あたり1回の取り込みで保存する記事数の上限です。
	maxArticlesPerStock = 5
)

// ArticleProvider は外部ニュースプロバイダを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ArticleProvider interface {
	// FetchRecent は銘柄の直近記事を最大max件返します。
	FetchRecent(ctx context.Context, symbol string, max int) ([]entity.Article, error)
}

// NewsRepository はニュースレコードの永続化層を抽象化します。
type NewsRepository interface {
	CreateBatch(ctx context.Context, items []entity.NewsItem) error
	List(ctx context.Context, offset, limit int) ([]entity.NewsItem, error)
	ListByStock(ctx context.Context, stockID uint) ([]entity.NewsItem, error)
	// SentimentsByStock は銘柄の保存済みセンチメントスコア列を返します。
	SentimentsByStock(ctx context.Context, stockID uint) ([]float64, error)
}

// StockCatalog は取り込み対象の銘柄一覧と、取り込み後の軽量な
// センチメント書き戻しを抽象化します。
type StockCatalog interface {
	ListAll(ctx context.Context) ([]stockentity.Stock, error)
	UpdateSentiment(ctx context.Context, stockID uint, sentiment float64) error
}

// NewsUsecase はニュースの取り込み・一括スイープ・参照を提供します。
type NewsUsecase struct {
	provider ArticleProvider
	repo     NewsRepository
	catalog  StockCatalog
	pacer    ratelimiter.Pacer
}

// NewNewsUsecase はNewsUsecaseの新しいインスタンスを生成します。
func NewNewsUsecase(provider ArticleProvider, repo NewsRepository, catalog StockCatalog,
	pacer ratelimiter.Pacer) *NewsUsecase {
	return &NewsUsecase{provider: provider, repo: repo, catalog: catalog, pacer: pacer}
}

// IngestForStock は1銘柄のニュースを取得し、取り込み時点でセンチメントを
// スコアリングして保存します。保存後、銘柄の集計センチメントを再計算して
// 書き戻します（ライブクォート不要の軽量リフレッシュ）。
//
// プロバイダ障害は空リストに縮退し、呼び出し元を失敗させません。
func (u *NewsUsecase) IngestForStock(ctx context.Context, stockID uint, symbol string) (int, error) {
	articles, err := u.provider.FetchRecent(ctx, symbol, maxArticlesPerStock)
	if err != nil {
		slog.Warn("news provider unavailable", "symbol", symbol, "error", err)
		return 0, nil
	}
	if len(articles) == 0 {
		return 0, nil
	}

	items := make([]entity.NewsItem, 0, len(articles))
	for _, a := range articles {
		text := a.Content
		if text == "" {
			text = a.Headline
		}
		score := sentiment.Score(text)
		items = append(items, entity.NewsItem{
			StockID:        stockID,
			Headline:       a.Headline,
			Content:        a.Content,
			Source:         a.Source,
			Sentiment:      score,
			SentimentLabel: sentiment.Label(score),
			ImpactLabel:    sentiment.ItemImpactLabel(score),
			PublishedAt:    a.PublishedAt,
		})
	}

	if err := u.repo.CreateBatch(ctx, items); err != nil {
		return 0, err
	}
	if err := u.refreshStockSentiment(ctx, stockID); err != nil {
		return len(items), err
	}
	return len(items), nil
}

// SweepAll は全銘柄のニュースを順に取り込みます。上流クォータを守るため
// 銘柄間に一定の待機を挟み、銘柄単位の失敗はログに残して続行します。
func (u *NewsUsecase) SweepAll(ctx context.Context) error {
	stocks, err := u.catalog.ListAll(ctx)
	if err != nil {
		return err
	}

	for _, s := range stocks {
		u.pacer.Wait()
		n, err := u.IngestForStock(ctx, s.ID, s.Symbol)
		if err != nil {
			// 1銘柄の失敗でスイープ全体を止めない
			slog.Error("failed to ingest news", "symbol", s.Symbol, "error", err)
			continue
		}
		if n == 0 {
			slog.Info("no news found", "symbol", s.Symbol)
		}
	}
	return nil
}

// ListNews は保存済みニュースの一覧を返します。
func (u *NewsUsecase) ListNews(ctx context.Context, offset, limit int) ([]entity.NewsItem, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = DefaultListLimit
	}
	return u.repo.List(ctx, offset, limit)
}

// ListNewsByStock は1銘柄に紐づく保存済みニュースを新しい順に返します。
func (u *NewsUsecase) ListNewsByStock(ctx context.Context, stockID uint) ([]entity.NewsItem, error) {
	return u.repo.ListByStock(ctx, stockID)
}

// refreshStockSentiment は銘柄の保存済みスコア列の平均を銘柄レコードへ
// 書き戻します。
func (u *NewsUsecase) refreshStockSentiment(ctx context.Context, stockID uint) error {
	scores, err := u.repo.SentimentsByStock(ctx, stockID)
	if err != nil {
		return err
	}
	avg := 0.0
	if len(scores) > 0 {
		for _, s := range scores {
			avg += s
		}
		avg /= float64(len(scores))
	}
	return u.catalog.UpdateSentiment(ctx, stockID, avg)
}
