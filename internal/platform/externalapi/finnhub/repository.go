package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"portfolio_backend/internal/feature/news/domain/entity"
	"portfolio_backend/internal/feature/news/usecase"
	"portfolio_backend/internal/platform/externalapi/finnhub/dto"
)

// FinnhubNews はFinnhubのcompany-newsエンドポイントから記事を取得する
// ArticleProvider実装です。
type FinnhubNews struct {
	cfg    Config
	client *http.Client
	// now はテストで差し替え可能な現在時刻関数です。
	now func() time.Time
}

// FinnhubNewsがArticleProviderを実装していることをコンパイル時に検証します。
var _ usecase.ArticleProvider = (*FinnhubNews)(nil)

// NewFinnhubNews は指定された設定とHTTPクライアントでFinnhubNewsの新しいインスタンスを生成します。
func NewFinnhubNews(cfg Config, client *http.Client) *FinnhubNews {
	return &FinnhubNews{cfg: cfg, client: client, now: time.Now}
}

// FetchRecent はシンボルの直近記事を最大max件返します。
// 対象期間はConfig.Lookbackで決まります。
func (f *FinnhubNews) FetchRecent(ctx context.Context, symbol string, max int) ([]entity.Article, error) {
	now := f.now().UTC()
	const dateLayout = "2006-01-02"

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("from", now.Add(-f.cfg.Lookback).Format(dateLayout))
	q.Set("to", now.Format(dateLayout))
	q.Set("token", f.cfg.APIKey)

	u := fmt.Sprintf("%s/company-news?%s", f.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("finnhub http %d", res.StatusCode)
	}

	var body []dto.CompanyNewsItem
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	articles := make([]entity.Article, 0, max)
	for _, item := range body {
		if len(articles) >= max {
			break
		}
		// 見出しの無い行はスコアリングできないためスキップ
		if item.Headline == "" {
			continue
		}
		source := item.Source
		if source == "" {
			source = "Finnhub"
		}
		articles = append(articles, entity.Article{
			Headline:    item.Headline,
			Content:     item.Summary,
			Source:      source,
			PublishedAt: time.Unix(item.Datetime, 0).UTC(),
		})
	}
	return articles, nil
}
