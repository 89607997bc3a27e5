// Package mockmarket provides deterministic local fallbacks for quotes and
// news, used when no external API key is configured or all providers fail.
package mockmarket

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sync"
	"time"

	newsentity "portfolio_backend/internal/feature/news/domain/entity"
	newsusecase "portfolio_backend/internal/feature/news/usecase"
	"portfolio_backend/internal/feature/stocks/domain/entity"
	"portfolio_backend/internal/feature/stocks/usecase"
)

// basePrice はシンボル未登録時の基準価格です。
const basePrice = 100.0

// MockMarket はランダムウォークのクォートと定型文ニュースを生成します。
// シンボルごとに前回価格を保持するため、連続呼び出しで価格が連続的に動きます。
type MockMarket struct {
	mu   sync.Mutex
	last map[string]float64
	rng  *rand.Rand
	now  func() time.Time
}

var (
	_ usecase.QuoteRepository    = (*MockMarket)(nil)
	_ newsusecase.ArticleProvider = (*MockMarket)(nil)
)

// NewMockMarket はMockMarketの新しいインスタンスを生成します。
func NewMockMarket() *MockMarket {
	return &MockMarket{
		last: make(map[string]float64),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}
}

// GetQuote はシンボルの疑似クォートを返します。初回はシンボルのハッシュから
// 基準価格を決め、以降は±2%のランダムウォークで動かします。
func (m *MockMarket) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prev, ok := m.last[symbol]
	if !ok {
		prev = seedPrice(symbol)
	}

	// ±2%のランダムウォーク
	price := prev * (1 + (m.rng.Float64()-0.5)*0.04)
	m.last[symbol] = price

	change := price - prev
	changePercent := 0.0
	if prev != 0 {
		changePercent = change / prev * 100
	}

	return &entity.Quote{
		Symbol:        symbol,
		Price:         price,
		PreviousClose: prev,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        int64(m.rng.Intn(9_000_000) + 1_000_000),
		Time:          m.now().UTC(),
	}, nil
}

// FetchRecent はシンボルに紐づく定型文ニュースを生成します。
// 見出しにポジティブ・ネガティブ両方の語彙を混ぜ、スコアラーが
// 非自明な値を返すようにしています。
func (m *MockMarket) FetchRecent(ctx context.Context, symbol string, max int) ([]newsentity.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	templates := []struct {
		headline string
		content  string
	}{
		{
			headline: "%s beats quarterly expectations",
			content:  "%s reported strong earnings that beat analyst expectations, with impressive revenue growth and an optimistic outlook for the next quarter.",
		},
		{
			headline: "%s faces regulatory scrutiny",
			content:  "Regulators announced a probe into %s business practices, raising concerns about potential fines and a negative impact on future profits.",
		},
		{
			headline: "Analysts remain divided on %s",
			content:  "Some analysts praise %s solid fundamentals while others warn that the stock looks overvalued after its recent rally.",
		},
	}

	if max > len(templates) {
		max = len(templates)
	}
	now := m.now().UTC()

	articles := make([]newsentity.Article, 0, max)
	for i := 0; i < max; i++ {
		t := templates[i]
		articles = append(articles, newsentity.Article{
			Headline:    fmt.Sprintf(t.headline, symbol),
			Content:     fmt.Sprintf(t.content, symbol),
			Source:      "Mock Wire",
			PublishedAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	return articles, nil
}

// seedPrice はシンボルのハッシュから50〜550の範囲の基準価格を導出します。
// 同じシンボルは常に同じ基準価格から始まります。
func seedPrice(symbol string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return basePrice/2 + float64(h.Sum32()%500)
}
