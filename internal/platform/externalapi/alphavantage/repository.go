package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"portfolio_backend/internal/feature/stocks/domain/entity"
	"portfolio_backend/internal/feature/stocks/usecase"
	"portfolio_backend/internal/platform/externalapi/alphavantage/dto"
)

// AlphaVantageQuotes はAlpha Vantage外部APIからライブクォートを取得する
// QuoteRepository実装です。
type AlphaVantageQuotes struct {
	cfg    Config
	client *http.Client
}

// AlphaVantageQuotesがQuoteRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.QuoteRepository = (*AlphaVantageQuotes)(nil)

// NewAlphaVantageQuotes は指定された設定とHTTPクライアントでAlphaVantageQuotesの新しいインスタンスを生成します。
func NewAlphaVantageQuotes(cfg Config, client *http.Client) *AlphaVantageQuotes {
	return &AlphaVantageQuotes{cfg: cfg, client: client}
}

// GetQuote はGLOBAL_QUOTEエンドポイントからシンボルのライブクォートを取得します。
// レート制限（Noteフィールド）と空レスポンスはエラーとして返し、呼び出し元の
// フォールバックチェーンに委ねます。
func (a *AlphaVantageQuotes) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", a.cfg.APIKey)

	u := fmt.Sprintf("%s/query?%s", a.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("alphavantage http %d", res.StatusCode)
	}

	var body dto.GlobalQuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.ErrorMessage != "" {
		return nil, fmt.Errorf("alphavantage: %s", body.ErrorMessage)
	}
	// レート制限超過時はHTTP 200でNoteだけが返る
	if body.Note != "" {
		return nil, fmt.Errorf("alphavantage rate limited: %s", body.Note)
	}
	if body.GlobalQuote.Price == "" {
		return nil, fmt.Errorf("alphavantage: empty quote for %s", symbol)
	}

	price, err := strconv.ParseFloat(body.GlobalQuote.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", body.GlobalQuote.Price, err)
	}

	// 価格以外のフィールドは欠けていても致命的ではないため0に縮退させる
	previousClose := parseFloatOrZero(body.GlobalQuote.PreviousClose)
	change := parseFloatOrZero(body.GlobalQuote.Change)
	changePercent := parseFloatOrZero(strings.TrimSuffix(body.GlobalQuote.ChangePercent, "%"))
	volume, _ := strconv.ParseInt(body.GlobalQuote.Volume, 10, 64)

	return &entity.Quote{
		Symbol:        symbol,
		Price:         price,
		PreviousClose: previousClose,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        volume,
		Time:          time.Now().UTC(),
	}, nil
}

func parseFloatOrZero(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
