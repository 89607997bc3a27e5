// Package usecase はstocksフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"portfolio_backend/internal/feature/stocks/domain/entity"
	"portfolio_backend/internal/shared/ratelimiter"
)

const (
	// DefaultListLimit は一覧取得のデフォルト件数です。
	DefaultListLimit = 100
	// MaxListLimit は一覧取得の最大件数です。
	MaxListLimit = 500

	// asyncIngestTimeout は銘柄追加後の非同期ニュース取得の上限時間です。
	asyncIngestTimeout = 30 * time.Second
)

// ErrHoldingNotFound is returned when no holding row exists for a stock.
var ErrHoldingNotFound = errors.New("holding not found")

// StockRepository は銘柄レコードの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type StockRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	FindByID(ctx context.Context, id uint) (*entity.Stock, error)
	FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error)
	List(ctx context.Context, offset, limit int) ([]entity.Stock, error)
	// UpdatePrices は保存済みの価格と前日終値を差し替えます。
	UpdatePrices(ctx context.Context, id uint, price, previousClose float64) error
}

// HoldingRepository は保有レコードの永続化層を抽象化します。
type HoldingRepository interface {
	Create(ctx context.Context, holding *entity.Holding) error
	List(ctx context.Context, offset, limit int) ([]entity.Holding, error)
	// FindByStockID は保有行が無い場合 ErrHoldingNotFound を返します。
	FindByStockID(ctx context.Context, stockID uint) (*entity.Holding, error)
}

// QuoteRepository はライブクォートの取得を抽象化します。
// 実装はプロバイダチェーン（キャッシュ付き）です。
type QuoteRepository interface {
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
}

// QuoteInvalidator はキャッシュ層を持つQuoteRepositoryが任意で実装する
// 無効化フックです。一括更新ではTTL内の古いクォートを保存しないよう、
// 取得前にキャッシュを破棄します。
type QuoteInvalidator interface {
	Invalidate(ctx context.Context, symbol string) error
}

// NewsSentiments は銘柄のニュースセンチメントスコア列の読み取りを抽象化します。
type NewsSentiments interface {
	SentimentsByStock(ctx context.Context, stockID uint) ([]float64, error)
}

// NewsIngestor は銘柄のニュース取り込みを抽象化します。
// 銘柄追加時の同期・非同期フェッチで使用されます。
type NewsIngestor interface {
	IngestForStock(ctx context.Context, stockID uint, symbol string) (int, error)
}

// StockUsecase は銘柄・保有・集計の操作を提供します。
type StockUsecase struct {
	stocks   StockRepository
	holdings HoldingRepository
	quotes   QuoteRepository
	news     NewsSentiments
	ingestor NewsIngestor
	pacer    ratelimiter.Pacer
}

// NewStockUsecase はStockUsecaseの新しいインスタンスを生成します。
func NewStockUsecase(stocks StockRepository, holdings HoldingRepository, quotes QuoteRepository,
	news NewsSentiments, ingestor NewsIngestor, pacer ratelimiter.Pacer) *StockUsecase {
	return &StockUsecase{
		stocks:   stocks,
		holdings: holdings,
		quotes:   quotes,
		news:     news,
		ingestor: ingestor,
		pacer:    pacer,
	}
}

// ListStocks は保存済み銘柄の一覧を、読み取り時に計算した派生ビュー付きで返します。
// 銘柄ごとのライブクォート取得はベストエフォートで、失敗しても一覧は失敗しません。
func (u *StockUsecase) ListStocks(ctx context.Context, offset, limit int) ([]entity.StockView, error) {
	stocks, err := u.stocks.List(ctx, offset, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}

	views := make([]entity.StockView, 0, len(stocks))
	for _, s := range stocks {
		v, err := u.view(ctx, s)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// CreateStock は新しい銘柄を登録します。ライブクォートが取得できた場合は
// 渡された価格よりもクォートの値を優先します。シンボル重複は
// ErrSymbolAlreadyExists になります。
func (u *StockUsecase) CreateStock(ctx context.Context, symbol, name string, price float64) (*entity.StockView, error) {
	symbol = normalizeSymbol(symbol)

	stock := &entity.Stock{Symbol: symbol, Name: name, Price: price}
	if q, err := u.quotes.GetQuote(ctx, symbol); err == nil {
		stock.Price = q.Price
		stock.PreviousClose = q.PreviousClose
	} else {
		slog.Warn("could not fetch live data for new stock", "symbol", symbol, "error", err)
	}

	if err := u.stocks.Create(ctx, stock); err != nil {
		return nil, err
	}

	v, err := u.view(ctx, *stock)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetLiveQuote は1銘柄のライブクォートを返します。
// チェーン内の全プロバイダが失敗した場合は ErrQuoteUnavailable を返します。
func (u *StockUsecase) GetLiveQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	q, err := u.quotes.GetQuote(ctx, normalizeSymbol(symbol))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteUnavailable, symbol)
	}
	return q, nil
}

// RefreshAllPrices は全銘柄の保存価格をライブクォートで更新し、
// 更新できた件数を返します。銘柄単位の失敗はログに残してスキップします。
func (u *StockUsecase) RefreshAllPrices(ctx context.Context) (int, error) {
	stocks, err := u.stocks.List(ctx, 0, 0)
	if err != nil {
		return 0, err
	}

	inv, _ := u.quotes.(QuoteInvalidator)

	updated := 0
	for _, s := range stocks {
		u.pacer.Wait()
		// キャッシュ済みの古いクォートで保存価格を上書きしない
		if inv != nil {
			if err := inv.Invalidate(ctx, s.Symbol); err != nil {
				slog.Warn("could not invalidate cached quote", "symbol", s.Symbol, "error", err)
			}
		}
		q, err := u.quotes.GetQuote(ctx, s.Symbol)
		if err != nil {
			slog.Warn("could not update stock price", "symbol", s.Symbol, "error", err)
			continue
		}
		if err := u.stocks.UpdatePrices(ctx, s.ID, q.Price, q.PreviousClose); err != nil {
			slog.Warn("could not persist refreshed price", "symbol", s.Symbol, "error", err)
			continue
		}
		updated++
	}
	return updated, nil
}

// ListHoldings はポートフォリオの保有一覧を、参照先銘柄のビュー付きで返します。
func (u *StockUsecase) ListHoldings(ctx context.Context, offset, limit int) ([]entity.HoldingView, error) {
	holdings, err := u.holdings.List(ctx, offset, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}

	views := make([]entity.HoldingView, 0, len(holdings))
	for _, h := range holdings {
		stock, err := u.stocks.FindByID(ctx, h.StockID)
		if err != nil {
			return nil, err
		}
		sv, err := u.view(ctx, *stock)
		if err != nil {
			return nil, err
		}
		views = append(views, entity.HoldingView{Holding: h, Stock: sv})
	}
	return views, nil
}

// CreateHolding は既存銘柄への保有行を追加します。
func (u *StockUsecase) CreateHolding(ctx context.Context, stockID uint, quantity int64) (*entity.Holding, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := u.stocks.FindByID(ctx, stockID); err != nil {
		return nil, err
	}

	h := &entity.Holding{StockID: stockID, Quantity: quantity}
	if err := u.holdings.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// AddStock は「銘柄登録 + 保有登録 + 初回ニュース取得」を1操作で行います。
// シンボル重複はストアを変更せずに拒否します。ニュースは同期でベスト
// エフォート取得した後、冗長化のため非同期でもう一度取得します。
func (u *StockUsecase) AddStock(ctx context.Context, symbol, name string, price float64, quantity int64) (*entity.StockView, *entity.Holding, error) {
	symbol = normalizeSymbol(symbol)
	if quantity < 0 {
		return nil, nil, ErrInvalidQuantity
	}
	if _, err := u.stocks.FindBySymbol(ctx, symbol); err == nil {
		return nil, nil, ErrSymbolAlreadyExists
	} else if !errors.Is(err, ErrStockNotFound) {
		return nil, nil, err
	}

	view, err := u.CreateStock(ctx, symbol, name, price)
	if err != nil {
		return nil, nil, err
	}
	stock := view.Stock

	holding := &entity.Holding{StockID: stock.ID, Quantity: quantity}
	if err := u.holdings.Create(ctx, holding); err != nil {
		return nil, nil, err
	}

	// 同期フェッチ: 失敗してもリクエストは成功させる
	if _, err := u.ingestor.IngestForStock(ctx, stock.ID, stock.Symbol); err != nil {
		slog.Warn("initial news fetch failed", "symbol", stock.Symbol, "error", err)
	}

	// 非同期の冗長フェッチ。リクエストのコンテキストには紐付けない。
	go func() {
		bg, cancel := context.WithTimeout(context.Background(), asyncIngestTimeout)
		defer cancel()
		if _, err := u.ingestor.IngestForStock(bg, stock.ID, stock.Symbol); err != nil {
			slog.Warn("background news fetch failed", "symbol", stock.Symbol, "error", err)
		}
	}()

	return view, holding, nil
}

// MarketSummary はポートフォリオ全体の評価額と当日変化をライブクォートで集計します。
// クォートが取れない銘柄は集計から除外します。
func (u *StockUsecase) MarketSummary(ctx context.Context) (*entity.MarketSummary, error) {
	stocks, err := u.stocks.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	summary := &entity.MarketSummary{StockCount: len(stocks), LastUpdated: time.Now()}
	for _, s := range stocks {
		qty, err := u.quantityFor(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		if qty == 0 {
			continue
		}
		q, err := u.quotes.GetQuote(ctx, s.Symbol)
		if err != nil {
			slog.Warn("could not get live data for summary", "symbol", s.Symbol, "error", err)
			continue
		}
		summary.TotalValue += q.Price * float64(qty)
		summary.TotalChange += q.Change * float64(qty)
	}
	return summary, nil
}

// view は1銘柄分の派生ビューを読み取り時に組み立てます。
// クォート取得の失敗は保存値へのフォールバックとして扱い、読み取りを失敗させません。
func (u *StockUsecase) view(ctx context.Context, s entity.Stock) (entity.StockView, error) {
	sentiments, err := u.news.SentimentsByStock(ctx, s.ID)
	if err != nil {
		return entity.StockView{}, err
	}
	qty, err := u.quantityFor(ctx, s.ID)
	if err != nil {
		return entity.StockView{}, err
	}

	quote, err := u.quotes.GetQuote(ctx, s.Symbol)
	if err != nil {
		slog.Warn("live quote unavailable, using stored prices", "symbol", s.Symbol, "error", err)
		quote = nil
	}

	v := Aggregate(ValuationInput{
		NewsSentiments:      sentiments,
		StoredPrice:         s.Price,
		StoredPreviousClose: s.PreviousClose,
		Quote:               quote,
		Quantity:            qty,
	})
	return entity.StockView{Stock: s, Valuation: v}, nil
}

func (u *StockUsecase) quantityFor(ctx context.Context, stockID uint) (int64, error) {
	h, err := u.holdings.FindByStockID(ctx, stockID)
	if errors.Is(err, ErrHoldingNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return h.Quantity, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > MaxListLimit {
		return DefaultListLimit
	}
	return limit
}
