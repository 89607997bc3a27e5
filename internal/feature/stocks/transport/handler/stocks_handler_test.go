package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_backend/internal/feature/stocks/domain/entity"
	"portfolio_backend/internal/feature/stocks/transport/handler"
	"portfolio_backend/internal/feature/stocks/usecase"
)

// mockStocksUsecase は関数フィールドで挙動を差し替えられるモックです。
type mockStocksUsecase struct {
	listStocksFunc       func(ctx context.Context, offset, limit int) ([]entity.StockView, error)
	createStockFunc      func(ctx context.Context, symbol, name string, price float64) (*entity.StockView, error)
	getLiveQuoteFunc     func(ctx context.Context, symbol string) (*entity.Quote, error)
	refreshAllPricesFunc func(ctx context.Context) (int, error)
	listHoldingsFunc     func(ctx context.Context, offset, limit int) ([]entity.HoldingView, error)
	createHoldingFunc    func(ctx context.Context, stockID uint, quantity int64) (*entity.Holding, error)
	addStockFunc         func(ctx context.Context, symbol, name string, price float64, quantity int64) (*entity.StockView, *entity.Holding, error)
	marketSummaryFunc    func(ctx context.Context) (*entity.MarketSummary, error)
}

func (m *mockStocksUsecase) ListStocks(ctx context.Context, offset, limit int) ([]entity.StockView, error) {
	return m.listStocksFunc(ctx, offset, limit)
}

func (m *mockStocksUsecase) CreateStock(ctx context.Context, symbol, name string, price float64) (*entity.StockView, error) {
	return m.createStockFunc(ctx, symbol, name, price)
}

func (m *mockStocksUsecase) GetLiveQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	return m.getLiveQuoteFunc(ctx, symbol)
}

func (m *mockStocksUsecase) RefreshAllPrices(ctx context.Context) (int, error) {
	return m.refreshAllPricesFunc(ctx)
}

func (m *mockStocksUsecase) ListHoldings(ctx context.Context, offset, limit int) ([]entity.HoldingView, error) {
	return m.listHoldingsFunc(ctx, offset, limit)
}

func (m *mockStocksUsecase) CreateHolding(ctx context.Context, stockID uint, quantity int64) (*entity.Holding, error) {
	return m.createHoldingFunc(ctx, stockID, quantity)
}

func (m *mockStocksUsecase) AddStock(ctx context.Context, symbol, name string, price float64, quantity int64) (*entity.StockView, *entity.Holding, error) {
	return m.addStockFunc(ctx, symbol, name, price, quantity)
}

func (m *mockStocksUsecase) MarketSummary(ctx context.Context) (*entity.MarketSummary, error) {
	return m.marketSummaryFunc(ctx)
}

var _ handler.StocksUsecase = (*mockStocksUsecase)(nil)

func sampleView() entity.StockView {
	return entity.StockView{
		Stock: entity.Stock{
			ID:          1,
			Symbol:      "AAPL",
			Name:        "Apple Inc.",
			LastUpdated: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		Valuation: entity.Valuation{
			Price:           150,
			PreviousClose:   148,
			Quantity:        10,
			DaysGain:        20,
			DaysGainPercent: 1.3513513513513513,
			TotalValue:      1500,
			Sentiment:       0.4,
			SentimentLabel:  "Positive",
			ImpactLabel:     "Small",
		},
	}
}

func TestListStocksHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("一覧と派生フィールドを返す", func(t *testing.T) {
		mock := &mockStocksUsecase{
			listStocksFunc: func(ctx context.Context, offset, limit int) ([]entity.StockView, error) {
				assert.Equal(t, 0, offset)
				assert.Equal(t, 25, limit)
				return []entity.StockView{sampleView()}, nil
			},
		}
		h := handler.NewStocksHandler(mock)

		r := gin.New()
		r.GET("/stocks", h.ListStocksHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/stocks?limit=25", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, "AAPL", body[0]["symbol"])
		assert.Equal(t, 150.0, body[0]["price"])
		assert.Equal(t, 148.0, body[0]["previous_close"])
		assert.Equal(t, 20.0, body[0]["days_gain"])
		assert.Equal(t, 1500.0, body[0]["total_value"])
		assert.Equal(t, "Positive", body[0]["sentiment_label"])
		assert.Equal(t, "Small", body[0]["impact_label"])
		assert.Equal(t, "2025-06-01T12:00:00Z", body[0]["last_updated"])
	})

	t.Run("usecase失敗時は500", func(t *testing.T) {
		mock := &mockStocksUsecase{
			listStocksFunc: func(ctx context.Context, offset, limit int) ([]entity.StockView, error) {
				return nil, errors.New("db down")
			},
		}
		h := handler.NewStocksHandler(mock)

		r := gin.New()
		r.GET("/stocks", h.ListStocksHandler)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stocks", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"failed to list stocks"}`, w.Body.String())
	})
}

func TestCreateStockHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		body       string
		mockErr    error
		wantStatus int
	}{
		{
			name:       "正常に登録できる",
			body:       `{"symbol":"aapl","name":"Apple Inc.","price":150}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "シンボル重複は409",
			body:       `{"symbol":"AAPL"}`,
			mockErr:    usecase.ErrSymbolAlreadyExists,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "シンボル欠落は400",
			body:       `{"name":"Apple Inc."}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "その他の失敗は500",
			body:       `{"symbol":"AAPL"}`,
			mockErr:    errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockStocksUsecase{
				createStockFunc: func(ctx context.Context, symbol, name string, price float64) (*entity.StockView, error) {
					if tt.mockErr != nil {
						return nil, tt.mockErr
					}
					v := sampleView()
					return &v, nil
				},
			}
			h := handler.NewStocksHandler(mock)

			r := gin.New()
			r.POST("/stocks", h.CreateStockHandler)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/stocks", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestGetLiveQuoteHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ライブ株価を返す", func(t *testing.T) {
		mock := &mockStocksUsecase{
			getLiveQuoteFunc: func(ctx context.Context, symbol string) (*entity.Quote, error) {
				assert.Equal(t, "AAPL", symbol)
				return &entity.Quote{
					Symbol:        "AAPL",
					Price:         151.5,
					PreviousClose: 150,
					Change:        1.5,
					ChangePercent: 1,
					Volume:        123456,
					Time:          time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
				}, nil
			},
		}
		h := handler.NewStocksHandler(mock)

		r := gin.New()
		r.GET("/stocks/:symbol/live", h.GetLiveQuoteHandler)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stocks/AAPL/live", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"symbol":"AAPL","price":151.5,"previous_close":150,
			"change":1.5,"change_percent":1,"volume":123456,
			"time":"2025-06-01T12:00:00Z"
		}`, w.Body.String())
	})

	t.Run("全プロバイダー失敗は404", func(t *testing.T) {
		mock := &mockStocksUsecase{
			getLiveQuoteFunc: func(ctx context.Context, symbol string) (*entity.Quote, error) {
				return nil, usecase.ErrQuoteUnavailable
			},
		}
		h := handler.NewStocksHandler(mock)

		r := gin.New()
		r.GET("/stocks/:symbol/live", h.GetLiveQuoteHandler)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stocks/ZZZZ/live", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"quote unavailable"}`, w.Body.String())
	})
}

func TestUpdateAllPricesHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mock := &mockStocksUsecase{
		refreshAllPricesFunc: func(ctx context.Context) (int, error) {
			return 3, nil
		},
	}
	h := handler.NewStocksHandler(mock)

	r := gin.New()
	r.POST("/stocks/update-all", h.UpdateAllPricesHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/stocks/update-all", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated":3}`, w.Body.String())
}

func TestCreateHoldingHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		body       string
		mockErr    error
		wantStatus int
	}{
		{
			name:       "正常に追加できる",
			body:       `{"stock_id":1,"quantity":10}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "銘柄が存在しなければ404",
			body:       `{"stock_id":99,"quantity":10}`,
			mockErr:    usecase.ErrStockNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "負の数量は400",
			body:       `{"stock_id":1,"quantity":-5}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockStocksUsecase{
				createHoldingFunc: func(ctx context.Context, stockID uint, quantity int64) (*entity.Holding, error) {
					if tt.mockErr != nil {
						return nil, tt.mockErr
					}
					return &entity.Holding{ID: 5, StockID: stockID, Quantity: quantity}, nil
				},
			}
			h := handler.NewStocksHandler(mock)

			r := gin.New()
			r.POST("/portfolio", h.CreateHoldingHandler)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/portfolio", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.JSONEq(t, `{"id":5,"stock_id":1,"quantity":10}`, w.Body.String())
			}
		})
	}
}

func TestAddStockHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("銘柄と保有を同時に作成する", func(t *testing.T) {
		mock := &mockStocksUsecase{
			addStockFunc: func(ctx context.Context, symbol, name string, price float64, quantity int64) (*entity.StockView, *entity.Holding, error) {
				assert.Equal(t, "AAPL", symbol)
				assert.Equal(t, int64(10), quantity)
				v := sampleView()
				return &v, &entity.Holding{ID: 5, StockID: 1, Quantity: 10}, nil
			},
		}
		h := handler.NewStocksHandler(mock)

		r := gin.New()
		r.POST("/add-stock", h.AddStockHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/add-stock",
			strings.NewReader(`{"symbol":"AAPL","name":"Apple Inc.","price":150,"quantity":10}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body, "stock")
		assert.Contains(t, body, "holding")
	})

	t.Run("保有が返らない場合はholdingフィールドを含めない", func(t *testing.T) {
		mock := &mockStocksUsecase{
			addStockFunc: func(ctx context.Context, symbol, name string, price float64, quantity int64) (*entity.StockView, *entity.Holding, error) {
				v := sampleView()
				return &v, nil, nil
			},
		}
		h := handler.NewStocksHandler(mock)

		r := gin.New()
		r.POST("/add-stock", h.AddStockHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/add-stock",
			strings.NewReader(`{"symbol":"AAPL","quantity":0}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body, "stock")
		assert.NotContains(t, body, "holding")
	})

	t.Run("シンボル重複は409", func(t *testing.T) {
		mock := &mockStocksUsecase{
			addStockFunc: func(ctx context.Context, symbol, name string, price float64, quantity int64) (*entity.StockView, *entity.Holding, error) {
				return nil, nil, usecase.ErrSymbolAlreadyExists
			},
		}
		h := handler.NewStocksHandler(mock)

		r := gin.New()
		r.POST("/add-stock", h.AddStockHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/add-stock", strings.NewReader(`{"symbol":"AAPL"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestMarketSummaryHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mock := &mockStocksUsecase{
		marketSummaryFunc: func(ctx context.Context) (*entity.MarketSummary, error) {
			return &entity.MarketSummary{
				TotalValue:  12345.5,
				TotalChange: 250,
				StockCount:  4,
				LastUpdated: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	h := handler.NewStocksHandler(mock)

	r := gin.New()
	r.GET("/market-summary", h.MarketSummaryHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/market-summary", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"total_value":12345.5,"total_change":250,
		"stock_count":4,"last_updated":"2025-06-01T12:00:00Z"
	}`, w.Body.String())
}
