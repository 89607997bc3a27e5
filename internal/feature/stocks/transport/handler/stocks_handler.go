// Package handler はstocksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/feature/stocks/domain/entity"
	"portfolio_backend/internal/feature/stocks/transport/http/dto"
	"portfolio_backend/internal/feature/stocks/usecase"
)

// StocksUsecase は銘柄・ポートフォリオ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StocksUsecase interface {
	ListStocks(ctx context.Context, offset, limit int) ([]entity.StockView, error)
	CreateStock(ctx context.Context, symbol, name string, price float64) (*entity.StockView, error)
	GetLiveQuote(ctx context.Context, symbol string) (*entity.Quote, error)
	RefreshAllPrices(ctx context.Context) (int, error)
	ListHoldings(ctx context.Context, offset, limit int) ([]entity.HoldingView, error)
	CreateHolding(ctx context.Context, stockID uint, quantity int64) (*entity.Holding, error)
	AddStock(ctx context.Context, symbol, name string, price float64, quantity int64) (*entity.StockView, *entity.Holding, error)
	MarketSummary(ctx context.Context) (*entity.MarketSummary, error)
}

// StocksHandler は銘柄とポートフォリオのHTTPリクエストを処理します。
type StocksHandler struct {
	uc StocksUsecase
}

// NewStocksHandler は指定されたusecaseでStocksHandlerの新しいインスタンスを生成します。
func NewStocksHandler(uc StocksUsecase) *StocksHandler {
	return &StocksHandler{uc: uc}
}

// ListStocksHandler は登録済み銘柄の一覧を派生値付きで返します。
//
// エンドポイント例:
// GET /stocks?offset=0&limit=100
func (h *StocksHandler) ListStocksHandler(c *gin.Context) {
	offset, limit := pagination(c)

	views, err := h.uc.ListStocks(c.Request.Context(), offset, limit)
	if err != nil {
		slog.Error("list stocks failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list stocks"})
		return
	}

	out := make([]dto.StockRes, 0, len(views))
	for _, v := range views {
		out = append(out, dto.FromStockView(v))
	}
	c.JSON(http.StatusOK, out)
}

// CreateStockHandler は新しい銘柄を登録します。
//
// エンドポイント例:
// POST /stocks
func (h *StocksHandler) CreateStockHandler(c *gin.Context) {
	var req dto.CreateStockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	view, err := h.uc.CreateStock(c.Request.Context(), req.Symbol, req.Name, req.Price)
	if err != nil {
		if errors.Is(err, usecase.ErrSymbolAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "symbol already registered"})
			return
		}
		slog.Error("create stock failed", "symbol", req.Symbol, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create stock"})
		return
	}

	c.JSON(http.StatusCreated, dto.FromStockView(*view))
}

// GetLiveQuoteHandler はプロバイダーチェーン経由でライブ株価を返します。
//
// エンドポイント例:
// GET /stocks/:symbol/live
func (h *StocksHandler) GetLiveQuoteHandler(c *gin.Context) {
	symbol := c.Param("symbol")

	q, err := h.uc.GetLiveQuote(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrQuoteUnavailable) {
			c.JSON(http.StatusNotFound, gin.H{"error": "quote unavailable"})
			return
		}
		slog.Error("live quote failed", "symbol", symbol, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch quote"})
		return
	}

	c.JSON(http.StatusOK, dto.FromQuote(*q))
}

// UpdateAllPricesHandler は全銘柄の保存価格をライブ株価で更新します。
//
// エンドポイント例:
// POST /stocks/update-all
func (h *StocksHandler) UpdateAllPricesHandler(c *gin.Context) {
	updated, err := h.uc.RefreshAllPrices(c.Request.Context())
	if err != nil {
		slog.Error("refresh all prices failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refresh prices"})
		return
	}

	c.JSON(http.StatusOK, dto.UpdateAllRes{Updated: updated})
}

// ListHoldingsHandler はポートフォリオの保有一覧を返します。
//
// エンドポイント例:
// GET /portfolio?offset=0&limit=100
func (h *StocksHandler) ListHoldingsHandler(c *gin.Context) {
	offset, limit := pagination(c)

	views, err := h.uc.ListHoldings(c.Request.Context(), offset, limit)
	if err != nil {
		slog.Error("list holdings failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list holdings"})
		return
	}

	out := make([]dto.HoldingRes, 0, len(views))
	for _, v := range views {
		out = append(out, dto.FromHoldingView(v))
	}
	c.JSON(http.StatusOK, out)
}

// CreateHoldingHandler は既存銘柄への保有行を追加します。
//
// エンドポイント例:
// POST /portfolio
func (h *StocksHandler) CreateHoldingHandler(c *gin.Context) {
	var req dto.CreateHoldingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	holding, err := h.uc.CreateHolding(c.Request.Context(), req.StockID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrStockNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "stock not found"})
		case errors.Is(err, usecase.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must not be negative"})
		default:
			slog.Error("create holding failed", "stock_id", req.StockID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create holding"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       holding.ID,
		"stock_id": holding.StockID,
		"quantity": holding.Quantity,
	})
}

// AddStockHandler は銘柄登録と保有追加とニュース取り込みを一度に行います。
//
// エンドポイント例:
// POST /add-stock
func (h *StocksHandler) AddStockHandler(c *gin.Context) {
	var req dto.AddStockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	view, holding, err := h.uc.AddStock(c.Request.Context(), req.Symbol, req.Name, req.Price, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSymbolAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "symbol already registered"})
		case errors.Is(err, usecase.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must not be negative"})
		default:
			slog.Error("add stock failed", "symbol", req.Symbol, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add stock"})
		}
		return
	}

	res := gin.H{"stock": dto.FromStockView(*view)}
	if holding != nil {
		res["holding"] = gin.H{
			"id":       holding.ID,
			"stock_id": holding.StockID,
			"quantity": holding.Quantity,
		}
	}
	c.JSON(http.StatusCreated, res)
}

// MarketSummaryHandler はポートフォリオ全体の集計を返します。
//
// エンドポイント例:
// GET /market-summary
func (h *StocksHandler) MarketSummaryHandler(c *gin.Context) {
	summary, err := h.uc.MarketSummary(c.Request.Context())
	if err != nil {
		slog.Error("market summary failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build market summary"})
		return
	}

	c.JSON(http.StatusOK, dto.MarketSummaryRes{
		TotalValue:  summary.TotalValue,
		TotalChange: summary.TotalChange,
		StockCount:  summary.StockCount,
		LastUpdated: summary.LastUpdated.UTC().Format(time.RFC3339),
	})
}

// pagination はoffset/limitクエリパラメータを解釈します。不正値は0扱いです。
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	return offset, limit
}
