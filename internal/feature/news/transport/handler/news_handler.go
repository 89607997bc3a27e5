// Package handler はnewsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/feature/news/domain/entity"
	"portfolio_backend/internal/feature/news/transport/http/dto"
)

// sweepTimeout は非同期スイープ1回あたりの上限時間です。
const sweepTimeout = 5 * time.Minute

// NewsUsecase はニュース操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type NewsUsecase interface {
	ListNews(ctx context.Context, offset, limit int) ([]entity.NewsItem, error)
	ListNewsByStock(ctx context.Context, stockID uint) ([]entity.NewsItem, error)
	SweepAll(ctx context.Context) error
}

// NewsHandler はニュースのHTTPリクエストを処理します。
type NewsHandler struct {
	uc NewsUsecase
}

// NewNewsHandler は指定されたusecaseでNewsHandlerの新しいインスタンスを生成します。
func NewNewsHandler(uc NewsUsecase) *NewsHandler {
	return &NewsHandler{uc: uc}
}

// ListNewsHandler は保存済みニュースを新しい順に返します。
// stock_id を指定すると1銘柄のニュースに絞り込みます。
//
// エンドポイント例:
// GET /news?offset=0&limit=100
// GET /news?stock_id=1
func (h *NewsHandler) ListNewsHandler(c *gin.Context) {
	var items []entity.NewsItem
	var err error

	if raw := c.Query("stock_id"); raw != "" {
		stockID, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock_id"})
			return
		}
		items, err = h.uc.ListNewsByStock(c.Request.Context(), uint(stockID))
	} else {
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		items, err = h.uc.ListNews(c.Request.Context(), offset, limit)
	}
	if err != nil {
		slog.Error("list news failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list news"})
		return
	}

	out := make([]dto.NewsRes, 0, len(items))
	for _, n := range items {
		out = append(out, dto.FromNewsItem(n))
	}
	c.JSON(http.StatusOK, out)
}

// RefreshNewsHandler は全銘柄のニュース取り込みをバックグラウンドで開始します。
// スイープはリクエストのライフサイクルから切り離して実行します。
//
// エンドポイント例:
// POST /news/refresh
func (h *NewsHandler) RefreshNewsHandler(c *gin.Context) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		if err := h.uc.SweepAll(ctx); err != nil {
			slog.Error("news sweep failed", "err", err)
		}
	}()

	c.JSON(http.StatusAccepted, dto.MessageRes{Message: "news refresh started"})
}
