// Package adapters はnewsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"portfolio_backend/internal/feature/news/domain/entity"
	"portfolio_backend/internal/feature/news/usecase"
)

// newsPostgres はNewsRepositoryインターフェースのPostgreSQL実装です。
type newsPostgres struct {
	db *gorm.DB
}

var _ usecase.NewsRepository = (*newsPostgres)(nil)

// NewNewsRepository は指定されたgorm.DB接続でnewsPostgresの新しいインスタンスを生成します。
func NewNewsRepository(db *gorm.DB) *newsPostgres {
	return &newsPostgres{db: db}
}

// CreateBatch はニュース記事をまとめて保存します。
func (r *newsPostgres) CreateBatch(ctx context.Context, items []entity.NewsItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// List は公開日時の降順でニュースの一覧を返します。limitが0以下の場合は全件を返します。
func (r *newsPostgres) List(ctx context.Context, offset, limit int) ([]entity.NewsItem, error) {
	var items []entity.NewsItem
	q := r.db.WithContext(ctx).Order("published_at DESC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByStock は銘柄に紐づくニュースを公開日時の降順で返します。
func (r *newsPostgres) ListByStock(ctx context.Context, stockID uint) ([]entity.NewsItem, error) {
	var items []entity.NewsItem
	if err := r.db.WithContext(ctx).
		Where("stock_id = ?", stockID).
		Order("published_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SentimentsByStock は銘柄の保存済みセンチメントスコア列のみを返します。
// 集計用の軽量クエリで、記事本文はロードしません。
func (r *newsPostgres) SentimentsByStock(ctx context.Context, stockID uint) ([]float64, error) {
	var scores []float64
	if err := r.db.WithContext(ctx).
		Model(&entity.NewsItem{}).
		Where("stock_id = ?", stockID).
		Pluck("sentiment", &scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
