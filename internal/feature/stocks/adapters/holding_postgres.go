package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portfolio_backend/internal/feature/stocks/domain/entity"
	"portfolio_backend/internal/feature/stocks/usecase"
)

// holdingPostgres はHoldingRepositoryインターフェースのPostgreSQL実装です。
type holdingPostgres struct {
	db *gorm.DB
}

var _ usecase.HoldingRepository = (*holdingPostgres)(nil)

// NewHoldingRepository は指定されたgorm.DB接続でholdingPostgresの新しいインスタンスを生成します。
func NewHoldingRepository(db *gorm.DB) *holdingPostgres {
	return &holdingPostgres{db: db}
}

// Create は保有行をデータベースに追加します。
func (r *holdingPostgres) Create(ctx context.Context, holding *entity.Holding) error {
	return r.db.WithContext(ctx).Create(holding).Error
}

// List はID昇順で保有の一覧を返します。limitが0以下の場合は全件を返します。
func (r *holdingPostgres) List(ctx context.Context, offset, limit int) ([]entity.Holding, error) {
	var holdings []entity.Holding
	q := r.db.WithContext(ctx).Order("id ASC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&holdings).Error; err != nil {
		return nil, err
	}
	return holdings, nil
}

// FindByStockID は銘柄に対応する保有行を取得します。
// 保有行が無い場合、usecase.ErrHoldingNotFoundを返します。
func (r *holdingPostgres) FindByStockID(ctx context.Context, stockID uint) (*entity.Holding, error) {
	var h entity.Holding
	if err := r.db.WithContext(ctx).Where("stock_id = ?", stockID).First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrHoldingNotFound
		}
		return nil, err
	}
	return &h, nil
}
