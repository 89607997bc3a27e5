// Package adapters はstocksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"portfolio_backend/internal/feature/stocks/domain/entity"
	"portfolio_backend/internal/feature/stocks/usecase"

	newsusecase "portfolio_backend/internal/feature/news/usecase"
)

// uniqueViolation はPostgreSQLのunique_violationエラーコードです。
const uniqueViolation = "23505"

// stockPostgres はStockRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type stockPostgres struct {
	db *gorm.DB
}

// stockPostgresが各インターフェースを実装していることをコンパイル時に検証します。
var (
	_ usecase.StockRepository  = (*stockPostgres)(nil)
	_ newsusecase.StockCatalog = (*stockPostgres)(nil)
)

// NewStockRepository は指定されたgorm.DB接続でstockPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewStockRepository(db *gorm.DB) *stockPostgres {
	return &stockPostgres{db: db}
}

// Create は銘柄をデータベースに追加します。
// 同じシンボルの銘柄が既に存在する場合、usecase.ErrSymbolAlreadyExistsを返します。
func (r *stockPostgres) Create(ctx context.Context, stock *entity.Stock) error {
	if err := r.db.WithContext(ctx).Create(stock).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrSymbolAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID はIDで銘柄を取得します。
// 銘柄が存在しない場合、usecase.ErrStockNotFoundを返します。
func (r *stockPostgres) FindByID(ctx context.Context, id uint) (*entity.Stock, error) {
	var s entity.Stock
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrStockNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindBySymbol はティッカーシンボルで銘柄を取得します。
// 銘柄が存在しない場合、usecase.ErrStockNotFoundを返します。
func (r *stockPostgres) FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	var s entity.Stock
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrStockNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List はシンボル昇順で銘柄の一覧を返します。limitが0以下の場合は全件を返します。
func (r *stockPostgres) List(ctx context.Context, offset, limit int) ([]entity.Stock, error) {
	var stocks []entity.Stock
	q := r.db.WithContext(ctx).Order("symbol ASC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// ListAll はニュース一括取り込み用に全銘柄を返します。
func (r *stockPostgres) ListAll(ctx context.Context) ([]entity.Stock, error) {
	return r.List(ctx, 0, 0)
}

// UpdatePrices は保存済みの価格と前日終値を差し替えます。
// 対象行が無い場合、usecase.ErrStockNotFoundを返します。
func (r *stockPostgres) UpdatePrices(ctx context.Context, id uint, price, previousClose float64) error {
	res := r.db.WithContext(ctx).Model(&entity.Stock{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"price":          price,
			"previous_close": previousClose,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrStockNotFound
	}
	return nil
}

// UpdateSentiment は銘柄の集計センチメントを書き戻します。
func (r *stockPostgres) UpdateSentiment(ctx context.Context, id uint, sentiment float64) error {
	res := r.db.WithContext(ctx).Model(&entity.Stock{}).
		Where("id = ?", id).
		Update("sentiment", sentiment)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrStockNotFound
	}
	return nil
}

// isDuplicateKey はユニーク制約違反かどうかをドライバ横断で判定します。
// 本番のPostgreSQLではpgconn.PgError、テスト用SQLiteではGORMの変換エラーになります。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
