// Package db はGORMによるPostgreSQL接続の初期化を提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "portfolio_backend/internal/feature/auth/domain/entity"
	newsentity "portfolio_backend/internal/feature/news/domain/entity"
	stockentity "portfolio_backend/internal/feature/stocks/domain/entity"
)

// connectTimeout はDB接続リトライ全体の上限時間です。
// コンテナ起動直後はDBが先に上がっていない場合があるため長めに取ります。
const connectTimeout = 60 * time.Second

// Config はデータベース接続設定を保持します。
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	// URL が設定されている場合、他のフィールドより優先されます。
	URL string
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		URL:      os.Getenv("DATABASE_URL"),
	}
}

// BuildDSN は設定からPostgreSQLのDSN文字列を組み立てます。
// URLが設定されている場合はそれをそのまま使用します。
func BuildDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替え可能にします。
type Opener func(dsn string) (*gorm.DB, error)

// gormOpener は本番用のOpenerです。
// TranslateError: 重複キーなどのドライバエラーをGORMの共通エラーへ変換します。
func gormOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry は指定のタイムアウトまで3秒間隔で接続を試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB は環境変数の設定でPostgreSQLへ接続し、必要ならマイグレーションを実行します。
func OpenDB() *gorm.DB {
	dsn := BuildDSN(LoadConfigFromEnv())

	db, err := ConnectWithRetry(dsn, connectTimeout, gormOpener)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&authentity.User{},
			&stockentity.Stock{},
			&stockentity.Holding{},
			&newsentity.NewsItem{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
