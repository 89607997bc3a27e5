package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"portfolio_backend/internal/app/di"
	"portfolio_backend/internal/app/router"
	authadapters "portfolio_backend/internal/feature/auth/adapters"
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	authusecase "portfolio_backend/internal/feature/auth/usecase"
	newsadapters "portfolio_backend/internal/feature/news/adapters"
	newshandler "portfolio_backend/internal/feature/news/transport/handler"
	newsusecase "portfolio_backend/internal/feature/news/usecase"
	stocksadapters "portfolio_backend/internal/feature/stocks/adapters"
	stockshandler "portfolio_backend/internal/feature/stocks/transport/handler"
	stocksusecase "portfolio_backend/internal/feature/stocks/usecase"
	infradb "portfolio_backend/internal/platform/db"
	jwtmw "portfolio_backend/internal/platform/jwt"
	infraredis "portfolio_backend/internal/platform/redis"
	"portfolio_backend/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	stockRepo := stocksadapters.NewStockRepository(db)
	holdingRepo := stocksadapters.NewHoldingRepository(db)
	newsRepo := newsadapters.NewNewsRepository(db)

	// 外部プロバイダー（クォートチェーン + ニュースソース）
	quoteRepo := di.NewQuoteRepository(rdb)
	articleProvider := di.NewArticleProvider()

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	newsUC := newsusecase.NewNewsUsecase(articleProvider, newsRepo, stockRepo,
		ratelimiter.NewIntervalPacer(time.Second))
	stocksUC := stocksusecase.NewStockUsecase(stockRepo, holdingRepo, quoteRepo,
		newsRepo, newsUC, ratelimiter.NewIntervalPacer(200*time.Millisecond))

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	stocksH := stockshandler.NewStocksHandler(stocksUC)
	newsH := newshandler.NewNewsHandler(newsUC)

	// ルータ生成（CORS込み）
	router := router.NewRouter(authH, stocksH, newsH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
