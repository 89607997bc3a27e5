package main

import (
	"context"
	"log"
	"time"

	"portfolio_backend/internal/app/di"
	newsadapters "portfolio_backend/internal/feature/news/adapters"
	newsusecase "portfolio_backend/internal/feature/news/usecase"
	stocksadapters "portfolio_backend/internal/feature/stocks/adapters"
	infradb "portfolio_backend/internal/platform/db"
	"portfolio_backend/internal/shared/ratelimiter"
)

func main() {

	db := infradb.OpenDB()
	provider := di.NewArticleProvider()
	newsRepo := newsadapters.NewNewsRepository(db)
	stockRepo := stocksadapters.NewStockRepository(db)
	uc := newsusecase.NewNewsUsecase(provider, newsRepo, stockRepo,
		ratelimiter.NewIntervalPacer(time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := uc.SweepAll(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("news sweep ok")
}
