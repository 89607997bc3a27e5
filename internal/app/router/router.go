package router

import (
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	newshandler "portfolio_backend/internal/feature/news/transport/handler"
	stockshandler "portfolio_backend/internal/feature/stocks/transport/handler"
	platformhandler "portfolio_backend/internal/platform/http/handler"
	jwtmw "portfolio_backend/internal/platform/jwt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(authHandler *authhandler.AuthHandler, stocks *stockshandler.StocksHandler,
	news *newshandler.NewsHandler) *gin.Engine {
	r := gin.Default()

	// CORS はルート登録前に適用する（登録後のUseは各ルートのチェーンに入らない）
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 読み取り系は認証不要
	r.GET("/stocks", stocks.ListStocksHandler)
	r.GET("/stocks/:symbol/live", stocks.GetLiveQuoteHandler)
	r.GET("/portfolio", stocks.ListHoldingsHandler)
	r.GET("/market-summary", stocks.MarketSummaryHandler)
	r.GET("/news", news.ListNewsHandler)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/stocks", stocks.CreateStockHandler)
		auth.POST("/stocks/update-all", stocks.UpdateAllPricesHandler)
		auth.POST("/portfolio", stocks.CreateHoldingHandler)
		auth.POST("/add-stock", stocks.AddStockHandler)
		auth.POST("/news/refresh", news.RefreshNewsHandler)
	}

	return r
}
