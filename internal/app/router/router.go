package router

import (
	authhandler "secondchance_backend/internal/feature/auth/transport/handler"
	itemshandler "secondchance_backend/internal/feature/items/transport/handler"
	"secondchance_backend/internal/platform/http/handler"
	jwtmw "secondchance_backend/internal/platform/jwt"
	"secondchance_backend/internal/platform/ratelimit"

	"github.com/gin-gonic/gin"
)

func NewRouter(authHandler *authhandler.AuthHandler, items *itemshandler.ItemsHandler,
	limiter *ratelimit.Limiter, imageDir string) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", handler.Health)

	// アップロード済み画像の配信
	r.Static("/images", imageDir)

	auth := r.Group("/auth")
	{
		// 新規ユーザー登録・ログインはレートリミットを適用
		auth.POST("/register", limiter.Middleware(), authHandler.Register)
		auth.POST("/login", limiter.Middleware(), authHandler.Login)
		// プロフィール更新（email ヘッダーで対象ユーザーを指定）
		auth.PUT("/update", authHandler.Update)
		// 認証必須
		// → リクエストヘッダーに JWT が必要になる
		auth.GET("/profile", jwtmw.AuthRequired(), authHandler.Profile)
	}

	itemRoutes := r.Group("/items")
	{
		itemRoutes.GET("", items.List)
		itemRoutes.POST("", items.Create)
		itemRoutes.GET("/:id", items.GetByID)
		itemRoutes.PUT("/:id", items.Update)
		itemRoutes.DELETE("/:id", items.Delete)
	}

	return r
}
