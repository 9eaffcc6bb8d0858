package main

import (
	"log"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"secondchance_backend/internal/app/router"
	authadapters "secondchance_backend/internal/feature/auth/adapters"
	authhandler "secondchance_backend/internal/feature/auth/transport/handler"
	authusecase "secondchance_backend/internal/feature/auth/usecase"
	itemsadapters "secondchance_backend/internal/feature/items/adapters"
	itemshandler "secondchance_backend/internal/feature/items/transport/handler"
	itemsusecase "secondchance_backend/internal/feature/items/usecase"
	"secondchance_backend/internal/platform/config"
	platformdb "secondchance_backend/internal/platform/db"
	jwtmw "secondchance_backend/internal/platform/jwt"
	"secondchance_backend/internal/platform/ratelimit"
	platformredis "secondchance_backend/internal/platform/redis"
	"secondchance_backend/internal/platform/storage"
)

func main() {
	cfg := config.Load()

	// db
	db := platformdb.OpenDB()

	// Redis（REDIS_HOST 未設定ならレートリミットなしで起動）
	var rdb *redisv9.Client
	if cfg.RedisHost != "" {
		if tmp, err := platformredis.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword); err != nil {
			log.Println("[WARN] Redis unavailable. Running without rate limiting.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// 画像ストレージ
	store, err := storage.NewLocalStore(cfg.ImageDir)
	if err != nil {
		log.Fatal(err)
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	itemRepo := itemsadapters.NewItemGorm(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, jwtmw.NewGenerator(cfg.JWTSecret))
	itemsUC := itemsusecase.NewItemsUsecase(itemRepo, store)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	itemsH := itemshandler.NewItemsHandler(itemsUC)

	// 認証エンドポイントのレートリミッタ
	limiter := ratelimit.NewLimiter(rdb, cfg.RateLimitPerMinute, time.Minute)

	// ルータ生成
	router := router.NewRouter(authH, itemsH, limiter, cfg.ImageDir)

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
