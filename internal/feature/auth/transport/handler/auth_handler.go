// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"secondchance_backend/internal/feature/auth/domain/entity"
	"secondchance_backend/internal/feature/auth/transport/http/dto"
	"secondchance_backend/internal/feature/auth/usecase"
	jwtmw "secondchance_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、ユーザーとトークンを返します。
	Register(ctx context.Context, email, password, firstName, lastName string) (*entity.User, string, error)
	// Login はユーザーを認証し、成功時にユーザーとJWTトークンを返します。
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	// UpdateProfile は指定フィールドのみを更新し、新しいトークンを返します。
	UpdateProfile(ctx context.Context, email string, upd usecase.ProfileUpdate) (string, error)
	// Profile は認証済みユーザーIDのユーザーを取得します。
	Profile(ctx context.Context, userID uint) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー・メール重複時は400を返却
// - 成功時は201でメールアドレスとトークンを返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			slog.Warn("register failed: duplicate email", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, gin.H{"error": "email id already exists"})
		case errors.Is(err, usecase.ErrValidation):
			slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	slog.Info("user registered", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, gin.H{"email": user.Email, "authtoken": token})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（メール未登録とパスワード不一致は区別しない）
// - 成功時はトークン・名前・メールアドレス付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrInvalidCredentials):
			// ユーザー列挙攻撃を防止するため、実際の失敗理由を公開しない
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		default:
			slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	slog.Info("user login successful", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{
		"authtoken": token,
		"userName":  user.FirstName,
		"userEmail": user.Email,
	})
}

// Update はプロフィール更新APIエンドポイントを処理します。
// 対象ユーザーは`email`リクエストヘッダーで識別されます。
// - 供給フィールドの最小文字数違反・ヘッダー欠落時は400を返却
// - ユーザー未検出時は404を返却
// - 成功時は新しいトークン付きで200を返却
func (h *AuthHandler) Update(c *gin.Context) {
	var req dto.UpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	email := c.GetHeader("email")

	token, err := h.auth.UpdateProfile(c.Request.Context(), email, usecase.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			slog.Warn("update validation failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrUserNotFound):
			slog.Warn("update failed: user not found", "email", email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			slog.Error("update failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	slog.Info("profile updated", "email", email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"authtoken": token})
}

// Profile は認証済みユーザー自身のプロフィールを返します。
// AuthRequiredミドルウェアの背後に配置され、コンテキストのユーザーIDを使用します。
func (h *AuthHandler) Profile(c *gin.Context) {
	id, exists := c.Get(jwtmw.ContextUserID)
	userID, ok := id.(uint)
	if !exists || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("profile fetch failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
	})
}
