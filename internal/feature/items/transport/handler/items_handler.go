// Package handler はitemsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"secondchance_backend/internal/feature/items/domain/entity"
	"secondchance_backend/internal/feature/items/transport/http/dto"
	"secondchance_backend/internal/feature/items/usecase"
	"secondchance_backend/internal/platform/imaging"
)

// ItemsUsecase はアイテム操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ItemsUsecase interface {
	List(ctx context.Context) ([]entity.Item, error)
	Create(ctx context.Context, in usecase.CreateInput, upload *usecase.Upload) (*entity.Item, error)
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, id string, in usecase.UpdateInput) (*entity.Item, error)
	Delete(ctx context.Context, id string) error
}

// ItemsHandler はアイテム操作のHTTPリクエストを処理します。
type ItemsHandler struct {
	items ItemsUsecase
}

// NewItemsHandler はItemsHandlerの新しいインスタンスを生成します。
func NewItemsHandler(items ItemsUsecase) *ItemsHandler {
	return &ItemsHandler{items: items}
}

// List は全アイテムの一覧を返すAPIです。
func (h *ItemsHandler) List(c *gin.Context) {
	items, err := h.items.List(c.Request.Context())
	if err != nil {
		slog.Error("item list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create はアイテム登録APIエンドポイントを処理します。
// マルチパートフォームのフィールドと任意の`file`パートを受け付けます。
// - 画像でないファイルは400を返却
// - 成功時は201で保存済みレコード（内部ID付き）を返却
func (h *ItemsHandler) Create(c *gin.Context) {
	var req dto.CreateItemReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("item create validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var upload *usecase.Upload
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			slog.Error("opening uploaded file failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			slog.Error("reading uploaded file failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		upload = &usecase.Upload{Filename: fileHeader.Filename, Data: data}
	}

	item, err := h.items.Create(c.Request.Context(), usecase.CreateInput{
		Category:    req.Category,
		Condition:   req.Condition,
		AgeDays:     req.AgeDays,
		Description: req.Description,
	}, upload)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedImage) {
			slog.Warn("item create rejected: bad image", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file is not a supported image"})
			return
		}
		slog.Error("item create failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	slog.Info("item created", "id", item.ItemID)
	c.JSON(http.StatusCreated, item)
}

// GetByID はアプリケーションIDで単一アイテムを返すAPIです。
func (h *ItemsHandler) GetByID(c *gin.Context) {
	item, err := h.items.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		slog.Error("item fetch failed", "error", err, "id", c.Param("id"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Update はアイテム更新APIエンドポイントを処理します。
// 結果は{"uploaded":"success"}または{"uploaded":"failed"}の二値のみです。
// - アイテム未検出時は404を返却
func (h *ItemsHandler) Update(c *gin.Context) {
	var req dto.UpdateItemReq
	// ボディ不正時もゼロ値で続行する（省略フィールドはゼロ値で上書きされる契約）
	_ = c.ShouldBindJSON(&req)

	updated, err := h.items.Update(c.Request.Context(), c.Param("id"), usecase.UpdateInput{
		Category:    req.Category,
		Condition:   req.Condition,
		AgeDays:     req.AgeDays,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrItemNotFound) {
			slog.Warn("item update failed: not found", "id", c.Param("id"))
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		slog.Error("item update failed", "error", err, "id", c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"uploaded": "failed"})
		return
	}

	if updated == nil {
		c.JSON(http.StatusOK, gin.H{"uploaded": "failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploaded": "success"})
}

// Delete はアイテム削除APIエンドポイントを処理します。
func (h *ItemsHandler) Delete(c *gin.Context) {
	if err := h.items.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrItemNotFound) {
			slog.Warn("item delete failed: not found", "id", c.Param("id"))
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		slog.Error("item delete failed", "error", err, "id", c.Param("id"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": "success"})
}
