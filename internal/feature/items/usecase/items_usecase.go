// Package usecase はitemsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"time"

	"secondchance_backend/internal/feature/items/domain/entity"
	"secondchance_backend/internal/platform/imaging"
)

// ItemRepository はアイテムエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ItemRepository interface {
	// List はすべてのアイテムをストア順で返します。
	List(ctx context.Context) ([]entity.Item, error)

	// CreateNext は次の連番アプリケーションIDを採番してアイテムを永続化します。
	// 採番と挿入は同一トランザクションで行われます。
	CreateNext(ctx context.Context, item *entity.Item) error

	// FindByItemID はアプリケーションIDでアイテムを取得します。
	// 存在しない場合、ErrItemNotFoundを返します。
	FindByItemID(ctx context.Context, itemID string) (*entity.Item, error)

	// Update は変更を保存し、保存後のレコードを再取得して返します。
	Update(ctx context.Context, item *entity.Item) (*entity.Item, error)

	// Delete はアプリケーションIDでアイテムを削除します。
	Delete(ctx context.Context, itemID string) error
}

// ImageStore persists normalized image bytes and returns their public URL.
type ImageStore interface {
	Save(filename string, data []byte) (string, error)
}

// CreateInput carries the item fields accepted at creation.
type CreateInput struct {
	Category    string
	Condition   string
	AgeDays     int
	Description string
}

// UpdateInput carries the four fields the update endpoint overwrites.
// All four are written verbatim; fields the client omitted arrive as zero
// values and blank out the stored ones. That full-overwrite contract is
// part of the public API.
type UpdateInput struct {
	Category    string
	Condition   string
	AgeDays     int
	Description string
}

// Upload is an optional file attached to an item creation.
type Upload struct {
	Filename string
	Data     []byte
}

// itemsUsecase はアイテム管理ビジネスロジックを実装します。
type itemsUsecase struct {
	items  ItemRepository
	images ImageStore
}

// NewItemsUsecase はitemsUsecaseの新しいインスタンスを生成します。
func NewItemsUsecase(items ItemRepository, images ImageStore) *itemsUsecase {
	return &itemsUsecase{items: items, images: images}
}

// List は全アイテムを無フィルタで返します。順序はストア依存です。
func (u *itemsUsecase) List(ctx context.Context) ([]entity.Item, error) {
	return u.items.List(ctx)
}

// Create は新しいアイテムを登録します。添付画像があれば正規化して保存し、
// 公開URLをアイテムに記録します。アプリケーションIDはリポジトリが採番します。
func (u *itemsUsecase) Create(ctx context.Context, in CreateInput, upload *Upload) (*entity.Item, error) {
	item := &entity.Item{
		Category:    in.Category,
		Condition:   in.Condition,
		AgeDays:     in.AgeDays,
		AgeYears:    AgeYears(in.AgeDays),
		Description: in.Description,
		DateAdded:   time.Now().Unix(),
	}

	if upload != nil {
		normalized, err := imaging.Normalize(bytes.NewReader(upload.Data))
		if err != nil {
			return nil, err
		}
		url, err := u.images.Save(upload.Filename, normalized.Data)
		if err != nil {
			return nil, fmt.Errorf("saving item image: %w", err)
		}
		item.ImageURL = url
	}

	if err := u.items.CreateNext(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID はアプリケーションIDでアイテムを取得します。
func (u *itemsUsecase) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return u.items.FindByItemID(ctx, id)
}

// Update overwrites the four mutable fields, recomputes the derived age and
// returns the post-update record. The caller distinguishes only "found and
// written" from "not found"; a nil result with nil error means the
// update-and-fetch came back empty.
func (u *itemsUsecase) Update(ctx context.Context, id string, in UpdateInput) (*entity.Item, error) {
	item, err := u.items.FindByItemID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Category = in.Category
	item.Condition = in.Condition
	item.AgeDays = in.AgeDays
	item.Description = in.Description
	item.AgeYears = AgeYears(in.AgeDays)

	return u.items.Update(ctx, item)
}

// Delete はアイテムを削除します。存在しない場合、ErrItemNotFoundを返します。
func (u *itemsUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.items.FindByItemID(ctx, id); err != nil {
		return err
	}
	return u.items.Delete(ctx, id)
}

// AgeYears converts an age in days to years, rounded to one decimal.
func AgeYears(ageDays int) float64 {
	return math.Round(float64(ageDays)/365*10) / 10
}
