// Package adapters はitemsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"secondchance_backend/internal/feature/items/domain/entity"
	"secondchance_backend/internal/feature/items/usecase"
)

// itemGorm はItemRepositoryインターフェースのGORM実装です。
type itemGorm struct {
	db *gorm.DB
}

// itemGormがItemRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ItemRepository = (*itemGorm)(nil)

// NewItemGorm は指定されたgorm.DB接続でitemGormの新しいインスタンスを生成します。
func NewItemGorm(db *gorm.DB) *itemGorm {
	return &itemGorm{db: db}
}

// List は全アイテムをストア順（主キー順）で返します。
func (r *itemGorm) List(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateNext は「現在の最大数値ID + 1」をトランザクション内で採番して挿入します。
// item_idのユニーク制約が同時作成の衝突を防ぎ、衝突時は一度だけ再採番します。
func (r *itemGorm) CreateNext(ctx context.Context, item *entity.Item) error {
	insert := func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var maxID int64
			// 空ストアではCOALESCEで0になり、最初のIDは"1"になる
			if err := tx.Raw(
				"SELECT COALESCE(MAX(CAST(item_id AS INTEGER)), 0) FROM items",
			).Scan(&maxID).Error; err != nil {
				return err
			}
			item.ItemID = strconv.FormatInt(maxID+1, 10)
			return tx.Create(item).Error
		})
	}

	err := insert()
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 同時作成で採番が重なった場合のリトライ
		item.ID = 0
		err = insert()
	}
	return err
}

// FindByItemID はアプリケーションIDでアイテムを取得します。
func (r *itemGorm) FindByItemID(ctx context.Context, itemID string) (*entity.Item, error) {
	var item entity.Item
	if err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Update は変更を保存し、保存後のレコードを再取得して返します。
// 再取得が空の場合は(nil, nil)を返します。呼び出し側はこれを
// update-and-fetchの失敗として扱います。
func (r *itemGorm) Update(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}

	var updated entity.Item
	if err := r.db.WithContext(ctx).Where("item_id = ?", item.ItemID).First(&updated).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

// Delete はアプリケーションIDでアイテムを削除します。
func (r *itemGorm) Delete(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&entity.Item{}).Error
}
