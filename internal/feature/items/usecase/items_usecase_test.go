package usecase

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"testing"

	"secondchance_backend/internal/feature/items/domain/entity"
	"secondchance_backend/internal/platform/imaging"
)

// mockItemRepository is a mock implementation of the ItemRepository interface.
type mockItemRepository struct {
	ListFunc         func(ctx context.Context) ([]entity.Item, error)
	CreateNextFunc   func(ctx context.Context, item *entity.Item) error
	FindByItemIDFunc func(ctx context.Context, itemID string) (*entity.Item, error)
	UpdateFunc       func(ctx context.Context, item *entity.Item) (*entity.Item, error)
	DeleteFunc       func(ctx context.Context, itemID string) error
}

func (m *mockItemRepository) List(ctx context.Context) ([]entity.Item, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockItemRepository) CreateNext(ctx context.Context, item *entity.Item) error {
	if m.CreateNextFunc != nil {
		return m.CreateNextFunc(ctx, item)
	}
	item.ID = 1
	item.ItemID = "1"
	return nil
}

func (m *mockItemRepository) FindByItemID(ctx context.Context, itemID string) (*entity.Item, error) {
	if m.FindByItemIDFunc != nil {
		return m.FindByItemIDFunc(ctx, itemID)
	}
	return nil, ErrItemNotFound
}

func (m *mockItemRepository) Update(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, item)
	}
	return item, nil
}

func (m *mockItemRepository) Delete(ctx context.Context, itemID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, itemID)
	}
	return nil
}

// mockImageStore is a mock implementation of the ImageStore interface.
type mockImageStore struct {
	SaveFunc func(filename string, data []byte) (string, error)
}

func (m *mockImageStore) Save(filename string, data []byte) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(filename, data)
	}
	return "/images/" + filename, nil
}

func testPNGBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(0, 0, color.RGBA{0, 255, 0, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

// TestAgeYears は年齢換算が1桁丸めであることを検証します。
func TestAgeYears(t *testing.T) {
	tests := []struct {
		ageDays  int
		expected float64
	}{
		{730, 2.0},
		{100, 0.3},
		{365, 1.0},
		{0, 0.0},
		{1, 0.0},
		{183, 0.5},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.ageDays), func(t *testing.T) {
			if got := AgeYears(tt.ageDays); got != tt.expected {
				t.Errorf("AgeYears(%d) = %v, expected %v", tt.ageDays, got, tt.expected)
			}
		})
	}
}

func TestItemsUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("without upload", func(t *testing.T) {
		mockRepo := &mockItemRepository{
			CreateNextFunc: func(ctx context.Context, item *entity.Item) error {
				item.ID = 10
				item.ItemID = "3"
				return nil
			},
		}
		store := &mockImageStore{
			SaveFunc: func(filename string, data []byte) (string, error) {
				t.Error("Save must not be called without an upload")
				return "", nil
			},
		}

		uc := NewItemsUsecase(mockRepo, store)
		item, err := uc.Create(ctx, CreateInput{
			Category:    "kitchen",
			Condition:   "used",
			AgeDays:     730,
			Description: "a sturdy pot",
		}, nil)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.ItemID != "3" {
			t.Errorf("expected allocated id '3', got %q", item.ItemID)
		}
		if item.AgeYears != 2.0 {
			t.Errorf("expected age_years 2.0, got %v", item.AgeYears)
		}
		if item.DateAdded == 0 {
			t.Error("expected date_added to be stamped")
		}
		if item.ImageURL != "" {
			t.Errorf("expected no image url, got %q", item.ImageURL)
		}
	})

	t.Run("with image upload", func(t *testing.T) {
		var savedName string
		store := &mockImageStore{
			SaveFunc: func(filename string, data []byte) (string, error) {
				savedName = filename
				if len(data) == 0 {
					t.Error("expected normalized image bytes")
				}
				return "/images/" + filename, nil
			},
		}

		uc := NewItemsUsecase(&mockItemRepository{}, store)
		item, err := uc.Create(ctx, CreateInput{Category: "books"}, &Upload{
			Filename: "cover.png",
			Data:     testPNGBytes(t),
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if savedName != "cover.png" {
			t.Errorf("expected original filename to be kept, got %q", savedName)
		}
		if item.ImageURL != "/images/cover.png" {
			t.Errorf("expected image url under /images, got %q", item.ImageURL)
		}
	})

	t.Run("rejects non-image upload", func(t *testing.T) {
		mockRepo := &mockItemRepository{
			CreateNextFunc: func(ctx context.Context, item *entity.Item) error {
				t.Error("CreateNext must not be called for a rejected upload")
				return nil
			},
		}
		store := &mockImageStore{
			SaveFunc: func(filename string, data []byte) (string, error) {
				t.Error("Save must not be called for a rejected upload")
				return "", nil
			},
		}

		uc := NewItemsUsecase(mockRepo, store)
		_, err := uc.Create(ctx, CreateInput{}, &Upload{
			Filename: "evil.exe",
			Data:     []byte("MZ not an image"),
		})

		if !errors.Is(err, imaging.ErrUnsupportedImage) {
			t.Errorf("expected ErrUnsupportedImage, got %v", err)
		}
	})
}

func TestItemsUsecase_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("existing item", func(t *testing.T) {
		mockRepo := &mockItemRepository{
			FindByItemIDFunc: func(ctx context.Context, itemID string) (*entity.Item, error) {
				return &entity.Item{ItemID: itemID, Category: "kitchen"}, nil
			},
		}

		uc := NewItemsUsecase(mockRepo, &mockImageStore{})
		item, err := uc.GetByID(ctx, "2")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.ItemID != "2" {
			t.Errorf("unexpected item: %+v", item)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		uc := NewItemsUsecase(&mockItemRepository{}, &mockImageStore{})

		_, err := uc.GetByID(ctx, "999")

		if !errors.Is(err, ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestItemsUsecase_Update(t *testing.T) {
	ctx := context.Background()

	// 省略フィールドはゼロ値で上書きされます（公開APIの互換仕様）
	t.Run("overwrites all four fields", func(t *testing.T) {
		stored := &entity.Item{
			ItemID:      "1",
			Category:    "kitchen",
			Condition:   "used",
			AgeDays:     100,
			AgeYears:    0.3,
			Description: "a pot",
		}
		var saved *entity.Item
		mockRepo := &mockItemRepository{
			FindByItemIDFunc: func(ctx context.Context, itemID string) (*entity.Item, error) {
				return stored, nil
			},
			UpdateFunc: func(ctx context.Context, item *entity.Item) (*entity.Item, error) {
				saved = item
				return item, nil
			},
		}

		uc := NewItemsUsecase(mockRepo, &mockImageStore{})
		// Only category is supplied; everything else arrives as zero values
		updated, err := uc.Update(ctx, "1", UpdateInput{Category: "furniture"})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == nil {
			t.Fatal("expected the post-update record")
		}
		if saved.Category != "furniture" {
			t.Errorf("expected category to change, got %q", saved.Category)
		}
		if saved.Condition != "" || saved.Description != "" || saved.AgeDays != 0 {
			t.Errorf("omitted fields must be blanked: %+v", saved)
		}
		if saved.AgeYears != 0.0 {
			t.Errorf("expected recomputed age_years 0.0, got %v", saved.AgeYears)
		}
	})

	t.Run("recomputes age_years", func(t *testing.T) {
		mockRepo := &mockItemRepository{
			FindByItemIDFunc: func(ctx context.Context, itemID string) (*entity.Item, error) {
				return &entity.Item{ItemID: itemID}, nil
			},
		}

		uc := NewItemsUsecase(mockRepo, &mockImageStore{})
		updated, err := uc.Update(ctx, "1", UpdateInput{AgeDays: 730})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.AgeYears != 2.0 {
			t.Errorf("expected age_years 2.0, got %v", updated.AgeYears)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		uc := NewItemsUsecase(&mockItemRepository{}, &mockImageStore{})

		_, err := uc.Update(ctx, "999", UpdateInput{Category: "x"})

		if !errors.Is(err, ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("empty update-and-fetch result", func(t *testing.T) {
		mockRepo := &mockItemRepository{
			FindByItemIDFunc: func(ctx context.Context, itemID string) (*entity.Item, error) {
				return &entity.Item{ItemID: itemID}, nil
			},
			UpdateFunc: func(ctx context.Context, item *entity.Item) (*entity.Item, error) {
				return nil, nil
			},
		}

		uc := NewItemsUsecase(mockRepo, &mockImageStore{})
		updated, err := uc.Update(ctx, "1", UpdateInput{})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated != nil {
			t.Errorf("expected nil result, got %+v", updated)
		}
	})
}

func TestItemsUsecase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("existing item", func(t *testing.T) {
		deleted := false
		mockRepo := &mockItemRepository{
			FindByItemIDFunc: func(ctx context.Context, itemID string) (*entity.Item, error) {
				return &entity.Item{ItemID: itemID}, nil
			},
			DeleteFunc: func(ctx context.Context, itemID string) error {
				deleted = true
				return nil
			},
		}

		uc := NewItemsUsecase(mockRepo, &mockImageStore{})
		if err := uc.Delete(ctx, "1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deleted {
			t.Error("expected Delete to be called")
		}
	})

	t.Run("missing item leaves store untouched", func(t *testing.T) {
		mockRepo := &mockItemRepository{
			DeleteFunc: func(ctx context.Context, itemID string) error {
				t.Error("Delete must not be called for a missing item")
				return nil
			},
		}

		uc := NewItemsUsecase(mockRepo, &mockImageStore{})
		err := uc.Delete(ctx, "999")

		if !errors.Is(err, ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})
}
