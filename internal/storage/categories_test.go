package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bekzodm/hamyon/internal/common"
	"github.com/bekzodm/hamyon/internal/model"
)

func TestSQLiteStorage_AddCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name    string
		cat     model.Category
		wantErr bool
	}{
		{
			name: "valid expense category",
			cat: model.Category{
				Name:   "Food & Dining",
				Budget: 1500000,
				Icon:   "🍕",
				Color:  "#f97316",
				Type:   model.TypeExpense,
			},
		},
		{
			name: "valid income category",
			cat:  model.Category{Name: "Salary", Type: model.TypeIncome},
		},
		{
			name:    "empty name",
			cat:     model.Category{Type: model.TypeExpense},
			wantErr: true,
		},
		{
			name:    "invalid type",
			cat:     model.Category{Name: "Weird", Type: "transfer"},
			wantErr: true,
		},
		{
			name:    "negative budget",
			cat:     model.Category{Name: "Broken", Type: model.TypeExpense, Budget: -100},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := store.AddCategory(ctx, tt.cat)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if id <= 0 {
				t.Errorf("Expected positive id, got %d", id)
			}
		})
	}
}

func TestSQLiteStorage_UpdateCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id := mustAddCategory(t, store, "Food", model.TypeExpense, 1500000)

	newBudget := 2000000.0
	newIcon := "🍜"
	if err := store.UpdateCategory(ctx, id, model.CategoryUpdate{
		Budget: &newBudget,
		Icon:   &newIcon,
	}); err != nil {
		t.Fatalf("Failed to update category: %v", err)
	}

	cat, err := store.GetCategory(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get category: %v", err)
	}
	if cat.Budget != newBudget {
		t.Errorf("Expected budget %v, got %v", newBudget, cat.Budget)
	}
	if cat.Icon != newIcon {
		t.Errorf("Expected icon %q, got %q", newIcon, cat.Icon)
	}
	// Untouched fields survive the merge.
	if cat.Name != "Food" {
		t.Errorf("Expected name preserved, got %q", cat.Name)
	}
	if cat.Type != model.TypeExpense {
		t.Errorf("Expected type preserved, got %q", cat.Type)
	}
}

func TestSQLiteStorage_UpdateCategory_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	name := "x"
	err := store.UpdateCategory(context.Background(), 42, model.CategoryUpdate{Name: &name})
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_DeleteCategory_Guard(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	foodID := mustAddCategory(t, store, "Food", model.TypeExpense, 1500000)
	txnID := mustAddTransaction(t, store, expenseDraft(foodID, -125000, time.Now()))

	// Referenced category cannot be deleted.
	err := store.DeleteCategory(ctx, foodID)
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("Expected ErrConflict while referenced, got %v", err)
	}

	// The category must still exist after the refused delete.
	if _, err := store.GetCategory(ctx, foodID); err != nil {
		t.Fatalf("Category disappeared after refused delete: %v", err)
	}

	// Removing the referencing transaction unblocks the delete.
	if err := store.DeleteTransaction(ctx, txnID); err != nil {
		t.Fatalf("Failed to delete transaction: %v", err)
	}
	if err := store.DeleteCategory(ctx, foodID); err != nil {
		t.Fatalf("Failed to delete unreferenced category: %v", err)
	}

	if _, err := store.GetCategory(ctx, foodID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestSQLiteStorage_DeleteCategory_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	if err := store.DeleteCategory(context.Background(), 42); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_GetCategories(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	mustAddCategory(t, store, "Transport", model.TypeExpense, 800000)
	mustAddCategory(t, store, "Food", model.TypeExpense, 1500000)
	mustAddCategory(t, store, "Salary", model.TypeIncome, 0)

	all, err := store.GetCategories(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to get categories: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 categories, got %d", len(all))
	}
	// Ordered by name.
	if all[0].Name != "Food" || all[1].Name != "Salary" || all[2].Name != "Transport" {
		t.Errorf("Expected name ordering, got %q, %q, %q", all[0].Name, all[1].Name, all[2].Name)
	}

	expense := model.TypeExpense
	expenses, err := store.GetCategories(ctx, &expense)
	if err != nil {
		t.Fatalf("Failed to get expense categories: %v", err)
	}
	if len(expenses) != 2 {
		t.Errorf("Expected 2 expense categories, got %d", len(expenses))
	}
	for _, cat := range expenses {
		if cat.Type != model.TypeExpense {
			t.Errorf("Expected only expense categories, got %q", cat.Type)
		}
	}
}

func TestSQLiteStorage_GetCategoryByName(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id := mustAddCategory(t, store, "Food", model.TypeExpense, 1500000)

	cat, err := store.GetCategoryByName(ctx, "Food")
	if err != nil {
		t.Fatalf("Failed to get category by name: %v", err)
	}
	if cat == nil || cat.ID != id {
		t.Errorf("Expected category %d, got %+v", id, cat)
	}

	missing, err := store.GetCategoryByName(ctx, "Nonexistent")
	if err != nil {
		t.Fatalf("Unexpected error for missing name: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for missing name, got %+v", missing)
	}
}
