package services

import (
	"testing"
	"time"

	"budgettracker/internal/pagination"
	"budgettracker/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		category, err := svc.CreateCategory("food", 250000, "groceries", "#00ff00")
		testutil.AssertNoError(t, err)

		if category.ID == "" {
			t.Fatal("expected category ID to be set")
		}
		if category.MonthlyLimit != 250000 || category.Color != "#00ff00" {
			t.Errorf("unexpected category: %+v", category)
		}
	})

	t.Run("zero_limit_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("misc", 0, "", "")
		testutil.AssertNoError(t, err)
	})

	t.Run("negative_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("misc", -1, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("", 100, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("food", 100, "", "")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory("food", 200, "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})
}

func TestGetCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)

	for _, name := range []string{"petrol", "food", "rent"} {
		_, err := svc.CreateCategory(name, 100, "", "")
		testutil.AssertNoError(t, err)
	}

	result, err := svc.GetCategories(pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 3 {
		t.Fatalf("expected 3 categories, got %d", result.TotalItems)
	}
	if result.Data[0].Name != "food" {
		t.Errorf("expected food first, got %s", result.Data[0].Name)
	}
}

func TestGetCategoryByIDAndName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)
	category := testutil.CreateTestCategory(t, db, 500)

	got, err := svc.GetCategoryByID(category.ID)
	testutil.AssertNoError(t, err)
	if got.Name != category.Name {
		t.Errorf("expected %s, got %s", category.Name, got.Name)
	}

	got, err = svc.GetCategoryByName(category.Name)
	testutil.AssertNoError(t, err)
	if got.ID != category.ID {
		t.Errorf("expected %s, got %s", category.ID, got.ID)
	}

	_, err = svc.GetCategoryByID("00000000-0000-0000-0000-000000000000")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestUpdateCategory(t *testing.T) {
	t.Run("updates_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		category := testutil.CreateTestCategory(t, db, 500)

		limit := int64(0)
		color := "#123456"
		updated, err := svc.UpdateCategory(category.ID, CategoryUpdateFields{MonthlyLimit: &limit, Color: &color})
		testutil.AssertNoError(t, err)

		if updated.MonthlyLimit != 0 || updated.Color != color {
			t.Errorf("unexpected category after update: %+v", updated)
		}
	})

	t.Run("negative_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		category := testutil.CreateTestCategory(t, db, 500)

		limit := int64(-5)
		_, err := svc.UpdateCategory(category.ID, CategoryUpdateFields{MonthlyLimit: &limit})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		first := testutil.CreateTestCategory(t, db, 500)
		second := testutil.CreateTestCategory(t, db, 500)

		_, err := svc.UpdateCategory(second.ID, CategoryUpdateFields{Name: &first.Name})
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		category := testutil.CreateTestCategory(t, db, 500)

		testutil.AssertNoError(t, svc.DeleteCategory(category.ID))

		_, err := svc.GetCategoryByID(category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("in_use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		account := testutil.CreateTestAccount(t, db)
		category := testutil.CreateTestCategory(t, db, 500)
		testutil.CreateTestTransaction(t, db, account.ID, category.ID, 100, time.Now(), 25)

		err := svc.DeleteCategory(category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})
}
