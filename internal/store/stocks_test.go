package store

import (
	"context"
	"testing"

	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchStockItemsSeedsEmptyCollection(t *testing.T) {
	f := newFixture()

	items, err := f.store.FetchStockItems(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "A4 Paper", items[0].Name)
	assert.Equal(t, 500, items[0].Quantity)
	assert.Equal(t, "Ink Cartridges", items[1].Name)
	assert.Equal(t, "2025-01-15T10:00:00.000Z", items[1].LastRestocked)
	assert.Equal(t, items, storedStockItems(t, f))
}

func TestAddStockItem(t *testing.T) {
	f := newFixture()

	item, err := f.store.AddStockItem(context.Background(), stockRequest("Staples", 0, 10))
	require.NoError(t, err)

	assert.Equal(t, "id-1", item.ID)
	assert.Equal(t, 0, item.Quantity)
	assert.Equal(t, 10, item.MinQuantity)
	assert.Equal(t, []models.StockItem{item}, storedStockItems(t, f))
}

func TestAddStockItemRequiresQuantity(t *testing.T) {
	f := newFixture()

	req := stockRequest("Staples", 0, 10)
	req.Quantity = nil
	_, err := f.store.AddStockItem(context.Background(), req)

	var validationErr *custom_error.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "required", validationErr.Fields["quantity"])
}

func TestUpdateStockItemMergesPartialFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	original, err := f.store.AddStockItem(ctx, stockRequest("Staples", 20, 10))
	require.NoError(t, err)

	updated, err := f.store.UpdateStockItem(ctx, original.ID, models.PatchStockItemRequest{
		Supplier: strPtr("Office Depot"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Office Depot", updated.Supplier)
	assert.Equal(t, original.Quantity, updated.Quantity)
	assert.Equal(t, original.Category, updated.Category)
	assert.True(t, updated.UpdatedAt.After(original.UpdatedAt))
}

func TestUpdateStockQuantity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	original, err := f.store.AddStockItem(ctx, stockRequest("Staples", 20, 10))
	require.NoError(t, err)

	updated, err := f.store.UpdateStockQuantity(ctx, original.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, original.Name, updated.Name)
	assert.True(t, updated.UpdatedAt.After(original.UpdatedAt))
	assert.Equal(t, 3, storedStockItems(t, f)[0].Quantity)
	assert.Equal(t, 3, f.store.StockItems()[0].Quantity)
}

func TestUpdateStockQuantityRejectsNegative(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	item, err := f.store.AddStockItem(ctx, stockRequest("Staples", 20, 10))
	require.NoError(t, err)

	_, err = f.store.UpdateStockQuantity(ctx, item.ID, -1)

	var validationErr *custom_error.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 20, storedStockItems(t, f)[0].Quantity)
}

func TestStockMissingID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.store.UpdateStockQuantity(ctx, "missing", 1)
	assert.ErrorIs(t, err, custom_error.ErrNotFound)

	_, err = f.store.UpdateStockItem(ctx, "missing", models.PatchStockItemRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, custom_error.ErrNotFound)

	_, err = f.store.DeleteStockItem(ctx, "missing")
	assert.ErrorIs(t, err, custom_error.ErrNotFound)

	_, err = f.store.StockItem(ctx, "missing")
	assert.ErrorIs(t, err, custom_error.ErrNotFound)
}

func TestDeleteStockItem(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	keep, err := f.store.AddStockItem(ctx, stockRequest("Keep", 20, 10))
	require.NoError(t, err)
	drop, err := f.store.AddStockItem(ctx, stockRequest("Drop", 20, 10))
	require.NoError(t, err)

	_, err = f.store.DeleteStockItem(ctx, drop.ID)
	require.NoError(t, err)

	items, err := f.store.FetchStockItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.StockItem{keep}, items)

	found, err := f.store.StockItem(ctx, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, keep, found)
}
