package store

import (
	"context"

	"assetdesk/internal/storage"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/models"
)

// FetchStockItems loads the stock collection, seeding demo items when it is empty.
func (s *Store) FetchStockItems(ctx context.Context) ([]models.StockItem, error) {
	var result []models.StockItem

	err := s.run("Failed to fetch stock items", func() error {
		items, err := s.loadStockItems(ctx, s.stockSeed)
		if err != nil {
			return err
		}
		result = cloneStockItems(items)
		return nil
	})

	return result, err
}

func (s *Store) StockItem(ctx context.Context, id string) (models.StockItem, error) {
	var result models.StockItem

	err := s.run("Failed to fetch stock item", func() error {
		items, err := s.loadStockItems(ctx, s.stockSeed)
		if err != nil {
			return err
		}
		i := indexOfStockItem(items, id)
		if i < 0 {
			return custom_error.ErrNotFound
		}
		result = items[i]
		return nil
	})

	return result, err
}

func (s *Store) AddStockItem(ctx context.Context, req models.StockItemRequest) (models.StockItem, error) {
	var result models.StockItem

	err := s.run("Failed to add stock item", func() error {
		if err := models.Validate(req); err != nil {
			return err
		}

		items, err := storage.Load[models.StockItem](ctx, s.adapter, storage.StockItems)
		if err != nil {
			return err
		}

		id := s.uniqueID(func(id string) bool { return indexOfStockItem(items, id) >= 0 })
		item := req.ToStockItem(id, s.timestamp())
		items = append(items, item)

		if err := s.saveStockItems(ctx, items); err != nil {
			return err
		}
		result = item
		return nil
	})

	return result, err
}

func (s *Store) UpdateStockItem(ctx context.Context, id string, patch models.PatchStockItemRequest) (models.StockItem, error) {
	var result models.StockItem

	err := s.run("Failed to update stock item", func() error {
		if err := models.Validate(patch); err != nil {
			return err
		}

		var err error
		result, err = s.modifyStockItem(ctx, id, patch.Apply)
		return err
	})

	return result, err
}

// UpdateStockQuantity sets the on-hand quantity directly.
func (s *Store) UpdateStockQuantity(ctx context.Context, id string, quantity int) (models.StockItem, error) {
	var result models.StockItem

	err := s.run("Failed to update stock quantity", func() error {
		if err := models.Validate(models.QuantityRequest{Quantity: &quantity}); err != nil {
			return err
		}

		var err error
		result, err = s.modifyStockItem(ctx, id, func(item *models.StockItem) {
			item.Quantity = quantity
		})
		return err
	})

	return result, err
}

func (s *Store) DeleteStockItem(ctx context.Context, id string) (models.StockItem, error) {
	var removed models.StockItem

	err := s.run("Failed to delete stock item", func() error {
		items, err := storage.Load[models.StockItem](ctx, s.adapter, storage.StockItems)
		if err != nil {
			return err
		}

		i := indexOfStockItem(items, id)
		if i < 0 {
			return custom_error.ErrNotFound
		}
		removed = items[i]

		next := make([]models.StockItem, 0, len(items)-1)
		next = append(next, items[:i]...)
		next = append(next, items[i+1:]...)
		return s.saveStockItems(ctx, next)
	})

	return removed, err
}

func (s *Store) modifyStockItem(ctx context.Context, id string, apply func(*models.StockItem)) (models.StockItem, error) {
	items, err := storage.Load[models.StockItem](ctx, s.adapter, storage.StockItems)
	if err != nil {
		return models.StockItem{}, err
	}

	i := indexOfStockItem(items, id)
	if i < 0 {
		return models.StockItem{}, custom_error.ErrNotFound
	}

	updated := items[i]
	apply(&updated)
	updated.UpdatedAt = s.touch(updated.UpdatedAt)

	next := cloneStockItems(items)
	next[i] = updated
	if err := s.saveStockItems(ctx, next); err != nil {
		return models.StockItem{}, err
	}

	return updated, nil
}

func (s *Store) loadStockItems(ctx context.Context, seed func() []models.StockItem) ([]models.StockItem, error) {
	items, err := storage.Load[models.StockItem](ctx, s.adapter, storage.StockItems)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 && seed != nil {
		items = seed()
		if err := storage.Save(ctx, s.adapter, storage.StockItems, items); err != nil {
			return nil, err
		}
		s.logger.Info("seeded demo stock items")
	}

	s.stockItems = items
	return items, nil
}

func (s *Store) saveStockItems(ctx context.Context, items []models.StockItem) error {
	if err := storage.Save(ctx, s.adapter, storage.StockItems, items); err != nil {
		return err
	}
	s.stockItems = items
	return nil
}

func indexOfStockItem(items []models.StockItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func cloneStockItems(items []models.StockItem) []models.StockItem {
	out := make([]models.StockItem, len(items))
	copy(out, items)
	return out
}
