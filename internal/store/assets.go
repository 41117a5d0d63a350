package store

import (
	"context"

	"assetdesk/internal/storage"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/models"
)

// FetchAssets loads the asset collection, seeding demo assets when it is empty.
func (s *Store) FetchAssets(ctx context.Context) ([]models.Asset, error) {
	var result []models.Asset

	err := s.run("Failed to fetch assets", func() error {
		assets, err := s.loadAssets(ctx, s.fetchAssetSeed)
		if err != nil {
			return err
		}
		result = cloneAssets(assets)
		return nil
	})

	return result, err
}

// Asset returns a single asset by id.
func (s *Store) Asset(ctx context.Context, id string) (models.Asset, error) {
	var result models.Asset

	err := s.run("Failed to fetch asset", func() error {
		assets, err := s.loadAssets(ctx, s.fetchAssetSeed)
		if err != nil {
			return err
		}
		i := indexOfAsset(assets, id)
		if i < 0 {
			return custom_error.ErrNotFound
		}
		result = assets[i]
		return nil
	})

	return result, err
}

func (s *Store) AddAsset(ctx context.Context, req models.AssetRequest) (models.Asset, error) {
	var result models.Asset

	err := s.run("Failed to add asset", func() error {
		if err := models.Validate(req); err != nil {
			return err
		}

		assets, err := storage.Load[models.Asset](ctx, s.adapter, storage.Assets)
		if err != nil {
			return err
		}

		id := s.uniqueID(func(id string) bool { return indexOfAsset(assets, id) >= 0 })
		asset := req.ToAsset(id, s.timestamp())
		assets = append(assets, asset)

		if err := s.saveAssets(ctx, assets); err != nil {
			return err
		}
		result = asset
		return nil
	})

	return result, err
}

// UpdateAsset merges the fields present in patch into the asset.
func (s *Store) UpdateAsset(ctx context.Context, id string, patch models.PatchAssetRequest) (models.Asset, error) {
	var result models.Asset

	err := s.run("Failed to update asset", func() error {
		if err := models.Validate(patch); err != nil {
			return err
		}

		assets, err := storage.Load[models.Asset](ctx, s.adapter, storage.Assets)
		if err != nil {
			return err
		}

		i := indexOfAsset(assets, id)
		if i < 0 {
			return custom_error.ErrNotFound
		}

		updated := assets[i]
		patch.Apply(&updated)
		updated.UpdatedAt = s.touch(updated.UpdatedAt)

		next := cloneAssets(assets)
		next[i] = updated
		if err := s.saveAssets(ctx, next); err != nil {
			return err
		}
		result = updated
		return nil
	})

	return result, err
}

func (s *Store) DeleteAsset(ctx context.Context, id string) (models.Asset, error) {
	var removed models.Asset

	err := s.run("Failed to delete asset", func() error {
		assets, err := storage.Load[models.Asset](ctx, s.adapter, storage.Assets)
		if err != nil {
			return err
		}

		i := indexOfAsset(assets, id)
		if i < 0 {
			return custom_error.ErrNotFound
		}
		removed = assets[i]

		next := make([]models.Asset, 0, len(assets)-1)
		next = append(next, assets[:i]...)
		next = append(next, assets[i+1:]...)
		return s.saveAssets(ctx, next)
	})

	return removed, err
}

// loadAssets reads the collection into memory, writing seed() first when storage holds none.
func (s *Store) loadAssets(ctx context.Context, seed func() []models.Asset) ([]models.Asset, error) {
	assets, err := storage.Load[models.Asset](ctx, s.adapter, storage.Assets)
	if err != nil {
		return nil, err
	}

	if len(assets) == 0 && seed != nil {
		assets = seed()
		if err := storage.Save(ctx, s.adapter, storage.Assets, assets); err != nil {
			return nil, err
		}
		s.logger.Info("seeded demo assets")
	}

	s.assets = assets
	return assets, nil
}

func (s *Store) saveAssets(ctx context.Context, assets []models.Asset) error {
	if err := storage.Save(ctx, s.adapter, storage.Assets, assets); err != nil {
		return err
	}
	s.assets = assets
	return nil
}

func indexOfAsset(assets []models.Asset, id string) int {
	for i, a := range assets {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func cloneAssets(assets []models.Asset) []models.Asset {
	out := make([]models.Asset, len(assets))
	copy(out, assets)
	return out
}
