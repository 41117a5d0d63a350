package storage

import (
	"context"
	"fmt"

	"assetdesk/internal/repository"

	"github.com/doug-martin/goqu/v9"
)

const collectionsTable = "collections"

// PostgresStore keeps one row per collection in the collections table.
type PostgresStore struct {
	repository *repository.Repository
}

func NewPostgresStore(r *repository.Repository) *PostgresStore {
	return &PostgresStore{repository: r}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var payload string

	found, err := s.selectQuery(key).ScanValContext(ctx, &payload)
	if err != nil {
		return "", false, fmt.Errorf("unable to select collection %s: %w", key, err)
	}

	return payload, found, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.upsertQuery(key, value).Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to upsert collection %s: %w", key, err)
	}

	return nil
}

func (s *PostgresStore) selectQuery(key string) *goqu.SelectDataset {
	return s.repository.GoquDBWrapper.
		From(collectionsTable).
		Select("payload").
		Where(goqu.Ex{"name": key})
}

func (s *PostgresStore) upsertQuery(key, value string) *goqu.InsertDataset {
	return s.repository.GoquDBWrapper.
		Insert(collectionsTable).
		Rows(goqu.Record{
			"name":       key,
			"payload":    value,
			"updated_at": goqu.L("NOW()"),
		}).
		OnConflict(goqu.DoUpdate("name", goqu.Record{
			"payload":    goqu.L("EXCLUDED.payload"),
			"updated_at": goqu.L("NOW()"),
		}))
}
