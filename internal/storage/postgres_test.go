package storage

import (
	"testing"

	"assetdesk/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStoreQueries(t *testing.T) {
	store := NewPostgresStore(repository.NewRepository(nil))

	selectSQL, _, err := store.selectQuery("assets").ToSQL()
	require.NoError(t, err)
	assert.Contains(t, selectSQL, `SELECT "payload" FROM "collections"`)
	assert.Contains(t, selectSQL, `"name" = 'assets'`)

	upsertSQL, _, err := store.upsertQuery("assets", `[]`).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, upsertSQL, `INSERT INTO "collections"`)
	assert.Contains(t, upsertSQL, `ON CONFLICT (name) DO UPDATE SET`)
	assert.Contains(t, upsertSQL, `EXCLUDED.payload`)
}
