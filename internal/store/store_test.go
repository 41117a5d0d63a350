package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"assetdesk/internal/mailer"
	"assetdesk/internal/storage"
	"assetdesk/pkg/metadata"
	"assetdesk/pkg/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type sequentialIDs struct {
	next   int
	queued []string
}

// ID returns queued ids first, then id-1, id-2, ...
func (g *sequentialIDs) ID() string {
	if len(g.queued) > 0 {
		id := g.queued[0]
		g.queued = g.queued[1:]
		return id
	}
	g.next++
	return fmt.Sprintf("id-%d", g.next)
}

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// flakyStore fails every call once fail is set.
type flakyStore struct {
	*storage.MemoryStore
	fail bool
}

func (f *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.fail {
		return "", false, errors.New("backend down")
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	if f.fail {
		return errors.New("backend down")
	}
	return f.MemoryStore.Set(ctx, key, value)
}

type fixture struct {
	store   *Store
	clock   *fakeClock
	ids     *sequentialIDs
	mailer  *fakeMailer
	blobs   *flakyStore
	adapter *storage.Adapter
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{
		clock:  &fakeClock{now: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)},
		ids:    &sequentialIDs{},
		mailer: &fakeMailer{},
		blobs:  &flakyStore{MemoryStore: storage.NewMemoryStore()},
	}
	f.adapter = storage.NewAdapter(f.blobs, zap.NewNop())
	f.store = New(f.adapter, f.mailer, zap.NewNop(),
		append([]Option{WithClock(f.clock.Now), WithIDGenerator(f.ids.ID)}, opts...)...,
	)
	return f
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func assetRequest(name string) models.AssetRequest {
	return models.AssetRequest{
		Name:           name,
		Type:           metadata.TypeDesktop,
		SerialNumber:   "SN-" + name,
		Model:          "OptiPlex 7090",
		Status:         metadata.StatusAvailable,
		PurchaseDate:   "2024-05-01",
		WarrantyExpiry: "2027-05-01",
		Location:       "Office 201",
	}
}

func stockRequest(name string, quantity, minQuantity int) models.StockItemRequest {
	return models.StockItemRequest{
		Name:          name,
		Category:      "Office Supplies",
		Quantity:      intPtr(quantity),
		MinQuantity:   intPtr(minQuantity),
		Unit:          "boxes",
		Location:      "Storage Room A",
		Supplier:      "Staples",
		LastRestocked: "2025-01-10",
	}
}

func storedAssets(t *testing.T, f *fixture) []models.Asset {
	t.Helper()
	assets, err := storage.Load[models.Asset](context.Background(), f.adapter, storage.Assets)
	require.NoError(t, err)
	return assets
}

func storedStockItems(t *testing.T, f *fixture) []models.StockItem {
	t.Helper()
	items, err := storage.Load[models.StockItem](context.Background(), f.adapter, storage.StockItems)
	require.NoError(t, err)
	return items
}

func storedUsers(t *testing.T, f *fixture) []models.User {
	t.Helper()
	users, err := storage.Load[models.User](context.Background(), f.adapter, storage.Users)
	require.NoError(t, err)
	return users
}
