// Package store is the application state: in-memory copies of the asset and
// stock collections, the current session, and the operations that mutate them.
// Operations run one at a time; every mutation re-reads the collection from
// storage, applies the change, writes the whole collection back and only then
// replaces the in-memory copy.
package store

import (
	"sync"
	"time"

	"assetdesk/internal/mailer"
	"assetdesk/internal/resettoken"
	"assetdesk/internal/storage"
	"assetdesk/pkg/models"
	"assetdesk/pkg/roles"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

func WithResetTokenTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.resetTTL = ttl
	}
}

// WithFirstUserRole gives the very first signed-up account role instead of the requested one.
func WithFirstUserRole(role roles.Role) Option {
	return func(s *Store) {
		s.firstUserRole = role
	}
}

type Store struct {
	mu sync.Mutex

	adapter *storage.Adapter
	tokens  *resettoken.Registry
	mailer  mailer.Mailer
	logger  *zap.Logger

	now      func() time.Time
	newID    func() string
	resetTTL time.Duration

	firstUserRole roles.Role

	assets     []models.Asset
	stockItems []models.StockItem

	session session
}

func New(adapter *storage.Adapter, m mailer.Mailer, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		adapter:    adapter,
		mailer:     m,
		logger:     logger.Named("store"),
		now:        time.Now,
		newID:      uuid.NewString,
		resetTTL:   resettoken.DefaultTTL,
		assets:     []models.Asset{},
		stockItems: []models.StockItem{},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.tokens = resettoken.NewRegistry(adapter, s.resetTTL, s.now)

	return s
}

// run serialises op and records its outcome on the session.
func (s *Store) run(failure string, op func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.begin()
	err := op()
	s.session.end(err, failure)

	if err != nil {
		s.logger.Warn(failure, zap.Error(err))
	}

	return err
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// touch returns a timestamp strictly after prev.
func (s *Store) touch(prev time.Time) time.Time {
	next := s.timestamp()
	if !next.After(prev) {
		next = prev.Add(time.Millisecond)
	}
	return next
}

// uniqueID draws ids until one is not already taken.
func (s *Store) uniqueID(taken func(id string) bool) string {
	for {
		id := s.newID()
		if id != "" && !taken(id) {
			return id
		}
	}
}

// Assets returns the in-memory asset collection as of the last operation.
func (s *Store) Assets() []models.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneAssets(s.assets)
}

// StockItems returns the in-memory stock collection as of the last operation.
func (s *Store) StockItems() []models.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneStockItems(s.stockItems)
}
