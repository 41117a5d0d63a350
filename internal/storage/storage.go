// Package storage keeps whole JSON-encoded collections in a string-keyed blob store.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	custom_error "assetdesk/pkg/errors"

	"go.uber.org/zap"
)

type Collection string

const (
	Users       Collection = "users"
	Assets      Collection = "assets"
	StockItems  Collection = "stockItems"
	ResetTokens Collection = "password_reset_tokens"
)

// BlobStore is the durable backend. Get reports found=false for an absent key.
type BlobStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

type Adapter struct {
	blobs  BlobStore
	logger *zap.Logger
}

func NewAdapter(blobs BlobStore, logger *zap.Logger) *Adapter {
	return &Adapter{blobs: blobs, logger: logger}
}

// Load returns the stored records of a collection. An absent or undecodable
// blob is an empty collection; only a failing backend is an error.
func Load[T any](ctx context.Context, a *Adapter, collection Collection) ([]T, error) {
	raw, found, err := a.blobs.Get(ctx, string(collection))
	if err != nil {
		return nil, custom_error.OperationFailed(fmt.Sprintf("load %s", collection), err)
	}
	if !found || raw == "" {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		a.logger.Warn("discarding undecodable collection",
			zap.String("collection", string(collection)),
			zap.Error(err),
		)
		return []T{}, nil
	}
	if records == nil {
		records = []T{}
	}

	return records, nil
}

// Save replaces the whole collection.
func Save[T any](ctx context.Context, a *Adapter, collection Collection, records []T) error {
	if records == nil {
		records = []T{}
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return custom_error.OperationFailed(fmt.Sprintf("encode %s", collection), err)
	}

	if err := a.blobs.Set(ctx, string(collection), string(payload)); err != nil {
		return custom_error.OperationFailed(fmt.Sprintf("save %s", collection), err)
	}

	return nil
}
