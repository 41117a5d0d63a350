// Package resettoken issues and checks single-use password reset tokens.
package resettoken

import (
	"context"
	"time"

	"assetdesk/internal/storage"
	"assetdesk/pkg/models"

	"github.com/google/uuid"
)

const DefaultTTL = time.Hour

type Registry struct {
	adapter  *storage.Adapter
	ttl      time.Duration
	now      func() time.Time
	newToken func() string
}

func NewRegistry(adapter *storage.Adapter, ttl time.Duration, now func() time.Time) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}

	return &Registry{
		adapter:  adapter,
		ttl:      ttl,
		now:      now,
		newToken: uuid.NewString,
	}
}

// Generate issues a fresh token for email, discarding any earlier token for the same address.
func (r *Registry) Generate(ctx context.Context, email string) (models.ResetToken, error) {
	tokens, err := storage.Load[models.ResetToken](ctx, r.adapter, storage.ResetTokens)
	if err != nil {
		return models.ResetToken{}, err
	}

	token := models.ResetToken{
		Token:     r.newToken(),
		Email:     email,
		ExpiresAt: r.now().Add(r.ttl).UnixMilli(),
	}

	kept := make([]models.ResetToken, 0, len(tokens)+1)
	for _, t := range tokens {
		if t.Email != email {
			kept = append(kept, t)
		}
	}
	kept = append(kept, token)

	if err := storage.Save(ctx, r.adapter, storage.ResetTokens, kept); err != nil {
		return models.ResetToken{}, err
	}

	return token, nil
}

// Validate reports whether the token exists for email and has not expired.
// An expired token is removed as it is found.
func (r *Registry) Validate(ctx context.Context, token, email string) (bool, error) {
	tokens, err := storage.Load[models.ResetToken](ctx, r.adapter, storage.ResetTokens)
	if err != nil {
		return false, err
	}

	for _, t := range tokens {
		if t.Token != token || t.Email != email {
			continue
		}
		if t.Expired(r.now()) {
			return false, storage.Save(ctx, r.adapter, storage.ResetTokens, without(tokens, token))
		}
		return true, nil
	}

	return false, nil
}

func (r *Registry) Remove(ctx context.Context, token string) error {
	tokens, err := storage.Load[models.ResetToken](ctx, r.adapter, storage.ResetTokens)
	if err != nil {
		return err
	}

	return storage.Save(ctx, r.adapter, storage.ResetTokens, without(tokens, token))
}

func without(tokens []models.ResetToken, token string) []models.ResetToken {
	kept := make([]models.ResetToken, 0, len(tokens))
	for _, t := range tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	return kept
}
