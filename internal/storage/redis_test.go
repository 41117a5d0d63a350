package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisStoreKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		expected string
	}{
		{"with prefix", "assetdesk", "assetdesk:assets"},
		{"without prefix", "", "assets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewRedisStore(nil, tt.prefix)
			assert.Equal(t, tt.expected, store.key("assets"))
		})
	}
}
