package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/storage"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
)

// KVStore adapts the session key-value repository to the cart Store surface.
// The whole cart is serialized as one JSON document per session under the
// fixed cart key.
type KVStore struct {
	kv   *storage.Repo
	logg *logger.Logger
}

// NewKVStore builds the persistence adapter.
func NewKVStore(kv *storage.Repo, logg *logger.Logger) (*KVStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv repository required")
	}
	return &KVStore{kv: kv, logg: logg}, nil
}

// SaveCart serializes and writes the full cart synchronously.
func (s *KVStore) SaveCart(ctx context.Context, sessionID string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	return s.kv.Put(ctx, sessionID, storage.KeyCart, string(raw))
}

// LoadCart reads the persisted cart. A missing row, invalid JSON, or any item
// failing the shape check yields an empty cart rather than an error; only
// infrastructure failures are surfaced.
func (s *KVStore) LoadCart(ctx context.Context, sessionID string) ([]Item, error) {
	raw, found, err := s.kv.Get(ctx, sessionID, storage.KeyCart)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "persisted cart is not valid JSON, starting empty")
		}
		return nil, nil
	}
	for _, item := range items {
		if err := validateItem(item); err != nil {
			if s.logg != nil {
				s.logg.Warn(ctx, "persisted cart failed shape check, starting empty: "+err.Error())
			}
			return nil, nil
		}
	}
	return items, nil
}

func validateItem(item Item) error {
	if item.ID < 1 {
		return fmt.Errorf("item id must be >= 1, got %d", item.ID)
	}
	if item.Quantity < 1 {
		return fmt.Errorf("item %d quantity must be >= 1, got %d", item.ID, item.Quantity)
	}
	if item.Price.IsNegative() {
		return fmt.Errorf("item %d price must be >= 0", item.ID)
	}
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("item %d name is required", item.ID)
	}
	return nil
}
