package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Memory is a thread-safe in-memory ItemStore used in tests and local runs.
// It mirrors the Store's last-writer-wins replacement semantics.
type Memory struct {
	mu sync.RWMutex
	// Structure: [PK][SK]item
	data map[string]map[string]Item
}

// NewMemory initializes an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]map[string]Item),
	}
}

// Get retrieves the item at key, returning ErrNotFound if absent.
func (m *Memory) Get(ctx context.Context, key Key) (Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	partition, ok := m.data[key.PK]
	if !ok {
		return nil, ErrNotFound
	}
	item, ok := partition[key.SK]
	if !ok {
		return nil, ErrNotFound
	}
	return copyItem(item), nil
}

// Put stores the item, fully replacing any existing item with the same key.
func (m *Memory) Put(ctx context.Context, item Item) error {
	key, ok := item.Key()
	if !ok {
		return ErrMissingKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[key.PK] == nil {
		m.data[key.PK] = make(map[string]Item)
	}
	m.data[key.PK][key.SK] = copyItem(item)
	return nil
}

// Update applies a SET of attribute values to the item at key.
// Updating an absent key creates the item, matching DynamoDB UpdateItem.
func (m *Memory) Update(ctx context.Context, key Key, sets map[string]types.AttributeValue) error {
	if len(sets) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[key.PK] == nil {
		m.data[key.PK] = make(map[string]Item)
	}
	item, ok := m.data[key.PK][key.SK]
	if !ok {
		item = Item{
			AttrPK: &types.AttributeValueMemberS{Value: key.PK},
			AttrSK: &types.AttributeValueMemberS{Value: key.SK},
		}
	}
	for k, v := range sets {
		item[k] = v
	}
	m.data[key.PK][key.SK] = item
	return nil
}

// Query returns all items in partition pk whose sort key starts with skPrefix,
// in sort-key order.
func (m *Memory) Query(ctx context.Context, pk, skPrefix string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	partition := m.data[pk]
	sks := make([]string, 0, len(partition))
	for sk := range partition {
		if strings.HasPrefix(sk, skPrefix) {
			sks = append(sks, sk)
		}
	}
	sort.Strings(sks)

	var items []Item
	for _, sk := range sks {
		items = append(items, copyItem(partition[sk]))
	}
	return items, nil
}

// Delete removes the item at key. Deleting an absent item is not an error.
func (m *Memory) Delete(ctx context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if partition, ok := m.data[key.PK]; ok {
		delete(partition, key.SK)
	}
	return nil
}

// copyItem shallow-copies the attribute map so callers can't alias stored state.
func copyItem(item Item) Item {
	out := make(Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
