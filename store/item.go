package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute names of the table's composite primary key.
const (
	AttrPK = "PK"
	AttrSK = "SK"
)

// Key is the composite primary key of an item.
type Key struct {
	PK string
	SK string
}

// Item is a raw DynamoDB item.
type Item map[string]types.AttributeValue

// Key extracts the composite primary key from an item.
// The second return value is false if either key attribute is missing.
func (i Item) Key() (Key, bool) {
	pk, ok := i[AttrPK].(*types.AttributeValueMemberS)
	if !ok {
		return Key{}, false
	}
	sk, ok := i[AttrSK].(*types.AttributeValueMemberS)
	if !ok {
		return Key{}, false
	}
	return Key{PK: pk.Value, SK: sk.Value}, true
}

// ItemStore is the item-level storage contract.
//
// Implemented by [Store] (DynamoDB) and [Memory] (in-memory).
type ItemStore interface {
	// Get retrieves the item at key, returning ErrNotFound if absent.
	Get(ctx context.Context, key Key) (Item, error)

	// Put stores the item, fully replacing any existing item with the same key.
	Put(ctx context.Context, item Item) error

	// Update applies a SET of attribute values to the item at key.
	Update(ctx context.Context, key Key, sets map[string]types.AttributeValue) error

	// Query returns all items in partition pk whose sort key starts with skPrefix.
	// An empty skPrefix returns the whole partition. Order is store order.
	Query(ctx context.Context, pk, skPrefix string) ([]Item, error)

	// Delete removes the item at key. Deleting an absent item is not an error.
	Delete(ctx context.Context, key Key) error
}
