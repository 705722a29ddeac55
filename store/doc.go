// Package store provides the DynamoDB data access layer for Family Forest.
//
// All records live in a single table keyed by a partition key (PK) and a
// sort key (SK). The package exposes plain item-level operations; the key
// layout itself is owned by internal/keys and the domain packages.
//
// # Interfaces
//
// Consumers depend on [ItemStore], implemented by both the DynamoDB-backed
// [Store] and the in-memory [Memory] used in tests and local development:
//
//	type ItemStore interface {
//	    Get(ctx context.Context, key Key) (Item, error)
//	    Put(ctx context.Context, item Item) error
//	    Update(ctx context.Context, key Key, sets map[string]types.AttributeValue) error
//	    Query(ctx context.Context, pk, skPrefix string) ([]Item, error)
//	    Delete(ctx context.Context, key Key) error
//	}
//
// A failed write means "state unknown"; callers decide whether to retry or
// surface the failure. A failed read is reported as an error and treated as
// "absent" by the authorization layer (fail-closed).
//
// # Errors
//
//   - [ErrNotFound] - item doesn't exist
//   - [ErrMissingKey] - item is missing its PK or SK attribute
package store
