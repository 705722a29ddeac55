package family

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/familyforest/internal/keys"
	"github.com/jacentio/familyforest/store"
)

// Tree is a named collection of members owned by exactly one principal.
// OwnerID is immutable after creation.
type Tree struct {
	ID          string
	Name        string
	Description *string
	OwnerID     string

	// SharedWith holds the principals the owner shared the tree with.
	// It never contains the owner.
	SharedWith []string

	CreatedAt string
	UpdatedAt string
}

// NewTree creates a tree owned by ownerID with an empty share list.
func NewTree(id, name string, description *string, ownerID string) *Tree {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Tree{
		ID:          id,
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		SharedWith:  []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Share adds principalID to SharedWith with set semantics. It returns false
// without changing the tree when principalID is already present or is the
// owner; UpdatedAt is refreshed only on change.
func (t *Tree) Share(principalID string) bool {
	if principalID == t.OwnerID {
		return false
	}
	for _, id := range t.SharedWith {
		if id == principalID {
			return false
		}
	}
	t.SharedWith = append(t.SharedWith, principalID)
	t.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return true
}

// IsSharedWith reports whether principalID is in the share list.
func (t *Tree) IsSharedWith(principalID string) bool {
	for _, id := range t.SharedWith {
		if id == principalID {
			return true
		}
	}
	return false
}

// treeItem is the storage shape of a tree metadata record.
type treeItem struct {
	PK          string   `dynamodbav:"PK"`
	SK          string   `dynamodbav:"SK"`
	TreeID      string   `dynamodbav:"tree_id"`
	Name        string   `dynamodbav:"name"`
	Description *string  `dynamodbav:"description,omitempty"`
	OwnerID     string   `dynamodbav:"owner_id"`
	SharedWith  []string `dynamodbav:"shared_with"`
	CreatedAt   string   `dynamodbav:"created_at"`
	UpdatedAt   string   `dynamodbav:"updated_at"`
}

// MarshalItem converts the tree to its storage metadata item.
func (t *Tree) MarshalItem() (store.Item, error) {
	rec := treeItem{
		PK:          keys.Tree(t.ID),
		SK:          keys.Metadata,
		TreeID:      t.ID,
		Name:        t.Name,
		Description: t.Description,
		OwnerID:     t.OwnerID,
		SharedWith:  t.SharedWith,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if rec.SharedWith == nil {
		rec.SharedWith = []string{}
	}

	raw, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, err
	}
	return store.Item(raw), nil
}

// UnmarshalTree builds a Tree from its storage metadata item.
func UnmarshalTree(item store.Item) (*Tree, error) {
	var rec treeItem
	if err := attributevalue.UnmarshalMap(map[string]types.AttributeValue(item), &rec); err != nil {
		return nil, err
	}

	t := &Tree{
		ID:          rec.TreeID,
		Name:        rec.Name,
		Description: rec.Description,
		OwnerID:     rec.OwnerID,
		SharedWith:  rec.SharedWith,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
	if t.SharedWith == nil {
		t.SharedWith = []string{}
	}
	return t, nil
}
