package auth

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/familyforest/internal/keys"
	"github.com/jacentio/familyforest/store"
)

// AccessRecord status values. Revocation flips status to inactive; the
// record itself is never deleted.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// DefaultTreeName is used when a grant doesn't name a tree.
const DefaultTreeName = "My Family Tree"

// AccessRecord is the persisted activation state of a non-admin principal.
// Admins have no AccessRecord; their status comes from the configured
// allowlist alone.
type AccessRecord struct {
	PrincipalID string
	TreeName    string
	GrantedBy   string
	GrantedAt   string
	Status      string
}

// accessItem is the storage shape of an access record.
type accessItem struct {
	PK       string `dynamodbav:"PK"`
	SK       string `dynamodbav:"SK"`
	UserID   string `dynamodbav:"user_id"`
	TreeName string `dynamodbav:"tree_name"`
	AddedBy  string `dynamodbav:"added_by"`
	AddedAt  string `dynamodbav:"added_at"`
	Status   string `dynamodbav:"status"`
}

// MarshalItem converts the record to its storage item.
func (r *AccessRecord) MarshalItem() (store.Item, error) {
	raw, err := attributevalue.MarshalMap(accessItem{
		PK:       keys.User(r.PrincipalID),
		SK:       keys.Metadata,
		UserID:   r.PrincipalID,
		TreeName: r.TreeName,
		AddedBy:  r.GrantedBy,
		AddedAt:  r.GrantedAt,
		Status:   r.Status,
	})
	if err != nil {
		return nil, err
	}
	return store.Item(raw), nil
}

// UnmarshalAccessRecord builds an AccessRecord from its storage item.
func UnmarshalAccessRecord(item store.Item) (*AccessRecord, error) {
	var rec accessItem
	if err := attributevalue.UnmarshalMap(map[string]types.AttributeValue(item), &rec); err != nil {
		return nil, err
	}
	return &AccessRecord{
		PrincipalID: rec.UserID,
		TreeName:    rec.TreeName,
		GrantedBy:   rec.AddedBy,
		GrantedAt:   rec.AddedAt,
		Status:      rec.Status,
	}, nil
}
