// Package family models a tree's members and their typed relationship edges,
// and handles their serialization to and from the storage item layout.
package family

import (
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/familyforest/internal/keys"
	"github.com/jacentio/familyforest/store"
)

// Member is a node in a tree's family graph.
//
// Optional fields are pointers so that "unset" survives a round trip through
// storage without turning into an empty string.
type Member struct {
	ID        string
	Name      string
	BirthDate *string
	DeathDate *string
	Gender    *string

	// Relationships maps a related member's ID to the relationship type
	// label, one entry per related member.
	Relationships map[string]string

	// Metadata is an open string-to-string mapping.
	Metadata map[string]string

	CreatedAt string
	UpdatedAt string
}

// NewMember creates a member with both timestamps set to now.
func NewMember(id, name string) *Member {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Member{
		ID:            id,
		Name:          name,
		Relationships: make(map[string]string),
		Metadata:      make(map[string]string),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SetRelationship adds or replaces the relationship edge to peerID and
// refreshes UpdatedAt.
func (m *Member) SetRelationship(peerID, relation string) {
	if m.Relationships == nil {
		m.Relationships = make(map[string]string)
	}
	m.Relationships[peerID] = relation
	m.Touch()
}

// ClearRelationship removes the relationship edge to peerID if present.
// UpdatedAt is refreshed only when an edge was actually removed.
func (m *Member) ClearRelationship(peerID string) {
	if _, ok := m.Relationships[peerID]; !ok {
		return
	}
	delete(m.Relationships, peerID)
	m.Touch()
}

// RelationshipsOfType returns the IDs of all members related to m with the
// given relationship type, in sorted order.
func (m *Member) RelationshipsOfType(relation string) []string {
	var peers []string
	for peerID, r := range m.Relationships {
		if r == relation {
			peers = append(peers, peerID)
		}
	}
	sort.Strings(peers)
	return peers
}

// Touch refreshes UpdatedAt to now.
func (m *Member) Touch() {
	m.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// memberItem is the storage shape of a member record.
type memberItem struct {
	PK            string            `dynamodbav:"PK"`
	SK            string            `dynamodbav:"SK"`
	MemberID      string            `dynamodbav:"member_id"`
	Name          string            `dynamodbav:"name"`
	BirthDate     *string           `dynamodbav:"birth_date,omitempty"`
	DeathDate     *string           `dynamodbav:"death_date,omitempty"`
	Gender        *string           `dynamodbav:"gender,omitempty"`
	Relationships map[string]string `dynamodbav:"relationships"`
	Metadata      map[string]string `dynamodbav:"metadata"`
	CreatedAt     string            `dynamodbav:"created_at"`
	UpdatedAt     string            `dynamodbav:"updated_at"`
}

// MarshalItem converts the member to its storage item under treeID.
func (m *Member) MarshalItem(treeID string) (store.Item, error) {
	rec := memberItem{
		PK:            keys.Tree(treeID),
		SK:            keys.Member(m.ID),
		MemberID:      m.ID,
		Name:          m.Name,
		BirthDate:     m.BirthDate,
		DeathDate:     m.DeathDate,
		Gender:        m.Gender,
		Relationships: m.Relationships,
		Metadata:      m.Metadata,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if rec.Relationships == nil {
		rec.Relationships = make(map[string]string)
	}
	if rec.Metadata == nil {
		rec.Metadata = make(map[string]string)
	}

	raw, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, err
	}
	return store.Item(raw), nil
}

// UnmarshalMember builds a Member from its storage item.
func UnmarshalMember(item store.Item) (*Member, error) {
	var rec memberItem
	if err := attributevalue.UnmarshalMap(map[string]types.AttributeValue(item), &rec); err != nil {
		return nil, err
	}

	m := &Member{
		ID:            rec.MemberID,
		Name:          rec.Name,
		BirthDate:     rec.BirthDate,
		DeathDate:     rec.DeathDate,
		Gender:        rec.Gender,
		Relationships: rec.Relationships,
		Metadata:      rec.Metadata,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
	if m.Relationships == nil {
		m.Relationships = make(map[string]string)
	}
	if m.Metadata == nil {
		m.Metadata = make(map[string]string)
	}
	return m, nil
}
