// Package forest implements the tree access service: the tree lifecycle and
// member operations, each behind the authorization gate.
package forest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/jacentio/familyforest/auth"
	"github.com/jacentio/familyforest/family"
	"github.com/jacentio/familyforest/internal/keys"
	"github.com/jacentio/familyforest/store"
)

// Service orchestrates the authorization gate and the family graph model.
type Service struct {
	items  store.ItemStore
	gate   *auth.Gate
	logger *slog.Logger
}

// NewService creates a Service. Dependencies are constructed once at process
// start and passed in; the Service holds no other state.
func NewService(items store.ItemStore, gate *auth.Gate, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		items:  items,
		gate:   gate,
		logger: logger,
	}
}

// CreateTree creates a tree owned by principalID and returns it.
func (s *Service) CreateTree(ctx context.Context, principalID string, in TreeInput) (*family.Tree, error) {
	if !s.gate.IsAuthorized(ctx, principalID) {
		s.logger.Warn("unauthorized tree creation attempt", "principalID", principalID)
		return nil, auth.NewAuthorizationError(principalID, "create a tree")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tree := family.NewTree(uuid.NewString(), in.Name, in.Description, principalID)
	item, err := tree.MarshalItem()
	if err != nil {
		return nil, err
	}
	if err := s.items.Put(ctx, item); err != nil {
		return nil, fmt.Errorf("put tree: %w", err)
	}

	s.logger.Info("created family tree",
		"principalID", principalID,
		"treeID", tree.ID,
	)
	return tree, nil
}

// AddMember adds a new member to the tree and returns it.
func (s *Service) AddMember(ctx context.Context, principalID, treeID string, in MemberInput) (*family.Member, error) {
	if !s.gate.CanAccessTree(ctx, principalID, treeID) {
		s.logger.Warn("unauthorized member addition attempt",
			"principalID", principalID,
			"treeID", treeID,
		)
		return nil, auth.NewAuthorizationError(principalID, "add a member to this tree")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	member := family.NewMember(uuid.NewString(), in.Name)
	member.BirthDate = in.BirthDate
	member.DeathDate = in.DeathDate
	member.Gender = in.Gender
	for k, v := range in.Metadata {
		member.Metadata[k] = v
	}

	if err := s.putMember(ctx, treeID, member); err != nil {
		return nil, err
	}

	s.logger.Info("added family member",
		"treeID", treeID,
		"memberID", member.ID,
	)
	return member, nil
}

// GetMember returns the member, or ErrMemberNotFound if absent.
func (s *Service) GetMember(ctx context.Context, principalID, treeID, memberID string) (*family.Member, error) {
	if !s.gate.CanAccessTree(ctx, principalID, treeID) {
		s.logger.Warn("unauthorized member access attempt",
			"principalID", principalID,
			"treeID", treeID,
			"memberID", memberID,
		)
		return nil, auth.NewAuthorizationError(principalID, "access this tree")
	}

	item, err := s.items.Get(ctx, store.Key{PK: keys.Tree(treeID), SK: keys.Member(memberID)})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return family.UnmarshalMember(item)
}

// UpdateMember overwrites the fields present in patch, refreshes UpdatedAt,
// and persists the member. Returns ErrMemberNotFound if the member is absent.
func (s *Service) UpdateMember(ctx context.Context, principalID, treeID, memberID string, patch MemberPatch) (*family.Member, error) {
	member, err := s.GetMember(ctx, principalID, treeID, memberID)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	patch.apply(member)
	member.Touch()

	if err := s.putMember(ctx, treeID, member); err != nil {
		return nil, err
	}

	s.logger.Info("updated family member",
		"treeID", treeID,
		"memberID", memberID,
	)
	return member, nil
}

// AddRelationship records a typed edge from memberID to peerID and its
// inverse on peerID. Both members must exist; if either is missing, nothing
// is written.
//
// The two writes are not transactional. If the second fails after the first
// succeeded, the edge is left one-sided until a retry; that state is logged
// distinguishably rather than hidden.
func (s *Service) AddRelationship(ctx context.Context, principalID, treeID, memberID, peerID, relation string) error {
	member, err := s.GetMember(ctx, principalID, treeID, memberID)
	if err != nil {
		return err
	}
	peer, err := s.GetMember(ctx, principalID, treeID, peerID)
	if err != nil {
		return err
	}

	member.SetRelationship(peerID, relation)
	if err := s.putMember(ctx, treeID, member); err != nil {
		return err
	}

	peer.SetRelationship(memberID, family.Inverse(relation))
	if err := s.putMember(ctx, treeID, peer); err != nil {
		s.logger.Error("relationship edge left one-sided",
			"treeID", treeID,
			"memberID", memberID,
			"peerID", peerID,
			"relation", relation,
			"error", err,
		)
		return fmt.Errorf("put inverse edge: %w", err)
	}

	s.logger.Info("added relationship",
		"treeID", treeID,
		"memberID", memberID,
		"peerID", peerID,
		"relation", relation,
	)
	return nil
}

// ListMembers returns all members of the tree in store order.
func (s *Service) ListMembers(ctx context.Context, principalID, treeID string) ([]*family.Member, error) {
	if !s.gate.CanAccessTree(ctx, principalID, treeID) {
		s.logger.Warn("unauthorized tree access attempt",
			"principalID", principalID,
			"treeID", treeID,
		)
		return nil, auth.NewAuthorizationError(principalID, "list this tree")
	}

	items, err := s.items.Query(ctx, keys.Tree(treeID), keys.MemberPrefix)
	if err != nil {
		return nil, err
	}

	members := make([]*family.Member, 0, len(items))
	for _, item := range items {
		member, err := family.UnmarshalMember(item)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}

// ShareTree adds targetID to the tree's share list. Only the owner may
// share; sharing with the same principal twice is a no-op.
func (s *Service) ShareTree(ctx context.Context, principalID, treeID, targetID string) error {
	item, err := s.items.Get(ctx, store.Key{PK: keys.Tree(treeID), SK: keys.Metadata})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTreeNotFound
		}
		return err
	}
	tree, err := family.UnmarshalTree(item)
	if err != nil {
		return err
	}
	if tree.OwnerID != principalID {
		s.logger.Warn("unauthorized tree sharing attempt",
			"principalID", principalID,
			"treeID", treeID,
		)
		return ErrNotOwner
	}

	if !tree.Share(targetID) {
		return nil
	}

	sharedWith, err := attributevalue.Marshal(tree.SharedWith)
	if err != nil {
		return err
	}
	err = s.items.Update(ctx, store.Key{PK: keys.Tree(treeID), SK: keys.Metadata}, map[string]types.AttributeValue{
		"shared_with": sharedWith,
		"updated_at":  &types.AttributeValueMemberS{Value: tree.UpdatedAt},
	})
	if err != nil {
		return fmt.Errorf("update share list: %w", err)
	}

	s.logger.Info("shared tree",
		"treeID", treeID,
		"sharedWith", targetID,
	)
	return nil
}

// putMember persists the member's storage item under treeID.
func (s *Service) putMember(ctx context.Context, treeID string, member *family.Member) error {
	item, err := member.MarshalItem(treeID)
	if err != nil {
		return err
	}
	if err := s.items.Put(ctx, item); err != nil {
		return fmt.Errorf("put member: %w", err)
	}
	return nil
}
