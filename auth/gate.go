// Package auth decides whether a principal may act.
//
// Admin status comes from a static allowlist configured at startup and is
// checked first, independently of the store, so admin access survives store
// outages. Every other principal is governed by a persisted [AccessRecord].
// All ambiguous paths resolve to denial: a missing record, a store failure,
// or an unreadable item all mean "no" (fail-closed).
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/familyforest/family"
	"github.com/jacentio/familyforest/internal/keys"
	"github.com/jacentio/familyforest/store"
)

// Gate enforces the access-control model.
type Gate struct {
	admins map[string]struct{}
	items  store.ItemStore
	logger *slog.Logger
}

// NewGate creates a Gate with the given admin allowlist. The allowlist is
// immutable for the Gate's lifetime. Blank and padded IDs are cleaned up.
func NewGate(adminIDs []string, items store.ItemStore, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	admins := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		id = strings.TrimSpace(id)
		if id != "" {
			admins[id] = struct{}{}
		}
	}
	return &Gate{
		admins: admins,
		items:  items,
		logger: logger,
	}
}

// IsAdmin reports whether principalID is on the configured allowlist.
func (g *Gate) IsAdmin(principalID string) bool {
	_, ok := g.admins[principalID]
	return ok
}

// IsAuthorized reports whether principalID may use the system. Admins are
// always authorized; everyone else needs an active AccessRecord. Store
// failures deny.
func (g *Gate) IsAuthorized(ctx context.Context, principalID string) bool {
	if g.IsAdmin(principalID) {
		return true
	}

	item, err := g.items.Get(ctx, store.Key{PK: keys.User(principalID), SK: keys.Metadata})
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			g.logger.Warn("access record lookup failed, denying",
				"principalID", principalID,
				"error", err,
			)
		}
		return false
	}

	rec, err := UnmarshalAccessRecord(item)
	if err != nil {
		g.logger.Warn("access record unreadable, denying",
			"principalID", principalID,
			"error", err,
		)
		return false
	}
	return rec.Status == StatusActive
}

// Grant upserts an active AccessRecord for targetID. Granting an already
// active principal refreshes the record's metadata. An empty treeName falls
// back to DefaultTreeName.
func (g *Gate) Grant(ctx context.Context, targetID, grantedBy, treeName string) error {
	if treeName == "" {
		treeName = DefaultTreeName
	}

	rec := &AccessRecord{
		PrincipalID: targetID,
		TreeName:    treeName,
		GrantedBy:   grantedBy,
		GrantedAt:   time.Now().UTC().Format(time.RFC3339),
		Status:      StatusActive,
	}
	item, err := rec.MarshalItem()
	if err != nil {
		return err
	}
	if err := g.items.Put(ctx, item); err != nil {
		return err
	}

	g.logger.Info("granted access",
		"targetID", targetID,
		"grantedBy", grantedBy,
	)
	return nil
}

// Revoke flips targetID's AccessRecord to inactive. The record is retained.
// Revoking a never-granted principal is a no-op, and admins cannot be
// revoked through this path.
func (g *Gate) Revoke(ctx context.Context, targetID string) error {
	if g.IsAdmin(targetID) {
		return nil
	}

	key := store.Key{PK: keys.User(targetID), SK: keys.Metadata}
	if _, err := g.items.Get(ctx, key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	err := g.items.Update(ctx, key, map[string]types.AttributeValue{
		"status": &types.AttributeValueMemberS{Value: StatusInactive},
	})
	if err != nil {
		return err
	}

	g.logger.Info("revoked access", "targetID", targetID)
	return nil
}

// CanAccessTree reports whether principalID may read or modify the tree.
// Admins can access every tree; others must be authorized and be the owner
// or on the share list. A missing tree denies.
func (g *Gate) CanAccessTree(ctx context.Context, principalID, treeID string) bool {
	if g.IsAdmin(principalID) {
		return true
	}
	if !g.IsAuthorized(ctx, principalID) {
		return false
	}

	item, err := g.items.Get(ctx, store.Key{PK: keys.Tree(treeID), SK: keys.Metadata})
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			g.logger.Warn("tree lookup failed, denying",
				"principalID", principalID,
				"treeID", treeID,
				"error", err,
			)
		}
		return false
	}

	tree, err := family.UnmarshalTree(item)
	if err != nil {
		g.logger.Warn("tree record unreadable, denying",
			"treeID", treeID,
			"error", err,
		)
		return false
	}
	return tree.OwnerID == principalID || tree.IsSharedWith(principalID)
}
