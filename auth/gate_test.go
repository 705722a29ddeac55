package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/familyforest/auth"
	"github.com/jacentio/familyforest/family"
	"github.com/jacentio/familyforest/store"
)

// failingStore fails every operation, simulating a store outage.
type failingStore struct{}

var errDown = errors.New("store unreachable")

func (failingStore) Get(ctx context.Context, key store.Key) (store.Item, error) {
	return nil, errDown
}

func (failingStore) Put(ctx context.Context, item store.Item) error { return errDown }

func (failingStore) Update(ctx context.Context, key store.Key, sets map[string]types.AttributeValue) error {
	return errDown
}

func (failingStore) Query(ctx context.Context, pk, skPrefix string) ([]store.Item, error) {
	return nil, errDown
}

func (failingStore) Delete(ctx context.Context, key store.Key) error { return errDown }

func putTree(t *testing.T, items store.ItemStore, tree *family.Tree) {
	t.Helper()
	item, err := tree.MarshalItem()
	if err != nil {
		t.Fatalf("MarshalItem failed: %v", err)
	}
	if err := items.Put(context.Background(), item); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
}

func TestGate_IsAdmin(t *testing.T) {
	gate := auth.NewGate([]string{"1", " 2 ", ""}, store.NewMemory(), nil)

	tests := []struct {
		principalID string
		expected    bool
	}{
		{"1", true},
		{"2", true}, // padded entries are trimmed
		{"3", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := gate.IsAdmin(tt.principalID); got != tt.expected {
			t.Errorf("IsAdmin(%q): expected %v, got %v", tt.principalID, tt.expected, got)
		}
	}
}

func TestGate_AdminAuthorizedDespiteStoreOutage(t *testing.T) {
	gate := auth.NewGate([]string{"1"}, failingStore{}, nil)
	ctx := context.Background()

	if !gate.IsAuthorized(ctx, "1") {
		t.Error("expected admin to be authorized with store unreachable")
	}
	if !gate.CanAccessTree(ctx, "1", "any-tree") {
		t.Error("expected admin to access any tree with store unreachable")
	}
}

func TestGate_StoreOutageDeniesNonAdmin(t *testing.T) {
	gate := auth.NewGate([]string{"1"}, failingStore{}, nil)

	if gate.IsAuthorized(context.Background(), "42") {
		t.Error("expected store failure to deny (fail-closed)")
	}
}

func TestGate_UnknownPrincipalDenied(t *testing.T) {
	gate := auth.NewGate(nil, store.NewMemory(), nil)

	if gate.IsAuthorized(context.Background(), "42") {
		t.Error("expected principal with no access record to be denied")
	}
}

func TestGate_GrantRevokeLifecycle(t *testing.T) {
	items := store.NewMemory()
	gate := auth.NewGate([]string{"1"}, items, nil)
	ctx := context.Background()

	if err := gate.Grant(ctx, "42", "1", ""); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}
	if !gate.IsAuthorized(ctx, "42") {
		t.Error("expected granted principal to be authorized")
	}

	rec := getAccessRecord(t, items, "42")
	if rec.Status != auth.StatusActive {
		t.Errorf("expected status 'active', got %q", rec.Status)
	}
	if rec.GrantedBy != "1" {
		t.Errorf("expected grantedBy '1', got %q", rec.GrantedBy)
	}
	if rec.TreeName != auth.DefaultTreeName {
		t.Errorf("expected default tree name, got %q", rec.TreeName)
	}

	if err := gate.Revoke(ctx, "42"); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if gate.IsAuthorized(ctx, "42") {
		t.Error("expected revoked principal to be denied")
	}

	// Revocation is soft: the record is retained, flipped to inactive.
	rec = getAccessRecord(t, items, "42")
	if rec.Status != auth.StatusInactive {
		t.Errorf("expected status 'inactive', got %q", rec.Status)
	}

	// A second revoke is a no-op.
	if err := gate.Revoke(ctx, "42"); err != nil {
		t.Errorf("expected repeated revoke to be a no-op, got %v", err)
	}
}

func TestGate_GrantIsIdempotent(t *testing.T) {
	gate := auth.NewGate(nil, store.NewMemory(), nil)
	ctx := context.Background()

	if err := gate.Grant(ctx, "42", "1", "Smiths"); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}
	if err := gate.Grant(ctx, "42", "2", "Joneses"); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}
	if !gate.IsAuthorized(ctx, "42") {
		t.Error("expected principal to stay authorized after re-grant")
	}
}

func TestGate_RevokeNeverGrantedIsNoOp(t *testing.T) {
	gate := auth.NewGate(nil, store.NewMemory(), nil)

	if err := gate.Revoke(context.Background(), "42"); err != nil {
		t.Errorf("expected revoke of never-granted principal to be a no-op, got %v", err)
	}
}

func TestGate_RevokeAdminIsNoOp(t *testing.T) {
	items := store.NewMemory()
	gate := auth.NewGate([]string{"1"}, items, nil)
	ctx := context.Background()

	if err := gate.Revoke(ctx, "1"); err != nil {
		t.Errorf("expected revoke of admin to be a no-op, got %v", err)
	}
	if !gate.IsAuthorized(ctx, "1") {
		t.Error("expected admin to remain authorized")
	}
}

func TestGate_CanAccessTree(t *testing.T) {
	items := store.NewMemory()
	gate := auth.NewGate([]string{"1"}, items, nil)
	ctx := context.Background()

	for _, id := range []string{"42", "99", "77"} {
		if err := gate.Grant(ctx, id, "1", ""); err != nil {
			t.Fatalf("Grant failed: %v", err)
		}
	}

	tree := family.NewTree("t1", "Smiths", nil, "42")
	tree.Share("99")
	putTree(t, items, tree)

	tests := []struct {
		name        string
		principalID string
		treeID      string
		expected    bool
	}{
		{"owner", "42", "t1", true},
		{"shared", "99", "t1", true},
		{"admin", "1", "t1", true},
		{"authorized stranger", "77", "t1", false},
		{"unknown principal", "666", "t1", false},
		{"missing tree", "42", "no-such-tree", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.CanAccessTree(ctx, tt.principalID, tt.treeID); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGate_RevokedOwnerLosesTreeAccess(t *testing.T) {
	items := store.NewMemory()
	gate := auth.NewGate(nil, items, nil)
	ctx := context.Background()

	if err := gate.Grant(ctx, "42", "1", ""); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}
	putTree(t, items, family.NewTree("t1", "Smiths", nil, "42"))

	if !gate.CanAccessTree(ctx, "42", "t1") {
		t.Fatal("expected owner access before revocation")
	}
	if err := gate.Revoke(ctx, "42"); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if gate.CanAccessTree(ctx, "42", "t1") {
		t.Error("expected revoked owner to lose tree access")
	}
}

func getAccessRecord(t *testing.T, items store.ItemStore, principalID string) *auth.AccessRecord {
	t.Helper()
	item, err := items.Get(context.Background(), store.Key{PK: "USER#" + principalID, SK: "METADATA"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	rec, err := auth.UnmarshalAccessRecord(item)
	if err != nil {
		t.Fatalf("UnmarshalAccessRecord failed: %v", err)
	}
	return rec
}
