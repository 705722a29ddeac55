//go:build e2e

// Package e2e contains end-to-end integration tests using a real DynamoDB table.
// Run with: go test -tags=e2e -v ./e2e/...
package e2e

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/jacentio/familyforest/auth"
	"github.com/jacentio/familyforest/forest"
	"github.com/jacentio/familyforest/store"
)

// Test configuration
const (
	awsProfile = "jacent-alpha-cp"

	// Table name - unique per test run to avoid conflicts
	tablePrefix = "familyforest-e2e-test"

	adminID = "1"
	userID  = "42"
)

var (
	testID    string
	tableName string

	ddbClient *dynamodb.Client
	items     *store.Store
	gate      *auth.Gate
	service   *forest.Service
)

func TestMain(m *testing.M) {
	testID = uuid.New().String()[:8]
	tableName = fmt.Sprintf("%s-%s", tablePrefix, testID)

	fmt.Printf("Test ID: %s\n", testID)
	fmt.Printf("Table: %s\n", tableName)

	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithSharedConfigProfile(awsProfile),
	)
	if err != nil {
		fmt.Printf("Failed to load AWS config: %v\n", err)
		os.Exit(1)
	}

	ddbClient = dynamodb.NewFromConfig(cfg)

	if err := createTable(ctx); err != nil {
		fmt.Printf("Failed to create table: %v\n", err)
		os.Exit(1)
	}

	items = store.New(ddbClient, store.Config{TableName: tableName})
	gate = auth.NewGate([]string{adminID}, items, nil)
	service = forest.NewService(items, gate, nil)

	code := m.Run()

	if err := deleteTable(ctx); err != nil {
		fmt.Printf("Failed to delete table: %v\n", err)
	}

	os.Exit(code)
}

func createTable(ctx context.Context) error {
	fmt.Println("Creating test table...")

	_, err := ddbClient.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(tableName),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(store.AttrPK), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(store.AttrSK), KeyType: types.KeyTypeRange},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(store.AttrPK), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(store.AttrSK), AttributeType: types.ScalarAttributeTypeS},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("create table %s: %w", tableName, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(ddbClient)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	}, 2*time.Minute); err != nil {
		return fmt.Errorf("wait for table %s: %w", tableName, err)
	}

	fmt.Println("Table created and active")
	return nil
}

func deleteTable(ctx context.Context) error {
	fmt.Println("Deleting test table...")

	_, err := ddbClient.DeleteTable(ctx, &dynamodb.DeleteTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		return fmt.Errorf("delete table %s: %w", tableName, err)
	}

	fmt.Println("Table deleted")
	return nil
}

// TestFullLifecycle walks grant, tree creation, members, a relationship,
// sharing, and revocation against a real table.
func TestFullLifecycle(t *testing.T) {
	ctx := context.Background()

	// Unknown principal is denied before any grant.
	if gate.IsAuthorized(ctx, userID) {
		t.Fatal("expected principal to be denied before grant")
	}

	if err := gate.Grant(ctx, userID, adminID, ""); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}
	if !gate.IsAuthorized(ctx, userID) {
		t.Fatal("expected principal to be authorized after grant")
	}

	tree, err := service.CreateTree(ctx, userID, forest.TreeInput{Name: "Smiths"})
	if err != nil {
		t.Fatalf("CreateTree failed: %v", err)
	}

	alice, err := service.AddMember(ctx, userID, tree.ID, forest.MemberInput{Name: "Alice"})
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	bob, err := service.AddMember(ctx, userID, tree.ID, forest.MemberInput{Name: "Bob"})
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	if err := service.AddRelationship(ctx, userID, tree.ID, alice.ID, bob.ID, "parent"); err != nil {
		t.Fatalf("AddRelationship failed: %v", err)
	}

	gotBob, err := service.GetMember(ctx, userID, tree.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetMember failed: %v", err)
	}
	if gotBob.Relationships[alice.ID] != "child" {
		t.Errorf("expected inverse edge 'child', got %q", gotBob.Relationships[alice.ID])
	}

	members, err := service.ListMembers(ctx, userID, tree.ID)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("expected 2 members, got %d", len(members))
	}

	// Share with a second granted user.
	peerID := "99"
	if err := gate.Grant(ctx, peerID, adminID, ""); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}
	if err := service.ShareTree(ctx, userID, tree.ID, peerID); err != nil {
		t.Fatalf("ShareTree failed: %v", err)
	}
	if _, err := service.GetMember(ctx, peerID, tree.ID, alice.ID); err != nil {
		t.Errorf("expected shared user to read members, got %v", err)
	}

	// Revocation closes the gate again, owner or not.
	if err := gate.Revoke(ctx, userID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	_, err = service.ListMembers(ctx, userID, tree.ID)
	var authErr *auth.AuthorizationError
	if !errors.As(err, &authErr) {
		t.Errorf("expected AuthorizationError after revoke, got %v", err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	pk := "TREE#" + uuid.New().String()

	item := store.Item{
		store.AttrPK: &types.AttributeValueMemberS{Value: pk},
		store.AttrSK: &types.AttributeValueMemberS{Value: "METADATA"},
		"name":       &types.AttributeValueMemberS{Value: "round trip"},
	}
	if err := items.Put(ctx, item); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := items.Get(ctx, store.Key{PK: pk, SK: "METADATA"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	name := got["name"].(*types.AttributeValueMemberS).Value
	if name != "round trip" {
		t.Errorf("expected name 'round trip', got %q", name)
	}

	if err := items.Delete(ctx, store.Key{PK: pk, SK: "METADATA"}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := items.Get(ctx, store.Key{PK: pk, SK: "METADATA"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
