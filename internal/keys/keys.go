// Package keys builds the storage key layout for the Family Forest table.
//
// The layout is load-bearing: existing data was written with these exact
// formats, so any change breaks compatibility with persisted records.
package keys

import "fmt"

// Metadata is the sort key of a tree or user metadata record.
const Metadata = "METADATA"

// MemberPrefix is the sort-key prefix shared by all member records of a tree.
const MemberPrefix = "MEMBER#"

// Tree returns the partition key for a tree's records.
func Tree(treeID string) string {
	return fmt.Sprintf("TREE#%s", treeID)
}

// Member returns the sort key for a member record.
func Member(memberID string) string {
	return fmt.Sprintf("%s%s", MemberPrefix, memberID)
}

// User returns the partition key for a principal's access record.
func User(principalID string) string {
	return fmt.Sprintf("USER#%s", principalID)
}
