package family

// Relationship type labels stored on member records.
const (
	RelationParent  = "parent"
	RelationChild   = "child"
	RelationSpouse  = "spouse"
	RelationSibling = "sibling"

	// RelationRelated is the generic inverse for labels with no defined inverse.
	RelationRelated = "related"
)

// Inverse returns the label stored on the opposite side of a relationship
// edge. It is total: any label without a defined inverse maps to
// RelationRelated. This table is the single source of truth for keeping the
// two stored directions of an edge in agreement.
func Inverse(relation string) string {
	switch relation {
	case RelationParent:
		return RelationChild
	case RelationChild:
		return RelationParent
	case RelationSpouse:
		return RelationSpouse
	case RelationSibling:
		return RelationSibling
	default:
		return RelationRelated
	}
}
