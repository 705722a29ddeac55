package forest

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jacentio/familyforest/family"
)

// dateLayout is the accepted format for birth and death dates.
const dateLayout = "2006-01-02"

// TreeInput carries the caller-supplied fields for creating a tree.
type TreeInput struct {
	Name        string
	Description *string
}

// Validate checks the input against the tree field rules.
func (in TreeInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Description, validation.Length(0, 1000)),
	)
}

// MemberInput carries the caller-supplied fields for adding a member.
type MemberInput struct {
	Name      string
	BirthDate *string
	DeathDate *string
	Gender    *string
	Metadata  map[string]string
}

// Validate checks the input against the member field rules.
func (in MemberInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.BirthDate, validation.Date(dateLayout)),
		validation.Field(&in.DeathDate, validation.Date(dateLayout)),
	)
}

// MemberPatch is a partial member update. Nil fields are left unchanged;
// there is no way to express an unknown field, so none can slip through.
type MemberPatch struct {
	Name      *string
	BirthDate *string
	DeathDate *string
	Gender    *string
	Metadata  map[string]string
}

// Validate checks the patch against the member field rules.
func (p MemberPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Length(1, 200)),
		validation.Field(&p.BirthDate, validation.Date(dateLayout)),
		validation.Field(&p.DeathDate, validation.Date(dateLayout)),
	)
}

// apply overwrites the member's fields with those present in the patch.
func (p MemberPatch) apply(m *family.Member) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.BirthDate != nil {
		v := *p.BirthDate
		m.BirthDate = &v
	}
	if p.DeathDate != nil {
		v := *p.DeathDate
		m.DeathDate = &v
	}
	if p.Gender != nil {
		v := *p.Gender
		m.Gender = &v
	}
	if p.Metadata != nil {
		m.Metadata = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			m.Metadata[k] = v
		}
	}
}
