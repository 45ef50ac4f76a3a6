package models

import "time"

// Contact represents the case_contacts table. A contact belongs to exactly
// one case, in either schema (same exclusivity rule as requirements).
type Contact struct {
	ContactID       int        `gorm:"primaryKey;column:contact_id" json:"contact_id"`
	CaseID          *int       `gorm:"column:case_id" json:"case_id,omitempty"`
	LegacyCaseID    *int       `gorm:"column:legacy_case_id" json:"legacy_case_id,omitempty"`
	FirstName       string     `gorm:"column:first_name" json:"first_name"`
	LastName        string     `gorm:"column:last_name" json:"last_name"`
	Role            string     `gorm:"column:role" json:"role"`
	IsMainApplicant bool       `gorm:"column:is_main_applicant" json:"is_main_applicant"`
	IsPersecuted    bool       `gorm:"column:is_persecuted" json:"is_persecuted"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Contact) TableName() string {
	return "case_contacts"
}

// CaseRef returns the canonical identity of the owning case.
func (ct *Contact) CaseRef() CaseRef {
	if ct.LegacyCaseID != nil {
		return CaseRef{Schema: SchemaLegacy, ID: *ct.LegacyCaseID}
	}
	if ct.CaseID != nil {
		return CaseRef{Schema: SchemaCurrent, ID: *ct.CaseID}
	}
	return CaseRef{}
}

// BelongsTo reports whether the contact is owned by the given case.
func (ct *Contact) BelongsTo(ref CaseRef) bool {
	return ct.CaseRef() == ref
}

// Relationship roles a contact can hold on a case.
const (
	RoleMainApplicant = "main_applicant"
	RoleSpouse        = "spouse"
	RoleChild         = "child"
	RoleParent        = "parent"
	RoleSibling       = "sibling"
	RoleGrandparent   = "grandparent"
	RoleGrandchild    = "grandchild"
	RoleAuntUncle     = "aunt_uncle"
	RoleCousin        = "cousin"
	RoleOther         = "other"
)

// ValidContactRoles returns a slice of valid relationship roles.
func ValidContactRoles() []string {
	return []string{
		RoleMainApplicant,
		RoleSpouse,
		RoleChild,
		RoleParent,
		RoleSibling,
		RoleGrandparent,
		RoleGrandchild,
		RoleAuntUncle,
		RoleCousin,
		RoleOther,
	}
}

// IsContactRoleValid checks if the given role is valid.
func IsContactRoleValid(role string) bool {
	for _, validRole := range ValidContactRoles() {
		if role == validRole {
			return true
		}
	}
	return false
}

// FullName returns the contact's display name.
func (ct *Contact) FullName() string {
	if ct.FirstName == "" {
		return ct.LastName
	}
	if ct.LastName == "" {
		return ct.FirstName
	}
	return ct.FirstName + " " + ct.LastName
}
