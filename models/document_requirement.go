package models

import "time"

// DocumentRequirement represents the document_requirements table. Exactly one
// of CaseID/LegacyCaseID is set. A nil ContactID makes the requirement
// case-wide: it applies to every contact of the case until a contact-specific
// row sharing the same document_name overrides it.
type DocumentRequirement struct {
	RequirementID int    `gorm:"primaryKey;column:requirement_id" json:"requirement_id"`
	CaseID        *int   `gorm:"column:case_id" json:"case_id,omitempty"`
	LegacyCaseID  *int   `gorm:"column:legacy_case_id" json:"legacy_case_id,omitempty"`
	ContactID     *int   `gorm:"column:contact_id" json:"contact_id,omitempty"`
	DocumentName  string `gorm:"column:document_name" json:"document_name"`
	Category      string `gorm:"column:category" json:"category"`
	Status        string `gorm:"column:status" json:"status"`
	IsRequired    bool   `gorm:"column:is_required" json:"is_required"`

	DueDate      *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	Notes        *string    `gorm:"column:notes" json:"notes,omitempty"`
	Instructions *string    `gorm:"column:instructions" json:"instructions,omitempty"`

	// Provenance: where the document was requested from / received from, and
	// the one-shot lifecycle timestamps.
	RequestedFrom *string    `gorm:"column:requested_from" json:"requested_from,omitempty"`
	ReceivedFrom  *string    `gorm:"column:received_from" json:"received_from,omitempty"`
	RequestedDate *time.Time `gorm:"column:requested_date" json:"requested_date,omitempty"`
	ReceivedDate  *time.Time `gorm:"column:received_date" json:"received_date,omitempty"`
	ApprovedDate  *time.Time `gorm:"column:approved_date" json:"approved_date,omitempty"`
	RequestedBy   *int       `gorm:"column:requested_by" json:"requested_by,omitempty"`

	// Most recent provenance change per field, stamped at write time.
	RequestedFromChangedAt *time.Time `gorm:"column:requested_from_changed_at" json:"requested_from_changed_at,omitempty"`
	RequestedFromChangedBy *string    `gorm:"column:requested_from_changed_by" json:"requested_from_changed_by,omitempty"`
	ReceivedFromChangedAt  *time.Time `gorm:"column:received_from_changed_at" json:"received_from_changed_at,omitempty"`
	ReceivedFromChangedBy  *string    `gorm:"column:received_from_changed_by" json:"received_from_changed_by,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name
func (DocumentRequirement) TableName() string {
	return "document_requirements"
}

// CaseRef returns the canonical identity of the owning case.
func (r *DocumentRequirement) CaseRef() CaseRef {
	if r.LegacyCaseID != nil {
		return CaseRef{Schema: SchemaLegacy, ID: *r.LegacyCaseID}
	}
	if r.CaseID != nil {
		return CaseRef{Schema: SchemaCurrent, ID: *r.CaseID}
	}
	return CaseRef{}
}

// IsCaseWide reports whether the requirement applies to every contact of the
// case rather than to one specific contact.
func (r *DocumentRequirement) IsCaseWide() bool {
	return r.ContactID == nil
}

// Requirement statuses. Any status may move to any other status; handlers
// need to be able to correct mistakes.
const (
	StatusMissing  = "missing"
	StatusPending  = "pending"
	StatusReceived = "received"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatuses returns a slice of valid requirement statuses.
func ValidStatuses() []string {
	return []string{StatusMissing, StatusPending, StatusReceived, StatusApproved, StatusRejected}
}

// IsStatusValid checks if the given status is valid.
func IsStatusValid(status string) bool {
	for _, validStatus := range ValidStatuses() {
		if status == validStatus {
			return true
		}
	}
	return false
}

// IsCompletedStatus reports whether a status counts toward completion.
func IsCompletedStatus(status string) bool {
	return status == StatusReceived || status == StatusApproved
}

// Document categories.
const (
	CategoryIdentity      = "identity"
	CategoryCivilRegistry = "civil_registry"
	CategoryResidence     = "residence"
	CategoryFinancial     = "financial"
	CategoryLegal         = "legal"
	CategoryOther         = "other"
)

// ValidCategories returns a slice of valid document categories.
func ValidCategories() []string {
	return []string{
		CategoryIdentity,
		CategoryCivilRegistry,
		CategoryResidence,
		CategoryFinancial,
		CategoryLegal,
		CategoryOther,
	}
}

// IsCategoryValid checks if the given category is valid.
func IsCategoryValid(category string) bool {
	for _, validCategory := range ValidCategories() {
		if category == validCategory {
			return true
		}
	}
	return false
}

// ProtectedDocumentNames is the fixed set of default document names that can
// never be removed through bulk deletion. Single-row deletes stay allowed.
func ProtectedDocumentNames() []string {
	return []string{
		"Passport Copy",
		"Photo ID",
		"Proof of Address",
		"Power of Attorney",
	}
}

// IsProtectedDocumentName checks if the given name is in the protected set.
func IsProtectedDocumentName(name string) bool {
	for _, protected := range ProtectedDocumentNames() {
		if name == protected {
			return true
		}
	}
	return false
}

// CreateRequirementRequest represents the request for creating a requirement.
type CreateRequirementRequest struct {
	CaseRef       string  `json:"case_ref" binding:"required"`
	ContactID     *int    `json:"contact_id"`
	DocumentName  string  `json:"document_name" binding:"required"`
	Category      string  `json:"category"`
	IsRequired    *bool   `json:"is_required"`
	DueDate       *string `json:"due_date"`
	Notes         *string `json:"notes"`
	RequestedFrom *string `json:"requested_from"`
}

// UpdateRequirementRequest represents the allow-listed partial update.
// Status and provenance move through their own operations, never here.
type UpdateRequirementRequest struct {
	DocumentName *string `json:"document_name,omitempty"`
	Category     *string `json:"category,omitempty"`
	IsRequired   *bool   `json:"is_required,omitempty"`
	DueDate      *string `json:"due_date,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// SetStatusRequest represents a status transition request.
type SetStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Reason *string `json:"reason,omitempty"`
}

// ProvenanceUpdateRequest represents a provenance field change request.
type ProvenanceUpdateRequest struct {
	Field  string  `json:"field" binding:"required,oneof=requested_from received_from"`
	Value  string  `json:"value" binding:"required"`
	Reason *string `json:"reason,omitempty"`
}

// RequirementsSummary provides summary statistics for list responses.
type RequirementsSummary struct {
	TotalDocuments    int `json:"total_documents"`
	RequiredDocuments int `json:"required_documents"`
	OptionalDocuments int `json:"optional_documents"`
}

// SummarizeRequirements computes the summary block over a result set.
func SummarizeRequirements(requirements []DocumentRequirement) RequirementsSummary {
	summary := RequirementsSummary{TotalDocuments: len(requirements)}
	for _, req := range requirements {
		if req.IsRequired {
			summary.RequiredDocuments++
		} else {
			summary.OptionalDocuments++
		}
	}
	return summary
}
