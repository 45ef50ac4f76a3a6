package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProvenanceField names a requirement field whose changes are audited.
type ProvenanceField string

const (
	FieldRequestedFrom ProvenanceField = "requested_from"
	FieldReceivedFrom  ProvenanceField = "received_from"
	FieldStatus        ProvenanceField = "status"
)

// IsMutableProvenanceField reports whether the field can be changed through
// the provenance update operation. Status changes are audited with the same
// entry shape but move through the transition engine.
func IsMutableProvenanceField(field ProvenanceField) bool {
	return field == FieldRequestedFrom || field == FieldReceivedFrom
}

// ProvenanceChangeEntry represents the provenance_change_entries table.
// History is append-only: rows are written once and never mutated. The owning
// case columns are denormalized from the requirement so case-level history
// reads stay a single query.
type ProvenanceChangeEntry struct {
	EntryID       string  `gorm:"primaryKey;column:entry_id" json:"entry_id"`
	RequirementID int     `gorm:"column:requirement_id" json:"requirement_id"`
	CaseID        *int    `gorm:"column:case_id" json:"case_id,omitempty"`
	LegacyCaseID  *int    `gorm:"column:legacy_case_id" json:"legacy_case_id,omitempty"`
	Field         string  `gorm:"column:field" json:"field"`
	OldValue      *string `gorm:"column:old_value" json:"old_value,omitempty"`
	NewValue      *string `gorm:"column:new_value" json:"new_value,omitempty"`

	// Actor identity resolved to a stable display string at write time.
	ActorUserID *int   `gorm:"column:actor_user_id" json:"actor_user_id,omitempty"`
	ActorName   string `gorm:"column:actor_name" json:"actor_name"`

	Reason    *string   `gorm:"column:reason" json:"reason,omitempty"`
	ChangedAt time.Time `gorm:"column:changed_at" json:"changed_at"`
}

func (ProvenanceChangeEntry) TableName() string {
	return "provenance_change_entries"
}

// BeforeCreate hook to generate UUID
func (e *ProvenanceChangeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.EntryID == "" {
		e.EntryID = uuid.New().String()
	}
	return nil
}

// ActorRef identifies who performed a change: either a structured account id
// or a free-text display name. Exactly one form is usually present; when both
// are, the account id wins.
type ActorRef struct {
	UserID *int   `json:"user_id,omitempty"`
	Name   string `json:"name,omitempty"`
}
