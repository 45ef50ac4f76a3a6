package models

import "time"

// Case represents the cases table (current schema).
type Case struct {
	CaseID     int        `gorm:"primaryKey;column:case_id" json:"case_id"`
	CaseNumber string     `gorm:"column:case_number" json:"case_number"`
	Title      string     `gorm:"column:title" json:"title"`
	OpenedAt   *time.Time `gorm:"column:opened_at" json:"opened_at,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Case) TableName() string {
	return "cases"
}

// LegacyCase represents the legacy_cases table, the pre-migration schema that
// is still served side by side with the current one.
type LegacyCase struct {
	LegacyCaseID int        `gorm:"primaryKey;column:legacy_case_id" json:"legacy_case_id"`
	FileNumber   string     `gorm:"column:file_number" json:"file_number"`
	Title        string     `gorm:"column:title" json:"title"`
	ImportedAt   *time.Time `gorm:"column:imported_at" json:"imported_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (LegacyCase) TableName() string {
	return "legacy_cases"
}
