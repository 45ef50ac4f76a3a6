package models

import "time"

// DocumentTemplate represents the document_templates table, a read-only
// catalog consulted at requirement creation time to pre-fill category, due
// date and instructions. The engine works unchanged with an empty or
// unavailable catalog.
type DocumentTemplate struct {
	TemplateID     int        `gorm:"primaryKey;column:template_id" json:"template_id"`
	DocumentName   string     `gorm:"column:document_name" json:"document_name"`
	Category       string     `gorm:"column:category" json:"category"`
	DefaultDueDays *int       `gorm:"column:default_due_days" json:"default_due_days,omitempty"`
	Instructions   *string    `gorm:"column:instructions" json:"instructions,omitempty"`
	IsActive       bool       `gorm:"column:is_active" json:"is_active"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (DocumentTemplate) TableName() string {
	return "document_templates"
}
