package services

import (
	"context"
	"testing"
	"time"

	"case-docs-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database migrated with the full schema. A
// single connection keeps every query on the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Case{},
		&models.LegacyCase{},
		&models.Contact{},
		&models.DocumentRequirement{},
		&models.ProvenanceChangeEntry{},
		&models.DocumentTemplate{},
		&models.User{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func seedCase(t *testing.T, db *gorm.DB) models.CaseRef {
	t.Helper()
	row := models.Case{CaseNumber: "C-1001", Title: "Citizenship application"}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to seed case: %v", err)
	}
	return models.CaseRef{Schema: models.SchemaCurrent, ID: row.CaseID}
}

func seedLegacyCase(t *testing.T, db *gorm.DB) models.CaseRef {
	t.Helper()
	row := models.LegacyCase{FileNumber: "L-77", Title: "Imported citizenship file"}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to seed legacy case: %v", err)
	}
	return models.CaseRef{Schema: models.SchemaLegacy, ID: row.LegacyCaseID}
}

func seedContact(t *testing.T, db *gorm.DB, ref models.CaseRef, firstName, role string, isMain bool) int {
	t.Helper()
	contact := models.Contact{
		FirstName:       firstName,
		LastName:        "Abramov",
		Role:            role,
		IsMainApplicant: isMain,
	}
	id := ref.ID
	if ref.IsLegacy() {
		contact.LegacyCaseID = &id
	} else {
		contact.CaseID = &id
	}
	if err := db.Create(&contact).Error; err != nil {
		t.Fatalf("failed to seed contact: %v", err)
	}
	return contact.ContactID
}

func seedUser(t *testing.T, db *gorm.DB, firstName, lastName string) int {
	t.Helper()
	user := models.User{FirstName: firstName, LastName: lastName, Email: firstName + "@example.test", RoleID: models.RoleCaseHandler}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user.UserID
}

// mustCreateRequirement inserts through the service so defaults apply.
func mustCreateRequirement(t *testing.T, svc *RequirementService, ref models.CaseRef, contactID *int, name string, actor models.ActorRef) *models.DocumentRequirement {
	t.Helper()
	req, err := svc.Create(context.Background(), models.CreateRequirementRequest{
		CaseRef:      ref.String(),
		ContactID:    contactID,
		DocumentName: name,
	}, actor)
	if err != nil {
		t.Fatalf("failed to create requirement %q: %v", name, err)
	}
	return req
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func datePtr(v time.Time) *time.Time { return &v }
