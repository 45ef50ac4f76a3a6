package services

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"case-docs-api/config"
	"case-docs-api/models"
	"case-docs-api/utils"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// RequirementService is the schema-aware store for document requirement
// records. All schema branching happens against the canonical CaseRef
// produced by the resolver; the raw reference never reaches this layer.
type RequirementService struct {
	db        *gorm.DB
	templates *TemplateService
}

func NewRequirementService(db *gorm.DB) *RequirementService {
	if db == nil {
		db = config.DB
	}
	return &RequirementService{db: db, templates: NewTemplateService(db)}
}

// Templates exposes the catalog service sharing this store's connection.
func (s *RequirementService) Templates() *TemplateService {
	return s.templates
}

// caseColumn maps a canonical ref onto the requirement/contact column that
// carries its schema's foreign key.
func caseColumn(ref models.CaseRef) string {
	if ref.IsLegacy() {
		return "legacy_case_id"
	}
	return "case_id"
}

// applyCaseRef sets exactly one of the two case columns on a row.
func applyCaseRef(req *models.DocumentRequirement, ref models.CaseRef) {
	id := ref.ID
	if ref.IsLegacy() {
		req.LegacyCaseID = &id
		req.CaseID = nil
		return
	}
	req.CaseID = &id
	req.LegacyCaseID = nil
}

// caseExists verifies the case row is present in its schema's table.
func (s *RequirementService) caseExists(ctx context.Context, ref models.CaseRef) error {
	var err error
	if ref.IsLegacy() {
		err = s.db.WithContext(ctx).
			Where("legacy_case_id = ? AND delete_at IS NULL", ref.ID).
			First(&models.LegacyCase{}).Error
	} else {
		err = s.db.WithContext(ctx).
			Where("case_id = ? AND delete_at IS NULL", ref.ID).
			First(&models.Case{}).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.NotFoundError{Resource: "case", Ref: ref.String()}
	}
	if err != nil {
		return &models.StoreError{Op: "lookup case", Schema: ref.Schema, Err: err}
	}
	return nil
}

func (s *RequirementService) getContact(ctx context.Context, contactID int) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.WithContext(ctx).
		Where("contact_id = ? AND delete_at IS NULL", contactID).
		First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Resource: "contact", Ref: strconv.Itoa(contactID)}
	}
	if err != nil {
		return nil, &models.StoreError{Op: "lookup contact", Err: err}
	}
	return &contact, nil
}

// Get fetches a single requirement by id.
func (s *RequirementService) Get(ctx context.Context, requirementID int) (*models.DocumentRequirement, error) {
	var req models.DocumentRequirement
	err := s.db.WithContext(ctx).First(&req, requirementID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Resource: "requirement", Ref: strconv.Itoa(requirementID)}
	}
	if err != nil {
		return nil, &models.StoreError{Op: "lookup requirement", Err: err}
	}
	return &req, nil
}

// Create validates and inserts a new requirement. The template catalog
// pre-fills category, due date and instructions for known document names when
// the caller leaves them blank; defaults are status pending, requested now,
// requested by the calling actor.
func (s *RequirementService) Create(ctx context.Context, input models.CreateRequirementRequest, actor models.ActorRef) (*models.DocumentRequirement, error) {
	name := utils.SanitizeInput(input.DocumentName)
	if name == "" {
		return nil, &models.ValidationError{Field: "document_name", Message: "document name is required"}
	}

	ref, err := models.ResolveCaseRef(input.CaseRef)
	if err != nil {
		return nil, err
	}
	if err := s.caseExists(ctx, ref); err != nil {
		return nil, err
	}

	if input.ContactID != nil {
		contact, err := s.getContact(ctx, *input.ContactID)
		if err != nil {
			return nil, err
		}
		if !contact.BelongsTo(ref) {
			return nil, &models.ValidationError{
				Field:   "contact_id",
				Message: "contact does not belong to the requirement's case",
			}
		}
	}

	var dueDate *time.Time
	if input.DueDate != nil && *input.DueDate != "" {
		parsed, err := utils.ParseDate(*input.DueDate)
		if err != nil {
			return nil, &models.ValidationError{Field: "due_date", Message: "due date must be a YYYY-MM-DD date"}
		}
		dueDate = &parsed
	}

	category := utils.SanitizeInput(input.Category)
	var instructions *string

	// Template catalog pre-fill, best effort
	if tpl := s.templates.Lookup(name); tpl != nil {
		if category == "" {
			category = tpl.Category
		}
		if dueDate == nil && tpl.DefaultDueDays != nil {
			due := time.Now().AddDate(0, 0, *tpl.DefaultDueDays)
			dueDate = &due
		}
		instructions = tpl.Instructions
	}
	if category == "" {
		category = models.CategoryOther
	}
	if !models.IsCategoryValid(category) {
		return nil, &models.ValidationError{Field: "category", Message: "unknown document category"}
	}

	isRequired := true
	if input.IsRequired != nil {
		isRequired = *input.IsRequired
	}

	now := time.Now()
	req := models.DocumentRequirement{
		ContactID:     input.ContactID,
		DocumentName:  name,
		Category:      category,
		Status:        models.StatusPending,
		IsRequired:    isRequired,
		DueDate:       dueDate,
		Notes:         input.Notes,
		Instructions:  instructions,
		RequestedFrom: input.RequestedFrom,
		RequestedDate: &now,
		RequestedBy:   actor.UserID,
	}
	applyCaseRef(&req, ref)

	if err := s.db.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, &models.StoreError{Op: "create requirement", Schema: ref.Schema, Err: err}
	}
	return &req, nil
}

// ListResult carries the joined rows of both schema queries plus an explicit
// failure annotation for any branch that failed while the other succeeded.
type ListResult struct {
	Requirements []models.DocumentRequirement
	Partials     []*models.PartialResultError
}

// List fetches the requirements of the given cases. The current-schema and
// legacy-schema queries are independent reads issued concurrently; a failure
// in one must not discard the other's rows.
func (s *RequirementService) List(ctx context.Context, refs []models.CaseRef) (*ListResult, error) {
	var currentIDs, legacyIDs []int
	for _, ref := range refs {
		if ref.IsLegacy() {
			legacyIDs = append(legacyIDs, ref.ID)
		} else {
			currentIDs = append(currentIDs, ref.ID)
		}
	}

	result := &ListResult{}
	if len(currentIDs) == 0 && len(legacyIDs) == 0 {
		return result, nil
	}

	var (
		currentRows, legacyRows []models.DocumentRequirement
		currentErr, legacyErr   error
	)

	// Branch errors are captured per schema rather than returned to the
	// group: the partial-result contract forbids cancelling the surviving
	// query when its sibling fails.
	var g errgroup.Group
	if len(currentIDs) > 0 {
		g.Go(func() error {
			currentErr = s.db.WithContext(ctx).
				Where("case_id IN ?", currentIDs).
				Order("document_name ASC, requirement_id ASC").
				Find(&currentRows).Error
			return nil
		})
	}
	if len(legacyIDs) > 0 {
		g.Go(func() error {
			legacyErr = s.db.WithContext(ctx).
				Where("legacy_case_id IN ?", legacyIDs).
				Order("document_name ASC, requirement_id ASC").
				Find(&legacyRows).Error
			return nil
		})
	}
	_ = g.Wait()

	if currentErr != nil && len(legacyIDs) == 0 {
		return nil, &models.StoreError{Op: "list requirements", Schema: models.SchemaCurrent, Err: currentErr}
	}
	if legacyErr != nil && len(currentIDs) == 0 {
		return nil, &models.StoreError{Op: "list requirements", Schema: models.SchemaLegacy, Err: legacyErr}
	}
	if currentErr != nil && legacyErr != nil {
		return nil, &models.StoreError{Op: "list requirements", Err: errors.Join(currentErr, legacyErr)}
	}

	result.Requirements = append(result.Requirements, currentRows...)
	result.Requirements = append(result.Requirements, legacyRows...)
	if currentErr != nil {
		result.Partials = append(result.Partials, &models.PartialResultError{Schema: models.SchemaCurrent, Err: currentErr})
	}
	if legacyErr != nil {
		result.Partials = append(result.Partials, &models.PartialResultError{Schema: models.SchemaLegacy, Err: legacyErr})
	}
	return result, nil
}

// FindForContact returns the requirements applicable to one contact: per
// distinct document name, the contact-specific row when one exists, otherwise
// the case-wide row. Specific overrides general.
func (s *RequirementService) FindForContact(ctx context.Context, ref models.CaseRef, contactID int) ([]models.DocumentRequirement, error) {
	contact, err := s.getContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if !contact.BelongsTo(ref) {
		return nil, &models.NotFoundError{Resource: "contact", Ref: strconv.Itoa(contactID)}
	}

	var rows []models.DocumentRequirement
	err = s.db.WithContext(ctx).
		Where(caseColumn(ref)+" = ?", ref.ID).
		Where("contact_id IS NULL OR contact_id = ?", contactID).
		Find(&rows).Error
	if err != nil {
		return nil, &models.StoreError{Op: "list contact requirements", Schema: ref.Schema, Err: err}
	}

	byName := make(map[string]models.DocumentRequirement, len(rows))
	for _, row := range rows {
		existing, ok := byName[row.DocumentName]
		if !ok {
			byName[row.DocumentName] = row
			continue
		}
		// A contact-specific row shadows the case-wide row of the same name.
		if existing.IsCaseWide() && !row.IsCaseWide() {
			byName[row.DocumentName] = row
		}
	}

	effective := make([]models.DocumentRequirement, 0, len(byName))
	for _, row := range byName {
		effective = append(effective, row)
	}
	sort.Slice(effective, func(i, j int) bool {
		if effective[i].DocumentName != effective[j].DocumentName {
			return effective[i].DocumentName < effective[j].DocumentName
		}
		return effective[i].RequirementID < effective[j].RequirementID
	})
	return effective, nil
}

// Update applies a partial patch over the allow-listed field set.
func (s *RequirementService) Update(ctx context.Context, requirementID int, patch models.UpdateRequirementRequest) (*models.DocumentRequirement, error) {
	req, err := s.Get(ctx, requirementID)
	if err != nil {
		return nil, err
	}

	if patch.DocumentName != nil {
		name := utils.SanitizeInput(*patch.DocumentName)
		if name == "" {
			return nil, &models.ValidationError{Field: "document_name", Message: "document name cannot be empty"}
		}
		req.DocumentName = name
	}

	if patch.Category != nil {
		if !models.IsCategoryValid(*patch.Category) {
			return nil, &models.ValidationError{Field: "category", Message: "unknown document category"}
		}
		req.Category = *patch.Category
	}

	if patch.IsRequired != nil {
		req.IsRequired = *patch.IsRequired
	}

	if patch.DueDate != nil {
		if *patch.DueDate == "" {
			req.DueDate = nil
		} else {
			parsed, err := utils.ParseDate(*patch.DueDate)
			if err != nil {
				return nil, &models.ValidationError{Field: "due_date", Message: "due date must be a YYYY-MM-DD date"}
			}
			req.DueDate = &parsed
		}
	}

	if patch.Notes != nil {
		req.Notes = patch.Notes
	}

	if err := s.db.WithContext(ctx).Save(req).Error; err != nil {
		return nil, &models.StoreError{Op: "update requirement", Err: err}
	}
	return req, nil
}

// Delete removes a single requirement row. Protection only binds bulk
// removal; a targeted delete of a protected name is a deliberate act.
func (s *RequirementService) Delete(ctx context.Context, requirementID int) error {
	req, err := s.Get(ctx, requirementID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(req).Error; err != nil {
		return &models.StoreError{Op: "delete requirement", Err: err}
	}
	return nil
}

// BulkDeleteByName removes every requirement of the case sharing the given
// document name, across all contacts. Protected default names are refused
// outright with nothing deleted.
func (s *RequirementService) BulkDeleteByName(ctx context.Context, ref models.CaseRef, documentName string) (int64, error) {
	name := utils.SanitizeInput(documentName)
	if name == "" {
		return 0, &models.ValidationError{Field: "document_name", Message: "document name is required"}
	}
	if models.IsProtectedDocumentName(name) {
		return 0, &models.ConflictError{Message: "document name " + name + " is protected and cannot be bulk-removed"}
	}
	if err := s.caseExists(ctx, ref); err != nil {
		return 0, err
	}

	res := s.db.WithContext(ctx).
		Where(caseColumn(ref)+" = ? AND document_name = ?", ref.ID, name).
		Delete(&models.DocumentRequirement{})
	if res.Error != nil {
		return 0, &models.StoreError{Op: "bulk delete requirements", Schema: ref.Schema, Err: res.Error}
	}
	return res.RowsAffected, nil
}

// ContactsForCase returns the live contact roster of a case.
func (s *RequirementService) ContactsForCase(ctx context.Context, ref models.CaseRef) ([]models.Contact, error) {
	if err := s.caseExists(ctx, ref); err != nil {
		return nil, err
	}
	var contacts []models.Contact
	err := s.db.WithContext(ctx).
		Where(caseColumn(ref)+" = ? AND delete_at IS NULL", ref.ID).
		Order("is_main_applicant DESC, contact_id ASC").
		Find(&contacts).Error
	if err != nil {
		return nil, &models.StoreError{Op: "list contacts", Schema: ref.Schema, Err: err}
	}
	return contacts, nil
}
