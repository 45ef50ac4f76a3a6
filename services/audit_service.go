package services

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"case-docs-api/config"
	"case-docs-api/models"
	"case-docs-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// recordProvenanceProc is the transactional stored procedure that appends the
// history entry and updates the requirement's current value plus its change
// stamps in one unit.
const recordProvenanceProc = "CALL record_provenance_change(?, ?, ?, ?, ?, ?, ?, ?)"

// AuditService records provenance field changes with actor and time. The
// write is two-phase: the transactional path is attempted first; when the
// procedure cannot be invoked, the current value and stamps are updated
// anyway and the history entry moves onto a bounded background retry queue.
// The current value is therefore always correct; the history may lag behind
// inside an observable, bounded window.
type AuditService struct {
	db *gorm.DB

	mu      sync.Mutex
	pending []pendingEntry

	maxAttempts int
	interval    time.Duration
	stopCh      chan struct{}
	startOnce   sync.Once
	stopOnce    sync.Once
}

type pendingEntry struct {
	entry    models.ProvenanceChangeEntry
	attempts int
}

func NewAuditService(db *gorm.DB) *AuditService {
	if db == nil {
		db = config.DB
	}
	return &AuditService{
		db:          db,
		maxAttempts: 5,
		interval:    5 * time.Second,
		stopCh:      make(chan struct{}),
	}
}

var (
	auditOnce      sync.Once
	auditSingleton *AuditService
)

// Audit returns the process-wide audit service backing the HTTP handlers.
// A singleton keeps the retry queue alive across requests.
func Audit() *AuditService {
	auditOnce.Do(func() {
		auditSingleton = NewAuditService(nil)
	})
	return auditSingleton
}

// resolveActorName resolves an actor reference into the stable display string
// stored on history entries. Resolution happens once, at write time; reads
// never repeat it. A structured id wins over a free-text name; an id that no
// longer resolves degrades to the name or a synthetic label.
func resolveActorName(db *gorm.DB, actor models.ActorRef) string {
	if actor.UserID != nil {
		var user models.User
		if err := db.Where("user_id = ?", *actor.UserID).First(&user).Error; err == nil {
			return user.DisplayName()
		}
		if name := utils.SanitizeInput(actor.Name); name != "" {
			return name
		}
		return "user-" + strconv.Itoa(*actor.UserID)
	}
	if name := utils.SanitizeInput(actor.Name); name != "" {
		return name
	}
	return "unknown"
}

// RecordProvenanceChange updates a provenance field (requested_from or
// received_from) and appends the matching history entry.
func (s *AuditService) RecordProvenanceChange(ctx context.Context, requirementID int, field models.ProvenanceField, newValue string, actor models.ActorRef, reason *string) (*models.ProvenanceChangeEntry, error) {
	if !models.IsMutableProvenanceField(field) {
		return nil, &models.ValidationError{
			Field:   "field",
			Message: "provenance updates accept requested_from or received_from only",
		}
	}

	value := utils.SanitizeInput(newValue)
	if value == "" {
		return nil, &models.ValidationError{Field: "value", Message: "provenance value is required"}
	}

	store := NewRequirementService(s.db)
	req, err := store.Get(ctx, requirementID)
	if err != nil {
		return nil, err
	}

	var oldValue *string
	if field == models.FieldRequestedFrom {
		oldValue = req.RequestedFrom
	} else {
		oldValue = req.ReceivedFrom
	}

	now := time.Now()
	actorName := resolveActorName(s.db, actor)
	entry := models.ProvenanceChangeEntry{
		EntryID:       uuid.New().String(),
		RequirementID: req.RequirementID,
		CaseID:        req.CaseID,
		LegacyCaseID:  req.LegacyCaseID,
		Field:         string(field),
		OldValue:      oldValue,
		NewValue:      &value,
		ActorUserID:   actor.UserID,
		ActorName:     actorName,
		Reason:        reason,
		ChangedAt:     now,
	}

	// Phase one: the atomic stored-procedure path.
	procErr := s.db.WithContext(ctx).Exec(recordProvenanceProc,
		entry.EntryID,
		entry.RequirementID,
		entry.Field,
		entry.OldValue,
		entry.NewValue,
		entry.ActorUserID,
		entry.ActorName,
		entry.Reason,
	).Error
	if procErr == nil {
		return &entry, nil
	}

	// Phase two: the plain value update must land regardless; only the
	// history entry is deferred.
	updates := map[string]interface{}{
		string(field):                 value,
		string(field) + "_changed_at": now,
		string(field) + "_changed_by": actorName,
	}
	if err := s.db.WithContext(ctx).Model(req).Updates(updates).Error; err != nil {
		return nil, &models.StoreError{Op: "update provenance", Err: err}
	}

	log.Printf("provenance history entry deferred for requirement %d (%s): %v", requirementID, field, procErr)
	s.enqueue(entry)
	return &entry, nil
}

func (s *AuditService) enqueue(entry models.ProvenanceChangeEntry) {
	s.mu.Lock()
	s.pending = append(s.pending, pendingEntry{entry: entry})
	s.mu.Unlock()

	s.startOnce.Do(func() {
		go s.retryLoop()
	})
}

func (s *AuditService) retryLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Flush(context.Background())
		case <-s.stopCh:
			s.Flush(context.Background())
			return
		}
	}
}

// Flush drains the retry queue once, re-queueing entries that still fail
// until their attempt budget runs out. Called periodically by the background
// worker and deterministically on shutdown.
func (s *AuditService) Flush(ctx context.Context) {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	var requeue []pendingEntry
	for _, item := range batch {
		if err := s.db.WithContext(ctx).Create(&item.entry).Error; err != nil {
			item.attempts++
			if item.attempts >= s.maxAttempts {
				log.Printf("dropping provenance history entry %s for requirement %d after %d attempts: %v",
					item.entry.EntryID, item.entry.RequirementID, item.attempts, err)
				continue
			}
			requeue = append(requeue, item)
		}
	}

	if len(requeue) > 0 {
		s.mu.Lock()
		s.pending = append(requeue, s.pending...)
		s.mu.Unlock()
	}
}

// PendingRetries reports the size of the retry queue; the inconsistency
// window is observable, not silent.
func (s *AuditService) PendingRetries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop flushes outstanding entries and stops the background worker.
func (s *AuditService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// HistoryForRequirement returns the requirement's provenance history,
// newest first.
func (s *AuditService) HistoryForRequirement(ctx context.Context, requirementID int) ([]models.ProvenanceChangeEntry, error) {
	if _, err := NewRequirementService(s.db).Get(ctx, requirementID); err != nil {
		return nil, err
	}
	var entries []models.ProvenanceChangeEntry
	err := s.db.WithContext(ctx).
		Where("requirement_id = ?", requirementID).
		Order("changed_at DESC, entry_id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, &models.StoreError{Op: "load requirement history", Err: err}
	}
	return entries, nil
}

// HistoryForCase returns the provenance history across every requirement of
// a case, newest first.
func (s *AuditService) HistoryForCase(ctx context.Context, ref models.CaseRef) ([]models.ProvenanceChangeEntry, error) {
	var entries []models.ProvenanceChangeEntry
	err := s.db.WithContext(ctx).
		Where(caseColumn(ref)+" = ?", ref.ID).
		Order("changed_at DESC, entry_id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, &models.StoreError{Op: "load case history", Schema: ref.Schema, Err: err}
	}
	return entries, nil
}
