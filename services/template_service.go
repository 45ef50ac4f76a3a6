package services

import (
	"log"
	"strings"
	"sync"
	"time"

	"case-docs-api/config"
	"case-docs-api/models"

	"gorm.io/gorm"
)

// TemplateService serves the read-only document template catalog with a
// short-lived in-memory cache. The catalog is advisory: creation works
// unchanged when it is empty or unreachable.
type TemplateService struct {
	db *gorm.DB

	mu       sync.RWMutex
	cache    *templateCacheEntry
	ttl      time.Duration
	warnOnce sync.Once
}

type templateCacheEntry struct {
	templates []models.DocumentTemplate
	byName    map[string]models.DocumentTemplate
	fetchedAt time.Time
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	if db == nil {
		db = config.DB
	}
	return &TemplateService{db: db, ttl: 5 * time.Minute}
}

func (s *TemplateService) load(force bool) (*templateCacheEntry, error) {
	s.mu.RLock()
	cached := s.cache
	s.mu.RUnlock()

	if cached != nil && !force && time.Since(cached.fetchedAt) < s.ttl {
		return cached, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache != nil && !force && time.Since(s.cache.fetchedAt) < s.ttl {
		return s.cache, nil
	}

	var rows []models.DocumentTemplate
	if err := s.db.Where("is_active = ? AND delete_at IS NULL", true).Find(&rows).Error; err != nil {
		return nil, &models.StoreError{Op: "load document templates", Err: err}
	}

	byName := make(map[string]models.DocumentTemplate, len(rows))
	for _, tpl := range rows {
		name := strings.TrimSpace(tpl.DocumentName)
		if name == "" {
			continue
		}
		byName[name] = tpl
	}

	entry := &templateCacheEntry{
		templates: rows,
		byName:    byName,
		fetchedAt: time.Now(),
	}
	s.cache = entry
	return entry, nil
}

// ClearCache invalidates the in-memory template cache.
func (s *TemplateService) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = nil
}

// Lookup returns the template for a document name, or nil when the name is
// unknown or the catalog is unavailable. Catalog failures are logged once and
// otherwise swallowed; callers fall back to their own values.
func (s *TemplateService) Lookup(documentName string) *models.DocumentTemplate {
	entry, err := s.load(false)
	if err != nil {
		s.warnOnce.Do(func() {
			log.Printf("document template catalog unavailable, creations fall back to caller values: %v", err)
		})
		return nil
	}

	tpl, ok := entry.byName[strings.TrimSpace(documentName)]
	if !ok {
		return nil
	}
	return &tpl
}

// All returns every active template in the catalog.
func (s *TemplateService) All() ([]models.DocumentTemplate, error) {
	entry, err := s.load(false)
	if err != nil {
		return nil, err
	}
	return entry.templates, nil
}
