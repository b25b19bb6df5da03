package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dondoffy/contract-copilot-canvas/config"
	"github.com/dondoffy/contract-copilot-canvas/model"
	"github.com/dondoffy/contract-copilot-canvas/pkg/logger"
	"github.com/google/uuid"
)

const defaultDocumentTitle = "Service Agreement"

// autoFillText holds the standard clause for each seeded section
var autoFillText = map[string]string{
	"1": `This Service Agreement ("Agreement") is entered into on January 15, 2024 between ABC Technology Solutions, a company registered at 123 Business Avenue, Riyadh, Saudi Arabia, and Aramco Digital Company.`,
	"2": "The Contractor shall provide digital transformation consulting services including: (a) assessment of the current IT infrastructure; " +
		"(b) development of a digital transformation roadmap; (c) implementation support for cloud migration; and (d) staff training on new systems. " +
		"All deliverables shall be completed within six (6) months of the Effective Date.",
	"3": "Payment shall be made within thirty (30) days of invoice receipt by bank transfer. Total contract value: SAR 500,000 (Five Hundred Thousand Saudi Riyals), " +
		"payable in three installments upon milestone completion.",
}

// AutoFillText returns the standard clause for a section id, if one exists
func AutoFillText(sectionID string) (string, bool) {
	text, ok := autoFillText[sectionID]
	return text, ok
}

func seedSections() []model.Section {
	return []model.Section{
		{
			ID:              "1",
			Title:           "Parties",
			Content:         `This Service Agreement ("Agreement") is entered into on [DATE] between [CLIENT_NAME], and Aramco Digital Company.`,
			Status:          model.SectionNeedsReview,
			Recommendations: []string{"Specify the exact date", "Complete client name and address"},
		},
		{
			ID:              "2",
			Title:           "Scope of Services",
			Content:         "The Contractor shall provide digital transformation consulting services including but not limited to...",
			Status:          model.SectionMissingInfo,
			Recommendations: []string{"Define specific deliverables", "Add timeline requirements"},
		},
		{
			ID:              "3",
			Title:           "Payment Terms",
			Content:         "Payment shall be made within thirty (30) days of invoice receipt. Total contract value: [AMOUNT]",
			Status:          model.SectionNeedsReview,
			Recommendations: []string{"Specify currency", "Add payment method details"},
		},
	}
}

func seedIssues() []model.Issue {
	return []model.Issue{
		{Type: model.IssueMissing, Message: "Contract date not specified in Parties section"},
		{Type: model.IssueIncomplete, Message: "Payment amount placeholder not filled"},
		{Type: model.IssueRecommendation, Message: "Consider adding a dispute resolution clause"},
	}
}

// DocumentService owns contract drafts. Section status and issues are seed
// data; nothing here inspects content.
type DocumentService struct {
	store     *Store[*model.Document]
	saveDelay time.Duration

	mu     sync.Mutex // guards tasks
	tasks  *taskGroup
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDocumentService(storeCfg *config.StoreConfig, assistantCfg *config.AssistantConfig) *DocumentService {
	root, cancel := context.WithCancel(context.Background())
	s := &DocumentService{
		store:     NewStore[*model.Document]("documents", storeCfg.MaxDocuments),
		saveDelay: millis(assistantCfg.SaveDelayMs),
		tasks:     newTaskGroup(root),
		cancel:    cancel,
	}
	s.store.OnEvict(s.cancelSave)
	return s
}

// Create seeds a new draft with the standard three sections
func (s *DocumentService) Create(ctx context.Context, tenant, title string) *model.Document {
	if title == "" {
		title = defaultDocumentTitle
	}
	now := time.Now()
	doc := &model.Document{
		ID:            uuid.New().String(),
		Tenant:        tenant,
		Title:         title,
		ActiveVersion: model.VersionLocal,
		Sections:      seedSections(),
		Issues:        seedIssues(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.store.Save(doc)
	logger.Info(ctx, "document created", "document_id", doc.ID)
	return doc.Clone()
}

func (s *DocumentService) Get(tenant, id string) (*model.Document, error) {
	doc, ok := s.store.Get(tenant, id)
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return doc, nil
}

func (s *DocumentService) List(tenant string) []*model.Document {
	return s.store.GetByTenant(tenant)
}

// SelectVersion switches the view between the main and local copy.
// Both views show the same sections.
func (s *DocumentService) SelectVersion(tenant, id, version string) (*model.Document, error) {
	if version != model.VersionMain && version != model.VersionLocal {
		return nil, ErrInvalidVersion
	}
	doc, err := s.store.Update(tenant, id, func(d *model.Document) error {
		d.ActiveVersion = version
		d.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", id, err)
	}
	return doc, nil
}

// EditSection replaces a section's content verbatim. Status is left as is.
func (s *DocumentService) EditSection(ctx context.Context, tenant, id, sectionID, content string, save bool) (*model.Document, error) {
	doc, err := s.store.Update(tenant, id, func(d *model.Document) error {
		section := d.Section(sectionID)
		if section == nil {
			return ErrSectionNotFound
		}
		section.Content = content
		d.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("document %s section %s: %w", id, sectionID, err)
	}
	if save {
		return s.Save(ctx, tenant, id)
	}
	return doc, nil
}

// AutoFill overwrites a section with its standard clause. Sections without
// a standard clause are left untouched and filled is false.
func (s *DocumentService) AutoFill(ctx context.Context, tenant, id, sectionID string) (doc *model.Document, filled bool, err error) {
	text, ok := AutoFillText(sectionID)
	doc, err = s.store.Update(tenant, id, func(d *model.Document) error {
		section := d.Section(sectionID)
		if section == nil || !ok {
			return nil
		}
		section.Content = text
		d.UpdatedAt = time.Now()
		filled = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("document %s: %w", id, err)
	}
	if filled {
		logger.Info(ctx, "section auto-filled", "document_id", id, "section_id", sectionID)
	}
	return doc, filled, nil
}

// Save raises the saving indicator and clears it after the save delay.
// Nothing is persisted.
func (s *DocumentService) Save(ctx context.Context, tenant, id string) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Update(tenant, id, func(d *model.Document) error {
		d.Saving = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", id, err)
	}

	// a newer save supersedes the one in flight
	s.tasks.cancel(id)
	saveCtx, done := s.tasks.start(id)
	s.wg.Add(1)
	go s.finishSave(saveCtx, done, tenant, id)

	logger.Debug(ctx, "document saving", "document_id", id)
	return doc, nil
}

func (s *DocumentService) finishSave(ctx context.Context, done func(), tenant, id string) {
	defer s.wg.Done()
	err := sleep(ctx, s.saveDelay)

	s.mu.Lock()
	defer s.mu.Unlock()
	done()

	if err != nil || ctx.Err() != nil {
		return
	}
	_, _ = s.store.Update(tenant, id, func(d *model.Document) error {
		now := time.Now()
		d.Saving = false
		d.SavedAt = &now
		return nil
	})
}

func (s *DocumentService) Delete(ctx context.Context, tenant, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Delete(tenant, id) {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	s.tasks.cancel(id)

	logger.Info(ctx, "document deleted", "document_id", id)
	return nil
}

func (s *DocumentService) cancelSave(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.cancel(id)
}

// Close cancels pending saves and waits for them to exit
func (s *DocumentService) Close() {
	s.cancel()
	s.wg.Wait()
}
