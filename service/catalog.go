package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dondoffy/contract-copilot-canvas/model"
	"github.com/dondoffy/contract-copilot-canvas/pkg/logger"
)

// CategoryAll matches every template category
const CategoryAll = "All"

var templateCategories = []string{CategoryAll, "Service Agreements", "Consulting", "Maintenance", "Legal"}

var templates = []model.Template{
	{
		ID:                "1",
		Name:              "Oil & Gas Service Agreement",
		Description:       "Comprehensive service agreement template for oil and gas industry operations",
		Category:          "Service Agreements",
		Industry:          "Oil & Gas",
		Complexity:        model.ComplexityAdvanced,
		Rating:            4.8,
		Downloads:         1250,
		LastUpdated:       "2024-01-15",
		HighlightSections: []string{"Scope of Work", "Safety Requirements", "Payment Terms", "HSE Compliance"},
	},
	{
		ID:                "2",
		Name:              "Digital Transformation Consulting",
		Description:       "Consulting agreement for digital transformation projects",
		Category:          "Consulting",
		Industry:          "Technology",
		Complexity:        model.ComplexityIntermediate,
		Rating:            4.6,
		Downloads:         890,
		LastUpdated:       "2024-01-20",
		HighlightSections: []string{"Deliverables", "Timeline", "IP Rights", "Confidentiality"},
	},
	{
		ID:                "3",
		Name:              "Equipment Maintenance Contract",
		Description:       "Maintenance and support agreement for industrial equipment",
		Category:          "Maintenance",
		Industry:          "Industrial",
		Complexity:        model.ComplexityIntermediate,
		Rating:            4.7,
		Downloads:         675,
		LastUpdated:       "2024-01-18",
		HighlightSections: []string{"Service Level Agreement", "Response Times", "Parts & Labor", "Warranty"},
	},
	{
		ID:                "4",
		Name:              "Non-Disclosure Agreement (NDA)",
		Description:       "Standard NDA for protecting confidential business information",
		Category:          "Legal",
		Industry:          "General",
		Complexity:        model.ComplexitySimple,
		Rating:            4.9,
		Downloads:         2100,
		LastUpdated:       "2024-01-22",
		HighlightSections: []string{"Confidential Information", "Term", "Permitted Use", "Return of Information"},
	},
}

func cloneTemplate(t model.Template) model.Template {
	t.HighlightSections = append([]string(nil), t.HighlightSections...)
	return t
}

// Preview is the state of a tenant's template preview panel
type Preview struct {
	Template *model.Template `json:"template"`
	Used     bool            `json:"used"`
}

// CatalogService serves the static template catalog and per-tenant preview state
type CatalogService struct {
	mu       sync.RWMutex
	previews map[string]Preview
}

func NewCatalogService() *CatalogService {
	return &CatalogService{previews: make(map[string]Preview)}
}

func (s *CatalogService) Categories() []string {
	return append([]string(nil), templateCategories...)
}

// Filter matches search case-insensitively against name or description and
// category exactly. Empty search or the All category match everything.
// Catalog order is preserved.
func (s *CatalogService) Filter(search, category string) []model.Template {
	needle := strings.ToLower(search)
	result := make([]model.Template, 0, len(templates))
	for _, t := range templates {
		matchesSearch := strings.Contains(strings.ToLower(t.Name), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle)
		matchesCategory := category == "" || category == CategoryAll || t.Category == category
		if matchesSearch && matchesCategory {
			result = append(result, cloneTemplate(t))
		}
	}
	return result
}

// Popular returns the n most downloaded templates
func (s *CatalogService) Popular(n int) []model.Template {
	result := s.Filter("", CategoryAll)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Downloads > result[j].Downloads
	})
	if n > 0 && n < len(result) {
		result = result[:n]
	}
	return result
}

func (s *CatalogService) Get(id string) (*model.Template, error) {
	for _, t := range templates {
		if t.ID == id {
			cp := cloneTemplate(t)
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("template %s: %w", id, ErrNotFound)
}

// Select opens the preview panel on a template
func (s *CatalogService) Select(tenant, id string) (Preview, error) {
	return s.setPreview(tenant, id, false)
}

// Use marks the previewed template as used. Documents are not affected.
func (s *CatalogService) Use(ctx context.Context, tenant, id string) (Preview, error) {
	p, err := s.setPreview(tenant, id, true)
	if err != nil {
		return Preview{}, err
	}
	logger.Info(ctx, "template used", "template_id", id, "template", p.Template.Name)
	return p, nil
}

func (s *CatalogService) setPreview(tenant, id string, used bool) (Preview, error) {
	t, err := s.Get(id)
	if err != nil {
		return Preview{}, err
	}
	p := Preview{Template: t, Used: used}

	s.mu.Lock()
	s.previews[tenant] = p
	s.mu.Unlock()
	return p, nil
}

// Preview returns the tenant's preview panel; a zero Preview means closed
func (s *CatalogService) Preview(tenant string) Preview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.previews[tenant]
	if p.Template != nil {
		cp := cloneTemplate(*p.Template)
		p.Template = &cp
	}
	return p
}

func (s *CatalogService) ClearPreview(tenant string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.previews, tenant)
}
