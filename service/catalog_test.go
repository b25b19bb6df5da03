package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templateNames(s *CatalogService, search, category string) []string {
	var names []string
	for _, t := range s.Filter(search, category) {
		names = append(names, t.Name)
	}
	return names
}

func TestCatalogFilter(t *testing.T) {
	svc := NewCatalogService()

	tests := []struct {
		name     string
		search   string
		category string
		want     []string
	}{
		{"nda across all", "NDA", "All", []string{"Non-Disclosure Agreement (NDA)"}},
		{"empty matches all in order", "", "All", []string{
			"Oil & Gas Service Agreement",
			"Digital Transformation Consulting",
			"Equipment Maintenance Contract",
			"Non-Disclosure Agreement (NDA)",
		}},
		{"description match", "industrial", "", []string{"Equipment Maintenance Contract"}},
		{"search and category", "agreement", "Service Agreements", []string{"Oil & Gas Service Agreement"}},
		{"category only", "", "Legal", []string{"Non-Disclosure Agreement (NDA)"}},
		{"category mismatch", "NDA", "Consulting", nil},
		{"category is exact", "", "legal", nil},
		{"no match", "lease", "All", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, templateNames(svc, tt.search, tt.category))
		})
	}
}

func TestCatalogFilterReturnsCopies(t *testing.T) {
	svc := NewCatalogService()
	first := svc.Filter("", "All")
	first[0].HighlightSections[0] = "changed"

	again := svc.Filter("", "All")
	assert.Equal(t, "Scope of Work", again[0].HighlightSections[0])
}

func TestCatalogPopular(t *testing.T) {
	svc := NewCatalogService()

	top := svc.Popular(2)
	require.Len(t, top, 2)
	assert.Equal(t, "4", top[0].ID)
	assert.Equal(t, "1", top[1].ID)
	assert.Len(t, svc.Popular(10), 4)
}

func TestCatalogCategories(t *testing.T) {
	svc := NewCatalogService()
	assert.Equal(t, []string{"All", "Service Agreements", "Consulting", "Maintenance", "Legal"}, svc.Categories())
}

func TestCatalogPreview(t *testing.T) {
	svc := NewCatalogService()
	ctx := context.Background()

	assert.Nil(t, svc.Preview("tenant1").Template)

	p, err := svc.Select("tenant1", "2")
	require.NoError(t, err)
	assert.Equal(t, "Digital Transformation Consulting", p.Template.Name)
	assert.False(t, p.Used)

	p, err = svc.Use(ctx, "tenant1", "3")
	require.NoError(t, err)
	assert.True(t, p.Used)
	assert.Equal(t, "3", svc.Preview("tenant1").Template.ID)
	assert.Nil(t, svc.Preview("tenant2").Template, "previews are per tenant")

	_, err = svc.Select("tenant1", "99")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "3", svc.Preview("tenant1").Template.ID, "a failed select keeps the panel")

	svc.ClearPreview("tenant1")
	assert.Nil(t, svc.Preview("tenant1").Template)
}
