package model

import (
	"time"
)

// Section status constants. Status is seed data and is never derived from content.
const (
	SectionComplete    = "complete"
	SectionNeedsReview = "needs-review"
	SectionMissingInfo = "missing-info"
)

// Document version constants
const (
	VersionMain  = "main"
	VersionLocal = "local"
)

// Issue type constants
const (
	IssueMissing        = "missing"
	IssueIncomplete     = "incomplete"
	IssueRecommendation = "recommendation"
)

// Section is a titled block of contract text
type Section struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Status          string   `json:"status"`
	Recommendations []string `json:"recommendations,omitempty"`
}

type Issue struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Document is a contract draft under edit
type Document struct {
	ID            string     `json:"id"`
	Tenant        string     `json:"tenant"`
	Title         string     `json:"title"`
	ActiveVersion string     `json:"active_version"`
	Sections      []Section  `json:"sections"`
	Issues        []Issue    `json:"issues"`
	Saving        bool       `json:"saving"`
	SavedAt       *time.Time `json:"saved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (d *Document) GetID() string     { return d.ID }
func (d *Document) GetTenant() string { return d.Tenant }

func (d *Document) Clone() *Document {
	cp := *d
	cp.Sections = make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		s.Recommendations = append([]string(nil), s.Recommendations...)
		cp.Sections[i] = s
	}
	cp.Issues = append([]Issue(nil), d.Issues...)
	if d.SavedAt != nil {
		t := *d.SavedAt
		cp.SavedAt = &t
	}
	return &cp
}

// Section returns the section with the given id, or nil
func (d *Document) Section(id string) *Section {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i]
		}
	}
	return nil
}
