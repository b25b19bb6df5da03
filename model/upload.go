package model

import (
	"time"
)

// UploadedFile is the record of a file dropped on the upload panel
type UploadedFile struct {
	ID         string    `json:"id"`
	Tenant     string    `json:"tenant"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	Status     string    `json:"status"` // uploading, analyzing, complete, error
	Analysis   *Analysis `json:"analysis,omitempty"`
	ObjectName string    `json:"object_name,omitempty"`
	ErrorMsg   string    `json:"error_msg,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// File status constants
const (
	FileUploading = "uploading"
	FileAnalyzing = "analyzing"
	FileComplete  = "complete"
	FileError     = "error"
)

// Analysis is the summary attached to a file once analysis completes
type Analysis struct {
	ContractType     string   `json:"contract_type"`
	Parties          []string `json:"parties"`
	DetectedSections []string `json:"detected_sections"`
	KeyTerms         []string `json:"key_terms"`
	RiskFlags        []string `json:"risk_flags"`
	Summary          string   `json:"summary"`
}

func (a *Analysis) Clone() *Analysis {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Parties = append([]string(nil), a.Parties...)
	cp.DetectedSections = append([]string(nil), a.DetectedSections...)
	cp.KeyTerms = append([]string(nil), a.KeyTerms...)
	cp.RiskFlags = append([]string(nil), a.RiskFlags...)
	return &cp
}

func (f *UploadedFile) GetID() string     { return f.ID }
func (f *UploadedFile) GetTenant() string { return f.Tenant }

func (f *UploadedFile) Clone() *UploadedFile {
	cp := *f
	cp.Analysis = f.Analysis.Clone()
	return &cp
}
