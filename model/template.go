package model

// Template complexity constants
const (
	ComplexitySimple       = "Simple"
	ComplexityIntermediate = "Intermediate"
	ComplexityAdvanced     = "Advanced"
)

// Template is an immutable catalog entry
type Template struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	Industry          string   `json:"industry"`
	Complexity        string   `json:"complexity"`
	Rating            float64  `json:"rating"`
	Downloads         int      `json:"downloads"`
	LastUpdated       string   `json:"last_updated"`
	HighlightSections []string `json:"highlight_sections"`
}
