package models

import "fmt"

// GenerationStatus enumerates the lifecycle states of a server-side
// generation job. Terminal states are immutable from the client's side;
// the client only ever observes transitions, it never causes them.
type GenerationStatus string

const (
	GenerationPending   GenerationStatus = "pending"
	GenerationCompleted GenerationStatus = "completed"
	GenerationFailed    GenerationStatus = "failed"
)

// Terminal reports whether the job can no longer change state.
func (s GenerationStatus) Terminal() bool {
	return s == GenerationCompleted || s == GenerationFailed
}

// Generation is a server-tracked asynchronous unit of work producing README
// content, observed by the client via polling.
type Generation struct {
	ID      string           `json:"generation_id"`
	Status  GenerationStatus `json:"status"`
	Content string           `json:"content"`
}

// TemplateKind selects one of the fixed output styles.
type TemplateKind string

const (
	TemplateMinimalist   TemplateKind = "minimalist"
	TemplateProfessional TemplateKind = "professional"
	TemplatePortfolio    TemplateKind = "portfolio"
)

// TemplateKinds lists all selectable kinds in display order.
func TemplateKinds() []TemplateKind {
	return []TemplateKind{TemplateMinimalist, TemplateProfessional, TemplatePortfolio}
}

// Validate returns an error for kinds the backend does not know.
func (k TemplateKind) Validate() error {
	switch k {
	case TemplateMinimalist, TemplateProfessional, TemplatePortfolio:
		return nil
	default:
		return fmt.Errorf("unknown template kind: %q", string(k))
	}
}
