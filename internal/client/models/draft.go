package models

import "time"

// Draft is a locally cached generation result, kept so previously generated
// READMEs survive a restart and can be re-saved or committed later.
type Draft struct {
	ID           string
	RepoFullName string
	Template     TemplateKind
	GenerationID string
	Content      string
	CreatedAt    time.Time
}
