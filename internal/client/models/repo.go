package models

import (
	"strconv"
	"time"
)

// Repo describes a repository as the client sees it.
//
// ID is the external (GitHub) identifier. DatabaseID is the persistent id
// assigned by the backend once the repository has been imported; it stays
// empty until then, and its presence is the signal that generation can be
// requested without a prior import step.
type Repo struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	Visibility      string    `json:"visibility"`
	DefaultBranch   string    `json:"default_branch"`
	UpdatedAt       time.Time `json:"updated_at"`

	DatabaseID string `json:"db_id,omitempty"`
}

// Imported reports whether the backend already holds a persistent copy.
func (r *Repo) Imported() bool {
	return r.DatabaseID != ""
}

// Matches reports whether the repo matches a user-supplied identifier,
// either its numeric id or its owner/name string.
func (r *Repo) Matches(identifier string) bool {
	if r.FullName == identifier {
		return true
	}
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return r.ID == id
	}
	return false
}

// WithImportDefaults returns a copy with absent metadata filled in the way
// the backend expects on import: unknown language, zero counts, public
// visibility, main branch, and a fresh timestamp.
func (r Repo) WithImportDefaults(now time.Time) Repo {
	if r.Language == "" {
		r.Language = "Unknown"
	}
	if r.Visibility == "" {
		r.Visibility = "public"
	}
	if r.DefaultBranch == "" {
		r.DefaultBranch = "main"
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	return r
}
