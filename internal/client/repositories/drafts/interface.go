// Package drafts stores generated README drafts locally, so results survive
// a restart and can be re-saved or committed later.
package drafts

import (
	"context"

	"gitreadme/internal/client/models"
)

// Repository describes the local draft store.
type Repository interface {
	// Insert adds a new draft.
	Insert(ctx context.Context, draft *models.Draft) error

	// GetByID returns a draft by its identifier.
	GetByID(ctx context.Context, id string) (*models.Draft, error)

	// List returns drafts newest-first, optionally filtered by repository
	// full name ("" means all), capped at limit (<=0 means no cap).
	List(ctx context.Context, repoFullName string, limit int) ([]models.Draft, error)

	// TrimTo removes the oldest drafts of a repository beyond keep.
	TrimTo(ctx context.Context, repoFullName string, keep int) error

	// DeleteByID removes a draft.
	DeleteByID(ctx context.Context, id string) error
}
