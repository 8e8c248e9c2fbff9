package drafts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gitreadme/internal/client/models"
	"gitreadme/internal/dbx"
)

// SQLiteRepository implements Repository over a plain database handle.
// TrimTo needs to open its own transaction, so unlike the single-statement
// methods it cannot run against an arbitrary DBTX.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, d *models.Draft) error {
	query := `INSERT INTO drafts (id, repo_full_name, template, generation_id, content, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.RepoFullName, string(d.Template), d.GenerationID, d.Content, d.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert draft: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Draft, error) {
	query := `SELECT id, repo_full_name, template, generation_id, content, created_at
			FROM drafts WHERE id = ?`
	var d models.Draft
	var template string
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.RepoFullName, &template, &d.GenerationID, &d.Content, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	d.Template = models.TemplateKind(template)
	return &d, nil
}

func (r *SQLiteRepository) List(ctx context.Context, repoFullName string, limit int) ([]models.Draft, error) {
	query := `SELECT id, repo_full_name, template, generation_id, content, created_at FROM drafts`
	args := []any{}
	if repoFullName != "" {
		query += ` WHERE repo_full_name = ?`
		args = append(args, repoFullName)
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select drafts: %w", err)
	}
	defer rows.Close()

	var result []models.Draft
	for rows.Next() {
		var d models.Draft
		var template string
		if err := rows.Scan(&d.ID, &d.RepoFullName, &template, &d.GenerationID, &d.Content, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Template = models.TemplateKind(template)
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// TrimTo deletes the oldest drafts of a repository beyond keep. Selection
// and deletion run in one transaction so a concurrent insert cannot be
// swept up by a stale overflow snapshot.
func (r *SQLiteRepository) TrimTo(ctx context.Context, repoFullName string, keep int) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT id FROM drafts WHERE repo_full_name = ? ORDER BY created_at DESC, id LIMIT -1 OFFSET ?`,
			repoFullName, keep)
		if err != nil {
			return fmt.Errorf("failed to select overflow drafts: %w", err)
		}
		defer rows.Close()

		var ids []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id); err != nil {
				return fmt.Errorf("failed to delete draft %s: %w", id, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
	return nil
}
