package gratitude

import (
	"context"
	"database/sql"
	"time"

	"github.com/taiwoajasa245/gratitude-api/internal/database"
	"github.com/taiwoajasa245/gratitude-api/pkg/apperr"
)

const (
	insertNoteQuery = `INSERT INTO gratitude (content, category, created_at) VALUES (?, ?, ?) RETURNING id`
	selectNoteQuery = `SELECT id, content, category, created_at FROM gratitude WHERE id = ?`
	listNotesQuery  = `
		SELECT id, content, category, created_at
		FROM gratitude
		ORDER BY created_at DESC, id DESC
	`
	noteExistsQuery = `SELECT EXISTS (SELECT 1 FROM gratitude WHERE id = ?)`
	deleteNoteQuery = `DELETE FROM gratitude WHERE id = ?`
	resetNotesQuery = `DELETE FROM gratitude`
)

// Repository is the storage gateway for gratitude notes. Every method is one
// unit of work.
type Repository interface {
	Insert(ctx context.Context, note Note) (*Note, error)
	ListAll(ctx context.Context) ([]Note, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteAll(ctx context.Context) error
}

type repository struct {
	db  database.Service
	now func() time.Time
}

func NewRepository(db database.Service) Repository {
	return newRepository(db, time.Now)
}

func newRepository(db database.Service, now func() time.Time) *repository {
	return &repository{db: db, now: now}
}

func (r *repository) q(query string) string {
	return r.db.Dialect().Rebind(query)
}

// Insert stores note with a fresh created_at and returns the row as read
// back from the table.
func (r *repository) Insert(ctx context.Context, note Note) (*Note, error) {
	row := toRow(note)
	// postgres keeps microseconds; truncate so every backend returns the same instant
	row.CreatedAt = r.now().UTC().Truncate(time.Microsecond)

	var saved noteRow
	err := r.db.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var id int64
		if err := tx.QueryRowContext(ctx, r.q(insertNoteQuery), row.Content, row.Category, row.CreatedAt).Scan(&id); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, r.q(selectNoteQuery), id).
			Scan(&saved.ID, &saved.Content, &saved.Category, &saved.CreatedAt)
	})
	if err != nil {
		return nil, apperr.Storage("insert gratitude note", err)
	}

	n := saved.toNote()
	return &n, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Note, error) {
	var notes []Note
	err := r.db.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, listNotesQuery)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var row noteRow
			if err := rows.Scan(&row.ID, &row.Content, &row.Category, &row.CreatedAt); err != nil {
				return err
			}
			notes = append(notes, row.toNote())
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperr.Storage("list gratitude notes", err)
	}
	return notes, nil
}

// DeleteByID reports false when no row has the id.
func (r *repository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := r.db.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, r.q(noteExistsQuery), id).Scan(&found); err != nil {
			return err
		}
		if !found {
			return nil
		}
		_, err := tx.ExecContext(ctx, r.q(deleteNoteQuery), id)
		return err
	})
	if err != nil {
		return false, apperr.Storage("delete gratitude note", err)
	}
	return found, nil
}

func (r *repository) DeleteAll(ctx context.Context) error {
	err := r.db.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, resetNotesQuery)
		return err
	})
	return apperr.Storage("reset gratitude notes", err)
}
