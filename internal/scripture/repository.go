package scripture

import (
	"context"
	"database/sql"
	"time"

	"github.com/taiwoajasa245/gratitude-api/internal/database"
	"github.com/taiwoajasa245/gratitude-api/pkg/apperr"
)

const (
	insertScriptureQuery = `INSERT INTO scripture (reference, text, category, created_at) VALUES (?, ?, ?, ?) RETURNING id`
	selectScriptureQuery = `SELECT id, reference, text, category, created_at FROM scripture WHERE id = ?`
	listScripturesQuery  = `
		SELECT id, reference, text, category, created_at
		FROM scripture
		ORDER BY category ASC, reference ASC, id ASC
	`
	scriptureExistsQuery = `SELECT EXISTS (SELECT 1 FROM scripture WHERE id = ?)`
	deleteScriptureQuery = `DELETE FROM scripture WHERE id = ?`
	resetScripturesQuery = `DELETE FROM scripture`
)

type Repository interface {
	Insert(ctx context.Context, entry Scripture) (*Scripture, error)
	ListAll(ctx context.Context) ([]Scripture, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteAll(ctx context.Context) error
}

type repository struct {
	db  database.Service
	now func() time.Time
}

func NewRepository(db database.Service) Repository {
	return &repository{db: db, now: time.Now}
}

func (r *repository) q(query string) string {
	return r.db.Dialect().Rebind(query)
}

func (r *repository) Insert(ctx context.Context, entry Scripture) (*Scripture, error) {
	row := toRow(entry)
	if row.Category == "" {
		row.Category = DefaultCategory
	}
	row.CreatedAt = r.now().UTC().Truncate(time.Microsecond)

	var saved scriptureRow
	err := r.db.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, r.q(insertScriptureQuery),
			row.Reference, row.Text, row.Category, row.CreatedAt,
		).Scan(&id)
		if err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, r.q(selectScriptureQuery), id).Scan(
			&saved.ID,
			&saved.Reference,
			&saved.Text,
			&saved.Category,
			&saved.CreatedAt,
		)
	})
	if err != nil {
		return nil, apperr.Storage("insert scripture", err)
	}

	s := saved.toScripture()
	return &s, nil
}

// ListAll orders by category, then reference, both ascending.
func (r *repository) ListAll(ctx context.Context) ([]Scripture, error) {
	var entries []Scripture
	err := r.db.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, listScripturesQuery)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var row scriptureRow
			if err := rows.Scan(&row.ID, &row.Reference, &row.Text, &row.Category, &row.CreatedAt); err != nil {
				return err
			}
			entries = append(entries, row.toScripture())
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperr.Storage("list scriptures", err)
	}
	return entries, nil
}

func (r *repository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := r.db.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, r.q(scriptureExistsQuery), id).Scan(&found); err != nil {
			return err
		}
		if !found {
			return nil
		}
		_, err := tx.ExecContext(ctx, r.q(deleteScriptureQuery), id)
		return err
	})
	if err != nil {
		return false, apperr.Storage("delete scripture", err)
	}
	return found, nil
}

func (r *repository) DeleteAll(ctx context.Context) error {
	err := r.db.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, resetScripturesQuery)
		return err
	})
	return apperr.Storage("reset scriptures", err)
}
