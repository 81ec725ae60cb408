package gratitude

import (
	"database/sql"
	"time"
)

// Note is a gratitude entry as the rest of the application sees it.
type Note struct {
	ID        int64
	Content   string
	Category  *string
	CreatedAt time.Time
}

// noteRow mirrors one row of the gratitude table.
type noteRow struct {
	ID        int64
	Content   string
	Category  sql.NullString
	CreatedAt time.Time
}

// CreateNoteRequest is the POST /gratitude/ body. It carries no id or
// created_at: both are assigned by storage and client values are dropped.
type CreateNoteRequest struct {
	Content  string  `json:"content" validate:"required,notblank"`
	Category *string `json:"category,omitempty"`
}

type NoteResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Category  *string   `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func (req CreateNoteRequest) toNote() Note {
	return Note{Content: req.Content, Category: req.Category}
}

func toRow(n Note) noteRow {
	row := noteRow{ID: n.ID, Content: n.Content, CreatedAt: n.CreatedAt}
	if n.Category != nil {
		row.Category = sql.NullString{String: *n.Category, Valid: true}
	}
	return row
}

func (row noteRow) toNote() Note {
	n := Note{ID: row.ID, Content: row.Content, CreatedAt: row.CreatedAt.UTC()}
	if row.Category.Valid {
		c := row.Category.String
		n.Category = &c
	}
	return n
}

func NewNoteResponse(n Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Content:   n.Content,
		Category:  n.Category,
		CreatedAt: n.CreatedAt,
	}
}

func NewNoteResponses(notes []Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNoteResponse(n))
	}
	return out
}
