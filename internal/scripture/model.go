package scripture

import "time"

const DefaultCategory = "General"

type Scripture struct {
	ID        int64
	Reference string
	Text      string
	Category  string
	CreatedAt time.Time
}

type scriptureRow struct {
	ID        int64
	Reference string
	Text      string
	Category  string
	CreatedAt time.Time
}

// CreateScriptureRequest is the POST /scriptures/ body. Client supplied id
// and created_at are not part of it and are dropped while decoding.
type CreateScriptureRequest struct {
	Reference string `json:"reference" validate:"required,notblank"`
	Text      string `json:"text" validate:"required,notblank"`
	Category  string `json:"category,omitempty"`
}

type ScriptureResponse struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// toScripture keeps the fields as sent; only a missing category is filled in.
func (req CreateScriptureRequest) toScripture() Scripture {
	category := req.Category
	if category == "" {
		category = DefaultCategory
	}
	return Scripture{Reference: req.Reference, Text: req.Text, Category: category}
}

func toRow(s Scripture) scriptureRow {
	return scriptureRow{
		ID:        s.ID,
		Reference: s.Reference,
		Text:      s.Text,
		Category:  s.Category,
		CreatedAt: s.CreatedAt,
	}
}

func (row scriptureRow) toScripture() Scripture {
	return Scripture{
		ID:        row.ID,
		Reference: row.Reference,
		Text:      row.Text,
		Category:  row.Category,
		CreatedAt: row.CreatedAt.UTC(),
	}
}

func NewScriptureResponse(s Scripture) ScriptureResponse {
	return ScriptureResponse{
		ID:        s.ID,
		Reference: s.Reference,
		Text:      s.Text,
		Category:  s.Category,
		CreatedAt: s.CreatedAt,
	}
}

func NewScriptureResponses(entries []Scripture) []ScriptureResponse {
	out := make([]ScriptureResponse, 0, len(entries))
	for _, s := range entries {
		out = append(out, NewScriptureResponse(s))
	}
	return out
}
