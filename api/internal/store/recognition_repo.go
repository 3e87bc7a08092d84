package store

import (
	"context"
	"database/sql"
	"time"
)

var ErrNotFound = sql.ErrNoRows

// RecognitionRepo is the audit log of finished recognitions. The diagnostic
// trace is deliberately never stored.
type RecognitionRepo struct{ DB *sql.DB }

func NewRecognitionRepo(db *sql.DB) *RecognitionRepo { return &RecognitionRepo{DB: db} }

type RecognitionRow struct {
	ID        int64
	CreatedAt time.Time
	ChatID    int64
	ImageHash string
	Engine    string
	Text      string
}

func (r *RecognitionRepo) Insert(ctx context.Context, row *RecognitionRow) (int64, error) {
	const q = `
insert into recognitions (created_at, chat_id, image_hash, engine, recognized_text)
values (now(), $1, $2, $3, $4)
returning id`
	var id int64
	if err := r.DB.QueryRowContext(ctx, q, row.ChatID, row.ImageHash, row.Engine, row.Text).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// LastByHash returns the most recent recognition for an image hash, or
// ErrNotFound when maxAge > 0 and the row is older.
func (r *RecognitionRepo) LastByHash(ctx context.Context, imageHash string, maxAge time.Duration) (*RecognitionRow, error) {
	const q = `
select id, created_at, coalesce(chat_id,0), image_hash, engine, recognized_text
from recognitions
where image_hash = $1
order by created_at desc
limit 1`
	row := r.DB.QueryRowContext(ctx, q, imageHash)
	var out RecognitionRow
	if err := row.Scan(&out.ID, &out.CreatedAt, &out.ChatID, &out.ImageHash, &out.Engine, &out.Text); err != nil {
		return nil, err
	}
	if maxAge > 0 && time.Since(out.CreatedAt) > maxAge {
		return nil, ErrNotFound
	}
	return &out, nil
}
