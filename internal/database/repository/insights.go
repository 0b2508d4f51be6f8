package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lthomson/pennywise/internal/database"
)

// InsightRepo handles persisted insights.
type InsightRepo struct {
	db *sql.DB
}

func NewInsightRepo(db *sql.DB) *InsightRepo {
	return &InsightRepo{db: db}
}

// Add stores one insight and returns the stored row.
func (r *InsightRepo) Add(ctx context.Context, insightType, content string) (Insight, error) {
	in := Insight{
		ID:        uuid.NewString(),
		Type:      insightType,
		Content:   content,
		CreatedAt: database.Now(),
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO insights(id, insight_type, content, is_read, created_at)
	VALUES (?, ?, ?, 0, ?);
	`, in.ID, in.Type, in.Content, in.CreatedAt)
	if err != nil {
		return Insight{}, err
	}
	return in, nil
}

// ListRecent returns the newest insights, newest first.
func (r *InsightRepo) ListRecent(ctx context.Context, limit int) ([]Insight, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, insight_type, content, is_read, created_at
	FROM insights ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Insight
	for rows.Next() {
		var in Insight
		if err := rows.Scan(&in.ID, &in.Type, &in.Content, &in.IsRead, &in.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// MarkRead flags an insight as read.
func (r *InsightRepo) MarkRead(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE insights SET is_read = 1 WHERE id = ?`, id)
	return err
}
