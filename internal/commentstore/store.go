package commentstore

import (
	"context"
	"database/sql"

	"opinionlens-backend/lib/youtube"

	_ "embed"
)

//go:embed schema.sql
var Schema string

// Store mirrors scraped comments into sqlite (or libsql) for consumers
// that want SQL over the dataset instead of the CSV. The primary key on
// comment_id makes inserts naturally idempotent.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

func (s Store) InsertComments(ctx context.Context, comments []youtube.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO comments (
			comment_id, video_id, parent_id, is_reply, author,
			text, likes, published_at, updated_at, reply_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range comments {
		_, err := stmt.ExecContext(
			ctx,
			c.ID, c.VideoID, c.ParentID, c.IsReply, c.Author,
			c.Text, c.Likes, c.PublishedAt, c.UpdatedAt, c.ReplyCount,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) CountComments(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments`).Scan(&n)
	return n, err
}

func (s Store) CommentsForVideo(ctx context.Context, videoID string) ([]youtube.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT comment_id, video_id, parent_id, is_reply, author,
		       text, likes, published_at, updated_at, reply_count
		FROM comments WHERE video_id = ?
		ORDER BY published_at
	`, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []youtube.Comment
	for rows.Next() {
		var c youtube.Comment
		err := rows.Scan(
			&c.ID, &c.VideoID, &c.ParentID, &c.IsReply, &c.Author,
			&c.Text, &c.Likes, &c.PublishedAt, &c.UpdatedAt, &c.ReplyCount,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
