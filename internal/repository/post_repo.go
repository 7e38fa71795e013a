package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog_app/internal/models"
)

type PostSQLite struct {
	db *sql.DB
}

func NewPostSQLite(db *sql.DB) *PostSQLite { return &PostSQLite{db: db} }

var _ PostRepo = (*PostSQLite)(nil)

const (
	insertPostSQL = `INSERT INTO posts (title, content, date_posted, author_id) VALUES (?, ?, ?, ?)`

	selectPostSQL = `
		SELECT p.id, p.title, p.content, p.date_posted, p.author_id, u.username
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.id = ?`

	updatePostSQL = `UPDATE posts SET title = ?, content = ?, author_id = ? WHERE id = ?`
	deletePostSQL = `DELETE FROM posts WHERE id = ?`

	countPostsSQL         = `SELECT COUNT(*) FROM posts`
	countPostsByAuthorSQL = `SELECT COUNT(*) FROM posts WHERE author_id = ?`

	// newest first; id breaks ties between posts created in the same instant
	listPostsSQL = `
		SELECT p.id, p.title, p.content, p.date_posted, p.author_id, u.username
		FROM posts p JOIN users u ON u.id = p.author_id
		ORDER BY p.date_posted DESC, p.id DESC
		LIMIT ? OFFSET ?`

	listPostsByAuthorSQL = `
		SELECT p.id, p.title, p.content, p.date_posted, p.author_id, u.username
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.author_id = ?
		ORDER BY p.date_posted DESC, p.id DESC
		LIMIT ? OFFSET ?`
)

// Create inserts a post. A zero DatePosted is set to now (UTC).
func (r *PostSQLite) Create(ctx context.Context, p models.Post) (int, error) {
	posted := p.DatePosted
	if posted.IsZero() {
		posted = time.Now().UTC()
	} else {
		posted = posted.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertPostSQL, p.Title, p.Content, posted, p.AuthorID)
	if err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for post: %w", err)
	}
	return int(id), nil
}

// Get fetches one post with its author's username. Returns (nil, nil) if not found.
func (r *PostSQLite) Get(ctx context.Context, id int) (*models.Post, error) {
	var p models.Post
	err := r.db.QueryRowContext(ctx, selectPostSQL, id).
		Scan(&p.ID, &p.Title, &p.Content, &p.DatePosted, &p.AuthorID, &p.Author)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select post %d: %w", id, err)
	}
	p.DatePosted = p.DatePosted.UTC()
	return &p, nil
}

// Update writes title, content and author. date_posted is never touched.
func (r *PostSQLite) Update(ctx context.Context, p models.Post) error {
	res, err := r.db.ExecContext(ctx, updatePostSQL, p.Title, p.Content, p.AuthorID, p.ID)
	if err != nil {
		return fmt.Errorf("update post %d: %w", p.ID, err)
	}
	return expectOneRow(res, "update post", p.ID)
}

func (r *PostSQLite) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deletePostSQL, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return expectOneRow(res, "delete post", id)
}

func (r *PostSQLite) Count(ctx context.Context, authorID int) (int, error) {
	var row *sql.Row
	if authorID != 0 {
		row = r.db.QueryRowContext(ctx, countPostsByAuthorSQL, authorID)
	} else {
		row = r.db.QueryRowContext(ctx, countPostsSQL)
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

// List returns one window of posts, newest first.
func (r *PostSQLite) List(ctx context.Context, authorID, limit, offset int) ([]models.Post, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if authorID != 0 {
		rows, err = r.db.QueryContext(ctx, listPostsByAuthorSQL, authorID, limit, offset)
	} else {
		rows, err = r.db.QueryContext(ctx, listPostsSQL, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	out := make([]models.Post, 0, limit)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.DatePosted, &p.AuthorID, &p.Author); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.DatePosted = p.DatePosted.UTC()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return out, nil
}

// ErrNoRows is returned by writes that matched nothing.
var ErrNoRows = errors.New("no rows affected")

func expectOneRow(res sql.Result, op string, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: rows affected: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", op, id, ErrNoRows)
	}
	return nil
}
