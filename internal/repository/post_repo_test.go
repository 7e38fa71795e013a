package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"blog_app/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var postColumns = []string{"id", "title", "content", "date_posted", "author_id", "username"}

func TestPostSQLite_Create_DefaultsDatePosted(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPostSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(insertPostSQL)).
		WithArgs("Hello", "World", sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, err := repo.Create(context.Background(), models.Post{Title: "Hello", Content: "World", AuthorID: 7})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 11 {
		t.Fatalf("id = %d, want 11", id)
	}
}

func TestPostSQLite_Create_KeepsGivenDateInUTC(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPostSQLite(db)

	loc := time.FixedZone("UTC+3", 3*3600)
	posted := time.Date(2024, 5, 1, 12, 0, 0, 0, loc)

	mock.ExpectExec(regexp.QuoteMeta(insertPostSQL)).
		WithArgs("T", "C", posted.UTC(), 1).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if _, err := repo.Create(context.Background(), models.Post{Title: "T", Content: "C", AuthorID: 1, DatePosted: posted}); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestPostSQLite_Get(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := NewPostSQLite(db)

		mock.ExpectQuery(regexp.QuoteMeta(selectPostSQL)).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows(postColumns).AddRow(5, "T", "C", now, 7, "alice"))

		p, err := repo.Get(context.Background(), 5)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if p == nil || p.ID != 5 || p.AuthorID != 7 || p.Author != "alice" || !p.DatePosted.Equal(now) {
			t.Fatalf("unexpected post %+v", p)
		}
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := NewPostSQLite(db)

		mock.ExpectQuery(regexp.QuoteMeta(selectPostSQL)).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)

		p, err := repo.Get(context.Background(), 99)
		if err != nil || p != nil {
			t.Fatalf("expected (nil, nil), got (%+v, %v)", p, err)
		}
	})
}

func TestPostSQLite_UpdateAndDelete(t *testing.T) {
	cases := []struct {
		name    string
		run     func(r *PostSQLite) error
		expect  func(m sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "update ok",
			run: func(r *PostSQLite) error {
				return r.Update(context.Background(), models.Post{ID: 3, Title: "t", Content: "c", AuthorID: 7})
			},
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(updatePostSQL)).
					WithArgs("t", "c", 7, 3).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "update missing row",
			run: func(r *PostSQLite) error {
				return r.Update(context.Background(), models.Post{ID: 4, Title: "t", Content: "c", AuthorID: 7})
			},
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(updatePostSQL)).
					WithArgs("t", "c", 7, 4).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrNoRows,
		},
		{
			name: "delete ok",
			run:  func(r *PostSQLite) error { return r.Delete(context.Background(), 3) },
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(deletePostSQL)).
					WithArgs(3).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "delete missing row",
			run:  func(r *PostSQLite) error { return r.Delete(context.Background(), 8) },
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(deletePostSQL)).
					WithArgs(8).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrNoRows,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()
			tc.expect(mock)

			err := tc.run(NewPostSQLite(db))
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestPostSQLite_CountSelectsQueryByAuthor(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPostSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(countPostsSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta(countPostsByAuthorSQL)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))

	all, err := repo.Count(context.Background(), 0)
	if err != nil || all != 12 {
		t.Fatalf("Count(all) = %d, %v", all, err)
	}
	mine, err := repo.Count(context.Background(), 7)
	if err != nil || mine != 3 {
		t.Fatalf("Count(author) = %d, %v", mine, err)
	}
}

func TestPostSQLite_List(t *testing.T) {
	newer := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	t.Run("all authors", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := NewPostSQLite(db)

		mock.ExpectQuery(regexp.QuoteMeta(listPostsSQL)).
			WithArgs(5, 10).
			WillReturnRows(sqlmock.NewRows(postColumns).
				AddRow(2, "b", "B", newer, 1, "alice").
				AddRow(1, "a", "A", older, 2, "bob"))

		posts, err := repo.List(context.Background(), 0, 5, 10)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(posts) != 2 || posts[0].ID != 2 || posts[1].Author != "bob" {
			t.Fatalf("unexpected posts %+v", posts)
		}
	})

	t.Run("one author", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := NewPostSQLite(db)

		mock.ExpectQuery(regexp.QuoteMeta(listPostsByAuthorSQL)).
			WithArgs(7, 5, 0).
			WillReturnRows(sqlmock.NewRows(postColumns).AddRow(9, "x", "X", newer, 7, "carol"))

		posts, err := repo.List(context.Background(), 7, 5, 0)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(posts) != 1 || posts[0].AuthorID != 7 {
			t.Fatalf("unexpected posts %+v", posts)
		}
	})

	t.Run("query error", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := NewPostSQLite(db)

		mock.ExpectQuery(regexp.QuoteMeta(listPostsSQL)).
			WithArgs(5, 0).
			WillReturnError(errors.New("boom"))

		if _, err := repo.List(context.Background(), 0, 5, 0); err == nil {
			t.Fatalf("expected error")
		}
	})
}
