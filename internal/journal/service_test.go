package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"backend-soultrip/internal/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestCreateEntry(t *testing.T) {
	mock := newMock(t)
	created := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO journal_entries`).
		WithArgs("Day one", "Arrived in Kyoto.", int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), created))

	svc := NewService(mock)
	entry, err := svc.Create(context.Background(), 1, CreateRequest{Title: "Day one", Content: "Arrived in Kyoto."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.ID != 3 || !entry.CreatedAt.Equal(created) {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateEntryMissingFields(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Create(context.Background(), 1, CreateRequest{Title: "Day one"})
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListWithLimit(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id, title, content, created_at\s+FROM journal_entries\s+WHERE user_id = \$1\s+ORDER BY created_at DESC\s+LIMIT \$2`).
		WithArgs(int64(1), 2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "content", "created_at"}).
			AddRow(int64(5), "Newest", "c", time.Now()).
			AddRow(int64(4), "Older", "c", time.Now().Add(-time.Hour)))

	svc := NewService(mock)
	entries, err := svc.List(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != 5 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestGetForeignEntryIsNotFound(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id, title, content, created_at, user_id`).
		WithArgs(int64(3), int64(2)).
		WillReturnError(pgx.ErrNoRows)

	svc := NewService(mock)
	_, err := svc.Get(context.Background(), 2, 3)
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
	if nf.Error() != "journal entry not found or access denied" {
		t.Fatalf("unexpected message: %q", nf.Error())
	}
}

func TestUpdateEntryPartial(t *testing.T) {
	mock := newMock(t)
	created := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, title, content, created_at, user_id`).
		WithArgs(int64(3), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "content", "created_at", "user_id"}).
			AddRow(int64(3), "Day one", "Arrived in Kyoto.", created, int64(1)))
	mock.ExpectExec(`UPDATE journal_entries`).
		WithArgs(int64(3), "Day one, revised", "Arrived in Kyoto.").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	title := "Day one, revised"
	svc := NewService(mock)
	entry, err := svc.Update(context.Background(), 1, 3, UpdateRequest{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if entry.Title != title || entry.Content != "Arrived in Kyoto." {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSearchTooShort(t *testing.T) {
	svc := NewService(nil)
	for _, q := range []string{"", "ab", "  a  "} {
		_, err := svc.Search(context.Background(), 1, q)
		var verr *apperr.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%q: expected validation error, got %v", q, err)
		}
	}
}

func TestSearchMatchesTitleAndContent(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`title ILIKE '%' \|\| \$2 \|\| '%' OR content ILIKE`).
		WithArgs(int64(1), "temple").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "content", "created_at"}).
			AddRow(int64(7), "Temples", "Visited three temples.", time.Now()))

	svc := NewService(mock)
	entries, err := svc.Search(context.Background(), 1, "temple")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != 7 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestStats(t *testing.T) {
	mock := newMock(t)
	first := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	latest := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\), MIN\(created_at\), MAX\(created_at\)`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count", "min", "max", "avg"}).
			AddRow(int64(4), &first, &latest, 182.5))

	svc := NewService(mock)
	stats, err := svc.Stats(context.Background(), 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalEntries != 4 || stats.AvgContentLength != 182 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.FirstEntryDate == nil || *stats.FirstEntryDate != "2024-04-01" {
		t.Fatalf("unexpected first date: %v", stats.FirstEntryDate)
	}
	if stats.LatestEntryDate == nil || *stats.LatestEntryDate != "2024-05-02" {
		t.Fatalf("unexpected latest date: %v", stats.LatestEntryDate)
	}
}

func TestStatsEmptyJournal(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\), MIN\(created_at\), MAX\(created_at\)`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count", "min", "max", "avg"}).
			AddRow(int64(0), nil, nil, 0.0))

	svc := NewService(mock)
	stats, err := svc.Stats(context.Background(), 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalEntries != 0 || stats.FirstEntryDate != nil || stats.LatestEntryDate != nil {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestDeleteEntry(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id, title, content, created_at, user_id`).
		WithArgs(int64(3), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "content", "created_at", "user_id"}).
			AddRow(int64(3), "Day one", "c", time.Now(), int64(1)))
	mock.ExpectExec(`DELETE FROM journal_entries WHERE id`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	svc := NewService(mock)
	if err := svc.Delete(context.Background(), 1, 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
