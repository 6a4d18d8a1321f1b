package journal

import (
	"context"
	"errors"
	"strings"
	"time"

	"backend-soultrip/internal/apperr"
	"backend-soultrip/internal/db"

	"github.com/jackc/pgx/v5"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (Entry, error) {
	if req.Title == "" || req.Content == "" {
		return Entry{}, apperr.Validation("missing required journal fields")
	}

	entry := Entry{Title: req.Title, Content: req.Content, UserID: userID}
	row := s.db.QueryRow(ctx, `
		INSERT INTO journal_entries (title, content, user_id)
		VALUES ($1,$2,$3)
		RETURNING id, created_at
	`, entry.Title, entry.Content, userID)
	if err := row.Scan(&entry.ID, &entry.CreatedAt.Time); err != nil {
		return Entry{}, apperr.Storage(err)
	}
	return entry, nil
}

// List returns the caller's entries, newest first. A limit of zero means all.
func (s *Service) List(ctx context.Context, userID int64, limit int) ([]Entry, error) {
	q := `
		SELECT id, title, content, created_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (s *Service) Get(ctx context.Context, userID, entryID int64) (Entry, error) {
	return s.getOwned(ctx, userID, entryID)
}

func (s *Service) Update(ctx context.Context, userID, entryID int64, req UpdateRequest) (Entry, error) {
	entry, err := s.getOwned(ctx, userID, entryID)
	if err != nil {
		return Entry{}, err
	}

	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Content != nil {
		entry.Content = *req.Content
	}

	_, err = s.db.Exec(ctx, `
		UPDATE journal_entries
		SET title=$2, content=$3
		WHERE id=$1
	`, entry.ID, entry.Title, entry.Content)
	if err != nil {
		return Entry{}, apperr.Storage(err)
	}
	return entry, nil
}

func (s *Service) Delete(ctx context.Context, userID, entryID int64) error {
	if _, err := s.getOwned(ctx, userID, entryID); err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM journal_entries WHERE id = $1`, entryID); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// Search matches the query against title and content, case-insensitive,
// newest first.
func (s *Service) Search(ctx context.Context, userID int64, query string) ([]Entry, error) {
	if len(strings.TrimSpace(query)) < 3 {
		return nil, apperr.Validation("search query must be at least 3 characters")
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, title, content, created_at
		FROM journal_entries
		WHERE user_id = $1 AND (title ILIKE '%' || $2 || '%' OR content ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
	`, userID, query)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (s *Service) Stats(ctx context.Context, userID int64) (Stats, error) {
	var (
		stats         Stats
		first, latest *time.Time
		avg           float64
	)
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*), MIN(created_at), MAX(created_at), COALESCE(AVG(LENGTH(content)), 0)
		FROM journal_entries
		WHERE user_id = $1
	`, userID).Scan(&stats.TotalEntries, &first, &latest, &avg)
	if err != nil {
		return Stats{}, apperr.Storage(err)
	}

	stats.AvgContentLength = int64(avg)
	if first != nil {
		d := first.Format(dateLayout)
		stats.FirstEntryDate = &d
	}
	if latest != nil {
		d := latest.Format(dateLayout)
		stats.LatestEntryDate = &d
	}
	return stats, nil
}

func (s *Service) getOwned(ctx context.Context, userID, entryID int64) (Entry, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, content, created_at, user_id
		FROM journal_entries WHERE id = $1 AND user_id = $2
	`, entryID, userID)

	var entry Entry
	err := row.Scan(&entry.ID, &entry.Title, &entry.Content, &entry.CreatedAt.Time, &entry.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, apperr.NotFound("journal entry")
	}
	if err != nil {
		return Entry{}, apperr.Storage(err)
	}
	return entry, nil
}

func scanEntries(rows pgx.Rows) ([]Entry, error) {
	entries := []Entry{}
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Content, &entry.CreatedAt.Time); err != nil {
			return nil, apperr.Storage(err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
