package trip

import (
	"context"
	"errors"
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

func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (Trip, error) {
	if req.Destination == "" || req.StartDate == "" || req.EndDate == "" {
		return Trip{}, apperr.Validation("missing required trip fields")
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return Trip{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return Trip{}, err
	}
	if end.Before(start) {
		return Trip{}, apperr.Validation("end date cannot be before start date")
	}

	trip := Trip{
		Destination: req.Destination,
		StartDate:   Date{start},
		EndDate:     Date{end},
		UserID:      userID,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO trips (destination, start_date, end_date, user_id)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, trip.Destination, start, end, userID)
	if err := row.Scan(&trip.ID); err != nil {
		return Trip{}, apperr.Storage(err)
	}
	return trip, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]Summary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT t.id, t.destination, t.start_date, t.end_date, COUNT(l.id)
		FROM trips t
		LEFT JOIN locations l ON l.trip_id = t.id
		WHERE t.user_id = $1
		GROUP BY t.id
		ORDER BY t.id
	`, userID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Destination, &sm.StartDate.Time, &sm.EndDate.Time, &sm.LocationCount); err != nil {
			return nil, apperr.Storage(err)
		}
		summaries = append(summaries, sm)
	}
	return summaries, nil
}

// Get resolves the trip and verifies ownership in one query, then loads its
// locations.
func (s *Service) Get(ctx context.Context, userID, tripID int64) (Trip, []Location, error) {
	trip, err := s.getOwned(ctx, userID, tripID)
	if err != nil {
		return Trip{}, nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, name, latitude, longitude
		FROM locations WHERE trip_id = $1
		ORDER BY id
	`, tripID)
	if err != nil {
		return Trip{}, nil, apperr.Storage(err)
	}
	defer rows.Close()

	locations := []Location{}
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude); err != nil {
			return Trip{}, nil, apperr.Storage(err)
		}
		locations = append(locations, loc)
	}
	return trip, locations, nil
}

// Update applies only the provided fields and re-checks the date invariant
// against the merged result. Nothing persists when validation fails.
func (s *Service) Update(ctx context.Context, userID, tripID int64, req UpdateRequest) (Trip, error) {
	trip, err := s.getOwned(ctx, userID, tripID)
	if err != nil {
		return Trip{}, err
	}

	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return Trip{}, err
		}
		trip.StartDate = Date{start}
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return Trip{}, err
		}
		trip.EndDate = Date{end}
	}
	if trip.EndDate.Before(trip.StartDate.Time) {
		return Trip{}, apperr.Validation("end date cannot be before start date")
	}

	_, err = s.db.Exec(ctx, `
		UPDATE trips
		SET destination=$2, start_date=$3, end_date=$4
		WHERE id=$1
	`, trip.ID, trip.Destination, trip.StartDate.Time, trip.EndDate.Time)
	if err != nil {
		return Trip{}, apperr.Storage(err)
	}
	return trip, nil
}

// Delete removes the trip and all of its locations in one transaction. The
// cascade is explicit application logic, not a database default.
func (s *Service) Delete(ctx context.Context, userID, tripID int64) error {
	if _, err := s.getOwned(ctx, userID, tripID); err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return apperr.Storage(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM locations WHERE trip_id = $1`, tripID); err != nil {
		return apperr.Storage(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM trips WHERE id = $1`, tripID); err != nil {
		return apperr.Storage(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *Service) Stats(ctx context.Context, userID int64) (Stats, error) {
	var stats Stats
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT destination), COALESCE(SUM(end_date - start_date + 1), 0)
		FROM trips WHERE user_id = $1
	`, userID).Scan(&stats.TotalTrips, &stats.UniqueDestinations, &stats.TotalDaysTraveled)
	if err != nil {
		return Stats{}, apperr.Storage(err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM locations l
		JOIN trips t ON t.id = l.trip_id
		WHERE t.user_id = $1
	`, userID).Scan(&stats.TotalLocations)
	if err != nil {
		return Stats{}, apperr.Storage(err)
	}
	return stats, nil
}

func (s *Service) Upcoming(ctx context.Context, userID int64) ([]Upcoming, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, destination, start_date, end_date
		FROM trips
		WHERE user_id = $1 AND start_date >= CURRENT_DATE
		ORDER BY start_date
	`, userID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	upcoming := []Upcoming{}
	for rows.Next() {
		var u Upcoming
		if err := rows.Scan(&u.ID, &u.Destination, &u.StartDate.Time, &u.EndDate.Time); err != nil {
			return nil, apperr.Storage(err)
		}
		u.DaysUntil = int(u.StartDate.Sub(today).Hours() / 24)
		upcoming = append(upcoming, u)
	}
	return upcoming, nil
}

func (s *Service) getOwned(ctx context.Context, userID, tripID int64) (Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, destination, start_date, end_date, user_id
		FROM trips WHERE id = $1 AND user_id = $2
	`, tripID, userID)

	var trip Trip
	err := row.Scan(&trip.ID, &trip.Destination, &trip.StartDate.Time, &trip.EndDate.Time, &trip.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Trip{}, apperr.NotFound("trip")
	}
	if err != nil {
		return Trip{}, apperr.Storage(err)
	}
	return trip, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid date format, use YYYY-MM-DD")
	}
	return t, nil
}
