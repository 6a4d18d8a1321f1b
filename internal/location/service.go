package location

import (
	"context"
	"errors"
	"math"
	"sort"

	"backend-soultrip/internal/apperr"
	"backend-soultrip/internal/db"
	"backend-soultrip/internal/shared/geo"

	"github.com/jackc/pgx/v5"
)

// DefaultRadiusKm is applied when a nearby search omits the radius.
const DefaultRadiusKm = 10.0

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// AddToTrip creates a location under one of the caller's trips. Ownership is
// checked before input validation so foreign trips always read as not found.
func (s *Service) AddToTrip(ctx context.Context, userID, tripID int64, input Input) (Location, error) {
	if err := s.ownedTrip(ctx, userID, tripID); err != nil {
		return Location{}, err
	}

	lat, lng, err := validateInput(input)
	if err != nil {
		return Location{}, err
	}

	loc := Location{Name: input.Name, Latitude: lat, Longitude: lng, TripID: tripID}
	row := s.db.QueryRow(ctx, `
		INSERT INTO locations (name, latitude, longitude, trip_id)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, loc.Name, loc.Latitude, loc.Longitude, loc.TripID)
	if err := row.Scan(&loc.ID); err != nil {
		return Location{}, apperr.Storage(err)
	}
	return loc, nil
}

// BulkAdd validates trip ownership once, skips invalid items and persists the
// survivors in a single transaction. Zero survivors fail the whole call.
func (s *Service) BulkAdd(ctx context.Context, userID, tripID int64, items []Input) ([]Location, error) {
	if err := s.ownedTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	valid := make([]Location, 0, len(items))
	for _, item := range items {
		lat, lng, err := validateInput(item)
		if err != nil {
			continue
		}
		valid = append(valid, Location{Name: item.Name, Latitude: lat, Longitude: lng, TripID: tripID})
	}
	if len(valid) == 0 {
		return nil, apperr.Validation("no valid locations provided")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer tx.Rollback(ctx)

	for i := range valid {
		row := tx.QueryRow(ctx, `
			INSERT INTO locations (name, latitude, longitude, trip_id)
			VALUES ($1,$2,$3,$4)
			RETURNING id
		`, valid[i].Name, valid[i].Latitude, valid[i].Longitude, valid[i].TripID)
		if err := row.Scan(&valid[i].ID); err != nil {
			return nil, apperr.Storage(err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Storage(err)
	}
	return valid, nil
}

// All returns every location across the caller's trips, joined through the
// trips table so only owned rows come back.
func (s *Service) All(ctx context.Context, userID int64) ([]Location, error) {
	rows, err := s.db.Query(ctx, `
		SELECT l.id, l.name, l.latitude, l.longitude, l.trip_id
		FROM locations l
		JOIN trips t ON t.id = l.trip_id
		WHERE t.user_id = $1
		ORDER BY l.id
	`, userID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	locations := []Location{}
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.TripID); err != nil {
			return nil, apperr.Storage(err)
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

func (s *Service) ListByTrip(ctx context.Context, userID, tripID int64) ([]Location, error) {
	if err := s.ownedTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, name, latitude, longitude, trip_id
		FROM locations WHERE trip_id = $1
		ORDER BY id
	`, tripID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	locations := []Location{}
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.TripID); err != nil {
			return nil, apperr.Storage(err)
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

func (s *Service) Get(ctx context.Context, userID, locationID int64) (Detail, error) {
	row := s.db.QueryRow(ctx, `
		SELECT l.id, l.name, l.latitude, l.longitude, t.id, t.destination
		FROM locations l
		JOIN trips t ON t.id = l.trip_id
		WHERE l.id = $1 AND t.user_id = $2
	`, locationID, userID)

	var d Detail
	err := row.Scan(&d.ID, &d.Name, &d.Latitude, &d.Longitude, &d.Trip.ID, &d.Trip.Destination)
	if errors.Is(err, pgx.ErrNoRows) {
		return Detail{}, apperr.NotFound("location")
	}
	if err != nil {
		return Detail{}, apperr.Storage(err)
	}
	return d, nil
}

// Update applies only the provided fields; any invalid field aborts the whole
// operation before the write.
func (s *Service) Update(ctx context.Context, userID, locationID int64, req UpdateRequest) (Location, error) {
	loc, err := s.getOwned(ctx, userID, locationID)
	if err != nil {
		return Location{}, err
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Latitude != nil {
		if *req.Latitude < -90 || *req.Latitude > 90 {
			return Location{}, apperr.Validation("invalid latitude")
		}
		loc.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		if *req.Longitude < -180 || *req.Longitude > 180 {
			return Location{}, apperr.Validation("invalid longitude")
		}
		loc.Longitude = *req.Longitude
	}

	_, err = s.db.Exec(ctx, `
		UPDATE locations
		SET name=$2, latitude=$3, longitude=$4
		WHERE id=$1
	`, loc.ID, loc.Name, loc.Latitude, loc.Longitude)
	if err != nil {
		return Location{}, apperr.Storage(err)
	}
	return loc, nil
}

func (s *Service) Delete(ctx context.Context, userID, locationID int64) error {
	if _, err := s.getOwned(ctx, userID, locationID); err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM locations WHERE id = $1`, locationID); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// Nearby filters the caller's locations by great-circle distance from the
// center, sorted ascending. Ties keep id order. The result is unbounded; a
// user's own locations stay small enough that no cap is enforced.
func (s *Service) Nearby(ctx context.Context, userID int64, lat, lng, radiusKm float64) ([]NearbyLocation, error) {
	if !geo.ValidCoordinates(lat, lng) || radiusKm <= 0 {
		return nil, apperr.Validation("invalid coordinates or radius")
	}

	locations, err := s.All(ctx, userID)
	if err != nil {
		return nil, err
	}

	nearby := []NearbyLocation{}
	for _, loc := range locations {
		d := geo.HaversineKm(lat, lng, loc.Latitude, loc.Longitude)
		if d <= radiusKm {
			nearby = append(nearby, NearbyLocation{
				ID:        loc.ID,
				Name:      loc.Name,
				Latitude:  loc.Latitude,
				Longitude: loc.Longitude,
				Distance:  math.Round(d*100) / 100,
				TripID:    loc.TripID,
			})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].Distance < nearby[j].Distance
	})
	return nearby, nil
}

func (s *Service) getOwned(ctx context.Context, userID, locationID int64) (Location, error) {
	row := s.db.QueryRow(ctx, `
		SELECT l.id, l.name, l.latitude, l.longitude, l.trip_id
		FROM locations l
		JOIN trips t ON t.id = l.trip_id
		WHERE l.id = $1 AND t.user_id = $2
	`, locationID, userID)

	var loc Location
	err := row.Scan(&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.TripID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Location{}, apperr.NotFound("location")
	}
	if err != nil {
		return Location{}, apperr.Storage(err)
	}
	return loc, nil
}

func (s *Service) ownedTrip(ctx context.Context, userID, tripID int64) error {
	var id int64
	err := s.db.QueryRow(ctx, `
		SELECT id FROM trips WHERE id = $1 AND user_id = $2
	`, tripID, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("trip")
	}
	if err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func validateInput(input Input) (lat, lng float64, err error) {
	if input.Name == "" || input.Latitude == nil || input.Longitude == nil {
		return 0, 0, apperr.Validation("missing required location fields")
	}
	if !geo.ValidCoordinates(*input.Latitude, *input.Longitude) {
		return 0, 0, apperr.Validation("invalid coordinates")
	}
	return *input.Latitude, *input.Longitude, nil
}
