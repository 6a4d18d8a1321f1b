package trip

import (
	"encoding/json"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

type Trip struct {
	ID          int64  `json:"id"`
	Destination string `json:"destination"`
	StartDate   Date   `json:"start_date"`
	EndDate     Date   `json:"end_date"`
	UserID      int64  `json:"-"`
}

// Summary is a trip list entry with the count of its locations.
type Summary struct {
	ID            int64  `json:"id"`
	Destination   string `json:"destination"`
	StartDate     Date   `json:"start_date"`
	EndDate       Date   `json:"end_date"`
	LocationCount int64  `json:"location_count"`
}

// Location is the nested shape embedded in a trip detail response.
type Location struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Upcoming struct {
	ID          int64  `json:"id"`
	Destination string `json:"destination"`
	StartDate   Date   `json:"start_date"`
	EndDate     Date   `json:"end_date"`
	DaysUntil   int    `json:"days_until"`
}

type Stats struct {
	TotalTrips         int64 `json:"total_trips"`
	UniqueDestinations int64 `json:"unique_destinations"`
	TotalDaysTraveled  int64 `json:"total_days_traveled"`
	TotalLocations     int64 `json:"total_locations"`
}

// CreateRequest carries dates as strings so the service can report bad
// formats as validation errors.
type CreateRequest struct {
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// UpdateRequest uses pointers so only fields present in the body change.
type UpdateRequest struct {
	Destination *string `json:"destination"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}
