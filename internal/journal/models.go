package journal

import (
	"encoding/json"
	"time"
)

const dateLayout = "2006-01-02"

// Entry serializes created_at as a calendar day, not a full timestamp.
type Entry struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt EntryDate `json:"created_at"`
	UserID    int64     `json:"-"`
}

type EntryDate struct {
	time.Time
}

func (d EntryDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *EntryDate) UnmarshalJSON(b []byte) error {
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

type CreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateRequest uses pointers so only fields present in the body change.
type UpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Stats summarizes a user's journal. Dates are nil when no entries exist.
type Stats struct {
	TotalEntries     int64   `json:"total_entries"`
	FirstEntryDate   *string `json:"first_entry_date"`
	LatestEntryDate  *string `json:"latest_entry_date"`
	AvgContentLength int64   `json:"avg_content_length"`
}
