package location

type Location struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TripID    int64   `json:"trip_id"`
}

// Input carries coordinates as pointers so missing fields are told apart
// from zero values.
type Input struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type UpdateRequest struct {
	Name      *string  `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// TripRef is the parent trip summary embedded in a location detail.
type TripRef struct {
	ID          int64  `json:"id"`
	Destination string `json:"destination"`
}

type Detail struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Trip      TripRef `json:"trip"`
}

// NearbyLocation is a location annotated with its distance from the search
// center, rounded to two decimals.
type NearbyLocation struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Distance  float64 `json:"distance"`
	TripID    int64   `json:"trip_id"`
}
