package contact

// Contact is a trusted person to reach in an emergency.
type Contact struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	UserID int64  `json:"-"`
}

type CreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UpdateRequest uses pointers so only fields present in the body change.
type UpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// NotifyRequest carries the optional alert context. Both fields default when
// absent.
type NotifyRequest struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// EmailPayload is handed to the mail-sending frontend as-is; the server never
// sends mail itself.
type EmailPayload struct {
	Contacts     []Contact    `json:"contacts"`
	AlertDetails AlertDetails `json:"alert_details"`
}

type AlertDetails struct {
	User      string `json:"user"`
	Location  string `json:"location"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
