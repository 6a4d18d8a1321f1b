package contact

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"backend-soultrip/internal/apperr"
	"backend-soultrip/internal/db"

	"github.com/jackc/pgx/v5"
)

var (
	emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	phonePattern = regexp.MustCompile(`^[0-9\s\-()+]+$`)
	digitPattern = regexp.MustCompile(`\d`)
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (Contact, error) {
	if req.Name == "" || req.Email == "" || req.Phone == "" {
		return Contact{}, apperr.Validation("missing required contact fields")
	}
	if !validEmail(req.Email) {
		return Contact{}, apperr.Validation("invalid email format")
	}
	if !validPhone(req.Phone) {
		return Contact{}, apperr.Validation("invalid phone number format")
	}

	c := Contact{Name: req.Name, Email: req.Email, Phone: req.Phone, UserID: userID}
	row := s.db.QueryRow(ctx, `
		INSERT INTO trusted_contacts (name, email, phone, user_id)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, c.Name, c.Email, c.Phone, userID)
	if err := row.Scan(&c.ID); err != nil {
		return Contact{}, apperr.Storage(err)
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]Contact, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, email, phone
		FROM trusted_contacts
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

func (s *Service) Get(ctx context.Context, userID, contactID int64) (Contact, error) {
	return s.getOwned(ctx, userID, contactID)
}

// Update applies only the provided fields; email and phone are re-validated
// when changed.
func (s *Service) Update(ctx context.Context, userID, contactID int64, req UpdateRequest) (Contact, error) {
	c, err := s.getOwned(ctx, userID, contactID)
	if err != nil {
		return Contact{}, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		if !validEmail(*req.Email) {
			return Contact{}, apperr.Validation("invalid email format")
		}
		c.Email = *req.Email
	}
	if req.Phone != nil {
		if !validPhone(*req.Phone) {
			return Contact{}, apperr.Validation("invalid phone number format")
		}
		c.Phone = *req.Phone
	}

	_, err = s.db.Exec(ctx, `
		UPDATE trusted_contacts
		SET name=$2, email=$3, phone=$4
		WHERE id=$1
	`, c.ID, c.Name, c.Email, c.Phone)
	if err != nil {
		return Contact{}, apperr.Storage(err)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID, contactID int64) error {
	if _, err := s.getOwned(ctx, userID, contactID); err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM trusted_contacts WHERE id = $1`, contactID); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// Search matches the query against name and email, case-insensitive.
func (s *Service) Search(ctx context.Context, userID int64, query string) ([]Contact, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return nil, apperr.Validation("search query must be at least 2 characters")
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, name, email, phone
		FROM trusted_contacts
		WHERE user_id = $1 AND (name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
		ORDER BY id
	`, userID, query)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

// Notify builds the payload the frontend uses to email every trusted contact.
// Nothing is sent server-side.
func (s *Service) Notify(ctx context.Context, userID int64, req NotifyRequest) (EmailPayload, error) {
	if req.Location == "" {
		req.Location = "Unknown location"
	}
	if req.Message == "" {
		req.Message = "Emergency alert"
	}

	contacts, err := s.List(ctx, userID)
	if err != nil {
		return EmailPayload{}, err
	}
	if len(contacts) == 0 {
		return EmailPayload{}, apperr.NotFound("emergency contacts")
	}

	var username string
	err = s.db.QueryRow(ctx, `
		SELECT username FROM users WHERE id = $1
	`, userID).Scan(&username)
	if err != nil {
		return EmailPayload{}, apperr.Storage(err)
	}

	return EmailPayload{
		Contacts: contacts,
		AlertDetails: AlertDetails{
			User:      username,
			Location:  req.Location,
			Message:   req.Message,
			Timestamp: time.Now().Format(time.RFC3339),
		},
	}, nil
}

func (s *Service) getOwned(ctx context.Context, userID, contactID int64) (Contact, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, email, phone, user_id
		FROM trusted_contacts WHERE id = $1 AND user_id = $2
	`, contactID, userID)

	var c Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Contact{}, apperr.NotFound("contact")
	}
	if err != nil {
		return Contact{}, apperr.Storage(err)
	}
	return c, nil
}

func scanContacts(rows pgx.Rows) ([]Contact, error) {
	contacts := []Contact{}
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
			return nil, apperr.Storage(err)
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validPhone accepts digits, spaces, dashes, parentheses and a plus sign,
// with at least 7 digits overall.
func validPhone(phone string) bool {
	return phonePattern.MatchString(phone) && len(digitPattern.FindAllString(phone, -1)) >= 7
}
