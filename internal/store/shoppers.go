package store

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/anitasharma/craftsbyanita/internal/models"
)

// ErrDuplicateEmail is returned when a shopper account already exists for
// the given email. The driver reports this as an opaque constraint-violation
// message; mapping it to a sentinel here keeps the string inspection in one
// place so callers can use errors.Is.
var ErrDuplicateEmail = errors.New("email already registered")

func (s *Store) CreateShopper(shopper *models.Shopper) error {
	query := `INSERT INTO shoppers (id, email, password, first_name, last_name, created_at) VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`
	_, err := s.DB.Exec(query, shopper.ID, shopper.Email, shopper.Password, shopper.FirstName, shopper.LastName)
	if err != nil && isDuplicateErr(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *Store) GetShopperByEmail(email string) (*models.Shopper, error) {
	query := `SELECT id, email, password, first_name, last_name, created_at FROM shoppers WHERE email = ? COLLATE NOCASE`
	row := s.DB.QueryRow(query, email)

	var shopper models.Shopper
	if err := row.Scan(&shopper.ID, &shopper.Email, &shopper.Password, &shopper.FirstName, &shopper.LastName, &shopper.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &shopper, nil
}

func (s *Store) GetShopperByID(id string) (*models.Shopper, error) {
	query := `SELECT id, email, password, first_name, last_name, created_at FROM shoppers WHERE id = ?`
	row := s.DB.QueryRow(query, id)

	var shopper models.Shopper
	if err := row.Scan(&shopper.ID, &shopper.Email, &shopper.Password, &shopper.FirstName, &shopper.LastName, &shopper.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &shopper, nil
}

// isDuplicateErr recognizes the driver's unique-constraint message. Different
// backends phrase it differently ("UNIQUE constraint failed", "already
// exists", "registered"), so match loosely.
func isDuplicateErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "already") ||
		strings.Contains(msg, "exists") ||
		strings.Contains(msg, "registered")
}
