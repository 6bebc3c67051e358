package store

import (
	"github.com/anitasharma/craftsbyanita/internal/models"
)

func (s *Store) CreateItem(item *models.Item) error {
	query := `
		INSERT INTO items (title, description, price, image_url, status, created_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	_, err := s.DB.Exec(query, item.Title, item.Description, item.Price, item.ImageURL, item.Status)
	return err
}

func (s *Store) GetAvailableItems() ([]models.Item, error) {
	query := `SELECT id, title, description, price, image_url, COALESCE(status, 'available') as status, created_at FROM items WHERE COALESCE(status, 'available') = 'available' ORDER BY created_at DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var i models.Item
		if err := rows.Scan(&i.ID, &i.Title, &i.Description, &i.Price, &i.ImageURL, &i.Status, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, nil
}

func (s *Store) GetItemByID(id int) (*models.Item, error) {
	query := `SELECT id, title, description, price, image_url, COALESCE(status, 'available') as status, created_at FROM items WHERE id = ?`
	row := s.DB.QueryRow(query, id)

	var i models.Item
	if err := row.Scan(&i.ID, &i.Title, &i.Description, &i.Price, &i.ImageURL, &i.Status, &i.CreatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}
