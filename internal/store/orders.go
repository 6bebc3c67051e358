package store

import (
	"fmt"

	"github.com/anitasharma/craftsbyanita/internal/models"
)

// CreateOrder persists an order and its lines in a single transaction.
func (s *Store) CreateOrder(order *models.Order) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO orders (order_ref, shopper_email, customer_name, customer_phone, street, city, state, zip_code, country, subtotal, shipping_cost, shipping_label, tax, total, notes, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, order.OrderRef, order.ShopperEmail, order.CustomerName, order.CustomerPhone, order.Street, order.City, order.State, order.ZipCode, order.Country,
		order.Subtotal, order.ShippingCost, order.ShippingLabel, order.Tax, order.Total, order.Notes, order.Status)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = int(orderID)

	for _, line := range order.Lines {
		_, err := tx.Exec(`
			INSERT INTO order_lines (order_id, item_id, name, unit_price, quantity, image_ref)
			VALUES (?, ?, ?, ?, ?, ?)
		`, orderID, line.ItemID, line.Name, line.UnitPrice, line.Quantity, line.ImageRef)
		if err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetOrdersByEmail(email string) ([]models.Order, error) {
	query := `
		SELECT id, order_ref, shopper_email, customer_name, subtotal, shipping_cost, shipping_label, tax, total, notes, status, created_at
		FROM orders
		WHERE LOWER(shopper_email) = LOWER(?)
		ORDER BY created_at DESC
	`
	rows, err := s.DB.Query(query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderRef, &o.ShopperEmail, &o.CustomerName, &o.Subtotal, &o.ShippingCost, &o.ShippingLabel, &o.Tax, &o.Total, &o.Notes, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) GetOrderLines(orderID int) ([]models.CartItem, error) {
	query := `SELECT item_id, name, unit_price, quantity, COALESCE(image_ref, '') FROM order_lines WHERE order_id = ?`
	rows, err := s.DB.Query(query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.CartItem
	for rows.Next() {
		var l models.CartItem
		if err := rows.Scan(&l.ItemID, &l.Name, &l.UnitPrice, &l.Quantity, &l.ImageRef); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
