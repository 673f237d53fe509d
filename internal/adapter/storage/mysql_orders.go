package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
	"github.com/jayakishorers/jersey-backend/internal/port"
)

const mysqlDuplicateEntry = 1062

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, order_number, customer_email, total_amount,
			ship_name, ship_email, ship_address, ship_city, ship_district,
			ship_state, ship_pincode, ship_contact,
			payment_method, payment_status, order_status, tracking_number, notes,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.OrderNumber, order.CustomerEmail, order.TotalAmount,
		order.ShippingAddress.Name, order.ShippingAddress.Email, order.ShippingAddress.Address,
		order.ShippingAddress.City, order.ShippingAddress.District, order.ShippingAddress.State,
		order.ShippingAddress.Pincode, order.ShippingAddress.ContactNumber,
		order.PaymentMethod, order.PaymentStatus, order.OrderStatus, order.TrackingNumber, order.Notes,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return domain.ErrDuplicateOrderNumber
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, item_type, name, price, quantity, size, image, is_full_sleeve)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			order.ID, item.ProductID, item.Type, item.Name, item.Price, item.Quantity,
			item.Size, item.Image, item.IsFullSleeve,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

const orderColumns = `
	id, order_number, customer_email, total_amount,
	ship_name, ship_email, ship_address, ship_city, ship_district,
	ship_state, ship_pincode, ship_contact,
	payment_method, payment_status, order_status, tracking_number, notes,
	created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var o domain.Order
	var notes sql.NullString
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerEmail, &o.TotalAmount,
		&o.ShippingAddress.Name, &o.ShippingAddress.Email, &o.ShippingAddress.Address,
		&o.ShippingAddress.City, &o.ShippingAddress.District, &o.ShippingAddress.State,
		&o.ShippingAddress.Pincode, &o.ShippingAddress.ContactNumber,
		&o.PaymentMethod, &o.PaymentStatus, &o.OrderStatus, &o.TrackingNumber, &notes,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Notes = notes.String
	return &o, nil
}

func (r *MySQLOrderRepository) GetByID(ctx context.Context, id string, filter port.OrderFilter) (*domain.Order, error) {
	query := `SELECT` + orderColumns + ` FROM orders WHERE id = ?`
	args := []any{id}
	if filter.CustomerEmail != "" {
		query += ` AND customer_email = ?`
		args = append(args, filter.CustomerEmail)
	}

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *MySQLOrderRepository) List(ctx context.Context, filter port.OrderFilter, page, pageSize int) ([]domain.Order, int, error) {
	where := ""
	args := []any{}
	if filter.CustomerEmail != "" {
		where = ` WHERE customer_email = ?`
		args = append(args, filter.CustomerEmail)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `SELECT` + orderColumns + ` FROM orders` + where + ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

func (r *MySQLOrderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, item_type, name, price, quantity, size, image, is_full_sleeve
		FROM order_items WHERE order_id = ? ORDER BY id`, order.ID)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	order.Items = order.Items[:0]
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Type, &item.Name, &item.Price,
			&item.Quantity, &item.Size, &item.Image, &item.IsFullSleeve); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

// CompareAndSwapStatus is the exactly-once gate for transitions: the UPDATE
// is conditional on the expected current status, so of two concurrent
// transitions only one sees a row affected.
func (r *MySQLOrderRepository) CompareAndSwapStatus(ctx context.Context, id string, from, to domain.OrderStatus, trackingNumber string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET order_status = ?,
		    tracking_number = IF(? = '', tracking_number, ?),
		    updated_at = NOW(6)
		WHERE id = ? AND order_status = ?`,
		to, trackingNumber, trackingNumber, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit()
}
