package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
)

// MySQLStockLedger keeps per-(product, size) quantities in the stock table.
// Reservation is a single conditional UPDATE, so the quantity can never go
// negative even under concurrent reservations across server instances.
type MySQLStockLedger struct {
	db *sql.DB
}

func NewMySQLStockLedger(db *sql.DB) *MySQLStockLedger {
	return &MySQLStockLedger{db: db}
}

func (l *MySQLStockLedger) GetAvailable(ctx context.Context, productID, size string) (int, error) {
	var qty int
	err := l.db.QueryRowContext(ctx, `
		SELECT quantity FROM stock WHERE product_id = ? AND size = ?`,
		productID, size,
	).Scan(&qty)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query stock: %w", err)
	}
	return qty, nil
}

func (l *MySQLStockLedger) List(ctx context.Context) ([]domain.StockEntry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT product_id, size, quantity, version, created_at, updated_at
		FROM stock ORDER BY product_id, size`)
	if err != nil {
		return nil, fmt.Errorf("query stock: %w", err)
	}
	defer rows.Close()

	var entries []domain.StockEntry
	for rows.Next() {
		var e domain.StockEntry
		if err := rows.Scan(&e.ProductID, &e.Size, &e.Quantity, &e.Version, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (l *MySQLStockLedger) Reserve(ctx context.Context, productID, size string, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	result, err := l.db.ExecContext(ctx, `
		UPDATE stock
		SET quantity = quantity - ?, version = version + 1, updated_at = NOW(6)
		WHERE product_id = ? AND size = ? AND quantity >= ?`,
		quantity, productID, size, quantity,
	)
	if err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (l *MySQLStockLedger) Release(ctx context.Context, productID, size string, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	// Upsert so a release never fails on a missing row.
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO stock (product_id, size, quantity, version)
		VALUES (?, ?, ?, 0)
		ON DUPLICATE KEY UPDATE quantity = quantity + ?, version = version + 1, updated_at = NOW(6)`,
		productID, size, quantity, quantity,
	)
	if err != nil {
		return fmt.Errorf("release stock: %w", err)
	}
	return nil
}

func (l *MySQLStockLedger) SetStock(ctx context.Context, productID, size string, quantity int) error {
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO stock (product_id, size, quantity, version)
		VALUES (?, ?, ?, 0)
		ON DUPLICATE KEY UPDATE quantity = ?, version = version + 1, updated_at = NOW(6)`,
		productID, size, quantity, quantity,
	)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	return nil
}
