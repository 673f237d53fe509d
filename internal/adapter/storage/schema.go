package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS orders (
    id CHAR(36) PRIMARY KEY,
    order_number VARCHAR(20) NOT NULL,
    customer_email VARCHAR(255) NOT NULL,
    total_amount DECIMAL(12,2) NOT NULL,
    ship_name VARCHAR(255) NOT NULL,
    ship_email VARCHAR(255) NOT NULL,
    ship_address VARCHAR(512) NOT NULL,
    ship_city VARCHAR(100) NOT NULL,
    ship_district VARCHAR(100) NOT NULL,
    ship_state VARCHAR(100) NOT NULL,
    ship_pincode VARCHAR(20) NOT NULL,
    ship_contact VARCHAR(30) NOT NULL,
    payment_method VARCHAR(50) NOT NULL DEFAULT '',
    payment_status VARCHAR(20) NOT NULL,
    order_status VARCHAR(20) NOT NULL,
    tracking_number VARCHAR(100) NOT NULL DEFAULT '',
    notes TEXT,
    created_at DATETIME(6) NOT NULL,
    updated_at DATETIME(6) NOT NULL,
    UNIQUE KEY uk_order_number (order_number),
    INDEX idx_customer_created (customer_email, created_at),
    INDEX idx_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

CREATE TABLE IF NOT EXISTS order_items (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    order_id CHAR(36) NOT NULL,
    product_id VARCHAR(100) NOT NULL,
    item_type VARCHAR(50) NOT NULL DEFAULT '',
    name VARCHAR(255) NOT NULL,
    price DECIMAL(12,2) NOT NULL,
    quantity INT NOT NULL,
    size VARCHAR(10) NOT NULL,
    image VARCHAR(512) NOT NULL DEFAULT '',
    is_full_sleeve BOOLEAN NOT NULL DEFAULT FALSE,
    INDEX idx_order (order_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

CREATE TABLE IF NOT EXISTS stock (
    product_id VARCHAR(100) NOT NULL,
    size VARCHAR(10) NOT NULL,
    quantity INT NOT NULL,
    version INT NOT NULL DEFAULT 0,
    created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
    updated_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
    PRIMARY KEY (product_id, size)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

CREATE TABLE IF NOT EXISTS email_subscriptions (
    email VARCHAR(255) PRIMARY KEY,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    source VARCHAR(20) NOT NULL DEFAULT 'footer',
    created_at DATETIME(6) NOT NULL,
    updated_at DATETIME(6) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

CREATE TABLE IF NOT EXISTS messages (
    id CHAR(36) PRIMARY KEY,
    recipient_email VARCHAR(255) NOT NULL,
    body TEXT NOT NULL,
    kind VARCHAR(20) NOT NULL DEFAULT 'info',
    is_read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at DATETIME(6) NOT NULL,
    INDEX idx_recipient (recipient_email, created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
`

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
