package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/jerseystore?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("schema setup failed: %v", err)
	}

	return db
}

func TestReserve_Success(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	ledger := NewMySQLStockLedger(db)

	if err := ledger.SetStock(ctx, "test-jersey", "M", 10); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := ledger.Reserve(ctx, "test-jersey", "M", 3); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	qty, err := ledger.GetAvailable(ctx, "test-jersey", "M")
	if err != nil {
		t.Fatalf("GetAvailable failed: %v", err)
	}
	if qty != 7 {
		t.Errorf("expected quantity 7, got %d", qty)
	}
}

func TestReserve_InsufficientStock(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	ledger := NewMySQLStockLedger(db)

	if err := ledger.SetStock(ctx, "test-jersey-low", "M", 2); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	err := ledger.Reserve(ctx, "test-jersey-low", "M", 5)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got: %v", err)
	}

	// Quantity unchanged after the failed reservation.
	qty, _ := ledger.GetAvailable(ctx, "test-jersey-low", "M")
	if qty != 2 {
		t.Errorf("expected quantity 2, got %d", qty)
	}
}

func TestReserve_MissingRow(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	ledger := NewMySQLStockLedger(db)

	db.ExecContext(ctx, `DELETE FROM stock WHERE product_id = 'never-stocked'`)

	err := ledger.Reserve(ctx, "never-stocked", "M", 1)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got: %v", err)
	}
}

func TestReserve_Concurrent(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	ledger := NewMySQLStockLedger(db)

	initialStock := 20
	totalRequests := 50

	if err := ledger.SetStock(ctx, "concurrent-jersey", "L", initialStock); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := ledger.Reserve(ctx, "concurrent-jersey", "L", 1)
			if err == nil {
				successCount.Add(1)
			} else if !errors.Is(err, domain.ErrInsufficientStock) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != int32(initialStock) {
		t.Errorf("expected %d successes, got %d", initialStock, successCount.Load())
	}

	qty, _ := ledger.GetAvailable(ctx, "concurrent-jersey", "L")
	if qty != 0 {
		t.Errorf("expected quantity 0, got %d", qty)
	}
}

func TestRelease_UpsertsMissingRow(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	ledger := NewMySQLStockLedger(db)

	db.ExecContext(ctx, `DELETE FROM stock WHERE product_id = 'release-jersey'`)

	if err := ledger.Release(ctx, "release-jersey", "S", 4); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	qty, _ := ledger.GetAvailable(ctx, "release-jersey", "S")
	if qty != 4 {
		t.Errorf("expected quantity 4, got %d", qty)
	}

	if err := ledger.Release(ctx, "release-jersey", "S", 2); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	qty, _ = ledger.GetAvailable(ctx, "release-jersey", "S")
	if qty != 6 {
		t.Errorf("expected quantity 6, got %d", qty)
	}
}

func TestSetStock_NegativeRejected(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ledger := NewMySQLStockLedger(db)

	err := ledger.SetStock(context.Background(), "test-jersey", "M", -1)
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got: %v", err)
	}
}

func TestGetAvailable_MissingRowIsZero(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	ledger := NewMySQLStockLedger(db)

	db.ExecContext(ctx, `DELETE FROM stock WHERE product_id = 'ghost-jersey'`)

	qty, err := ledger.GetAvailable(ctx, "ghost-jersey", "XL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qty != 0 {
		t.Errorf("expected quantity 0, got %d", qty)
	}
}
