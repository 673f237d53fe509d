package tests

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jayakishorers/jersey-backend/internal/adapter/notifier"
	"github.com/jayakishorers/jersey-backend/internal/adapter/storage"
	"github.com/jayakishorers/jersey-backend/internal/core/domain"
	"github.com/jayakishorers/jersey-backend/internal/core/service"
	"github.com/jayakishorers/jersey-backend/internal/port"
)

type testEnv struct {
	redis    *redis.Client
	mysql    *sql.DB
	ledger   *storage.MySQLStockLedger
	workflow *service.OrderWorkflow
	cleanup  func()
}

func setupTestEnv(t *testing.T) *testEnv {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		mysqlDSN = "root:root@tcp(localhost:3306)/jerseystore?parseTime=true"
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := storage.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("schema setup failed: %v", err)
	}

	ledger := storage.NewMySQLStockLedger(db)
	workflow := service.NewOrderWorkflow(
		ledger,
		storage.NewMySQLOrderRepository(db),
		storage.NewRedisAdapter(rdb),
		notifier.NewLogNotifier(),
	)

	return &testEnv{
		redis:    rdb,
		mysql:    db,
		ledger:   ledger,
		workflow: workflow,
		cleanup: func() {
			rdb.Close()
			db.Close()
		},
	}
}

func orderInput(productID string, quantity int, email string) service.PlaceOrderInput {
	return service.PlaceOrderInput{
		Items: []domain.OrderItem{
			{ProductID: productID, Name: "Home Jersey", Size: "M", Price: decimal.NewFromInt(750), Quantity: quantity},
		},
		ShippingAddress: domain.ShippingAddress{
			Name:          "Integration Buyer",
			Email:         email,
			Address:       "12 Beach Road",
			City:          "Chennai",
			District:      "Chennai",
			State:         "Tamil Nadu",
			Pincode:       "600001",
			ContactNumber: "+91 9000000000",
		},
		PaymentMethod: "cod",
	}
}

func cleanProduct(t *testing.T, env *testEnv, productID string) {
	t.Helper()
	ctx := context.Background()
	env.mysql.ExecContext(ctx, `
		DELETE oi FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.product_id = ?`, productID)
	env.mysql.ExecContext(ctx, `
		DELETE FROM orders WHERE id NOT IN (SELECT DISTINCT order_id FROM order_items)`)
	env.mysql.ExecContext(ctx, `DELETE FROM stock WHERE product_id = ?`, productID)
}

func TestIntegration_PlaceAndCancelFlow(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()
	productID := "itest-jersey"
	cleanProduct(t, env, productID)
	defer cleanProduct(t, env, productID)

	if err := env.ledger.SetStock(ctx, productID, "M", 5); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	order, err := env.workflow.PlaceOrder(ctx, orderInput(productID, 2, "buyer@example.com"))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	qty, _ := env.ledger.GetAvailable(ctx, productID, "M")
	if qty != 3 {
		t.Errorf("expected stock 3 after placement, got %d", qty)
	}

	// Owner cancels; the reservation comes back.
	owner := port.Identity{Email: "buyer@example.com"}
	cancelled, err := env.workflow.CancelOrder(ctx, order.ID, owner)
	if err != nil {
		t.Fatalf("CancelOrder failed: %v", err)
	}
	if cancelled.OrderStatus != domain.OrderStatusCancelled {
		t.Errorf("expected status cancelled, got %s", cancelled.OrderStatus)
	}

	qty, _ = env.ledger.GetAvailable(ctx, productID, "M")
	if qty != 5 {
		t.Errorf("expected stock 5 after cancel, got %d", qty)
	}

	// A second cancel must not release again.
	if _, err := env.workflow.CancelOrder(ctx, order.ID, owner); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition on second cancel, got: %v", err)
	}

	qty, _ = env.ledger.GetAvailable(ctx, productID, "M")
	if qty != 5 {
		t.Errorf("expected stock still 5, got %d", qty)
	}
}

func TestIntegration_ConcurrentPlacement(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()
	productID := "itest-concurrent-jersey"
	cleanProduct(t, env, productID)
	defer cleanProduct(t, env, productID)

	initialStock := 10
	totalRequests := 25

	if err := env.ledger.SetStock(ctx, productID, "M", initialStock); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.workflow.PlaceOrder(ctx, orderInput(productID, 1, "buyer@example.com"))
			if err == nil {
				successCount.Add(1)
			} else if !errors.Is(err, domain.ErrInsufficientStock) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != int32(initialStock) {
		t.Errorf("expected %d successful orders, got %d", initialStock, successCount.Load())
	}

	qty, _ := env.ledger.GetAvailable(ctx, productID, "M")
	if qty != 0 {
		t.Errorf("expected stock 0, got %d", qty)
	}

	var orderCount int
	env.mysql.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT o.id) FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE oi.product_id = ?`, productID).Scan(&orderCount)
	if orderCount != initialStock {
		t.Errorf("expected %d orders stored, got %d", initialStock, orderCount)
	}
}

func TestIntegration_StatusProgression(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()
	productID := "itest-status-jersey"
	cleanProduct(t, env, productID)
	defer cleanProduct(t, env, productID)

	if err := env.ledger.SetStock(ctx, productID, "M", 3); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	order, err := env.workflow.PlaceOrder(ctx, orderInput(productID, 1, "buyer@example.com"))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	for _, status := range []domain.OrderStatus{
		domain.OrderStatusConfirmed,
		domain.OrderStatusProcessing,
		domain.OrderStatusShipped,
		domain.OrderStatusDelivered,
	} {
		if _, err := env.workflow.UpdateStatus(ctx, order.ID, status, ""); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	// Delivered is terminal.
	if _, err := env.workflow.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled, ""); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition from delivered, got: %v", err)
	}

	// Delivered orders keep their reservation.
	qty, _ := env.ledger.GetAvailable(ctx, productID, "M")
	if qty != 2 {
		t.Errorf("expected stock 2, got %d", qty)
	}
}
