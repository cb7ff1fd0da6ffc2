package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fazrilrizki/simple-pos/internal/models"
	"github.com/fazrilrizki/simple-pos/internal/transport"
)

// CreateOrder persists the order with its items and runs correlate inside the
// same transaction. correlate is where the payment request gets created; when
// it fails the order and its items never become visible.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order, correlate func(o *models.Order) error) (*models.Order, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		if err := correlate(order); err != nil {
			return err
		}

		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]any{
			"external_transaction_id": order.ExternalTransactionID,
			"payment_method_id":       order.PaymentMethodID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := models.Order{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrderByExternalID(ctx context.Context, externalID string) (*models.Order, error) {
	order := models.Order{}
	if err := r.DB.WithContext(ctx).Where("external_transaction_id = ?", externalID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkPaid sets paid_at and advances the order to PROCESSING. The guard on
// paid_at makes repeated confirmations a no-op: only the first caller writes
// the timestamp.
func (r *GormRepo) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND paid_at IS NULL", id).
		Updates(map[string]any{
			"paid_at": paidAt,
			"status":  models.OrderStatusProcessing,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkDone is a compare-and-swap on status so concurrent finishers have at
// most one winner.
func (r *GormRepo) MarkDone(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, models.OrderStatusProcessing).
		Update("status", models.OrderStatusDone)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListOrders returns summaries with the item count per order. status nil means
// no filter.
func (r *GormRepo) ListOrders(ctx context.Context, status *models.OrderStatus) ([]transport.OrderSummary, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("orders.id, orders.subtotal, orders.tax, orders.grandtotal, orders.status, orders.paid_at, orders.created_at, count(order_items.id) AS total_items").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Group("orders.id").
		Order("orders.created_at DESC")

	if status != nil {
		q = q.Where("orders.status = ?", *status)
	}

	summaries := make([]transport.OrderSummary, 0)
	if err := q.Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// SalesReport runs three independent aggregates. They are separate reads, so
// the numbers may lag each other under concurrent order writes; the dashboard
// tolerates that.
func (r *GormRepo) SalesReport(ctx context.Context) (*transport.SalesReport, error) {
	var report transport.SalesReport

	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("paid_at IS NOT NULL").
		Select("COALESCE(SUM(grandtotal), 0)").
		Scan(&report.TotalRevenue).Error; err != nil {
		return nil, err
	}

	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusDone).
		Count(&report.TotalOngoingOrder).Error; err != nil {
		return nil, err
	}

	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("status = ?", models.OrderStatusDone).
		Count(&report.TotalCompletedOrders).Error; err != nil {
		return nil, err
	}

	return &report, nil
}
