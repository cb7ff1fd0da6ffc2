package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/fazrilrizki/simple-pos/internal/models"
	"github.com/fazrilrizki/simple-pos/internal/transport"
)

// Tax is a flat 10% of the subtotal. Amounts are integer rupiah; the tax
// division truncates toward zero.
const taxRatePercent = 10

type Totals struct {
	Subtotal   int64
	Tax        int64
	Grandtotal int64
}

// ComputeTotals prices the requested lines against the catalog records
// resolved for them and builds the order item snapshots. Every requested
// product must resolve to a catalog record; an unknown id rejects the whole
// order instead of silently dropping the line.
func ComputeTotals(items []transport.CreateOrderItem, products []models.Product) (Totals, []models.OrderItem, error) {
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var subtotal int64
	orderItems := make([]models.OrderItem, 0, len(items))

	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return Totals{}, nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if item.Quantity < 1 {
			return Totals{}, nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
		}

		product, ok := byID[item.ProductID]
		if !ok {
			return Totals{}, nil, fmt.Errorf("%w: product %s", ErrNotFound, item.ProductID)
		}

		subtotal += product.Price * int64(item.Quantity)

		orderItems = append(orderItems, models.OrderItem{
			ID:        uuid.New(),
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	tax := subtotal * taxRatePercent / 100

	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		Grandtotal: subtotal + tax,
	}, orderItems, nil
}
