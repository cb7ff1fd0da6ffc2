package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazrilrizki/simple-pos/internal/models"
	"github.com/fazrilrizki/simple-pos/internal/transport"
)

// seeds one order per status: awaiting (unpaid), processing (paid), done (paid)
func seedOrderMix(t *testing.T, svc *OrderService, productID uuid.UUID) (awaiting, processing, done *models.Order) {
	t.Helper()
	ctx := context.Background()

	create := func() *models.Order {
		order, _, err := svc.CreateOrder(ctx, transport.CreateOrderRequest{
			OrderItems: []transport.CreateOrderItem{{ProductID: productID, Quantity: 2}},
		})
		require.NoError(t, err)
		return order
	}

	awaiting = create()

	processing = create()
	require.NoError(t, svc.ConfirmPayment(ctx, processing.ID))

	done = create()
	require.NoError(t, svc.ConfirmPayment(ctx, done.ID))
	_, err := svc.FinishOrder(ctx, done.ID)
	require.NoError(t, err)

	return awaiting, processing, done
}

func TestListOrders_FilterMatchesStatus(t *testing.T) {
	t.Parallel()

	svc, r, _, _ := newTestOrderService(t)
	ctx := context.Background()

	p := seedProduct(t, r, "es teh", 5000)
	awaiting, processing, done := seedOrderMix(t, svc, p.ID)

	all, err := svc.ListOrders(ctx, "ALL")
	require.NoError(t, err)
	require.Len(t, all, 3)

	ids := func(summaries []transport.OrderSummary) map[string]bool {
		out := make(map[string]bool, len(summaries))
		for _, s := range summaries {
			out[s.ID.String()] = true
		}
		return out
	}
	allIDs := ids(all)

	for _, tc := range []struct {
		status models.OrderStatus
		want   *models.Order
	}{
		{models.OrderStatusAwaitingPayment, awaiting},
		{models.OrderStatusProcessing, processing},
		{models.OrderStatusDone, done},
	} {
		filtered, err := svc.ListOrders(ctx, string(tc.status))
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, tc.want.ID, filtered[0].ID)
		assert.Equal(t, tc.status, filtered[0].Status)
		// every filtered result also shows up in ALL
		assert.True(t, allIDs[filtered[0].ID.String()])
	}
}

func TestListOrders_SummaryCarriesItemCount(t *testing.T) {
	t.Parallel()

	svc, r, _, _ := newTestOrderService(t)
	ctx := context.Background()

	p1 := seedProduct(t, r, "kopi", 10000)
	p2 := seedProduct(t, r, "roti", 12000)

	order, _, err := svc.CreateOrder(ctx, transport.CreateOrderRequest{
		OrderItems: []transport.CreateOrderItem{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	summaries, err := svc.ListOrders(ctx, "ALL")
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	assert.Equal(t, order.ID, summaries[0].ID)
	assert.EqualValues(t, 2, summaries[0].TotalItems)
	assert.Equal(t, order.Grandtotal, summaries[0].Grandtotal)
}

func TestListOrders_UnknownFilterRejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestOrderService(t)

	_, err := svc.ListOrders(context.Background(), "SHIPPED")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSalesReport(t *testing.T) {
	t.Parallel()

	svc, r, _, _ := newTestOrderService(t)
	ctx := context.Background()

	p := seedProduct(t, r, "kopi tubruk", 10000)
	_, processing, done := seedOrderMix(t, svc, p.ID)

	report, err := svc.SalesReport(ctx)
	require.NoError(t, err)

	// revenue counts paid orders only: the processing and the done one
	assert.Equal(t, processing.Grandtotal+done.Grandtotal, report.TotalRevenue)
	assert.EqualValues(t, 2, report.TotalOngoingOrder)
	assert.EqualValues(t, 1, report.TotalCompletedOrders)

	all, err := svc.ListOrders(ctx, "ALL")
	require.NoError(t, err)
	assert.EqualValues(t, len(all), report.TotalOngoingOrder+report.TotalCompletedOrders)
}

func TestSalesReport_Empty(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestOrderService(t)

	report, err := svc.SalesReport(context.Background())
	require.NoError(t, err)

	assert.Zero(t, report.TotalRevenue)
	assert.Zero(t, report.TotalOngoingOrder)
	assert.Zero(t, report.TotalCompletedOrders)
}
