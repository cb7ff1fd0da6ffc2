package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fazrilrizki/simple-pos/internal/models"
	"github.com/fazrilrizki/simple-pos/internal/repo"
	"github.com/fazrilrizki/simple-pos/internal/service"
	"github.com/fazrilrizki/simple-pos/internal/transport"
	"github.com/fazrilrizki/simple-pos/internal/xendit"
)

type fakeGateway struct {
	mu          sync.Mutex
	createErr   error
	simulateErr error
}

func (f *fakeGateway) CreateQRIS(_ context.Context, _ int64, orderID uuid.UUID) (*xendit.PaymentRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	return &xendit.PaymentRequest{
		ExternalID:      "pr-" + orderID.String(),
		PaymentMethodID: "pm-" + orderID.String(),
		QRString:        "000201010212qris",
	}, nil
}

func (f *fakeGateway) SimulatePayment(_ context.Context, _ string, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.simulateErr
}

func (f *fakeGateway) PaymentStatus(_ context.Context, _ string) (xendit.PaymentStatus, error) {
	return xendit.StatusPending, nil
}

type testEnv struct {
	T       *testing.T
	E       *echo.Echo
	DB      *gorm.DB
	Repo    *repo.GormRepo
	GW      *fakeGateway
	Order   *OrderHTTP
	Catalog *CatalogHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Order{}, &models.OrderItem{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	gormRepo := &repo.GormRepo{DB: db}
	gw := &fakeGateway{}

	orderSvc := &service.OrderService{Repo: gormRepo, Gateway: gw}
	catalogSvc := &service.CatalogService{Repo: gormRepo}

	return &testEnv{
		T:    t,
		E:    echo.New(),
		DB:   db,
		Repo: gormRepo,
		GW:   gw,
		Order: &OrderHTTP{
			Svc:               orderSvc,
			CallbackToken:     "test-callback-token",
			SimulationEnabled: true,
		},
		Catalog: &CatalogHTTP{Svc: catalogSvc},
	}
}

func (env *testEnv) doJSONRequest(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)

	return rec, c
}

func (env *testEnv) seedProduct(name string, price int64) models.Product {
	env.T.Helper()

	product := models.Product{ID: uuid.New(), Name: name, Price: price, CategoryID: uuid.New()}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return product
}

func (env *testEnv) createOrder(productID uuid.UUID, quantity int) *models.Order {
	env.T.Helper()

	order, _, err := env.Order.Svc.CreateOrder(context.Background(), createOrderRequest(productID, quantity))
	require.NoError(env.T, err)
	return order
}

func createOrderRequest(productID uuid.UUID, quantity int) transport.CreateOrderRequest {
	return transport.CreateOrderRequest{
		OrderItems: []transport.CreateOrderItem{{ProductID: productID, Quantity: quantity}},
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func httpErrorMessage(t *testing.T, err error) string {
	t.Helper()

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	msg, ok := he.Message.(string)
	require.True(t, ok)
	return msg
}
