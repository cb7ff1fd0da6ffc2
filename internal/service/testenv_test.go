package service

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fazrilrizki/simple-pos/internal/events"
	"github.com/fazrilrizki/simple-pos/internal/models"
	"github.com/fazrilrizki/simple-pos/internal/repo"
	"github.com/fazrilrizki/simple-pos/internal/xendit"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Order{}, &models.OrderItem{}))

	// one connection keeps the in-memory database alive and serializes writers
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

type fakeGateway struct {
	mu sync.Mutex

	createErr   error
	simulateErr error
	status      xendit.PaymentStatus

	createCalls   int
	simulateCalls []string
}

func (f *fakeGateway) CreateQRIS(_ context.Context, amount int64, orderID uuid.UUID) (*xendit.PaymentRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &xendit.PaymentRequest{
		ExternalID:      "pr-" + orderID.String(),
		PaymentMethodID: "pm-" + orderID.String(),
		QRString:        "000201010212...",
	}, nil
}

func (f *fakeGateway) SimulatePayment(_ context.Context, paymentMethodID string, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.simulateCalls = append(f.simulateCalls, paymentMethodID)
	return f.simulateErr
}

func (f *fakeGateway) PaymentStatus(_ context.Context, _ string) (xendit.PaymentStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status == "" {
		return xendit.StatusPending, nil
	}
	return f.status, nil
}

type publishedEvent struct {
	Topic string
	Key   string
	Event any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, publishedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func (f *fakePublisher) orderEvents(eventType string) []events.OrderEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []events.OrderEvent
	for _, e := range f.events {
		if ev, ok := e.Event.(events.OrderEvent); ok && ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

func (f *fakePublisher) productEvents(eventType string) []events.ProductEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []events.ProductEvent
	for _, e := range f.events {
		if ev, ok := e.Event.(events.ProductEvent); ok && ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

type fakeIndexer struct {
	mu      sync.Mutex
	indexed []models.Product
	deleted []uuid.UUID
}

func (f *fakeIndexer) IndexProduct(_ context.Context, product models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.indexed = append(f.indexed, product)
	return nil
}

func (f *fakeIndexer) DeleteProduct(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, id)
	return nil
}

func newTestOrderService(t *testing.T) (*OrderService, *repo.GormRepo, *fakeGateway, *fakePublisher) {
	t.Helper()

	gormRepo := &repo.GormRepo{DB: newTestDB(t)}
	gateway := &fakeGateway{}
	publisher := &fakePublisher{}

	svc := &OrderService{Repo: gormRepo, Gateway: gateway, Events: publisher}
	return svc, gormRepo, gateway, publisher
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, price int64) models.Product {
	t.Helper()

	product := models.Product{ID: uuid.New(), Name: name, Price: price, CategoryID: uuid.New()}
	require.NoError(t, r.DB.Create(&product).Error)
	return product
}
