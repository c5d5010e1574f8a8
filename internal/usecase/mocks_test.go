package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"foodorder/internal/domain/model"
	"foodorder/internal/payment"
	repo "foodorder/internal/repository"
	"foodorder/internal/usecase"
)

// =====================
// Repository mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

type RestaurantRepoMock struct{ mock.Mock }

func (m *RestaurantRepoMock) Create(ctx context.Context, r *model.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RestaurantRepoMock) FindByID(ctx context.Context, id int64) (model.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(model.Restaurant)
	return r, args.Error(1)
}

func (m *RestaurantRepoMock) FindByOwnerID(ctx context.Context, ownerID int64) (model.Restaurant, error) {
	args := m.Called(ctx, ownerID)
	r, _ := args.Get(0).(model.Restaurant)
	return r, args.Error(1)
}

func (m *RestaurantRepoMock) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Restaurant)
	return list, args.Error(1)
}

func (m *RestaurantRepoMock) ListApproved(ctx context.Context, withCoords bool) ([]model.Restaurant, error) {
	args := m.Called(ctx, withCoords)
	list, _ := args.Get(0).([]model.Restaurant)
	return list, args.Error(1)
}

func (m *RestaurantRepoMock) Update(ctx context.Context, r model.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RestaurantRepoMock) SetApproved(ctx context.Context, id int64, approved bool) (model.Restaurant, error) {
	args := m.Called(ctx, id, approved)
	r, _ := args.Get(0).(model.Restaurant)
	return r, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	list, _ := args.Get(0).([]model.Product)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) Meta(ctx context.Context, restaurantID *int64, search string) (repo.ProductMeta, error) {
	args := m.Called(ctx, restaurantID, search)
	meta, _ := args.Get(0).(repo.ProductMeta)
	return meta, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindAvailableByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	list, _ := args.Get(0).([]model.Product)
	return list, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) DeleteScoped(ctx context.Context, id int64, restaurantID int64) error {
	args := m.Called(ctx, id, restaurantID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Order)
	return list, args.Error(1)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]model.Order)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListByRestaurantID(ctx context.Context, restaurantID int64, status string) ([]model.Order, error) {
	args := m.Called(ctx, restaurantID, status)
	list, _ := args.Get(0).([]model.Order)
	return list, args.Error(1)
}

func (m *OrderRepoMock) UpdateChecked(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) ListByResource(ctx context.Context, rt model.AuditResourceType, resourceID int64, limit int) ([]model.AuditLog, error) {
	args := m.Called(ctx, rt, resourceID, limit)
	list, _ := args.Get(0).([]model.AuditLog)
	return list, args.Error(1)
}

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock runs the callback against a fixed repo set; no real
// transaction is involved.
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	users       repo.UserRepository
	restaurants repo.RestaurantRepository
	products    repo.ProductRepository
	orders      repo.OrderRepository
	auditLogs   repo.AuditLogRepository
}

func (r *TxReposMock) Users() repo.UserRepository             { return r.users }
func (r *TxReposMock) Restaurants() repo.RestaurantRepository { return r.restaurants }
func (r *TxReposMock) Products() repo.ProductRepository       { return r.products }
func (r *TxReposMock) Orders() repo.OrderRepository           { return r.orders }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository     { return r.auditLogs }

// =====================
// Payment gateway mock
// =====================

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (payment.Intent, error) {
	args := m.Called(ctx, amountMinor, currency, metadata)
	intent, _ := args.Get(0).(payment.Intent)
	return intent, args.Error(1)
}

func (m *GatewayMock) Refund(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *GatewayMock) VerifyWebhook(payload []byte, sigHeader string) (payment.WebhookEvent, error) {
	args := m.Called(payload, sigHeader)
	ev, _ := args.Get(0).(payment.WebhookEvent)
	return ev, args.Error(1)
}

// =====================
// Helpers
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func httpStatusOf(t *testing.T, err error) int {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if !ok {
		t.Fatalf("err=%v is not an HTTPError", err)
	}
	return he.Status
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
