package operations

import (
	"context"
	"sync"
	"testing"

	"commissary/internal/ledger"
	"commissary/internal/reservations"
	"commissary/internal/stock"
	"commissary/pkg/apperrors"
	"commissary/pkg/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockItemResolver struct {
	mock.Mock
}

func (m *MockItemResolver) GetItem(id int) (*models.Item, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

type MockLocationResolver struct {
	mock.Mock
}

func (m *MockLocationResolver) GetLocation(id int) (*models.Location, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

type MockAuditor struct {
	mock.Mock
}

func (m *MockAuditor) Log(entityType string, entityID int, action string, changes any, userID *int) {
	m.Called(entityType, entityID, action, changes, userID)
}

type fixture struct {
	service   *Service
	store     *ledger.MemoryStore
	items     *MockItemResolver
	locations *MockLocationResolver
	audit     *MockAuditor
}

func newFixture() *fixture {
	store := ledger.NewMemoryStore()
	reservationRepo := reservations.NewMemoryRepository()
	projector := stock.NewProjector(store, reservationRepo)
	items := new(MockItemResolver)
	locations := new(MockLocationResolver)
	audit := new(MockAuditor)

	return &fixture{
		service:   NewService(store, projector, items, locations, ledger.NewKeyMutex(), audit),
		store:     store,
		items:     items,
		locations: locations,
		audit:     audit,
	}
}

func (f *fixture) knownItem(id int) {
	f.items.On("GetItem", id).Return(&models.Item{ID: id, Status: models.StatusActive}, nil)
}

func (f *fixture) knownLocation(id int) {
	f.locations.On("GetLocation", id).Return(&models.Location{ID: id, Status: models.StatusActive}, nil)
}

func (f *fixture) anyAudit() {
	f.audit.On("Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
}

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestReceiveThenTransferThenConsume(t *testing.T) {
	f := newFixture()
	f.knownItem(1)
	f.knownLocation(10)
	f.knownLocation(20)
	f.anyAudit()
	ctx := context.Background()

	_, err := f.service.Receive(ctx, ReceiveRequest{ItemID: 1, Quantity: qty(100), LocationID: 10})
	require.NoError(t, err)

	_, err = f.service.Transfer(ctx, TransferRequest{ItemID: 1, Quantity: qty(20), FromLocationID: 10, ToLocationID: 20})
	require.NoError(t, err)

	// 80 remain at the source; 90 must fail and report the exact shortfall.
	_, err = f.service.Consume(ctx, ConsumeRequest{ItemID: 1, Quantity: qty(90), LocationID: 10})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInsufficientStock, apperrors.Code(err))

	var insufficient *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(qty(80)))
	assert.True(t, insufficient.Requested.Equal(qty(90)))

	// The failed consume left no trace in the ledger.
	movements, err := f.store.QueryByItem(ctx, 1, nil)
	require.NoError(t, err)
	assert.Len(t, movements, 2)

	_, err = f.service.Consume(ctx, ConsumeRequest{ItemID: 1, Quantity: qty(80), LocationID: 10})
	require.NoError(t, err)

	movements, err = f.store.QueryByItem(ctx, 1, nil)
	require.NoError(t, err)
	assert.Len(t, movements, 3)
}

func TestConcurrentConsumesNeverOverdraw(t *testing.T) {
	f := newFixture()
	f.knownItem(1)
	f.knownLocation(10)
	f.anyAudit()
	ctx := context.Background()

	_, err := f.service.Receive(ctx, ReceiveRequest{ItemID: 1, Quantity: qty(10), LocationID: 10})
	require.NoError(t, err)

	// 20 racing consumers of 1 each against a balance of 10: exactly 10
	// succeed.
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.service.Consume(ctx, ConsumeRequest{ItemID: 1, Quantity: qty(1), LocationID: 10}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)

	projector := stock.NewProjector(f.store, reservations.NewMemoryRepository())
	balance, err := projector.Balance(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, balance.IsZero(), "balance %s", balance)
}

func TestTransferRecordsBothSidesInOneRow(t *testing.T) {
	f := newFixture()
	f.knownItem(1)
	f.knownLocation(10)
	f.knownLocation(20)
	f.anyAudit()
	ctx := context.Background()

	_, err := f.service.Receive(ctx, ReceiveRequest{ItemID: 1, Quantity: qty(50), LocationID: 10})
	require.NoError(t, err)

	movement, err := f.service.Transfer(ctx, TransferRequest{ItemID: 1, Quantity: qty(20), FromLocationID: 10, ToLocationID: 20})
	require.NoError(t, err)
	require.NotNil(t, movement.FromLocationID)
	require.NotNil(t, movement.ToLocationID)
	assert.Equal(t, 10, *movement.FromLocationID)
	assert.Equal(t, 20, *movement.ToLocationID)
	assert.Equal(t, models.MovementTransfer, movement.Type)
}

func TestTransferSameSourceAndDestination(t *testing.T) {
	f := newFixture()

	_, err := f.service.Transfer(context.Background(), TransferRequest{
		ItemID: 1, Quantity: qty(5), FromLocationID: 10, ToLocationID: 10,
	})
	assert.Equal(t, apperrors.CodeValidation, apperrors.Code(err))
}

func TestTransferInsufficientAtSource(t *testing.T) {
	f := newFixture()
	f.knownItem(1)
	f.knownLocation(10)
	f.knownLocation(20)
	f.anyAudit()
	ctx := context.Background()

	_, err := f.service.Receive(ctx, ReceiveRequest{ItemID: 1, Quantity: qty(5), LocationID: 10})
	require.NoError(t, err)

	_, err = f.service.Transfer(ctx, TransferRequest{ItemID: 1, Quantity: qty(10), FromLocationID: 10, ToLocationID: 20})
	require.Error(t, err)

	var insufficient *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.AtSource)
	assert.Contains(t, err.Error(), "Insufficient stock at source")
}

func TestTransferUnknownDestination(t *testing.T) {
	f := newFixture()
	f.knownItem(1)
	f.knownLocation(10)
	f.locations.On("GetLocation", 99).Return(nil, apperrors.NewNotFound("Location"))

	_, err := f.service.Transfer(context.Background(), TransferRequest{
		ItemID: 1, Quantity: qty(5), FromLocationID: 10, ToLocationID: 99,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.Code(err))
	assert.Contains(t, err.Error(), "Destination location")
}

func TestReceiveValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Receive(ctx, ReceiveRequest{Quantity: qty(5), LocationID: 10})
	assert.Equal(t, apperrors.CodeValidation, apperrors.Code(err))

	_, err = f.service.Receive(ctx, ReceiveRequest{ItemID: 1, Quantity: qty(-5), LocationID: 10})
	assert.Equal(t, apperrors.CodeValidation, apperrors.Code(err))
}

func TestReceiveUnknownItem(t *testing.T) {
	f := newFixture()
	f.items.On("GetItem", 42).Return(nil, apperrors.NewNotFound("Item"))

	_, err := f.service.Receive(context.Background(), ReceiveRequest{ItemID: 42, Quantity: qty(5), LocationID: 10})
	assert.Equal(t, apperrors.CodeNotFound, apperrors.Code(err))
}

func TestReceiveInactiveItem(t *testing.T) {
	f := newFixture()
	f.items.On("GetItem", 1).Return(&models.Item{ID: 1, Status: models.StatusInactive}, nil)

	_, err := f.service.Receive(context.Background(), ReceiveRequest{ItemID: 1, Quantity: qty(5), LocationID: 10})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.Code(err))
	assert.Contains(t, err.Error(), "not active")
}

func TestConsumeAuditsMovement(t *testing.T) {
	f := newFixture()
	f.knownItem(1)
	f.knownLocation(10)
	ctx := context.Background()

	f.audit.On("Log", "Movement", mock.AnythingOfType("int"), "receipt", mock.Anything, mock.Anything).Once()
	f.audit.On("Log", "Movement", mock.AnythingOfType("int"), "consumption", mock.Anything, mock.Anything).Once()

	_, err := f.service.Receive(ctx, ReceiveRequest{ItemID: 1, Quantity: qty(10), LocationID: 10})
	require.NoError(t, err)
	_, err = f.service.Consume(ctx, ConsumeRequest{ItemID: 1, Quantity: qty(4), LocationID: 10})
	require.NoError(t, err)

	f.audit.AssertExpectations(t)
}
