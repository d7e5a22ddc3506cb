package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appsettlement "github.com/hotelsaas/backend/internal/application/settlement"
	"github.com/hotelsaas/backend/internal/domain/identity"
	"github.com/hotelsaas/backend/internal/domain/settlement"
	"github.com/hotelsaas/backend/internal/domain/shared"
	"github.com/hotelsaas/backend/internal/domain/shared/valueobject"
	"github.com/hotelsaas/backend/internal/interfaces/http/middleware"
)

// MockTransferRepository implements settlement.TransferRepository for testing
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*settlement.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.Transfer), args.Error(1)
}

func (m *MockTransferRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*settlement.Transfer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.Transfer), args.Error(1)
}

func (m *MockTransferRepository) FindByTransferNumber(ctx context.Context, tenantID uuid.UUID, transferNumber string) (*settlement.Transfer, error) {
	args := m.Called(ctx, tenantID, transferNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.Transfer), args.Error(1)
}

func (m *MockTransferRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter settlement.TransferFilter) ([]settlement.Transfer, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]settlement.Transfer), args.Error(1)
}

func (m *MockTransferRepository) FindAll(ctx context.Context, filter settlement.TransferFilter) ([]settlement.Transfer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]settlement.Transfer), args.Error(1)
}

func (m *MockTransferRepository) Save(ctx context.Context, transfer *settlement.Transfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) SaveWithLock(ctx context.Context, transfer *settlement.Transfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter settlement.TransferFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransferRepository) CountAll(ctx context.Context, filter settlement.TransferFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransferRepository) SumByStatuses(ctx context.Context, tenantID uuid.UUID, statuses ...settlement.TransferStatus) (decimal.Decimal, error) {
	callArgs := []interface{}{ctx, tenantID}
	for _, s := range statuses {
		callArgs = append(callArgs, s)
	}
	args := m.Called(callArgs...)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransferRepository) GenerateTransferNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(string), args.Error(1)
}

// MockCommissionEntryRepository implements settlement.CommissionEntryRepository
type MockCommissionEntryRepository struct {
	mock.Mock
}

func (m *MockCommissionEntryRepository) SumForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCommissionEntryRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]settlement.CommissionEntry, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]settlement.CommissionEntry), args.Error(1)
}

func (m *MockCommissionEntryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTenantRepository implements identity.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByCode(ctx context.Context, code string) (*identity.Tenant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByStatus(ctx context.Context, status identity.TenantStatus, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(bool), args.Error(1)
}

// MockPaymentGateway implements settlement.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Name() string {
	args := m.Called()
	return args.Get(0).(string)
}

func (m *MockPaymentGateway) IsDemo() bool {
	args := m.Called()
	return args.Get(0).(bool)
}

func (m *MockPaymentGateway) ProcessPayout(ctx context.Context, req *settlement.PayoutRequest) (*settlement.PayoutResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.PayoutResult), args.Error(1)
}

func (m *MockPaymentGateway) Status() settlement.GatewayStatus {
	args := m.Called()
	return args.Get(0).(settlement.GatewayStatus)
}

// =============================================================================
// Test setup
// =============================================================================

type transferHandlerFixture struct {
	handler     *TransferHandler
	transfers   *MockTransferRepository
	commissions *MockCommissionEntryRepository
	tenants     *MockTenantRepository
	gateway     *MockPaymentGateway
}

func newTransferHandlerFixture() *transferHandlerFixture {
	transfers := new(MockTransferRepository)
	commissions := new(MockCommissionEntryRepository)
	tenants := new(MockTenantRepository)
	gateway := new(MockPaymentGateway)
	service := appsettlement.NewTransferService(transfers, commissions, tenants, gateway, zap.NewNop())
	return &transferHandlerFixture{
		handler:     NewTransferHandler(service),
		transfers:   transfers,
		commissions: commissions,
		tenants:     tenants,
		gateway:     gateway,
	}
}

func activeTenant(tenantID uuid.UUID) *identity.Tenant {
	tenant, _ := identity.NewTenant("GRANDHTL", "Grand Hotel")
	tenant.ID = tenantID
	tenant.BankIBAN = "TR330006100519786457841326"
	return tenant
}

func pendingTransfer(tenantID, requestedBy uuid.UUID) *settlement.Transfer {
	gross := valueobject.NewMoneyTRYFromFloat(1000.00)
	commission := valueobject.NewMoneyTRYFromFloat(100.00)
	transfer, _ := settlement.NewTransfer(tenantID, "TRF-20260901-0001", gross, commission,
		requestedBy, "TR330006100519786457841326", "")
	return transfer
}

// =============================================================================
// POST /transfers
// =============================================================================

func TestTransferHandler_Create(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("creates a pending transfer", func(t *testing.T) {
		f := newTransferHandlerFixture()
		f.tenants.On("FindByID", mock.Anything, tenantID).Return(activeTenant(tenantID), nil)
		f.commissions.On("SumForTenant", mock.Anything, tenantID).Return(decimal.NewFromInt(5000), nil)
		f.transfers.On("SumByStatuses", mock.Anything, tenantID, settlement.TransferStatusCompleted).
			Return(decimal.Zero, nil)
		f.transfers.On("SumByStatuses", mock.Anything, tenantID, settlement.TransferStatusPending, settlement.TransferStatusProcessing).
			Return(decimal.Zero, nil)
		f.transfers.On("GenerateTransferNumber", mock.Anything, tenantID).Return("TRF-20260901-0002", nil)
		f.transfers.On("Save", mock.Anything, mock.AnythingOfType("*settlement.Transfer")).Return(nil)

		c, w := newTestContext()
		setAuthContext(c, tenantID, userID)
		c.Request = httptest.NewRequest(http.MethodPost, "/transfers",
			bytes.NewBufferString(`{"gross_amount":"1000.00","notes":"September payout"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		f.handler.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "TRF-20260901-0002", data["transfer_number"])
		assert.Equal(t, "PENDING", data["status"])
		assert.Equal(t, "1000.00", data["gross_amount"])
		assert.Equal(t, "100.00", data["commission_amount"])
		assert.Equal(t, "900.00", data["net_amount"])
		assert.Equal(t, "TRY", data["currency"])
		f.transfers.AssertExpectations(t)
	})

	t.Run("insufficient balance maps to 422", func(t *testing.T) {
		f := newTransferHandlerFixture()
		f.tenants.On("FindByID", mock.Anything, tenantID).Return(activeTenant(tenantID), nil)
		f.commissions.On("SumForTenant", mock.Anything, tenantID).Return(decimal.NewFromInt(100), nil)
		f.transfers.On("SumByStatuses", mock.Anything, tenantID, settlement.TransferStatusCompleted).
			Return(decimal.Zero, nil)
		f.transfers.On("SumByStatuses", mock.Anything, tenantID, settlement.TransferStatusPending, settlement.TransferStatusProcessing).
			Return(decimal.Zero, nil)

		c, w := newTestContext()
		setAuthContext(c, tenantID, userID)
		c.Request = httptest.NewRequest(http.MethodPost, "/transfers",
			bytes.NewBufferString(`{"gross_amount":"1000.00"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		f.handler.Create(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INSUFFICIENT_BALANCE", resp.Error.Code)
	})

	t.Run("non-positive amount maps to 422", func(t *testing.T) {
		f := newTransferHandlerFixture()

		c, w := newTestContext()
		setAuthContext(c, tenantID, userID)
		c.Request = httptest.NewRequest(http.MethodPost, "/transfers",
			bytes.NewBufferString(`{"gross_amount":"-5"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		f.handler.Create(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_AMOUNT", resp.Error.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		f := newTransferHandlerFixture()

		c, w := newTestContext()
		setAuthContext(c, tenantID, userID)
		c.Request = httptest.NewRequest(http.MethodPost, "/transfers",
			bytes.NewBufferString(`{broken`))
		c.Request.Header.Set("Content-Type", "application/json")

		f.handler.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing tenant context gets 403", func(t *testing.T) {
		f := newTransferHandlerFixture()

		c, w := newTestContext()
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Request = httptest.NewRequest(http.MethodPost, "/transfers",
			bytes.NewBufferString(`{"gross_amount":"100.00"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		f.handler.Create(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

// =============================================================================
// GET /transfers and /transfers/:id
// =============================================================================

func TestTransferHandler_List(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("returns paginated transfers", func(t *testing.T) {
		f := newTransferHandlerFixture()
		transfers := []settlement.Transfer{*pendingTransfer(tenantID, userID)}
		f.transfers.On("FindAllForTenant", mock.Anything, tenantID, mock.AnythingOfType("settlement.TransferFilter")).
			Return(transfers, nil)
		f.transfers.On("CountForTenant", mock.Anything, tenantID, mock.AnythingOfType("settlement.TransferFilter")).
			Return(int64(1), nil)

		c, w := newTestContext()
		setAuthContext(c, tenantID, userID)
		c.Request = httptest.NewRequest(http.MethodGet, "/transfers?status=PENDING&page=1&page_size=10", nil)

		f.handler.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newTransferHandlerFixture()

		c, w := newTestContext()
		setAuthContext(c, tenantID, userID)
		c.Request = httptest.NewRequest(http.MethodGet, "/transfers?status=SHIPPED", nil)

		f.handler.List(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTransferHandler_GetByID(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		f := newTransferHandlerFixture()
		transfer := pendingTransfer(tenantID, userID)
		f.transfers.On("FindByIDForTenant", mock.Anything, tenantID, transfer.ID).Return(transfer, nil)

		c, w := newTestContext()
		setAuthContext(c, tenantID, userID)
		c.Request = httptest.NewRequest(http.MethodGet, "/transfers/"+transfer.ID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: transfer.ID.String()}}

		f.handler.GetByID(c)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, transfer.ID.String(), data["id"])
	})

	t.Run("not found in tenant scope", func(t *testing.T) {
		f := newTransferHandlerFixture()
		transferID := uuid.New()
		f.transfers.On("FindByIDForTenant", mock.Anything, tenantID, transferID).Return(nil, nil)

		c, w := newTestContext()
		setAuthContext(c, tenantID, userID)
		c.Request = httptest.NewRequest(http.MethodGet, "/transfers/"+transferID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: transferID.String()}}

		f.handler.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newTransferHandlerFixture()

		c, w := newTestContext()
		setAuthContext(c, tenantID, userID)
		c.Params = gin.Params{{Key: "id", Value: "nope"}}

		f.handler.GetByID(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =============================================================================
// POST /transfers/:id/process, /reject, /cancel
// =============================================================================

func TestTransferHandler_Process(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	adminID := uuid.New()

	t.Run("approval settles at the gateway", func(t *testing.T) {
		f := newTransferHandlerFixture()
		transfer := pendingTransfer(tenantID, userID)

		f.transfers.On("FindByID", mock.Anything, transfer.ID).Return(transfer, nil)
		f.transfers.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*settlement.Transfer")).Return(nil)
		f.gateway.On("ProcessPayout", mock.Anything, mock.AnythingOfType("*settlement.PayoutRequest")).
			Return(&settlement.PayoutResult{Success: true, ReferenceID: "MP-2026-000123"}, nil)
		f.gateway.On("IsDemo").Return(false)

		c, w := newTestContext()
		setAuthContext(c, uuid.Nil, adminID)
		c.Request = httptest.NewRequest(http.MethodPost, "/transfers/"+transfer.ID.String()+"/process", nil)
		c.Params = gin.Params{{Key: "id", Value: transfer.ID.String()}}

		f.handler.Process(c)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "COMPLETED", data["status"])
		assert.Equal(t, "MP-2026-000123", data["reference_id"])
	})

	t.Run("gateway rejection yields FAILED with 200", func(t *testing.T) {
		f := newTransferHandlerFixture()
		transfer := pendingTransfer(tenantID, userID)

		f.transfers.On("FindByID", mock.Anything, transfer.ID).Return(transfer, nil)
		f.transfers.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*settlement.Transfer")).Return(nil)
		f.gateway.On("ProcessPayout", mock.Anything, mock.AnythingOfType("*settlement.PayoutRequest")).
			Return(&settlement.PayoutResult{Success: false, ErrorMessage: "IBAN account closed"}, nil)
		f.gateway.On("IsDemo").Return(false)

		c, w := newTestContext()
		setAuthContext(c, uuid.Nil, adminID)
		c.Request = httptest.NewRequest(http.MethodPost, "/transfers/"+transfer.ID.String()+"/process", nil)
		c.Params = gin.Params{{Key: "id", Value: transfer.ID.String()}}

		f.handler.Process(c)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "FAILED", data["status"])
		assert.Equal(t, "IBAN account closed", data["error_message"])
	})

	t.Run("lost approval race maps to 422", func(t *testing.T) {
		f := newTransferHandlerFixture()
		transfer := pendingTransfer(tenantID, userID)

		f.transfers.On("FindByID", mock.Anything, transfer.ID).Return(transfer, nil)
		f.transfers.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*settlement.Transfer")).
			Return(shared.ErrConcurrencyConflict)

		c, w := newTestContext()
		setAuthContext(c, uuid.Nil, adminID)
		c.Request = httptest.NewRequest(http.MethodPost, "/transfers/"+transfer.ID.String()+"/process", nil)
		c.Params = gin.Params{{Key: "id", Value: transfer.ID.String()}}

		f.handler.Process(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_STATE_TRANSITION", resp.Error.Code)
	})
}

func TestTransferHandler_Reject(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	adminID := uuid.New()

	f := newTransferHandlerFixture()
	transfer := pendingTransfer(tenantID, userID)

	f.transfers.On("FindByID", mock.Anything, transfer.ID).Return(transfer, nil)
	f.transfers.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*settlement.Transfer")).Return(nil)

	c, w := newTestContext()
	setAuthContext(c, uuid.Nil, adminID)
	c.Request = httptest.NewRequest(http.MethodPost, "/transfers/"+transfer.ID.String()+"/reject",
		bytes.NewBufferString(`{"reason":"IBAN does not match tenant records"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: transfer.ID.String()}}

	f.handler.Reject(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "CANCELLED", data["status"])
	assert.Equal(t, "IBAN does not match tenant records", data["error_message"])
}

func TestTransferHandler_Cancel(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("requester withdraws own transfer", func(t *testing.T) {
		f := newTransferHandlerFixture()
		transfer := pendingTransfer(tenantID, userID)

		f.transfers.On("FindByID", mock.Anything, transfer.ID).Return(transfer, nil)
		f.transfers.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*settlement.Transfer")).Return(nil)

		c, w := newTestContext()
		setAuthContext(c, tenantID, userID)
		c.Request = httptest.NewRequest(http.MethodPost, "/transfers/"+transfer.ID.String()+"/cancel", nil)
		c.Params = gin.Params{{Key: "id", Value: transfer.ID.String()}}

		f.handler.Cancel(c)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "CANCELLED", data["status"])
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		f := newTransferHandlerFixture()
		transfer := pendingTransfer(tenantID, userID)
		stranger := uuid.New()

		f.transfers.On("FindByID", mock.Anything, transfer.ID).Return(transfer, nil)

		c, w := newTestContext()
		setAuthContext(c, tenantID, stranger)
		c.Request = httptest.NewRequest(http.MethodPost, "/transfers/"+transfer.ID.String()+"/cancel", nil)
		c.Params = gin.Params{{Key: "id", Value: transfer.ID.String()}}

		f.handler.Cancel(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
	})
}

// =============================================================================
// GET /admin/transfers and /payment-gateway/status
// =============================================================================

func TestTransferHandler_AdminList(t *testing.T) {
	tenantID := uuid.New()
	adminID := uuid.New()

	t.Run("filters by tenant", func(t *testing.T) {
		f := newTransferHandlerFixture()
		transfers := []settlement.Transfer{*pendingTransfer(tenantID, uuid.New())}

		f.transfers.On("FindAll", mock.Anything, mock.MatchedBy(func(filter settlement.TransferFilter) bool {
			return filter.TenantID != nil && *filter.TenantID == tenantID
		})).Return(transfers, nil)
		f.transfers.On("CountAll", mock.Anything, mock.AnythingOfType("settlement.TransferFilter")).
			Return(int64(1), nil)

		c, w := newTestContext()
		setAuthContext(c, uuid.Nil, adminID)
		c.Request = httptest.NewRequest(http.MethodGet, "/admin/transfers?tenant_id="+tenantID.String(), nil)

		f.handler.AdminList(c)

		assert.Equal(t, http.StatusOK, w.Code)
		f.transfers.AssertExpectations(t)
	})

	t.Run("rejects malformed amount filter", func(t *testing.T) {
		f := newTransferHandlerFixture()

		c, w := newTestContext()
		setAuthContext(c, uuid.Nil, adminID)
		c.Request = httptest.NewRequest(http.MethodGet, "/admin/transfers?min_amount=lots", nil)

		f.handler.AdminList(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTransferHandler_GatewayStatus(t *testing.T) {
	f := newTransferHandlerFixture()
	f.gateway.On("Status").Return(settlement.GatewayStatus{
		GatewayName:      "MagicPay (demo)",
		IsDemoMode:       true,
		APIKeyConfigured: false,
	})

	c, w := newTestContext()
	f.handler.GatewayStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "MagicPay (demo)", data["gateway_name"])
	assert.Equal(t, true, data["is_demo_mode"])
	assert.Equal(t, false, data["api_key_configured"])
}
