package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/billing"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockInvoiceRepo struct {
	mock.Mock
}

func (m *mockInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) Save(ctx context.Context, invoice *billing.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *mockInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInvoiceRepo) FindByIDForEntity(ctx context.Context, entityID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, entityID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) FindAllForEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, entityID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) CountForEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, entityID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInvoiceRepo) FindByClient(ctx context.Context, entityID, clientID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, entityID, clientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

type invoiceServiceFixture struct {
	*numberServiceFixture
	svc         *InvoiceService
	invoiceRepo *mockInvoiceRepo
}

func newInvoiceServiceFixture(t *testing.T) *invoiceServiceFixture {
	t.Helper()

	base := newNumberServiceFixture(t)
	invoiceRepo := new(mockInvoiceRepo)
	// Issuing goes through AuthorizeUpdate, which ENTITY_USER fails.
	base.principal = identity.NewPrincipal(uuid.New(), base.entityID, nil, identity.RoleEntityAdmin, "admin")

	return &invoiceServiceFixture{
		numberServiceFixture: base,
		svc:                  NewInvoiceService(invoiceRepo, base.entityRepo, base.svc),
		invoiceRepo:          invoiceRepo,
	}
}

func (f *invoiceServiceFixture) newDraft(t *testing.T, clientID uuid.UUID) *billing.Invoice {
	t.Helper()
	invoice, err := billing.NewInvoice(f.entityID, clientID, "EUR")
	require.NoError(t, err)
	f.invoiceRepo.On("FindByIDForEntity", mock.Anything, f.entityID, invoice.ID).Return(invoice, nil)
	return invoice
}

func TestInvoiceServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a draft with lines", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		clientID := uuid.New()

		f.invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

		resp, err := f.svc.Create(ctx, f.principal, f.entityID, CreateInvoiceRequest{
			ClientID: clientID,
			Currency: "EUR",
			Lines: []InvoiceLineRequest{
				{Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(500)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "draft", resp.Status)
		assert.Empty(t, resp.Number)
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("cross entity caller is denied", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		outsider := identity.NewPrincipal(uuid.New(), uuid.New(), nil, identity.RoleEntityAdmin, "outsider")

		_, err := f.svc.Create(ctx, outsider, f.entityID, CreateInvoiceRequest{ClientID: uuid.New(), Currency: "EUR"})
		assert.True(t, shared.IsCode(err, shared.CodeForbidden))
		f.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestInvoiceServiceIssue(t *testing.T) {
	ctx := context.Background()

	t.Run("issuing allocates the next number", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		client := f.newClient(t, "ACM")
		invoice := f.newDraft(t, client.ID)

		f.codeRepo.On("FindByClient", mock.Anything, f.entityID, client.ID).
			Return(nil, shared.ErrNotFound).Once()
		f.codeRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.InvoiceCode")).
			Return(nil).Once()
		f.codeRepo.On("IncrementAndFetch", mock.Anything, mock.Anything).
			Return(int64(1), nil).Once()
		f.invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)

		resp, err := f.svc.Issue(ctx, f.principal, f.entityID, invoice.ID, IssueInvoiceRequest{})
		require.NoError(t, err)
		assert.Equal(t, "issued", resp.Status)
		assert.Equal(t, "ACM_00001", resp.Number)
		assert.NotNil(t, resp.IssuedAt)
	})

	t.Run("regular user cannot issue", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		client := f.newClient(t, "ACM")
		invoice := f.newDraft(t, client.ID)
		clerk := identity.NewPrincipal(uuid.New(), f.entityID, nil, identity.RoleEntityUser, "clerk")

		_, err := f.svc.Issue(ctx, clerk, f.entityID, invoice.ID, IssueInvoiceRequest{})
		assert.True(t, shared.IsCode(err, shared.CodeForbidden))
		f.codeRepo.AssertNotCalled(t, "IncrementAndFetch", mock.Anything, mock.Anything)
	})

	t.Run("issuing twice is rejected", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		client := f.newClient(t, "ACM")
		invoice := f.newDraft(t, client.ID)
		code, err := billing.NewInvoiceCode(f.entityID, client.ID, "ACM")
		require.NoError(t, err)

		f.codeRepo.On("FindByClient", mock.Anything, f.entityID, client.ID).Return(code, nil)
		f.codeRepo.On("IncrementAndFetch", mock.Anything, code.ID).Return(int64(1), nil).Once()
		f.codeRepo.On("IncrementAndFetch", mock.Anything, code.ID).Return(int64(2), nil).Once()
		f.invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)

		_, err = f.svc.Issue(ctx, f.principal, f.entityID, invoice.ID, IssueInvoiceRequest{})
		require.NoError(t, err)

		_, err = f.svc.Issue(ctx, f.principal, f.entityID, invoice.ID, IssueInvoiceRequest{})
		assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
	})
}

func TestInvoiceServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting an issued invoice never releases its number", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		client := f.newClient(t, "ACM")
		first := f.newDraft(t, client.ID)
		second := f.newDraft(t, client.ID)
		code, err := billing.NewInvoiceCode(f.entityID, client.ID, "ACM")
		require.NoError(t, err)

		f.codeRepo.On("FindByClient", mock.Anything, f.entityID, client.ID).Return(code, nil)
		f.codeRepo.On("IncrementAndFetch", mock.Anything, code.ID).Return(int64(1), nil).Once()
		f.codeRepo.On("IncrementAndFetch", mock.Anything, code.ID).Return(int64(2), nil).Once()
		f.invoiceRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.invoiceRepo.On("Delete", mock.Anything, first.ID).Return(nil)

		resp, err := f.svc.Issue(ctx, f.principal, f.entityID, first.ID, IssueInvoiceRequest{})
		require.NoError(t, err)
		assert.Equal(t, "ACM_00001", resp.Number)

		require.NoError(t, f.svc.Delete(ctx, f.principal, f.entityID, first.ID))

		// The sequence moves on; 00001 is gone for good.
		resp, err = f.svc.Issue(ctx, f.principal, f.entityID, second.ID, IssueInvoiceRequest{})
		require.NoError(t, err)
		assert.Equal(t, "ACM_00002", resp.Number)
	})

	t.Run("paid invoices cannot be deleted", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		client := f.newClient(t, "ACM")
		invoice := f.newDraft(t, client.ID)
		require.NoError(t, invoice.Issue("ACM_00001", nil))
		require.NoError(t, invoice.MarkPaid())

		err := f.svc.Delete(ctx, f.principal, f.entityID, invoice.ID)
		assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
		f.invoiceRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("regular user cannot delete", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		client := f.newClient(t, "ACM")
		invoice := f.newDraft(t, client.ID)
		clerk := identity.NewPrincipal(uuid.New(), f.entityID, nil, identity.RoleEntityUser, "clerk")

		err := f.svc.Delete(ctx, clerk, f.entityID, invoice.ID)
		assert.True(t, shared.IsCode(err, shared.CodeForbidden))
		f.invoiceRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestInvoiceServiceTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("issued invoice can be paid", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		client := f.newClient(t, "ACM")
		invoice := f.newDraft(t, client.ID)
		require.NoError(t, invoice.Issue("ACM_00001", nil))

		f.invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)

		resp, err := f.svc.MarkPaid(ctx, f.principal, f.entityID, invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, "paid", resp.Status)
	})

	t.Run("paid invoice cannot be cancelled", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		client := f.newClient(t, "ACM")
		invoice := f.newDraft(t, client.ID)
		require.NoError(t, invoice.Issue("ACM_00001", nil))
		require.NoError(t, invoice.MarkPaid())

		_, err := f.svc.Cancel(ctx, f.principal, f.entityID, invoice.ID)
		assert.Error(t, err)
	})

	t.Run("draft cannot be paid", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		client := f.newClient(t, "ACM")
		invoice := f.newDraft(t, client.ID)

		_, err := f.svc.MarkPaid(ctx, f.principal, f.entityID, invoice.ID)
		assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
	})
}
