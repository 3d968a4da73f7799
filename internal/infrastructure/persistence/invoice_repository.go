package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/billing"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
	"github.com/paulmaker/office-mgmt/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).Preload("Lines").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForEntity finds an invoice by ID within an entity
func (r *GormInvoiceRepository) FindByIDForEntity(ctx context.Context, entityID, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).Preload("Lines").
		Where("entity_id = ? AND id = ?", entityID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForEntity finds all invoices for an entity
func (r *GormInvoiceRepository) FindAllForEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("entity_id = ?", entityID), filter)

	if err := query.Preload("Lines").Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// FindByClient finds invoices for a client within an entity
func (r *GormInvoiceRepository) FindByClient(ctx context.Context, entityID, clientID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
			Where("entity_id = ? AND client_id = ?", entityID, clientID),
		filter,
	)

	if err := query.Preload("Lines").Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// CountForEntity counts invoices for an entity
func (r *GormInvoiceRepository) CountForEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("entity_id = ?", entityID)
	query = applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists an invoice and replaces its lines
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(invoice)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Replace lines wholesale; the aggregate owns them.
		if err := tx.Delete(&models.InvoiceLineModel{}, "invoice_id = ?", invoice.ID).Error; err != nil {
			return err
		}
		return tx.Save(&model).Error
	})
}

// Delete removes an invoice (lines cascade)
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
