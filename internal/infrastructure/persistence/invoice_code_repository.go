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

// GormInvoiceCodeRepository implements InvoiceCodeRepository using GORM
type GormInvoiceCodeRepository struct {
	db *gorm.DB
}

// NewGormInvoiceCodeRepository creates a new GormInvoiceCodeRepository
func NewGormInvoiceCodeRepository(db *gorm.DB) *GormInvoiceCodeRepository {
	return &GormInvoiceCodeRepository{db: db}
}

var _ billing.InvoiceCodeRepository = (*GormInvoiceCodeRepository)(nil)

// FindByClient finds the counter for a client within an entity
func (r *GormInvoiceCodeRepository) FindByClient(ctx context.Context, entityID, clientID uuid.UUID) (*billing.InvoiceCode, error) {
	var model models.InvoiceCodeModel
	if err := r.db.WithContext(ctx).
		Where("entity_id = ? AND client_id = ?", entityID, clientID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts a new counter row. The unique index on (entity_id,
// client_id) turns a concurrent double-create into ALREADY_EXISTS.
func (r *GormInvoiceCodeRepository) Create(ctx context.Context, code *billing.InvoiceCode) error {
	var model models.InvoiceCodeModel
	model.FromDomain(code)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// IncrementAndFetch advances the counter and returns the new value in a
// single statement. The row-level write lock taken by UPDATE serialises
// concurrent allocators, so each caller sees a distinct value.
func (r *GormInvoiceCodeRepository) IncrementAndFetch(ctx context.Context, id uuid.UUID) (int64, error) {
	var lastNumber int64
	err := r.db.WithContext(ctx).
		Raw("UPDATE invoice_codes SET last_number = last_number + 1, updated_at = NOW() WHERE id = ? RETURNING last_number", id).
		Scan(&lastNumber).Error
	if err != nil {
		return 0, err
	}
	if lastNumber == 0 {
		// UPDATE matched no row.
		return 0, shared.ErrNotFound
	}
	return lastNumber, nil
}
