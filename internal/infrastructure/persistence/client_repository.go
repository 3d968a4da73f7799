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

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

var _ billing.ClientRepository = (*GormClientRepository)(nil)

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForEntity finds a client by ID within an entity
func (r *GormClientRepository) FindByIDForEntity(ctx context.Context, entityID, id uuid.UUID) (*billing.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("entity_id = ? AND id = ?", entityID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForEntity finds all clients for an entity
func (r *GormClientRepository) FindAllForEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) ([]billing.Client, error) {
	var clientModels []models.ClientModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.ClientModel{}).Where("entity_id = ?", entityID), filter)

	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]billing.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return clients, nil
}

// CountForEntity counts clients for an entity
func (r *GormClientRepository) CountForEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ClientModel{}).Where("entity_id = ?", entityID)
	query = applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a client
func (r *GormClientRepository) Save(ctx context.Context, client *billing.Client) error {
	var model models.ClientModel
	model.FromDomain(client)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a client
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
