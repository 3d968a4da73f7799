package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
	"github.com/paulmaker/office-mgmt/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEntityRepository implements EntityRepository using GORM
type GormEntityRepository struct {
	db *gorm.DB
}

// NewGormEntityRepository creates a new GormEntityRepository
func NewGormEntityRepository(db *gorm.DB) *GormEntityRepository {
	return &GormEntityRepository{db: db}
}

var _ identity.EntityRepository = (*GormEntityRepository)(nil)

// FindByID finds an entity by its ID
func (r *GormEntityRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Entity, error) {
	var model models.EntityModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all entities matching the filter
func (r *GormEntityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Entity, error) {
	var entityModels []models.EntityModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.EntityModel{}), filter)

	if err := query.Find(&entityModels).Error; err != nil {
		return nil, err
	}

	entities := make([]identity.Entity, len(entityModels))
	for i, model := range entityModels {
		entities[i] = *model.ToDomain()
	}
	return entities, nil
}

// FindByAccount finds all entities belonging to an account
func (r *GormEntityRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]identity.Entity, error) {
	var entityModels []models.EntityModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("name ASC").
		Find(&entityModels).Error; err != nil {
		return nil, err
	}

	entities := make([]identity.Entity, len(entityModels))
	for i, model := range entityModels {
		entities[i] = *model.ToDomain()
	}
	return entities, nil
}

// Save persists an entity
func (r *GormEntityRepository) Save(ctx context.Context, entity *identity.Entity) error {
	var model models.EntityModel
	model.FromDomain(entity)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes an entity
func (r *GormEntityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EntityModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

var _ identity.AccountRepository = (*GormAccountRepository)(nil)

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists an account
func (r *GormAccountRepository) Save(ctx context.Context, account *identity.Account) error {
	var model models.AccountModel
	model.FromDomain(account)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes an account
func (r *GormAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AccountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
