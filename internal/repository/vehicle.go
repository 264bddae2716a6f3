package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"dealer-backend/internal/errs"
	"dealer-backend/internal/models"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// FindAll returns the full collection ordered by creation time descending,
// the order the gallery's default view relies on.
func (r *VehicleRepository) FindAll(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&vehicles).Error
	if err != nil {
		return nil, errs.NewPersistence("list vehicles", pkgerrors.Wrap(err, "select vehicles"))
	}
	return vehicles, nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("get vehicle", pkgerrors.Errorf("vehicle %s not found", id))
		}
		return nil, errs.NewPersistence("get vehicle", err)
	}
	return &vehicle, nil
}

// Create inserts the shaped record and returns it with the store-assigned
// identifier and timestamps populated.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if vehicle.ID == "" {
		vehicle.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(vehicle).Error; err != nil {
		return nil, errs.NewPersistence("create vehicle", err)
	}
	return vehicle, nil
}

// Update applies only the given columns. A nil value in updates clears the
// column to NULL; absent columns stay untouched.
func (r *VehicleRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Vehicle, error) {
	if len(updates) == 0 {
		return r.FindByID(ctx, id)
	}

	result := r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, errs.NewPersistence("update vehicle", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewNotFound("update vehicle", pkgerrors.Errorf("vehicle %s not found", id))
	}

	return r.FindByID(ctx, id)
}

func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Vehicle{}, "id = ?", id)
	if result.Error != nil {
		return errs.NewPersistence("delete vehicle", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("delete vehicle", pkgerrors.Errorf("vehicle %s not found", id))
	}
	return nil
}
