package cuts

import (
	"context"
	"time"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for weekly cut snapshots.
type Repository interface {
	Create(ctx context.Context, cut *models.WeeklyCut) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.WeeklyCut, error)
	List(ctx context.Context) ([]models.WeeklyCut, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]models.WeeklyCut, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a weekly cut repository bound to the provided
// database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, cut *models.WeeklyCut) error {
	return r.db.WithContext(ctx).Create(cut).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.WeeklyCut, error) {
	var cut models.WeeklyCut
	if err := r.db.WithContext(ctx).First(&cut, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cut, nil
}

func (r *repository) List(ctx context.Context) ([]models.WeeklyCut, error) {
	var cuts []models.WeeklyCut
	if err := r.db.WithContext(ctx).Order("window_start DESC, created_at DESC").Find(&cuts).Error; err != nil {
		return nil, err
	}
	return cuts, nil
}

// ListByRange returns cuts whose window start falls inside [from, to),
// newest first.
func (r *repository) ListByRange(ctx context.Context, from, to time.Time) ([]models.WeeklyCut, error) {
	var cuts []models.WeeklyCut
	if err := r.db.WithContext(ctx).
		Where("window_start >= ? AND window_start < ?", from, to).
		Order("window_start DESC, created_at DESC").
		Find(&cuts).Error; err != nil {
		return nil, err
	}
	return cuts, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.WeeklyCut{}, "id = ?", id).Error
}
