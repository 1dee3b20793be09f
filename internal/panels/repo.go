package panels

import (
	"context"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"github.com/dcastellanos/paneltrack-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for panels, including the used-capacity
// counter mutations the capacity ledger relies on.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, panel *models.Panel) error
	Update(ctx context.Context, panel *models.Panel) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Panel, error)
	List(ctx context.Context) ([]models.Panel, error)
	ListByStatus(ctx context.Context, status enums.PanelStatus) ([]models.Panel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddUsed(ctx context.Context, id uuid.UUID, delta int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a panel repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, panel *models.Panel) error {
	return r.db.WithContext(ctx).Create(panel).Error
}

func (r *repository) Update(ctx context.Context, panel *models.Panel) error {
	return r.db.WithContext(ctx).Save(panel).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Panel, error) {
	var panel models.Panel
	if err := r.db.WithContext(ctx).First(&panel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &panel, nil
}

func (r *repository) List(ctx context.Context) ([]models.Panel, error) {
	var panels []models.Panel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&panels).Error; err != nil {
		return nil, err
	}
	return panels, nil
}

func (r *repository) ListByStatus(ctx context.Context, status enums.PanelStatus) ([]models.Panel, error) {
	var panels []models.Panel
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&panels).Error; err != nil {
		return nil, err
	}
	return panels, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Panel{}, "id = ?", id).Error
}

// AddUsed shifts used_capacity by delta in a single statement, clamping at
// zero so concurrent releases can never drive the counter negative.
func (r *repository) AddUsed(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Panel{}).
		Where("id = ?", id).
		UpdateColumn("used_capacity", gorm.Expr(
			"CASE WHEN used_capacity + ? < 0 THEN 0 ELSE used_capacity + ? END",
			delta, delta,
		)).Error
}
