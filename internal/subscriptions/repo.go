package subscriptions

import (
	"context"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for subscriptions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, sub *models.Subscription) error
	Update(ctx context.Context, sub *models.Subscription) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	List(ctx context.Context) ([]models.Subscription, error)
	ListByClientID(ctx context.Context, clientID uuid.UUID) ([]models.Subscription, error)
	ListByPanelID(ctx context.Context, panelID uuid.UUID) ([]models.Subscription, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByClientIDWithTx(tx *gorm.DB, clientID uuid.UUID) ([]models.Subscription, error)
	DeleteByClientIDWithTx(tx *gorm.DB, clientID uuid.UUID) error
	DeleteByPanelIDWithTx(tx *gorm.DB, panelID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a subscription repository bound to the provided
// database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *repository) Update(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *repository) List(ctx context.Context) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := r.db.WithContext(ctx).Order("start_date ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *repository) ListByClientID(ctx context.Context, clientID uuid.UUID) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("start_date ASC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *repository) ListByPanelID(ctx context.Context, panelID uuid.UUID) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := r.db.WithContext(ctx).
		Where("panel_id = ?", panelID).
		Order("start_date ASC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Subscription{}, "id = ?", id).Error
}

func (r *repository) ListByClientIDWithTx(tx *gorm.DB, clientID uuid.UUID) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := tx.Where("client_id = ?", clientID).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *repository) DeleteByClientIDWithTx(tx *gorm.DB, clientID uuid.UUID) error {
	return tx.Delete(&models.Subscription{}, "client_id = ?", clientID).Error
}

func (r *repository) DeleteByPanelIDWithTx(tx *gorm.DB, panelID uuid.UUID) error {
	return tx.Delete(&models.Subscription{}, "panel_id = ?", panelID).Error
}
