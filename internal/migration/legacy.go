package migration

import (
	"context"
	"fmt"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// legacyService is the service name stamped on subscriptions synthesized
// from pre-subscription client rows, which never recorded one.
const legacyService = "General"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Runner upgrades installations that predate explicit subscription rows,
// where each client carried its panel assignment and start date inline.
type Runner struct {
	db       *gorm.DB
	txRunner txRunner
	log      *logger.Logger
}

// NewRunner builds a legacy migration runner.
func NewRunner(db *gorm.DB, txr txRunner, log *logger.Logger) (*Runner, error) {
	if db == nil {
		return nil, fmt.Errorf("db required")
	}
	if txr == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Runner{db: db, txRunner: txr, log: log}, nil
}

// Run performs the one-time upgrade if it is still pending: at least one
// client holds a legacy panel assignment and no subscription rows exist yet.
// The upgrade is best effort. Any failure is logged and swallowed so
// startup proceeds on the data as-is.
func (r *Runner) Run(ctx context.Context) {
	pending, err := r.pending(ctx)
	if err != nil {
		ctx = r.log.WithField(ctx, "error", err.Error())
		r.log.Warn(ctx, "legacy migration check failed")
		return
	}
	if !pending {
		return
	}

	migrated := 0
	err = r.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		var legacy []models.Client
		if err := tx.Where("panel_id IS NOT NULL").Find(&legacy).Error; err != nil {
			return err
		}

		perPanel := make(map[uuid.UUID]int)
		for _, client := range legacy {
			if client.LegacyStartDate == nil {
				continue
			}
			start := models.DateOnly(*client.LegacyStartDate)
			expiration := start.AddDate(0, 0, models.CycleDays)
			if client.LegacyExpirationDate != nil {
				expiration = models.DateOnly(*client.LegacyExpirationDate)
			}

			sub := models.Subscription{
				ID:             uuid.New(),
				ClientID:       client.ID,
				PanelID:        *client.LegacyPanelID,
				Service:        legacyService,
				StartDate:      start,
				ExpirationDate: expiration,
			}
			if err := tx.Create(&sub).Error; err != nil {
				return err
			}
			perPanel[sub.PanelID]++
			migrated++
		}

		for panelID, count := range perPanel {
			if err := tx.Model(&models.Panel{}).
				Where("id = ?", panelID).
				UpdateColumn("used_capacity", gorm.Expr("used_capacity + ?", count)).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Client{}).
			Where("panel_id IS NOT NULL").
			Updates(map[string]any{
				"panel_id":        nil,
				"start_date":      nil,
				"expiration_date": nil,
			}).Error
	})
	if err != nil {
		ctx = r.log.WithField(ctx, "error", err.Error())
		r.log.Warn(ctx, "legacy migration failed, continuing without it")
		return
	}
	ctx = r.log.WithField(ctx, "subscriptions", migrated)
	r.log.Info(ctx, "legacy clients migrated")
}

// pending reports whether legacy data exists and has not been migrated yet.
// A single subscription row means the upgrade already ran (or the install
// never was legacy).
func (r *Runner) pending(ctx context.Context) (bool, error) {
	var legacyCount int64
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("panel_id IS NOT NULL").
		Count(&legacyCount).Error; err != nil {
		return false, err
	}
	if legacyCount == 0 {
		return false, nil
	}

	var subCount int64
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).Count(&subCount).Error; err != nil {
		return false, err
	}
	return subCount == 0, nil
}
