package migration

import (
	"context"
	"fmt"
	"testing"
	"time"

	pkgdb "github.com/dcastellanos/paneltrack-backend/pkg/db"
	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"github.com/dcastellanos/paneltrack-backend/pkg/enums"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupMigrationTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, pkgdb.AutoMigrate(conn))
	return conn
}

func newTestRunner(t *testing.T, conn *gorm.DB) *Runner {
	t.Helper()
	runner, err := NewRunner(conn, gormTxRunner{db: conn}, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return runner
}

func legacyDate(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func seedPanel(t *testing.T, conn *gorm.DB) *models.Panel {
	t.Helper()
	panel := &models.Panel{
		ID:            uuid.New(),
		Name:          "Panel Norte",
		TotalCapacity: 10,
		MonthlyCost:   decimal.NewFromInt(40),
		Status:        enums.PanelStatusActive,
	}
	require.NoError(t, conn.Create(panel).Error)
	return panel
}

func TestRunSynthesizesSubscriptions(t *testing.T) {
	conn := setupMigrationTestDB(t)
	panel := seedPanel(t, conn)

	withExpiration := &models.Client{
		ID:                   uuid.New(),
		Name:                 "Maria",
		WhatsApp:             "584121234567",
		LegacyPanelID:        &panel.ID,
		LegacyStartDate:      legacyDate(2024, time.January, 1),
		LegacyExpirationDate: legacyDate(2024, time.February, 15),
	}
	withoutExpiration := &models.Client{
		ID:              uuid.New(),
		Name:            "Pedro",
		WhatsApp:        "584127654321",
		LegacyPanelID:   &panel.ID,
		LegacyStartDate: legacyDate(2024, time.January, 10),
	}
	require.NoError(t, conn.Create(withExpiration).Error)
	require.NoError(t, conn.Create(withoutExpiration).Error)

	newTestRunner(t, conn).Run(context.Background())

	var subs []models.Subscription
	require.NoError(t, conn.Order("start_date ASC").Find(&subs).Error)
	require.Len(t, subs, 2)

	require.Equal(t, withExpiration.ID, subs[0].ClientID)
	require.Equal(t, "General", subs[0].Service)
	require.True(t, subs[0].ExpirationDate.Equal(time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)))

	// No stored expiration: one cycle from the start date.
	require.Equal(t, withoutExpiration.ID, subs[1].ClientID)
	require.True(t, subs[1].ExpirationDate.Equal(time.Date(2024, time.February, 9, 0, 0, 0, 0, time.UTC)))

	var migratedPanel models.Panel
	require.NoError(t, conn.First(&migratedPanel, "id = ?", panel.ID).Error)
	require.Equal(t, 2, migratedPanel.UsedCapacity)

	var drained models.Client
	require.NoError(t, conn.First(&drained, "id = ?", withExpiration.ID).Error)
	require.Nil(t, drained.LegacyPanelID)
	require.Nil(t, drained.LegacyStartDate)
	require.Nil(t, drained.LegacyExpirationDate)
}

func TestRunSkipsClientsWithoutStartDate(t *testing.T) {
	conn := setupMigrationTestDB(t)
	panel := seedPanel(t, conn)

	incomplete := &models.Client{
		ID:            uuid.New(),
		Name:          "Luis",
		WhatsApp:      "584120000000",
		LegacyPanelID: &panel.ID,
	}
	require.NoError(t, conn.Create(incomplete).Error)

	newTestRunner(t, conn).Run(context.Background())

	var subCount int64
	require.NoError(t, conn.Model(&models.Subscription{}).Count(&subCount).Error)
	require.Zero(t, subCount)

	// Legacy columns still drain so the check does not re-trigger.
	var drained models.Client
	require.NoError(t, conn.First(&drained, "id = ?", incomplete.ID).Error)
	require.Nil(t, drained.LegacyPanelID)
}

func TestRunIsIdempotent(t *testing.T) {
	conn := setupMigrationTestDB(t)
	panel := seedPanel(t, conn)

	client := &models.Client{
		ID:              uuid.New(),
		Name:            "Maria",
		WhatsApp:        "584121234567",
		LegacyPanelID:   &panel.ID,
		LegacyStartDate: legacyDate(2024, time.January, 1),
	}
	require.NoError(t, conn.Create(client).Error)

	runner := newTestRunner(t, conn)
	runner.Run(context.Background())
	runner.Run(context.Background())

	var subCount int64
	require.NoError(t, conn.Model(&models.Subscription{}).Count(&subCount).Error)
	require.EqualValues(t, 1, subCount)

	var migratedPanel models.Panel
	require.NoError(t, conn.First(&migratedPanel, "id = ?", panel.ID).Error)
	require.Equal(t, 1, migratedPanel.UsedCapacity)
}

func TestRunDoesNothingWhenSubscriptionsExist(t *testing.T) {
	conn := setupMigrationTestDB(t)
	panel := seedPanel(t, conn)

	client := &models.Client{
		ID:              uuid.New(),
		Name:            "Maria",
		WhatsApp:        "584121234567",
		LegacyPanelID:   &panel.ID,
		LegacyStartDate: legacyDate(2024, time.January, 1),
	}
	require.NoError(t, conn.Create(client).Error)
	existing := &models.Subscription{
		ID:             uuid.New(),
		ClientID:       client.ID,
		PanelID:        panel.ID,
		Service:        "Netflix",
		StartDate:      time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		ExpirationDate: time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, conn.Create(existing).Error)

	newTestRunner(t, conn).Run(context.Background())

	var subCount int64
	require.NoError(t, conn.Model(&models.Subscription{}).Count(&subCount).Error)
	require.EqualValues(t, 1, subCount)

	// Legacy columns stay untouched when the migration does not run.
	var untouched models.Client
	require.NoError(t, conn.First(&untouched, "id = ?", client.ID).Error)
	require.NotNil(t, untouched.LegacyPanelID)
}
