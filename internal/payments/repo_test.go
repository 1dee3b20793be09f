package payments

import (
	"context"
	"fmt"
	"testing"
	"time"

	pkgdb "github.com/dcastellanos/paneltrack-backend/pkg/db"
	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"github.com/dcastellanos/paneltrack-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPaymentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, pkgdb.AutoMigrate(conn))
	return conn
}

func seedPayment(t *testing.T, conn *gorm.DB, clientID uuid.UUID, d time.Time, amount int64) *models.Payment {
	t.Helper()
	payment := &models.Payment{
		ID:       uuid.New(),
		ClientID: clientID,
		Date:     d,
		Amount:   decimal.NewFromInt(amount),
		Method:   enums.PaymentMethodCash,
	}
	require.NoError(t, conn.Create(payment).Error)
	return payment
}

func TestRepositoryListByDateRangeInclusiveBounds(t *testing.T) {
	conn := setupPaymentsTestDB(t)
	repo := NewRepository(conn)
	clientID := uuid.New()

	before := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)
	after := time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC)

	seedPayment(t, conn, clientID, before, 1)
	onFrom := seedPayment(t, conn, clientID, from, 2)
	onMid := seedPayment(t, conn, clientID, mid, 3)
	onTo := seedPayment(t, conn, clientID, to, 4)
	seedPayment(t, conn, clientID, after, 5)

	payments, err := repo.ListByDateRange(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, onFrom.ID, payments[0].ID)
	assert.Equal(t, onMid.ID, payments[1].ID)
	assert.Equal(t, onTo.ID, payments[2].ID)
}

func TestRepositoryListNewestFirst(t *testing.T) {
	conn := setupPaymentsTestDB(t)
	repo := NewRepository(conn)
	clientID := uuid.New()

	older := seedPayment(t, conn, clientID, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 1)
	newer := seedPayment(t, conn, clientID, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), 2)

	payments, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, newer.ID, payments[0].ID)
	assert.Equal(t, older.ID, payments[1].ID)
}

func TestRepositoryListByClientID(t *testing.T) {
	conn := setupPaymentsTestDB(t)
	repo := NewRepository(conn)
	mine := uuid.New()
	other := uuid.New()

	kept := seedPayment(t, conn, mine, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 1)
	seedPayment(t, conn, other, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 2)

	payments, err := repo.ListByClientID(context.Background(), mine)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, kept.ID, payments[0].ID)
}

func TestRepositoryDelete(t *testing.T) {
	conn := setupPaymentsTestDB(t)
	repo := NewRepository(conn)

	payment := seedPayment(t, conn, uuid.New(), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 1)
	require.NoError(t, repo.Delete(context.Background(), payment.ID))

	_, err := repo.FindByID(context.Background(), payment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
