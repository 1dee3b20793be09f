package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type clientChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type capacityLedger interface {
	Reserve(ctx context.Context, tx *gorm.DB, panelID uuid.UUID) error
	Release(ctx context.Context, tx *gorm.DB, panelID uuid.UUID, count int) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service drives the subscription lifecycle. Every cycle is 30 days; a
// subscription is active exactly while its expiration date has not passed,
// nothing is ever flagged in the database.
type Service interface {
	Create(ctx context.Context, input CreateSubscriptionInput) (*models.Subscription, error)
	Renew(ctx context.Context, id uuid.UUID, fromDate *time.Time) (*models.Subscription, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	List(ctx context.Context) ([]models.Subscription, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Subscription, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceParams groups dependencies for the subscriptions service.
type ServiceParams struct {
	Repo              Repository
	Clients           clientChecker
	Panels            capacityLedger
	TransactionRunner txRunner
}

// CreateSubscriptionInput captures the data required to open a subscription.
type CreateSubscriptionInput struct {
	ClientID  uuid.UUID
	PanelID   uuid.UUID
	Service   string
	StartDate time.Time
	Price     decimal.Decimal
}

type service struct {
	repo     Repository
	clients  clientChecker
	panels   capacityLedger
	txRunner txRunner
}

// NewService builds a subscriptions service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("subscription repo required")
	}
	if params.Clients == nil {
		return nil, fmt.Errorf("client checker required")
	}
	if params.Panels == nil {
		return nil, fmt.Errorf("capacity ledger required")
	}
	if params.TransactionRunner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:     params.Repo,
		clients:  params.Clients,
		panels:   params.Panels,
		txRunner: params.TransactionRunner,
	}, nil
}

// Create validates the client, reserves a slot on the panel and inserts the
// subscription, all in one transaction. The first cycle runs from the start
// date to start + 30 days.
func (s *service) Create(ctx context.Context, input CreateSubscriptionInput) (*models.Subscription, error) {
	if strings.TrimSpace(input.Service) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service name is required")
	}
	if input.StartDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start date is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	exists, err := s.clients.Exists(ctx, input.ClientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check client")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
	}

	start := models.DateOnly(input.StartDate)
	sub := &models.Subscription{
		ID:             uuid.New(),
		ClientID:       input.ClientID,
		PanelID:        input.PanelID,
		Service:        strings.TrimSpace(input.Service),
		StartDate:      start,
		ExpirationDate: start.AddDate(0, 0, models.CycleDays),
		Price:          input.Price,
	}

	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.panels.Reserve(ctx, tx, input.PanelID); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).Create(ctx, sub); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subscription")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Renew extends the subscription by one cycle. The new expiration compounds
// on whichever is later, the current expiration or fromDate, so renewing
// early never shortens the remaining time and renewing late does not reset
// the clock to today.
func (s *service) Renew(ctx context.Context, id uuid.UUID, fromDate *time.Time) (*models.Subscription, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	base := models.DateOnly(sub.ExpirationDate)
	if fromDate != nil {
		if from := models.DateOnly(*fromDate); from.After(base) {
			base = from
		}
	}
	sub.ExpirationDate = base.AddDate(0, 0, models.CycleDays)

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "renew subscription")
	}
	return sub, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find subscription")
	}
	return sub, nil
}

func (s *service) List(ctx context.Context) ([]models.Subscription, error) {
	return s.repo.List(ctx)
}

func (s *service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Subscription, error) {
	return s.repo.ListByClientID(ctx, clientID)
}

// Delete removes the subscription and frees its panel slot in one
// transaction.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete subscription")
		}
		return s.panels.Release(ctx, tx, sub.PanelID, 1)
	})
}
