package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"github.com/dcastellanos/paneltrack-backend/pkg/enums"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type clientChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type projectChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service records income. Payments are immutable once written; the only
// mutation allowed is deletion.
type Service interface {
	Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	List(ctx context.Context) ([]models.Payment, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Payment, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceParams groups dependencies for the payments service.
type ServiceParams struct {
	Repo     Repository
	Clients  clientChecker
	Projects projectChecker
}

// CreatePaymentInput captures a received payment. Amount is already
// normalized; when the client paid in a foreign currency the original pair
// is kept alongside for the record.
type CreatePaymentInput struct {
	ClientID         uuid.UUID
	ProjectID        *uuid.UUID
	Date             time.Time
	Amount           decimal.Decimal
	OriginalAmount   *decimal.Decimal
	OriginalCurrency *enums.Currency
	Method           enums.PaymentMethod
}

type service struct {
	repo     Repository
	clients  clientChecker
	projects projectChecker
}

// NewService builds a payments service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("payment repo required")
	}
	if params.Clients == nil {
		return nil, fmt.Errorf("client checker required")
	}
	if params.Projects == nil {
		return nil, fmt.Errorf("project checker required")
	}
	return &service{repo: params.Repo, clients: params.Clients, projects: params.Projects}, nil
}

func (s *service) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	if err := validatePaymentInput(input); err != nil {
		return nil, err
	}

	exists, err := s.clients.Exists(ctx, input.ClientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check client")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
	}

	// A project deleted after the fact just drops out of future cuts, but a
	// payment must never be born pointing at a project that does not exist.
	if input.ProjectID != nil {
		known, err := s.projects.Exists(ctx, *input.ProjectID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check project")
		}
		if !known {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown project reference")
		}
	}

	payment := &models.Payment{
		ID:               uuid.New(),
		ClientID:         input.ClientID,
		ProjectID:        input.ProjectID,
		Date:             models.DateOnly(input.Date),
		Amount:           input.Amount,
		OriginalAmount:   input.OriginalAmount,
		OriginalCurrency: input.OriginalCurrency,
		Method:           input.Method,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
	}
	return payment, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find payment")
	}
	return payment, nil
}

func (s *service) List(ctx context.Context) ([]models.Payment, error) {
	return s.repo.List(ctx)
}

func (s *service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Payment, error) {
	return s.repo.ListByClientID(ctx, clientID)
}

func (s *service) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Payment, error) {
	return s.repo.ListByDateRange(ctx, models.DateOnly(from), models.DateOnly(to))
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete payment")
	}
	return nil
}

func validatePaymentInput(input CreatePaymentInput) error {
	if input.Date.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment date is required")
	}
	if !input.Amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if !input.Method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.Method))
	}
	if (input.OriginalAmount == nil) != (input.OriginalCurrency == nil) {
		return pkgerrors.New(pkgerrors.CodeValidation, "original amount and currency go together")
	}
	if input.OriginalCurrency != nil && !input.OriginalCurrency.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid currency %q", *input.OriginalCurrency))
	}
	return nil
}
