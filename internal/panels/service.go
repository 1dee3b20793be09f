package panels

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"github.com/dcastellanos/paneltrack-backend/pkg/enums"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type subscriptionRemover interface {
	DeleteByPanelIDWithTx(tx *gorm.DB, panelID uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns panel CRUD and the capacity ledger. All capacity movements go
// through Reserve/Release so the used counter stays inside [0, total].
type Service interface {
	Create(ctx context.Context, input CreatePanelInput) (*models.Panel, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePanelInput) (*models.Panel, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Panel, error)
	List(ctx context.Context) ([]models.Panel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AvailableCapacity(ctx context.Context, id uuid.UUID) (int, error)
	Reserve(ctx context.Context, tx *gorm.DB, panelID uuid.UUID) error
	Release(ctx context.Context, tx *gorm.DB, panelID uuid.UUID, count int) error
}

// ServiceParams groups dependencies for the panels service.
type ServiceParams struct {
	Repo              Repository
	SubscriptionRepo  subscriptionRemover
	TransactionRunner txRunner
}

// CreatePanelInput captures the data required to register a panel.
type CreatePanelInput struct {
	Name          string
	TotalCapacity int
	MonthlyCost   decimal.Decimal
	Status        enums.PanelStatus
}

// UpdatePanelInput mirrors CreatePanelInput for edits; the used counter is
// never set directly.
type UpdatePanelInput struct {
	Name          string
	TotalCapacity int
	MonthlyCost   decimal.Decimal
	Status        enums.PanelStatus
}

type service struct {
	repo     Repository
	subRepo  subscriptionRemover
	txRunner txRunner
}

// NewService builds a panels service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("panel repo required")
	}
	if params.SubscriptionRepo == nil {
		return nil, fmt.Errorf("subscription repo required")
	}
	if params.TransactionRunner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:     params.Repo,
		subRepo:  params.SubscriptionRepo,
		txRunner: params.TransactionRunner,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreatePanelInput) (*models.Panel, error) {
	if err := validatePanelInput(input.Name, input.TotalCapacity, input.MonthlyCost); err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = enums.PanelStatusActive
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid panel status %q", status))
	}

	panel := &models.Panel{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(input.Name),
		TotalCapacity: input.TotalCapacity,
		UsedCapacity:  0,
		MonthlyCost:   input.MonthlyCost,
		Status:        status,
	}
	if err := s.repo.Create(ctx, panel); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create panel")
	}
	return panel, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePanelInput) (*models.Panel, error) {
	if err := validatePanelInput(input.Name, input.TotalCapacity, input.MonthlyCost); err != nil {
		return nil, err
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid panel status %q", input.Status))
	}

	panel, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.TotalCapacity < panel.UsedCapacity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("total capacity %d below %d slots in use", input.TotalCapacity, panel.UsedCapacity))
	}

	panel.Name = strings.TrimSpace(input.Name)
	panel.TotalCapacity = input.TotalCapacity
	panel.MonthlyCost = input.MonthlyCost
	panel.Status = input.Status
	if err := s.repo.Update(ctx, panel); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update panel")
	}
	return panel, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Panel, error) {
	panel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "panel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find panel")
	}
	return panel, nil
}

func (s *service) List(ctx context.Context) ([]models.Panel, error) {
	return s.repo.List(ctx)
}

// Delete removes the panel and every subscription referencing it in one
// transaction. No capacity release happens: the counter disappears with the
// panel row.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.subRepo.DeleteByPanelIDWithTx(tx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete panel subscriptions")
		}
		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete panel")
		}
		return nil
	})
}

func (s *service) AvailableCapacity(ctx context.Context, id uuid.UUID) (int, error) {
	panel, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return panel.AvailableCapacity(), nil
}

// Reserve takes one slot on the panel. Full panels are rejected outright
// rather than overbooked.
func (s *service) Reserve(ctx context.Context, tx *gorm.DB, panelID uuid.UUID) error {
	repo := s.repo.WithTx(tx)
	panel, err := repo.FindByID(ctx, panelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "panel not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find panel")
	}
	if panel.AvailableCapacity() <= 0 {
		return pkgerrors.New(pkgerrors.CodeCapacityExceeded,
			fmt.Sprintf("panel %q has no free slots", panel.Name)).
			WithDetails(map[string]any{"panel_id": panelID, "total_capacity": panel.TotalCapacity})
	}
	if err := repo.AddUsed(ctx, panelID, 1); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve panel slot")
	}
	return nil
}

// Release frees count slots, clamped at zero by the repository.
func (s *service) Release(ctx context.Context, tx *gorm.DB, panelID uuid.UUID, count int) error {
	if count <= 0 {
		return nil
	}
	if err := s.repo.WithTx(tx).AddUsed(ctx, panelID, -count); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release panel slots")
	}
	return nil
}

func validatePanelInput(name string, totalCapacity int, monthlyCost decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "panel name is required")
	}
	if totalCapacity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "total capacity cannot be negative")
	}
	if monthlyCost.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "monthly cost cannot be negative")
	}
	return nil
}
