package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var commissionCeiling = decimal.NewFromInt(100)

// Service owns project CRUD. A project ties payments to an owner and the
// commission percentage the operator keeps from that owner's income.
type Service interface {
	Create(ctx context.Context, input ProjectInput) (*models.Project, error)
	Update(ctx context.Context, id uuid.UUID, input ProjectInput) (*models.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectInput captures the data required to register or edit a project.
type ProjectInput struct {
	Name          string
	Owner         string
	Country       *string
	CommissionPct decimal.Decimal
}

type service struct {
	repo Repository
}

// NewService builds a projects service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("project repo required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input ProjectInput) (*models.Project, error) {
	if err := validateProjectInput(input); err != nil {
		return nil, err
	}
	project := &models.Project{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(input.Name),
		Owner:         strings.TrimSpace(input.Owner),
		Country:       input.Country,
		CommissionPct: input.CommissionPct,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create project")
	}
	return project, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input ProjectInput) (*models.Project, error) {
	if err := validateProjectInput(input); err != nil {
		return nil, err
	}
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Name = strings.TrimSpace(input.Name)
	project.Owner = strings.TrimSpace(input.Owner)
	project.Country = input.Country
	project.CommissionPct = input.CommissionPct
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update project")
	}
	return project, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find project")
	}
	return project, nil
}

func (s *service) List(ctx context.Context) ([]models.Project, error) {
	return s.repo.List(ctx)
}

func (s *service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// Delete removes the project. Payments keep their project_id; buckets that
// no longer resolve are skipped when a cut is computed.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete project")
	}
	return nil
}

func validateProjectInput(input ProjectInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "project name is required")
	}
	if strings.TrimSpace(input.Owner) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "project owner is required")
	}
	if input.CommissionPct.IsNegative() || input.CommissionPct.GreaterThan(commissionCeiling) {
		return pkgerrors.New(pkgerrors.CodeValidation, "commission must be between 0 and 100")
	}
	return nil
}
