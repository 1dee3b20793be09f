package cuts

import (
	"context"
	"encoding/json"
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

var oneHundred = decimal.NewFromInt(100)

type paymentLister interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Payment, error)
}

type projectLister interface {
	List(ctx context.Context) ([]models.Project, error)
}

type panelLister interface {
	ListByStatus(ctx context.Context, status enums.PanelStatus) ([]models.Panel, error)
}

// Computation is a weekly cut before it is saved: the reconciled window
// with per-project buckets and the derived totals.
type Computation struct {
	WindowStart     time.Time
	WindowEnd       time.Time
	TotalIncome     decimal.Decimal
	TotalCommission decimal.Decimal
	TotalPayable    decimal.Decimal
	TotalExpenses   decimal.Decimal
	NetProfit       decimal.Decimal
	Details         []models.CutDetail
}

// Service reconciles a Friday-to-Thursday payment window into per-project
// commission buckets and stores the result as an immutable snapshot.
type Service interface {
	Compute(ctx context.Context, windowStart time.Time) (*Computation, error)
	Save(ctx context.Context, comp *Computation, notes *string) (*models.WeeklyCut, error)
	Get(ctx context.Context, id uuid.UUID) (*models.WeeklyCut, error)
	List(ctx context.Context, month *time.Time) ([]models.WeeklyCut, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceParams groups dependencies for the cuts service.
type ServiceParams struct {
	Repo     Repository
	Payments paymentLister
	Projects projectLister
	Panels   panelLister
}

type service struct {
	repo     Repository
	payments paymentLister
	projects projectLister
	panels   panelLister
}

// NewService builds a cuts service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cut repo required")
	}
	if params.Payments == nil {
		return nil, fmt.Errorf("payment lister required")
	}
	if params.Projects == nil {
		return nil, fmt.Errorf("project lister required")
	}
	if params.Panels == nil {
		return nil, fmt.Errorf("panel lister required")
	}
	return &service{
		repo:     params.Repo,
		payments: params.Payments,
		projects: params.Projects,
		panels:   params.Panels,
	}, nil
}

// Compute reconciles the window starting at windowStart. Payments are
// bucketed by project; each bucket keeps commission = total × pct/100 and
// hands the remainder to the owner, rounded per bucket. Unattributed
// payments form a final bucket the operator keeps outright. Buckets whose
// project no longer exists are dropped from the cut entirely.
func (s *service) Compute(ctx context.Context, windowStart time.Time) (*Computation, error) {
	start := WeekStart(windowStart)
	if !start.Equal(models.DateOnly(windowStart)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "window start must be a friday")
	}
	end := WeekEnd(start)

	payments, err := s.payments.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list window payments")
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list projects")
	}
	activePanels, err := s.panels.ListByStatus(ctx, enums.PanelStatusActive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active panels")
	}

	byID := make(map[uuid.UUID]*models.Project, len(projects))
	for i := range projects {
		byID[projects[i].ID] = &projects[i]
	}

	// Buckets keep the order in which projects first appear in the window;
	// the unassigned bucket always closes the list.
	type bucket struct {
		project *models.Project
		count   int
		total   decimal.Decimal
	}
	var order []uuid.UUID
	assigned := make(map[uuid.UUID]*bucket)
	unassigned := &bucket{}

	for _, p := range payments {
		if p.ProjectID == nil {
			unassigned.count++
			unassigned.total = unassigned.total.Add(p.Amount)
			continue
		}
		b, ok := assigned[*p.ProjectID]
		if !ok {
			b = &bucket{project: byID[*p.ProjectID]}
			assigned[*p.ProjectID] = b
			order = append(order, *p.ProjectID)
		}
		b.count++
		b.total = b.total.Add(p.Amount)
	}

	comp := &Computation{WindowStart: start, WindowEnd: end}
	for _, id := range order {
		b := assigned[id]
		if b.project == nil {
			continue
		}
		total := b.total.Round(2)
		commission := b.total.Mul(b.project.CommissionPct).Div(oneHundred).Round(2)
		payable := b.total.Sub(b.total.Mul(b.project.CommissionPct).Div(oneHundred)).Round(2)

		projectID := id
		comp.Details = append(comp.Details, models.CutDetail{
			ProjectID:     &projectID,
			Name:          b.project.Name,
			Owner:         b.project.Owner,
			Country:       b.project.Country,
			PaymentCount:  b.count,
			Total:         total,
			CommissionPct: b.project.CommissionPct,
			Commission:    commission,
			Payable:       payable,
		})
		comp.TotalIncome = comp.TotalIncome.Add(total)
		comp.TotalCommission = comp.TotalCommission.Add(commission)
		comp.TotalPayable = comp.TotalPayable.Add(payable)
	}

	if unassigned.count > 0 {
		total := unassigned.total.Round(2)
		comp.Details = append(comp.Details, models.CutDetail{
			ProjectID:     nil,
			Name:          "Sin proyecto",
			Owner:         "-",
			PaymentCount:  unassigned.count,
			Total:         total,
			CommissionPct: oneHundred,
			Commission:    total,
			Payable:       decimal.Zero,
		})
		comp.TotalIncome = comp.TotalIncome.Add(total)
		comp.TotalCommission = comp.TotalCommission.Add(total)
	}

	for _, panel := range activePanels {
		comp.TotalExpenses = comp.TotalExpenses.Add(panel.MonthlyCost.DivRound(decimal.NewFromInt(4), 4))
	}
	comp.TotalExpenses = comp.TotalExpenses.Round(2)
	comp.NetProfit = comp.TotalCommission.Sub(comp.TotalExpenses)
	return comp, nil
}

// Save persists the computation as a new snapshot. Overlapping windows are
// allowed; history keeps every saved record.
func (s *service) Save(ctx context.Context, comp *Computation, notes *string) (*models.WeeklyCut, error) {
	if comp == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "computation is required")
	}
	details, err := json.Marshal(comp.Details)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cut details")
	}

	cut := &models.WeeklyCut{
		ID:              uuid.New(),
		WindowStart:     comp.WindowStart,
		WindowEnd:       comp.WindowEnd,
		TotalIncome:     comp.TotalIncome,
		TotalCommission: comp.TotalCommission,
		TotalPayable:    comp.TotalPayable,
		TotalExpenses:   comp.TotalExpenses,
		NetProfit:       comp.NetProfit,
		Details:         details,
		Notes:           notes,
	}
	if err := s.repo.Create(ctx, cut); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save weekly cut")
	}
	return cut, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.WeeklyCut, error) {
	cut, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "weekly cut not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find weekly cut")
	}
	return cut, nil
}

// List returns saved cuts newest first, optionally narrowed to the calendar
// month containing month.
func (s *service) List(ctx context.Context, month *time.Time) ([]models.WeeklyCut, error) {
	if month == nil {
		return s.repo.List(ctx)
	}
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return s.repo.ListByRange(ctx, from, from.AddDate(0, 1, 0))
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete weekly cut")
	}
	return nil
}
