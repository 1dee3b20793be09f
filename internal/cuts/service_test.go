package cuts

import (
	"context"
	"testing"
	"time"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"github.com/dcastellanos/paneltrack-backend/pkg/enums"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubCutRepo struct {
	cuts    map[uuid.UUID]*models.WeeklyCut
	listed  []models.WeeklyCut
	rangeAt []time.Time
	deleted []uuid.UUID
}

func newStubCutRepo() *stubCutRepo {
	return &stubCutRepo{cuts: make(map[uuid.UUID]*models.WeeklyCut)}
}

func (r *stubCutRepo) Create(ctx context.Context, cut *models.WeeklyCut) error {
	r.cuts[cut.ID] = cut
	return nil
}

func (r *stubCutRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.WeeklyCut, error) {
	cut, ok := r.cuts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cut, nil
}

func (r *stubCutRepo) List(ctx context.Context) ([]models.WeeklyCut, error) {
	return r.listed, nil
}

func (r *stubCutRepo) ListByRange(ctx context.Context, from, to time.Time) ([]models.WeeklyCut, error) {
	r.rangeAt = []time.Time{from, to}
	return r.listed, nil
}

func (r *stubCutRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	delete(r.cuts, id)
	return nil
}

type stubPayments struct {
	payments []models.Payment
}

func (s stubPayments) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range s.payments {
		if p.Date.Before(from) || p.Date.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type stubProjects struct {
	projects []models.Project
}

func (s stubProjects) List(ctx context.Context) ([]models.Project, error) {
	return s.projects, nil
}

type stubPanels struct {
	panels []models.Panel
}

func (s stubPanels) ListByStatus(ctx context.Context, status enums.PanelStatus) ([]models.Panel, error) {
	var out []models.Panel
	for _, p := range s.panels {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestCutService(t *testing.T, repo Repository, pays stubPayments, projs stubProjects, pans stubPanels) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Payments: pays,
		Projects: projs,
		Panels:   pans,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func money(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func payment(clientID uuid.UUID, projectID *uuid.UUID, d time.Time, amount string) models.Payment {
	return models.Payment{
		ID:        uuid.New(),
		ClientID:  clientID,
		ProjectID: projectID,
		Date:      d,
		Amount:    money(amount),
		Method:    enums.PaymentMethodCash,
	}
}

func TestComputeRejectsNonFriday(t *testing.T) {
	svc := newTestCutService(t, newStubCutRepo(), stubPayments{}, stubProjects{}, stubPanels{})

	_, err := svc.Compute(context.Background(), day(2024, time.March, 4))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestComputeProjectBucket(t *testing.T) {
	project := models.Project{
		ID:            uuid.New(),
		Name:          "Streaming Plus",
		Owner:         "Carlos",
		CommissionPct: money("30"),
	}
	clientID := uuid.New()
	friday := day(2024, time.March, 1)
	svc := newTestCutService(t, newStubCutRepo(),
		stubPayments{payments: []models.Payment{
			payment(clientID, &project.ID, friday, "100"),
			payment(clientID, &project.ID, day(2024, time.March, 5), "50"),
		}},
		stubProjects{projects: []models.Project{project}},
		stubPanels{},
	)

	comp, err := svc.Compute(context.Background(), friday)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if !comp.WindowEnd.Equal(day(2024, time.March, 7)) {
		t.Fatalf("expected window end 2024-03-07, got %s", comp.WindowEnd)
	}
	if len(comp.Details) != 1 {
		t.Fatalf("expected one bucket, got %d", len(comp.Details))
	}
	d := comp.Details[0]
	if d.PaymentCount != 2 {
		t.Fatalf("expected 2 payments, got %d", d.PaymentCount)
	}
	if !d.Total.Equal(money("150")) {
		t.Fatalf("expected total 150, got %s", d.Total)
	}
	if !d.Commission.Equal(money("45")) {
		t.Fatalf("expected commission 45, got %s", d.Commission)
	}
	if !d.Payable.Equal(money("105")) {
		t.Fatalf("expected payable 105, got %s", d.Payable)
	}
	if !comp.TotalIncome.Equal(money("150")) || !comp.TotalCommission.Equal(money("45")) || !comp.TotalPayable.Equal(money("105")) {
		t.Fatalf("unexpected totals: income %s commission %s payable %s",
			comp.TotalIncome, comp.TotalCommission, comp.TotalPayable)
	}
}

func TestComputeUnassignedBucketKeptInFull(t *testing.T) {
	clientID := uuid.New()
	friday := day(2024, time.March, 1)
	svc := newTestCutService(t, newStubCutRepo(),
		stubPayments{payments: []models.Payment{
			payment(clientID, nil, friday, "20"),
			payment(clientID, nil, friday, "15.50"),
		}},
		stubProjects{},
		stubPanels{},
	)

	comp, err := svc.Compute(context.Background(), friday)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(comp.Details) != 1 {
		t.Fatalf("expected one bucket, got %d", len(comp.Details))
	}
	d := comp.Details[0]
	if d.ProjectID != nil {
		t.Fatal("expected nil project id on unassigned bucket")
	}
	if d.Name != "Sin proyecto" || d.Owner != "-" {
		t.Fatalf("unexpected unassigned bucket labels: %q %q", d.Name, d.Owner)
	}
	if !d.Commission.Equal(money("35.50")) {
		t.Fatalf("expected commission 35.50, got %s", d.Commission)
	}
	if !d.Payable.IsZero() {
		t.Fatalf("expected zero payable, got %s", d.Payable)
	}
	if !comp.TotalPayable.IsZero() {
		t.Fatalf("expected zero total payable, got %s", comp.TotalPayable)
	}
}

func TestComputeUnassignedBucketClosesList(t *testing.T) {
	project := models.Project{ID: uuid.New(), Name: "IPTV Gold", Owner: "Ana", CommissionPct: money("25")}
	clientID := uuid.New()
	friday := day(2024, time.March, 1)
	svc := newTestCutService(t, newStubCutRepo(),
		stubPayments{payments: []models.Payment{
			payment(clientID, nil, friday, "10"),
			payment(clientID, &project.ID, friday, "40"),
		}},
		stubProjects{projects: []models.Project{project}},
		stubPanels{},
	)

	comp, err := svc.Compute(context.Background(), friday)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(comp.Details) != 2 {
		t.Fatalf("expected two buckets, got %d", len(comp.Details))
	}
	if comp.Details[0].Name != "IPTV Gold" {
		t.Fatalf("expected project bucket first, got %q", comp.Details[0].Name)
	}
	if comp.Details[1].Name != "Sin proyecto" {
		t.Fatalf("expected unassigned bucket last, got %q", comp.Details[1].Name)
	}
}

func TestComputeSkipsUnresolvedProject(t *testing.T) {
	ghost := uuid.New()
	clientID := uuid.New()
	friday := day(2024, time.March, 1)
	svc := newTestCutService(t, newStubCutRepo(),
		stubPayments{payments: []models.Payment{
			payment(clientID, &ghost, friday, "99"),
		}},
		stubProjects{},
		stubPanels{},
	)

	comp, err := svc.Compute(context.Background(), friday)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(comp.Details) != 0 {
		t.Fatalf("expected no buckets, got %d", len(comp.Details))
	}
	if !comp.TotalIncome.IsZero() {
		t.Fatalf("expected zero income, got %s", comp.TotalIncome)
	}
}

func TestComputeExpensesFromActivePanels(t *testing.T) {
	friday := day(2024, time.March, 1)
	svc := newTestCutService(t, newStubCutRepo(),
		stubPayments{},
		stubProjects{},
		stubPanels{panels: []models.Panel{
			{ID: uuid.New(), Name: "A", MonthlyCost: money("40"), Status: enums.PanelStatusActive},
			{ID: uuid.New(), Name: "B", MonthlyCost: money("35"), Status: enums.PanelStatusActive},
			{ID: uuid.New(), Name: "C", MonthlyCost: money("100"), Status: enums.PanelStatusInactive},
		}},
	)

	comp, err := svc.Compute(context.Background(), friday)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	// 40/4 + 35/4 = 10 + 8.75; the inactive panel does not count.
	if !comp.TotalExpenses.Equal(money("18.75")) {
		t.Fatalf("expected expenses 18.75, got %s", comp.TotalExpenses)
	}
	if !comp.NetProfit.Equal(money("-18.75")) {
		t.Fatalf("expected net profit -18.75, got %s", comp.NetProfit)
	}
}

func TestComputeRoundsPerBucket(t *testing.T) {
	project := models.Project{ID: uuid.New(), Name: "Tercios", Owner: "Luz", CommissionPct: money("33.33")}
	clientID := uuid.New()
	friday := day(2024, time.March, 1)
	svc := newTestCutService(t, newStubCutRepo(),
		stubPayments{payments: []models.Payment{
			payment(clientID, &project.ID, friday, "10"),
		}},
		stubProjects{projects: []models.Project{project}},
		stubPanels{},
	)

	comp, err := svc.Compute(context.Background(), friday)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	d := comp.Details[0]
	if !d.Commission.Equal(money("3.33")) {
		t.Fatalf("expected commission 3.33, got %s", d.Commission)
	}
	if !d.Payable.Equal(money("6.67")) {
		t.Fatalf("expected payable 6.67, got %s", d.Payable)
	}
	drift := d.Total.Sub(d.Commission).Sub(d.Payable).Abs()
	if drift.GreaterThan(money("0.01")) {
		t.Fatalf("bucket drift above one cent: %s", drift)
	}
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	project := models.Project{ID: uuid.New(), Name: "Streaming Plus", Owner: "Carlos", CommissionPct: money("30")}
	clientID := uuid.New()
	friday := day(2024, time.March, 1)
	repo := newStubCutRepo()
	svc := newTestCutService(t, repo,
		stubPayments{payments: []models.Payment{
			payment(clientID, &project.ID, friday, "100"),
		}},
		stubProjects{projects: []models.Project{project}},
		stubPanels{},
	)

	comp, err := svc.Compute(context.Background(), friday)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	notes := "semana tranquila"
	saved, err := svc.Save(context.Background(), comp, &notes)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := svc.Get(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	details, err := loaded.DecodeDetails()
	if err != nil {
		t.Fatalf("decode details: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected one detail, got %d", len(details))
	}
	if details[0].ProjectID == nil || *details[0].ProjectID != project.ID {
		t.Fatal("expected project id preserved through snapshot")
	}
	if !details[0].Commission.Equal(money("30")) {
		t.Fatalf("expected commission 30, got %s", details[0].Commission)
	}
	if loaded.Notes == nil || *loaded.Notes != notes {
		t.Fatalf("expected notes preserved, got %v", loaded.Notes)
	}
}

func TestListMonthFilterUsesCalendarMonth(t *testing.T) {
	repo := newStubCutRepo()
	svc := newTestCutService(t, repo, stubPayments{}, stubProjects{}, stubPanels{})

	month := day(2024, time.March, 15)
	if _, err := svc.List(context.Background(), &month); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(repo.rangeAt) != 2 {
		t.Fatal("expected range query")
	}
	if !repo.rangeAt[0].Equal(day(2024, time.March, 1)) || !repo.rangeAt[1].Equal(day(2024, time.April, 1)) {
		t.Fatalf("expected march window, got %v", repo.rangeAt)
	}
}

func TestDeleteUnknownCut(t *testing.T) {
	svc := newTestCutService(t, newStubCutRepo(), stubPayments{}, stubProjects{}, stubPanels{})

	err := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
