package payments

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

type stubPaymentRepo struct {
	payment *models.Payment
	created *models.Payment
	deleted []uuid.UUID
}

func (r *stubPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	r.created = payment
	return nil
}

func (r *stubPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	if r.payment == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.payment, nil
}

func (r *stubPaymentRepo) List(ctx context.Context) ([]models.Payment, error) { return nil, nil }

func (r *stubPaymentRepo) ListByClientID(ctx context.Context, clientID uuid.UUID) ([]models.Payment, error) {
	return nil, nil
}

func (r *stubPaymentRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Payment, error) {
	return nil, nil
}

func (r *stubPaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	return nil
}

type stubClients struct {
	exists bool
}

func (s stubClients) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists, nil
}

type stubProjects struct {
	exists bool
}

func (s stubProjects) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists, nil
}

func newTestPaymentService(t *testing.T, repo Repository, clients clientChecker) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Clients: clients, Projects: stubProjects{exists: true}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func validInput() CreatePaymentInput {
	return CreatePaymentInput{
		ClientID: uuid.New(),
		Date:     time.Date(2024, time.March, 1, 15, 30, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(10),
		Method:   enums.PaymentMethodZelle,
	}
}

func TestServiceCreateStripsClockFromDate(t *testing.T) {
	repo := &stubPaymentRepo{}
	svc := newTestPaymentService(t, repo, stubClients{exists: true})

	payment, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	want := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !payment.Date.Equal(want) {
		t.Fatalf("expected date-only %s, got %s", want, payment.Date)
	}
	if repo.created == nil {
		t.Fatal("expected payment persisted")
	}
}

func TestServiceCreateUnknownClient(t *testing.T) {
	svc := newTestPaymentService(t, &stubPaymentRepo{}, stubClients{exists: false})

	_, err := svc.Create(context.Background(), validInput())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceCreateUnknownProject(t *testing.T) {
	repo := &stubPaymentRepo{}
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Clients:  stubClients{exists: true},
		Projects: stubProjects{exists: false},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	projectID := uuid.New()
	input := validInput()
	input.ProjectID = &projectID

	_, err = svc.Create(context.Background(), input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("expected no payment persisted")
	}
}

func TestServiceCreateKnownProject(t *testing.T) {
	repo := &stubPaymentRepo{}
	svc := newTestPaymentService(t, repo, stubClients{exists: true})

	projectID := uuid.New()
	input := validInput()
	input.ProjectID = &projectID

	payment, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if payment.ProjectID == nil || *payment.ProjectID != projectID {
		t.Fatalf("expected project id kept, got %v", payment.ProjectID)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newTestPaymentService(t, &stubPaymentRepo{}, stubClients{exists: true})
	usd := enums.CurrencyUSD
	bad := enums.Currency("EUR")
	amount := decimal.NewFromInt(380)

	cases := []struct {
		name   string
		mutate func(*CreatePaymentInput)
	}{
		{"zero date", func(in *CreatePaymentInput) { in.Date = time.Time{} }},
		{"zero amount", func(in *CreatePaymentInput) { in.Amount = decimal.Zero }},
		{"negative amount", func(in *CreatePaymentInput) { in.Amount = decimal.NewFromInt(-5) }},
		{"bad method", func(in *CreatePaymentInput) { in.Method = "check" }},
		{"orphan original amount", func(in *CreatePaymentInput) { in.OriginalAmount = &amount }},
		{"orphan original currency", func(in *CreatePaymentInput) { in.OriginalCurrency = &usd }},
		{"bad currency", func(in *CreatePaymentInput) {
			in.OriginalAmount = &amount
			in.OriginalCurrency = &bad
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := svc.Create(context.Background(), input)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestServiceCreateKeepsOriginalPair(t *testing.T) {
	repo := &stubPaymentRepo{}
	svc := newTestPaymentService(t, repo, stubClients{exists: true})

	amount := decimal.NewFromInt(380)
	ves := enums.CurrencyVES
	input := validInput()
	input.OriginalAmount = &amount
	input.OriginalCurrency = &ves

	payment, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if payment.OriginalAmount == nil || !payment.OriginalAmount.Equal(amount) {
		t.Fatalf("expected original amount kept, got %v", payment.OriginalAmount)
	}
	if payment.OriginalCurrency == nil || *payment.OriginalCurrency != ves {
		t.Fatalf("expected original currency kept, got %v", payment.OriginalCurrency)
	}
}

func TestServiceDeleteUnknownPayment(t *testing.T) {
	svc := newTestPaymentService(t, &stubPaymentRepo{}, stubClients{exists: true})

	err := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
