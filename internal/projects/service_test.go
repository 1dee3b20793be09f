package projects

import (
	"context"
	"testing"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubProjectRepo struct {
	project *models.Project
	created *models.Project
	updated *models.Project
	deleted []uuid.UUID
}

func (r *stubProjectRepo) Create(ctx context.Context, project *models.Project) error {
	r.created = project
	return nil
}

func (r *stubProjectRepo) Update(ctx context.Context, project *models.Project) error {
	r.updated = project
	return nil
}

func (r *stubProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if r.project == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.project, nil
}

func (r *stubProjectRepo) List(ctx context.Context) ([]models.Project, error) { return nil, nil }

func (r *stubProjectRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.project != nil, nil
}

func (r *stubProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func newTestProjectService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceCreateTrimsFields(t *testing.T) {
	repo := &stubProjectRepo{}
	svc := newTestProjectService(t, repo)

	project, err := svc.Create(context.Background(), ProjectInput{
		Name:          "  Streaming Plus  ",
		Owner:         " Carlos ",
		CommissionPct: decimal.NewFromInt(30),
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if project.Name != "Streaming Plus" || project.Owner != "Carlos" {
		t.Fatalf("expected trimmed fields, got %q %q", project.Name, project.Owner)
	}
	if repo.created == nil {
		t.Fatal("expected repo create call")
	}
}

func TestServiceCommissionBounds(t *testing.T) {
	svc := newTestProjectService(t, &stubProjectRepo{})

	cases := []struct {
		name string
		pct  decimal.Decimal
		ok   bool
	}{
		{"zero", decimal.Zero, true},
		{"full", decimal.NewFromInt(100), true},
		{"fractional", decimal.NewFromFloat(33.33), true},
		{"negative", decimal.NewFromInt(-1), false},
		{"above ceiling", decimal.NewFromFloat(100.01), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), ProjectInput{
				Name:          "P",
				Owner:         "O",
				CommissionPct: tc.pct,
			})
			if tc.ok && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if !tc.ok {
				if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
					t.Fatalf("expected validation error, got %v", err)
				}
			}
		})
	}
}

func TestServiceCreateRequiresNameAndOwner(t *testing.T) {
	svc := newTestProjectService(t, &stubProjectRepo{})

	_, err := svc.Create(context.Background(), ProjectInput{Owner: "O", CommissionPct: decimal.NewFromInt(10)})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing name, got %v", err)
	}

	_, err = svc.Create(context.Background(), ProjectInput{Name: "P", CommissionPct: decimal.NewFromInt(10)})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing owner, got %v", err)
	}
}

func TestServiceDeleteUnknownProject(t *testing.T) {
	svc := newTestProjectService(t, &stubProjectRepo{})

	err := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
