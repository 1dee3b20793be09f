package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type subscriptionLister interface {
	ListByClientIDWithTx(tx *gorm.DB, clientID uuid.UUID) ([]models.Subscription, error)
	DeleteByClientIDWithTx(tx *gorm.DB, clientID uuid.UUID) error
}

type capacityReleaser interface {
	Release(ctx context.Context, tx *gorm.DB, panelID uuid.UUID, count int) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns client CRUD. Deleting a client also tears down its
// subscriptions and hands the freed slots back to their panels.
type Service interface {
	Create(ctx context.Context, input ClientInput) (*models.Client, error)
	Update(ctx context.Context, id uuid.UUID, input ClientInput) (*models.Client, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceParams groups dependencies for the clients service.
type ServiceParams struct {
	Repo              Repository
	SubscriptionRepo  subscriptionLister
	Panels            capacityReleaser
	TransactionRunner txRunner
}

// ClientInput captures the data required to register or edit a client.
type ClientInput struct {
	Name     string
	WhatsApp string
	Country  *string
}

type service struct {
	repo     Repository
	subRepo  subscriptionLister
	panels   capacityReleaser
	txRunner txRunner
}

// NewService builds a clients service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("client repo required")
	}
	if params.SubscriptionRepo == nil {
		return nil, fmt.Errorf("subscription repo required")
	}
	if params.Panels == nil {
		return nil, fmt.Errorf("capacity releaser required")
	}
	if params.TransactionRunner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:     params.Repo,
		subRepo:  params.SubscriptionRepo,
		panels:   params.Panels,
		txRunner: params.TransactionRunner,
	}, nil
}

func (s *service) Create(ctx context.Context, input ClientInput) (*models.Client, error) {
	if err := validateClientInput(input); err != nil {
		return nil, err
	}
	client := &models.Client{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(input.Name),
		WhatsApp: strings.TrimSpace(input.WhatsApp),
		Country:  input.Country,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create client")
	}
	return client, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input ClientInput) (*models.Client, error) {
	if err := validateClientInput(input); err != nil {
		return nil, err
	}
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	client.Name = strings.TrimSpace(input.Name)
	client.WhatsApp = strings.TrimSpace(input.WhatsApp)
	client.Country = input.Country
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update client")
	}
	return client, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find client")
	}
	return client, nil
}

func (s *service) List(ctx context.Context) ([]models.Client, error) {
	return s.repo.List(ctx)
}

func (s *service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// Delete removes the client, its subscriptions and the capacity they held,
// all in one transaction. Releases are grouped so each panel gets a single
// combined decrement no matter how many subscriptions pointed at it.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		subs, err := s.subRepo.ListByClientIDWithTx(tx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list client subscriptions")
		}

		perPanel := make(map[uuid.UUID]int)
		for _, sub := range subs {
			perPanel[sub.PanelID]++
		}

		if err := s.subRepo.DeleteByClientIDWithTx(tx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete client subscriptions")
		}
		for panelID, count := range perPanel {
			if err := s.panels.Release(ctx, tx, panelID, count); err != nil {
				return err
			}
		}
		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete client")
		}
		return nil
	})
}

func validateClientInput(input ClientInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "client name is required")
	}
	if strings.TrimSpace(input.WhatsApp) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "client whatsapp number is required")
	}
	return nil
}
