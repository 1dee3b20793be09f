package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/dcastellanos/paneltrack-backend/internal/clients"
	"github.com/dcastellanos/paneltrack-backend/internal/payments"
	"github.com/dcastellanos/paneltrack-backend/internal/subscriptions"
	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
	"github.com/google/uuid"
)

type subscriptionLister interface {
	List(ctx context.Context) ([]models.Subscription, error)
}

type paymentLister interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Payment, error)
}

type clientLister interface {
	List(ctx context.Context) ([]models.Client, error)
}

// Events is everything happening on a single calendar date. All slices are
// non-nil so the JSON shape stays stable on empty days.
type Events struct {
	Renewals    []subscriptions.SubscriptionDTO `json:"renewals"`
	Expirations []subscriptions.SubscriptionDTO `json:"expirations"`
	Payments    []payments.PaymentDTO           `json:"payments"`
	NewClients  []clients.ClientDTO             `json:"new_clients"`
}

// Service projects the entity set onto calendar dates. Nothing is stored;
// every query scans the current entities.
type Service interface {
	EventsForDate(ctx context.Context, date time.Time) (*Events, error)
}

// ServiceParams groups dependencies for the calendar service.
type ServiceParams struct {
	Subscriptions subscriptionLister
	Payments      paymentLister
	Clients       clientLister
	Now           func() time.Time
}

type service struct {
	subs       subscriptionLister
	pays       paymentLister
	clientRepo clientLister
	now        func() time.Time
}

// NewService builds a calendar service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Subscriptions == nil {
		return nil, fmt.Errorf("subscription lister required")
	}
	if params.Payments == nil {
		return nil, fmt.Errorf("payment lister required")
	}
	if params.Clients == nil {
		return nil, fmt.Errorf("client lister required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		subs:       params.Subscriptions,
		pays:       params.Payments,
		clientRepo: params.Clients,
		now:        now,
	}, nil
}

// EventsForDate collects renewals, expirations, payments and first-time
// clients for the given date. A subscription's start date doubles as its
// renewal marker, so a renewal shows on the anniversary of the start rather
// than on each cycle boundary.
func (s *service) EventsForDate(ctx context.Context, date time.Time) (*Events, error) {
	day := models.DateOnly(date)
	today := s.now()

	subs, err := s.subs.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscriptions")
	}
	dayPayments, err := s.pays.ListByDateRange(ctx, day, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	allClients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list clients")
	}

	events := &Events{
		Renewals:    []subscriptions.SubscriptionDTO{},
		Expirations: []subscriptions.SubscriptionDTO{},
		Payments:    payments.FromModels(dayPayments),
		NewClients:  []clients.ClientDTO{},
	}

	firstStart := make(map[uuid.UUID]time.Time)
	for i := range subs {
		sub := &subs[i]
		start := models.DateOnly(sub.StartDate)
		if start.Equal(day) && sub.IsActive(today) {
			events.Renewals = append(events.Renewals, *subscriptions.FromModel(sub, today))
		}
		if models.DateOnly(sub.ExpirationDate).Equal(day) {
			events.Expirations = append(events.Expirations, *subscriptions.FromModel(sub, today))
		}
		if prev, ok := firstStart[sub.ClientID]; !ok || start.Before(prev) {
			firstStart[sub.ClientID] = start
		}
	}

	for i := range allClients {
		if first, ok := firstStart[allClients[i].ID]; ok && first.Equal(day) {
			events.NewClients = append(events.NewClients, *clients.FromModel(&allClients[i]))
		}
	}
	return events, nil
}
