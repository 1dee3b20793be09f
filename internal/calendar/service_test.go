package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"github.com/dcastellanos/paneltrack-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stubSubs struct {
	subs []models.Subscription
}

func (s stubSubs) List(ctx context.Context) ([]models.Subscription, error) { return s.subs, nil }

type stubPays struct {
	payments []models.Payment
}

func (s stubPays) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range s.payments {
		if p.Date.Before(from) || p.Date.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type stubClients struct {
	clients []models.Client
}

func (s stubClients) List(ctx context.Context) ([]models.Client, error) { return s.clients, nil }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestCalendar(t *testing.T, subs stubSubs, pays stubPays, cls stubClients, now time.Time) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Subscriptions: subs,
		Payments:      pays,
		Clients:       cls,
		Now:           func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestEventsForDateEmptyDayKeepsShape(t *testing.T) {
	svc := newTestCalendar(t, stubSubs{}, stubPays{}, stubClients{}, day(2024, time.March, 1))

	events, err := svc.EventsForDate(context.Background(), day(2024, time.March, 1))
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if events.Renewals == nil || events.Expirations == nil || events.Payments == nil || events.NewClients == nil {
		t.Fatal("expected all event slices non-nil")
	}
	if len(events.Renewals)+len(events.Expirations)+len(events.Payments)+len(events.NewClients) != 0 {
		t.Fatal("expected no events")
	}
}

func TestEventsForDateRenewalsAndExpirations(t *testing.T) {
	clientID := uuid.New()
	active := models.Subscription{
		ID:             uuid.New(),
		ClientID:       clientID,
		PanelID:        uuid.New(),
		Service:        "Netflix",
		StartDate:      day(2024, time.March, 1),
		ExpirationDate: day(2024, time.March, 31),
		Price:          decimal.NewFromInt(10),
	}
	lapsed := models.Subscription{
		ID:             uuid.New(),
		ClientID:       clientID,
		PanelID:        uuid.New(),
		Service:        "Disney",
		StartDate:      day(2024, time.March, 1),
		ExpirationDate: day(2024, time.March, 5),
		Price:          decimal.NewFromInt(8),
	}
	today := day(2024, time.March, 10)
	svc := newTestCalendar(t, stubSubs{subs: []models.Subscription{active, lapsed}}, stubPays{}, stubClients{}, today)

	events, err := svc.EventsForDate(context.Background(), day(2024, time.March, 1))
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	// Only the still-active subscription counts as a renewal marker.
	if len(events.Renewals) != 1 || events.Renewals[0].Service != "Netflix" {
		t.Fatalf("expected one active renewal, got %+v", events.Renewals)
	}

	events, err = svc.EventsForDate(context.Background(), day(2024, time.March, 5))
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events.Expirations) != 1 || events.Expirations[0].Service != "Disney" {
		t.Fatalf("expected one expiration, got %+v", events.Expirations)
	}
}

func TestEventsForDatePayments(t *testing.T) {
	clientID := uuid.New()
	pays := stubPays{payments: []models.Payment{
		{ID: uuid.New(), ClientID: clientID, Date: day(2024, time.March, 3), Amount: decimal.NewFromInt(10), Method: enums.PaymentMethodCash},
		{ID: uuid.New(), ClientID: clientID, Date: day(2024, time.March, 4), Amount: decimal.NewFromInt(20), Method: enums.PaymentMethodCash},
	}}
	svc := newTestCalendar(t, stubSubs{}, pays, stubClients{}, day(2024, time.March, 10))

	events, err := svc.EventsForDate(context.Background(), day(2024, time.March, 3))
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events.Payments) != 1 {
		t.Fatalf("expected one payment, got %d", len(events.Payments))
	}
}

func TestEventsForDateNewClients(t *testing.T) {
	client := models.Client{ID: uuid.New(), Name: "Maria", WhatsApp: "+58412"}
	subs := stubSubs{subs: []models.Subscription{
		{
			ID:             uuid.New(),
			ClientID:       client.ID,
			PanelID:        uuid.New(),
			Service:        "Netflix",
			StartDate:      day(2024, time.March, 1),
			ExpirationDate: day(2024, time.March, 31),
		},
		{
			ID:             uuid.New(),
			ClientID:       client.ID,
			PanelID:        uuid.New(),
			Service:        "Disney",
			StartDate:      day(2024, time.March, 15),
			ExpirationDate: day(2024, time.April, 14),
		},
	}}
	svc := newTestCalendar(t, subs, stubPays{}, stubClients{clients: []models.Client{client}}, day(2024, time.March, 20))

	events, err := svc.EventsForDate(context.Background(), day(2024, time.March, 1))
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events.NewClients) != 1 || events.NewClients[0].Name != "Maria" {
		t.Fatalf("expected new client on first start date, got %+v", events.NewClients)
	}

	// The second subscription is not the client's first, so no new-client
	// marker on its start date.
	events, err = svc.EventsForDate(context.Background(), day(2024, time.March, 15))
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events.NewClients) != 0 {
		t.Fatalf("expected no new clients, got %+v", events.NewClients)
	}
}
