package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dcastellanos/paneltrack-backend/internal/notifications"
	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
	"github.com/google/uuid"
)

type stubSubLister struct {
	subs []models.Subscription
	err  error
}

func (s stubSubLister) List(ctx context.Context) ([]models.Subscription, error) {
	return s.subs, s.err
}

type stubClientGetter struct {
	clients map[uuid.UUID]*models.Client
	calls   int
}

func (s *stubClientGetter) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	s.calls++
	client, ok := s.clients[id]
	if !ok {
		return nil, errors.New("client not found")
	}
	return client, nil
}

func testDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newReminderJob(t *testing.T, subs stubSubLister, clients *stubClientGetter, now time.Time) *expiryReminderJob {
	t.Helper()
	job, err := NewExpiryReminderJob(ExpiryReminderJobParams{
		Logger:        logger.New(logger.Options{ServiceName: "test"}),
		Subscriptions: subs,
		Clients:       clients,
		Now:           func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	return job.(*expiryReminderJob)
}

func TestExpiryReminderClassify(t *testing.T) {
	job := newReminderJob(t, stubSubLister{}, &stubClientGetter{}, testDay(2024, time.March, 10))
	today := testDay(2024, time.March, 10)

	cases := []struct {
		name       string
		expiration time.Time
		kind       notifications.ReminderKind
		ok         bool
	}{
		{"due today", today, notifications.ReminderDueToday, true},
		{"tomorrow", testDay(2024, time.March, 11), notifications.ReminderUpcoming, true},
		{"lead edge", testDay(2024, time.March, 13), notifications.ReminderUpcoming, true},
		{"past lead", testDay(2024, time.March, 14), "", false},
		{"yesterday", testDay(2024, time.March, 9), notifications.ReminderOverdue, true},
		{"grace edge", testDay(2024, time.March, 3), notifications.ReminderOverdue, true},
		{"past grace", testDay(2024, time.March, 2), "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := job.classify(today, tc.expiration)
			if ok != tc.ok || kind != tc.kind {
				t.Fatalf("classify(%s): expected (%s,%v) got (%s,%v)",
					tc.expiration.Format("2006-01-02"), tc.kind, tc.ok, kind, ok)
			}
		})
	}
}

func TestExpiryReminderRunSkipsDistantSubscriptions(t *testing.T) {
	clientID := uuid.New()
	now := testDay(2024, time.March, 10)
	subs := stubSubLister{subs: []models.Subscription{
		{ID: uuid.New(), ClientID: clientID, ExpirationDate: testDay(2024, time.March, 11)},
		{ID: uuid.New(), ClientID: clientID, ExpirationDate: testDay(2024, time.June, 1)},
	}}
	clients := &stubClientGetter{clients: map[uuid.UUID]*models.Client{
		clientID: {ID: clientID, Name: "Maria", WhatsApp: "584121234567"},
	}}
	job := newReminderJob(t, subs, clients, now)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if clients.calls != 1 {
		t.Fatalf("expected one client lookup, got %d", clients.calls)
	}
}

func TestExpiryReminderRunAggregatesFailures(t *testing.T) {
	known := uuid.New()
	now := testDay(2024, time.March, 10)
	subs := stubSubLister{subs: []models.Subscription{
		{ID: uuid.New(), ClientID: uuid.New(), ExpirationDate: now},
		{ID: uuid.New(), ClientID: known, ExpirationDate: now},
	}}
	clients := &stubClientGetter{clients: map[uuid.UUID]*models.Client{
		known: {ID: known, Name: "Maria", WhatsApp: "584121234567"},
	}}
	job := newReminderJob(t, subs, clients, now)

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected aggregated error for unknown client")
	}
	if clients.calls != 2 {
		t.Fatalf("expected both subscriptions attempted, got %d lookups", clients.calls)
	}
}
