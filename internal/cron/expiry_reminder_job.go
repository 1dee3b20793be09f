package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/dcastellanos/paneltrack-backend/internal/notifications"
	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

const (
	defaultReminderLeadDays = 3
	defaultOverdueGraceDays = 7
)

type subscriptionLister interface {
	List(ctx context.Context) ([]models.Subscription, error)
}

type clientGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Client, error)
}

// ExpiryReminderJobParams configures the renewal reminder sweep.
type ExpiryReminderJobParams struct {
	Logger        *logger.Logger
	Subscriptions subscriptionLister
	Clients       clientGetter
	LeadDays      int
	GraceDays     int
	Now           func() time.Time
}

// NewExpiryReminderJob builds the daily sweep that surfaces WhatsApp
// reminder links for subscriptions near or past expiration.
func NewExpiryReminderJob(params ExpiryReminderJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Subscriptions == nil {
		return nil, fmt.Errorf("subscription lister required")
	}
	if params.Clients == nil {
		return nil, fmt.Errorf("client getter required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	lead := params.LeadDays
	if lead <= 0 {
		lead = defaultReminderLeadDays
	}
	grace := params.GraceDays
	if grace <= 0 {
		grace = defaultOverdueGraceDays
	}
	return &expiryReminderJob{
		logg:    params.Logger,
		subs:    params.Subscriptions,
		clients: params.Clients,
		lead:    lead,
		grace:   grace,
		now:     now,
	}, nil
}

type expiryReminderJob struct {
	logg    *logger.Logger
	subs    subscriptionLister
	clients clientGetter
	lead    int
	grace   int
	now     func() time.Time
}

func (j *expiryReminderJob) Name() string { return "expiry-reminder" }

// Run scans every subscription once and logs a prefilled reminder link for
// each one expiring soon, today, or within the overdue grace window. The
// operator sends the messages; this job only prepares them.
func (j *expiryReminderJob) Run(ctx context.Context) error {
	subs, err := j.subs.List(ctx)
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}

	today := models.DateOnly(j.now())
	var errs error
	reminders := 0
	for i := range subs {
		kind, ok := j.classify(today, models.DateOnly(subs[i].ExpirationDate))
		if !ok {
			continue
		}
		if err := j.remind(ctx, &subs[i], kind); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		reminders++
	}

	reportCtx := j.logg.WithFields(ctx, map[string]any{
		"scanned":   len(subs),
		"reminders": reminders,
	})
	j.logg.Info(reportCtx, "expiry reminder sweep complete")
	return errs
}

func (j *expiryReminderJob) classify(today, expiration time.Time) (notifications.ReminderKind, bool) {
	days := int(expiration.Sub(today).Hours() / 24)
	switch {
	case days == 0:
		return notifications.ReminderDueToday, true
	case days > 0 && days <= j.lead:
		return notifications.ReminderUpcoming, true
	case days < 0 && -days <= j.grace:
		return notifications.ReminderOverdue, true
	default:
		return "", false
	}
}

func (j *expiryReminderJob) remind(ctx context.Context, sub *models.Subscription, kind notifications.ReminderKind) error {
	client, err := j.clients.Get(ctx, sub.ClientID)
	if err != nil {
		return fmt.Errorf("load client %s: %w", sub.ClientID, err)
	}
	link, err := notifications.ReminderURL(client, sub.ExpirationDate, kind)
	if err != nil {
		return fmt.Errorf("build reminder for client %s: %w", client.ID, err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"subscription_id": sub.ID,
		"client_id":       client.ID,
		"kind":            string(kind),
		"expires":         sub.ExpirationDate.Format("2006-01-02"),
		"link":            link,
	})
	j.logg.Info(logCtx, "renewal reminder ready")
	return nil
}
