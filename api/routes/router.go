package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dcastellanos/paneltrack-backend/api/controllers"
	"github.com/dcastellanos/paneltrack-backend/api/middleware"
	"github.com/dcastellanos/paneltrack-backend/internal/calendar"
	"github.com/dcastellanos/paneltrack-backend/internal/clients"
	"github.com/dcastellanos/paneltrack-backend/internal/cuts"
	"github.com/dcastellanos/paneltrack-backend/internal/panels"
	"github.com/dcastellanos/paneltrack-backend/internal/payments"
	"github.com/dcastellanos/paneltrack-backend/internal/projects"
	"github.com/dcastellanos/paneltrack-backend/internal/subscriptions"
	"github.com/dcastellanos/paneltrack-backend/pkg/config"
	"github.com/dcastellanos/paneltrack-backend/pkg/db"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
)

// Services bundles everything the router exposes over HTTP.
type Services struct {
	Panels        panels.Service
	Clients       clients.Service
	Subscriptions subscriptions.Service
	Payments      payments.Service
	Projects      projects.Service
	Cuts          cuts.Service
	Calendar      calendar.Service
}

// NewRouter assembles the HTTP surface: health probes, Prometheus metrics
// and the authenticated REST API.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient db.Pinger,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, dbClient))

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/panels", func(r chi.Router) {
			r.Get("/", controllers.PanelList(svcs.Panels, logg))
			r.Post("/", controllers.PanelCreate(svcs.Panels, logg))
			r.Get("/{panelId}", controllers.PanelGet(svcs.Panels, logg))
			r.Put("/{panelId}", controllers.PanelUpdate(svcs.Panels, logg))
			r.Delete("/{panelId}", controllers.PanelDelete(svcs.Panels, logg))
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", controllers.ClientList(svcs.Clients, logg))
			r.Post("/", controllers.ClientCreate(svcs.Clients, logg))
			r.Get("/{clientId}", controllers.ClientGet(svcs.Clients, logg))
			r.Put("/{clientId}", controllers.ClientUpdate(svcs.Clients, logg))
			r.Delete("/{clientId}", controllers.ClientDelete(svcs.Clients, logg))
			r.Get("/{clientId}/subscriptions", controllers.ClientSubscriptions(svcs.Subscriptions, logg))
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/", controllers.SubscriptionList(svcs.Subscriptions, logg))
			r.Post("/", controllers.SubscriptionCreate(svcs.Subscriptions, logg))
			r.Post("/{subscriptionId}/renew", controllers.SubscriptionRenew(svcs.Subscriptions, logg))
			r.Delete("/{subscriptionId}", controllers.SubscriptionDelete(svcs.Subscriptions, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", controllers.PaymentList(svcs.Payments, logg))
			r.Post("/", controllers.PaymentCreate(svcs.Payments, logg))
			r.Delete("/{paymentId}", controllers.PaymentDelete(svcs.Payments, logg))
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", controllers.ProjectList(svcs.Projects, logg))
			r.Post("/", controllers.ProjectCreate(svcs.Projects, logg))
			r.Put("/{projectId}", controllers.ProjectUpdate(svcs.Projects, logg))
			r.Delete("/{projectId}", controllers.ProjectDelete(svcs.Projects, logg))
		})

		r.Route("/cuts", func(r chi.Router) {
			r.Get("/", controllers.CutList(svcs.Cuts, logg))
			r.Get("/preview", controllers.CutPreview(svcs.Cuts, logg))
			r.Post("/", controllers.CutSave(svcs.Cuts, logg))
			r.Get("/{cutId}", controllers.CutGet(svcs.Cuts, logg))
			r.Get("/{cutId}/share-text", controllers.CutShareText(svcs.Cuts, logg))
			r.Delete("/{cutId}", controllers.CutDelete(svcs.Cuts, logg))
		})

		r.Get("/calendar/{date}", controllers.CalendarEvents(svcs.Calendar, logg))
	})

	return r
}
