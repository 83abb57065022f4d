package router

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	_ "medicine-cabinet/docs"

	mem "medicine-cabinet/internal/adapters/storage/memory"
	"medicine-cabinet/internal/config"
	"medicine-cabinet/internal/domain/dashboard"
	"medicine-cabinet/internal/domain/expiration"
	"medicine-cabinet/internal/domain/medicines"
	"medicine-cabinet/internal/domain/members"
	"medicine-cabinet/internal/domain/reminders"
	"medicine-cabinet/internal/middleware"
	"medicine-cabinet/internal/platform/logger"
	"medicine-cabinet/internal/platform/metrics"
	"medicine-cabinet/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	Logger  *slog.Logger
	Metrics *metrics.Metrics // nil = registry propio nuevo

	// Now reemplaza el reloj de todos los servicios (tests).
	Now func() time.Time

	Cabinet   config.Cabinet
	RateLimit config.RateLimit
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.Recover(log))
	r.Use(middleware.RateLimit(opts.RateLimit.RPS, opts.RateLimit.Burst, log))

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// Repos in-memory (la persistencia no sobrevive al proceso)
	medicineRepo := mem.NewMedicineRepo()
	memberRepo := mem.NewMemberRepo()
	reminderRepo := mem.NewReminderRepo()

	policy := expiration.DefaultPolicy()
	if opts.Cabinet.WarningHorizonDays > 0 {
		policy.WarningHorizonDays = opts.Cabinet.WarningHorizonDays
	}

	// Services por módulo
	medicinesSvc := medicines.NewService(medicineRepo, medicines.Options{
		Policy:             policy,
		RequireOpeningDate: opts.Cabinet.RequireOpeningDate,
		Logger:             log,
		OnStatus: func(s expiration.Severity) {
			m.ObserveSeverity(string(s))
		},
	})
	membersSvc := members.NewService(memberRepo, log)
	remindersSvc := reminders.NewService(reminderRepo, reminders.Options{
		Logger: log,
		OnAlert: func(s reminders.StockStatus) {
			m.ObserveStockAlert(string(s))
		},
	})
	dashboardSvc := dashboard.NewService(medicinesSvc, remindersSvc)

	if opts.Now != nil {
		medicinesSvc.SetClock(opts.Now)
		membersSvc.SetClock(opts.Now)
		remindersSvc.SetClock(opts.Now)
		dashboardSvc.SetClock(opts.Now)
	}

	if household := strings.TrimSpace(opts.Cabinet.SeedDemoHousehold); household != "" {
		seedDemo(log, household, medicinesSvc, membersSvc, remindersSvc)
	}

	// Rutas por módulo
	medicines.RegisterRoutes(r, medicinesSvc)
	members.RegisterRoutes(r, membersSvc)
	reminders.RegisterRoutes(r, remindersSvc)
	dashboard.RegisterRoutes(r, dashboardSvc)

	return r
}

// seedDemo carga los datos de ejemplo. Un fallo se loguea pero no impide arrancar.
func seedDemo(log *slog.Logger, household string, med *medicines.Service, fam *members.Service, rem *reminders.Service) {
	ctx := context.Background()
	seeders := []struct {
		name string
		fn   func(context.Context, string) error
	}{
		{"medicines", med.Seed},
		{"members", fam.Seed},
		{"reminders", rem.Seed},
	}
	for _, s := range seeders {
		if err := s.fn(ctx, household); err != nil {
			log.Error("seed failed", slog.String("module", s.name), logger.Err(err))
		}
	}
	log.Info("demo household seeded", slog.String("household_id", household))
}
