package http

import (
	"log/slog"
	"os"

	"github.com/agencydesk/crm-backend-go/internal/handler/http/middleware"
	"github.com/agencydesk/crm-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	rosterHandler RosterHandler,
	shiftHandler ShiftHandler,
	kpiHandler KPIHandler,
	bonusRuleHandler BonusRuleHandler,
	payrollHandler PayrollHandler,
	dashboardHandler DashboardHandler,
	frontendURL string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "agencydesk-crm"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Me)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", userHandler.ListUsers)
					r.Post("/", userHandler.CreateUser)
					r.Get("/{id}", userHandler.GetUser)
					r.Put("/{id}", userHandler.UpdateUser)
				})
			})

			r.Route("/creators", func(r chi.Router) {
				r.Get("/", rosterHandler.ListCreators)
				r.Get("/{id}", rosterHandler.GetCreator)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", rosterHandler.CreateCreator)
					r.Put("/{id}", rosterHandler.UpdateCreator)
				})
			})

			r.Route("/assignments", func(r chi.Router) {
				r.Get("/", rosterHandler.ListAssignments)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", rosterHandler.Assign)
					r.Post("/{id}/primary", rosterHandler.SetPrimary)
					r.Delete("/{id}", rosterHandler.Unassign)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.ListShifts)
				r.Post("/clock-in", shiftHandler.ClockIn)
				r.Post("/clock-out", shiftHandler.ClockOut)

				// Supervisor or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.ApproverOnly)
					r.Post("/{id}/approve", shiftHandler.ApproveShift)
					r.Post("/{id}/deny", shiftHandler.DenyShift)
				})
			})

			r.Route("/kpi-snapshots", func(r chi.Router) {
				r.Get("/", kpiHandler.ListSnapshots)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", kpiHandler.CreateSnapshot)
				})
			})

			// Admin only
			r.Route("/bonus-rules", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", bonusRuleHandler.ListRules)
				r.Post("/", bonusRuleHandler.CreateRule)
				r.Post("/preview", bonusRuleHandler.Preview)
				r.Get("/{id}", bonusRuleHandler.GetRule)
				r.Put("/{id}", bonusRuleHandler.UpdateRule)
				r.Delete("/{id}", bonusRuleHandler.DeleteRule)
			})

			// Admin only
			r.Route("/pay-periods", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", payrollHandler.ListPeriods)
				r.Post("/", payrollHandler.CreatePeriod)
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Get("/", payrollHandler.ListPayrolls)
				r.Get("/{id}", payrollHandler.GetPayroll)

				// Supervisor or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.ApproverOnly)
					r.Post("/{id}/approve", payrollHandler.Approve)
					r.Get("/periods/{periodID}/export", payrollHandler.Export)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/generate", payrollHandler.Generate)
					r.Post("/{id}/apply-bonuses", payrollHandler.ApplyBonuses)
					r.Post("/{id}/bonuses", payrollHandler.AddManualBonus)
					r.Post("/{id}/revert", payrollHandler.Revert)
					r.Post("/{id}/mark-paid", payrollHandler.MarkPaid)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", dashboardHandler.GetStats)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/analytics/export", dashboardHandler.ExportAnalytics)
				})
			})
		})
	})
	return r
}
