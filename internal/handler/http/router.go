package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/config"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

const requestTimeout = 30 * time.Second

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	advanceHandler AdvanceHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(requestTimeout))
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/status", attendanceHandler.GetStatus)

				r.Group(func(r chi.Router) {
					r.Use(middleware.EmployeeOnly)
					r.Get("/me", attendanceHandler.GetMyAttendance)
					r.Get("/me/daily-summary", attendanceHandler.GetMyDailySummary)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", attendanceHandler.List)
					r.Get("/employees/{employeeID}", attendanceHandler.ListByEmployee)
					r.Get("/employees/{employeeID}/daily-summary", attendanceHandler.GetEmployeeDailySummary)
				})
			})

			r.Route("/payroll-periods", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.EmployeeOnly)
					r.Get("/{periodID}/slips/me", payrollHandler.GetMySlip)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", payrollHandler.CreatePeriod)
					r.Get("/", payrollHandler.ListPeriods)
					r.Get("/exportable", payrollHandler.ListExportablePeriods)
					r.Post("/relock", payrollHandler.Relock)
					r.Get("/{periodID}", payrollHandler.GetPeriod)
					r.Post("/{periodID}/lock", payrollHandler.LockPeriod)
					r.Get("/{periodID}/slips/{employeeID}", payrollHandler.GetSlip)
					r.Get("/{periodID}/slips/{employeeID}/export", payrollHandler.ExportSlip)
				})
			})

			r.Route("/advances", func(r chi.Router) {
				r.With(middleware.EmployeeOnly).Get("/me", advanceHandler.ListMine)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", advanceHandler.Create)
					r.Get("/", advanceHandler.List)
					r.Get("/employees/{employeeID}", advanceHandler.ListByEmployee)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/employees/{employeeID}", reportHandler.GetEmployeeReport)
				r.Get("/dashboard", reportHandler.GetDashboard)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
