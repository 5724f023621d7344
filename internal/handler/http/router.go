package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/SanorSmith/Tibba-sub001/internal/handler/http/middleware"
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	revenueHandler RevenueHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "tibba"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/scan", attendanceHandler.Scan)
				r.Get("/records", attendanceHandler.ListRecords)
				r.Post("/materialize/{date}", attendanceHandler.Materialize)
				r.Get("/{employeeID}/{date}", attendanceHandler.GetDaily)
			})

			r.Route("/payroll/periods", func(r chi.Router) {
				r.Get("/", payrollHandler.ListPeriods)
				r.Post("/", payrollHandler.CreatePeriod)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetPeriod)
					r.Post("/calculate", payrollHandler.Calculate)
					r.Post("/approve", payrollHandler.Approve)
					r.Post("/pay", payrollHandler.Pay)
					r.Get("/lines", payrollHandler.ListLines)
					r.Get("/totals/{employeeID}", payrollHandler.GetPeriodTotals)
					r.Get("/bank-transfer", reportHandler.BankTransferCSV)
					r.Get("/payslips/{employeeID}", reportHandler.PayslipPDF)
				})
			})

			r.Route("/revenue", func(r chi.Router) {
				r.Route("/invoice-lines/{invoiceLineID}/shares", func(r chi.Router) {
					r.Post("/", revenueHandler.AllocateShares)
					r.Get("/", revenueHandler.ListShares)
				})
				r.Put("/shares/{shareID}/payment", revenueHandler.UpdateSharePayment)
			})
		})
	})
	return r
}
