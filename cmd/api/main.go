package main

import (
	"fmt"
	"net/http"

	"github.com/SanorSmith/Tibba-sub001/internal/config"
	appHTTP "github.com/SanorSmith/Tibba-sub001/internal/handler/http"
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/cron"
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/database"
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/jwt"
	"github.com/SanorSmith/Tibba-sub001/internal/repository/postgresql"
	attendanceService "github.com/SanorSmith/Tibba-sub001/internal/service/attendance"
	payrollService "github.com/SanorSmith/Tibba-sub001/internal/service/payroll"
	reportService "github.com/SanorSmith/Tibba-sub001/internal/service/report"
	revenueService "github.com/SanorSmith/Tibba-sub001/internal/service/revenue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	clockEventRepo := postgresql.NewClockEventRepository(db)
	dailyRecordRepo := postgresql.NewDailyRecordRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	revenueRepo := postgresql.NewRevenueRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	deriver := attendanceService.NewDeriver(cfg.Shift)
	capture := attendanceService.NewCaptureMachine(clockEventRepo, nil)
	attendanceSvc := attendanceService.NewAttendanceService(
		clockEventRepo,
		dailyRecordRepo,
		leaveRepo,
		employeeRepo,
		deriver,
		capture,
	)
	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		employeeRepo,
		clockEventRepo,
		leaveRepo,
		deriver,
		cfg.Rates,
		cfg.Shift,
	)
	revenueSvc := revenueService.NewRevenueService(revenueRepo)
	reportSvc := reportService.NewReportService(payrollRepo, employeeRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	revenueHandler := appHTTP.NewRevenueHandler(revenueSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		payrollHandler,
		revenueHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
