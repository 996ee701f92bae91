package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hrms-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/ws"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/presence"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hrms-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hrms-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/hrms-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/file"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/leave"
	masterService "github.com/cmlabs-hris/hrms-backend-go/internal/service/master"
	notificationService "github.com/cmlabs-hris/hrms-backend-go/internal/service/notification"
	payrollService "github.com/cmlabs-hris/hrms-backend-go/internal/service/payroll"
	performanceService "github.com/cmlabs-hris/hrms-backend-go/internal/service/performance"
	reportService "github.com/cmlabs-hris/hrms-backend-go/internal/service/report"
	roleService "github.com/cmlabs-hris/hrms-backend-go/internal/service/role"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/signaling"
	userService "github.com/cmlabs-hris/hrms-backend-go/internal/service/user"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	logger.Info("database connected", "host", cfg.Database.Host, "name", cfg.Database.Name)

	jwtService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Cron.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Cron.Timezone, err)
	}

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	designationRepo := postgresql.NewDesignationRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	permissionRepo := postgresql.NewPermissionRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	balanceRepo := postgresql.NewLeaveBalanceRepository(db)
	requestRepo := postgresql.NewLeaveRequestRepository(db)
	componentRepo := postgresql.NewComponentTypeRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	appraisalRepo := postgresql.NewAppraisalRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	registry := presence.New()
	calls := signaling.NewCallTracker()
	socket := ws.New(cfg.Socket, cfg.CORS.AllowedOrigins, registry, calls, logger)
	pusher := signaling.NewPusher(registry, logger)

	uploads, err := storage.NewLocalStorage(cfg.Storage.UploadDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	fileService := file.NewFileService(uploads, cfg.Storage.MaxUploadSize)

	notifier := notificationService.NewNotificationService(notificationRepo, postgresql.NewRecipientDirectory(db), pusher, logger)
	authSvc := serviceAuth.NewAuthService(userRepo, jwtService)
	roleSvc := roleService.NewRoleService(tx, roleRepo, permissionRepo)
	employeeSvc := employeeService.NewEmployeeService(tx, userRepo, employeeRepo, balanceRepo, departmentRepo, designationRepo)
	masterSvc := masterService.NewMasterService(departmentRepo, designationRepo)
	userSvc := userService.NewUserService(userRepo, employeeRepo, balanceRepo, roleRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, balanceRepo, loc)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, employeeRepo, loc)
	balanceSvc := leave.NewBalanceService(balanceRepo, employeeRepo)
	requestSvc := leave.NewRequestService(tx, requestRepo, balanceRepo, employeeRepo, notifier, logger)
	payrollSvc := payrollService.NewPayrollService(tx, recordRepo, componentRepo, employeeRepo, notifier, logger)
	componentSvc := payrollService.NewComponentTypeService(componentRepo)
	performanceSvc := performanceService.NewPerformanceService(appraisalRepo, employeeRepo, notifier)
	reportSvc := reportService.NewReportService(reportRepo)

	router := appHTTP.NewRouter(jwtService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Master:       appHTTP.NewMasterHandler(masterSvc),
		User:         appHTTP.NewUserHandler(userSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
		Role:         appHTTP.NewRoleHandler(roleSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(requestSvc, balanceSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc, componentSvc),
		Performance:  appHTTP.NewPerformanceHandler(performanceSvc),
		Notification: appHTTP.NewNotificationHandler(notifier),
		Report:       appHTTP.NewReportHandler(reportSvc),
		Chat:         appHTTP.NewChatHandler(fileService, cfg.Storage.MaxUploadSize),
	}, appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		SocketPath:     cfg.Socket.Path,
		Socket:         socket,
		UploadDir:      uploads.Root(),
		UploadPrefix:   cfg.Storage.RoutePrefix,
	})

	scheduler := cron.NewScheduler(loc, cfg.Cron.JobTimeout, logger)
	if cfg.Cron.Enabled {
		if err := cron.NewAttendanceJobs(attendanceSvc, cfg.Cron.MarkAbsentSpec).RegisterJobs(scheduler); err != nil {
			return fmt.Errorf("register attendance jobs: %w", err)
		}
		if err := cron.NewLeaveJobs(balanceSvc, cfg.Cron.LeaveSeedSpec).RegisterJobs(scheduler); err != nil {
			return fmt.Errorf("register leave jobs: %w", err)
		}
		scheduler.Start()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if cfg.Cron.Enabled {
		scheduler.Stop(shutdownCtx)
	}
	if err := socket.Close(); err != nil {
		logger.Warn("close socket hub", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
