package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers bundles every REST handler mounted by NewRouter.
type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Master       MasterHandler
	User         UserHandler
	Dashboard    DashboardHandler
	Role         RoleHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Payroll      PayrollHandler
	Performance  PerformanceHandler
	Notification NotificationHandler
	Report       ReportHandler
	Chat         ChatHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	SocketPath     string
	Socket         http.Handler
	UploadDir      string
	UploadPrefix   string
}

var (
	privileged = middleware.RequireRole(user.RoleAdmin, user.RoleHR)
	can        = middleware.RequireCapability
)

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	if opts.Socket != nil {
		path := opts.SocketPath
		if path == "" {
			path = "/ws"
		}
		r.Handle(path, opts.Socket)
	}

	if opts.UploadDir != "" {
		prefix := strings.TrimRight(opts.UploadPrefix, "/")
		if !strings.HasPrefix(prefix, "/") {
			prefix = "/uploads"
		}
		r.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(opts.UploadDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/auth/me", h.Auth.Me)

			r.Route("/employees", func(r chi.Router) {
				r.With(can(user.CapEmployeesAdd)).Post("/", h.Employee.Onboard)
				r.With(can(user.CapEmployeesView)).Get("/", h.Employee.List)
				r.Get("/{id}", h.Employee.GetByID)
				r.With(privileged, can(user.CapEmployeesEdit)).Put("/{id}", h.Employee.Update)
				r.With(privileged, can(user.CapEmployeesEdit)).Delete("/{id}", h.Employee.Delete)
			})

			r.Route("/departments", func(r chi.Router) {
				r.With(privileged, can(user.CapDepartmentsView)).Get("/", h.Master.ListDepartments)
				r.With(privileged, can(user.CapDepartmentsView)).Get("/{id}", h.Master.GetDepartment)
				r.With(can(user.CapDepartmentsAdd)).Post("/", h.Master.CreateDepartment)
				r.With(can(user.CapDepartmentsEdit)).Put("/{id}", h.Master.UpdateDepartment)
				r.With(can(user.CapDepartmentsEdit)).Delete("/{id}", h.Master.DeleteDepartment)
			})

			r.Route("/designations", func(r chi.Router) {
				r.With(privileged, can(user.CapDesignationsView)).Get("/", h.Master.ListDesignations)
				r.With(privileged, can(user.CapDesignationsView)).Get("/{id}", h.Master.GetDesignation)
				r.With(can(user.CapDesignationsAdd)).Post("/", h.Master.CreateDesignation)
				r.With(can(user.CapDesignationsEdit)).Put("/{id}", h.Master.UpdateDesignation)
				r.With(can(user.CapDesignationsEdit)).Delete("/{id}", h.Master.DeleteDesignation)
			})

			// Self access to /users/{id} is decided by the service.
			r.Route("/users", func(r chi.Router) {
				r.With(can(user.CapUsersView)).Get("/", h.User.List)
				r.Get("/{id}", h.User.GetByID)
				r.Put("/{id}", h.User.Update)
			})

			r.With(can(user.CapDashboardView)).Get("/dashboard/stats", h.Dashboard.Stats)

			r.Route("/roles", func(r chi.Router) {
				r.With(can(user.CapRolesView)).Get("/", h.Role.List)
				r.With(can(user.CapRolesView)).Get("/{id}", h.Role.GetByID)
				r.With(can(user.CapRolesAdd)).Post("/", h.Role.Create)
				r.With(can(user.CapRolesEdit)).Put("/{id}", h.Role.Update)
				r.With(can(user.CapRolesDelete)).Delete("/{id}", h.Role.Delete)
			})
			r.With(can(user.CapRolesView)).Get("/permissions", h.Role.Permissions)

			r.Route("/attendance", func(r chi.Router) {
				r.With(can(user.CapAttendanceAdd), middleware.RequireEmployee).Post("/clock", h.Attendance.Clock)
				r.With(can(user.CapAttendanceView)).Get("/summary", h.Attendance.Summary)
				r.With(can(user.CapAttendanceView), middleware.RequireEmployee).Get("/me", h.Attendance.GetMyAttendance)
				r.With(middleware.RequireRole(user.RoleManager), middleware.RequireEmployee).Get("/team", h.Attendance.ListTeam)
				r.With(privileged).Get("/", h.Attendance.List)
				r.With(privileged, can(user.CapAttendanceEdit)).Put("/{id}", h.Attendance.Update)
				r.With(privileged).Post("/bulk", h.Attendance.BulkMark)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.With(can(user.CapLeavesApply, user.CapLeavesApprove)).Post("/", h.Leave.Apply)
				r.With(can(user.CapLeavesView), middleware.RequireEmployee).Get("/me", h.Leave.GetMyRequests)
				r.With(can(user.CapLeavesTeam), middleware.RequireEmployee).Get("/team", h.Leave.ListTeam)
				r.With(privileged).Get("/", h.Leave.ListRequests)
				r.With(can(user.CapLeavesView)).Get("/{id}", h.Leave.GetRequest)
				r.With(can(user.CapLeavesView)).Put("/{id}", h.Leave.UpdateRequest)
				r.With(can(user.CapLeavesApprove, user.CapLeavesReject)).Patch("/{id}/status", h.Leave.UpdateStatus)
				r.With(can(user.CapLeavesView)).Post("/{id}/cancel", h.Leave.Cancel)
			})

			r.Route("/leave-balance/{employeeId}", func(r chi.Router) {
				r.With(can(user.CapLeavesView)).Get("/", h.Leave.GetBalance)
				r.With(can(user.CapLeavesView)).Get("/summary", h.Leave.GetBalanceSummary)
				r.With(privileged).Put("/", h.Leave.SetBalance)
				r.With(privileged).Post("/initialize", h.Leave.InitializeBalance)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.With(can(user.CapPayrollGenerate)).Post("/generate", h.Payroll.Generate)
				r.With(can(user.CapPayrollGenerate)).Get("/preview/{employeeId}", h.Payroll.Preview)
				r.With(privileged).Get("/", h.Payroll.List)
				r.With(can(user.CapPayrollView), middleware.RequireEmployee).Get("/me", h.Payroll.ListMine)
				r.With(can(user.CapPayrollView)).Get("/{id}", h.Payroll.GetByID)
				r.With(can(user.CapPayrollView)).Get("/{id}/payslip", h.Payroll.Payslip)
			})

			r.Route("/payroll-components", func(r chi.Router) {
				r.With(can(user.CapPayrollView)).Get("/", h.Payroll.ListComponents)
				r.With(can(user.CapPayrollView)).Get("/{id}", h.Payroll.GetComponent)

				r.Group(func(r chi.Router) {
					r.Use(privileged)
					r.Post("/", h.Payroll.CreateComponent)
					r.Put("/{id}", h.Payroll.UpdateComponent)
					r.Delete("/{id}", h.Payroll.DeleteComponent)
				})
			})

			r.Route("/performance", func(r chi.Router) {
				r.With(can(user.CapPerformanceAdd)).Post("/", h.Performance.Add)
				r.With(can(user.CapPerformanceEdit)).Put("/{id}", h.Performance.Update)
				r.With(can(user.CapPerformanceView)).Get("/employee/{employeeId}", h.Performance.ListByEmployee)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Use(can(user.CapNotificationView))
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Patch("/read-all", h.Notification.MarkAllAsRead)
				r.Patch("/{id}/read", h.Notification.MarkAsRead)
				r.With(can(user.CapNotificationSend)).Post("/send", h.Notification.Send)
				r.With(can(user.CapNotificationSend)).Post("/bulk", h.Notification.SendBulk)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(can(user.CapReportsView), privileged)
				r.Get("/payroll.xlsx", h.Report.PayrollWorkbook)
				r.Get("/leaves.xlsx", h.Report.LeavesWorkbook)
			})

			r.With(can(user.CapChatView)).Post("/chats/upload", h.Chat.Upload)
		})
	})
	return r
}
