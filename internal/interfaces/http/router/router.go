package router

import (
	"net/http"

	"github.com/easygo-schools/backend/internal/domain/identity"
	"github.com/easygo-schools/backend/internal/infrastructure/auth"
	"github.com/easygo-schools/backend/internal/interfaces/http/handler"
	"github.com/easygo-schools/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler wired into the router
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Student       *handler.StudentHandler
	Attendance    *handler.AttendanceHandler
	Justification *handler.JustificationHandler
	Budget        *handler.BudgetHandler
	Billing       *handler.BillingHandler
	Employee      *handler.EmployeeHandler
	Payroll       *handler.PayrollHandler
	Leave         *handler.LeaveHandler
	Canteen       *handler.CanteenHandler
	Transport     *handler.TransportHandler
	Health        *handler.HealthHandler
	Support       *handler.SupportHandler
	Comms         *handler.CommsHandler
}

// Role shorthands for route guards
var (
	admin      = []string{identity.RoleAdmin.String()}
	education  = []string{identity.RoleAdmin.String(), identity.RoleEducationManager.String()}
	teaching   = []string{identity.RoleAdmin.String(), identity.RoleEducationManager.String(), identity.RoleTeacher.String()}
	accounting = []string{identity.RoleAdmin.String(), identity.RoleAccountant.String()}
	humanRes   = []string{identity.RoleAdmin.String(), identity.RoleHRManager.String()}
	nursing    = []string{identity.RoleAdmin.String(), identity.RoleNurse.String()}
	submitters = []string{identity.RoleAdmin.String(), identity.RoleEducationManager.String(), identity.RoleGuardian.String()}
)

func guard(roles []string) gin.HandlerFunc {
	return middleware.RequireRoles(roles...)
}

// Setup registers every route on the engine. All /api/v1 routes except
// login sit behind JWT authentication.
func Setup(engine *gin.Engine, jwtService *auth.JWTService, h Handlers) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtService))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", h.Auth.Me)
		authGroup.POST("/change-password", h.Auth.ChangePassword)
	}

	users := api.Group("/users", guard(admin))
	{
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.POST("/:id/deactivate", h.User.Deactivate)
	}

	students := api.Group("/students")
	{
		students.POST("", guard(education), h.Student.Register)
		students.GET("", h.Student.List)
		students.GET("/:id", h.Student.Get)
		students.GET("/by-massar/:code", h.Student.GetByMassarCode)
		students.POST("/:id/approve", guard(education), h.Student.Approve)
		students.PUT("/:id", guard(education), h.Student.Update)
		students.POST("/:id/departure", guard(education), h.Student.Depart)
	}

	attendance := api.Group("/attendance")
	{
		attendance.POST("", guard(teaching), h.Attendance.Record)
		attendance.POST("/class", guard(teaching), h.Attendance.RecordClass)
		attendance.PUT("/:id", guard(education), h.Attendance.Correct)
		attendance.GET("", h.Attendance.List)
		attendance.GET("/summary", h.Attendance.Summary)
	}

	justifications := api.Group("/justifications")
	{
		justifications.POST("", guard(submitters), h.Justification.Submit)
		justifications.GET("", h.Justification.List)
		justifications.GET("/:id", h.Justification.Get)
		justifications.POST("/:id/approve", guard(education), h.Justification.Approve)
		justifications.POST("/:id/reject", guard(education), h.Justification.Reject)
	}

	budgets := api.Group("/budgets", guard(accounting))
	{
		budgets.POST("", h.Budget.Create)
		budgets.GET("", h.Budget.List)
		budgets.GET("/:id", h.Budget.Get)
		budgets.POST("/:id/lines", h.Budget.AddLine)
		budgets.POST("/:id/activate", h.Budget.Activate)
		budgets.POST("/:id/close", h.Budget.Close)
		budgets.POST("/:id/expenses", h.Budget.RecordExpense)
	}

	bills := api.Group("/fee-bills", guard(accounting))
	{
		bills.POST("", h.Billing.CreateBill)
		bills.GET("", h.Billing.ListBills)
		bills.GET("/:id", h.Billing.GetBill)
		bills.POST("/:id/submit", h.Billing.SubmitBill)
		bills.POST("/:id/cancel", h.Billing.CancelBill)
	}

	payments := api.Group("/payments", guard(accounting))
	{
		payments.POST("", h.Billing.RecordPayment)
		payments.GET("", h.Billing.ListPayments)
	}

	finance := api.Group("/finance", guard(accounting))
	{
		finance.GET("/ledger", h.Billing.ListLedger)
		finance.GET("/reports/collection", h.Billing.CollectionSummary)
		finance.GET("/reports/trial-balance", h.Billing.TrialBalance)
	}

	employees := api.Group("/employees", guard(humanRes))
	{
		employees.POST("", h.Employee.Create)
		employees.GET("", h.Employee.List)
		employees.GET("/:id", h.Employee.Get)
		employees.POST("/:id/components", h.Employee.AddComponent)
		employees.PUT("/:id/basic-salary", h.Employee.SetBasicSalary)
		employees.POST("/:id/relieve", h.Employee.Relieve)
	}

	slips := api.Group("/salary-slips", guard(humanRes))
	{
		slips.POST("", h.Payroll.Generate)
		slips.POST("/batch", h.Payroll.GenerateBatch)
		slips.GET("", h.Payroll.List)
		slips.GET("/summary", h.Payroll.Summary)
		slips.GET("/:id", h.Payroll.Get)
		slips.PUT("/:id/attendance", h.Payroll.SetAttendance)
		slips.POST("/:id/process", h.Payroll.Process)
		slips.POST("/:id/cancel", h.Payroll.Cancel)
	}

	leaves := api.Group("/leaves")
	{
		leaves.POST("", h.Leave.Apply)
		leaves.GET("", h.Leave.List)
		leaves.GET("/:id", h.Leave.Get)
		leaves.POST("/:id/approve", guard(humanRes), h.Leave.Approve)
		leaves.POST("/:id/reject", guard(humanRes), h.Leave.Reject)
		leaves.POST("/:id/cancel", h.Leave.Cancel)
	}

	menus := api.Group("/menus")
	{
		menus.POST("", guard(education), h.Canteen.CreateMenu)
		menus.GET("", h.Canteen.ListMenus)
		menus.GET("/:id", h.Canteen.GetMenu)
		menus.PUT("/:id/active", guard(education), h.Canteen.SetMenuActive)
	}

	orders := api.Group("/meal-orders")
	{
		orders.POST("", guard(submitters), h.Canteen.PlaceOrder)
		orders.GET("", h.Canteen.ListOrders)
		orders.GET("/:id", h.Canteen.GetOrder)
		orders.POST("/:id/confirm", guard(education), h.Canteen.ConfirmOrder)
		orders.POST("/:id/cancel", guard(submitters), h.Canteen.CancelOrder)
		orders.POST("/:id/serve", guard(education), h.Canteen.ServeOrder)
		orders.POST("/:id/pay", guard(education), h.Canteen.PayOrder)
	}

	routes := api.Group("/routes", guard(education))
	{
		routes.POST("", h.Transport.Create)
		routes.GET("", h.Transport.List)
		routes.GET("/:id", h.Transport.Get)
		routes.POST("/:id/stops", h.Transport.AddStop)
		routes.POST("/:id/students", h.Transport.Enroll)
		routes.DELETE("/:id/students", h.Transport.Remove)
		routes.POST("/:id/suspend", h.Transport.Suspend)
		routes.POST("/:id/resume", h.Transport.Resume)
	}

	healthRecords := api.Group("/health-records", guard(nursing))
	{
		healthRecords.POST("", h.Health.CreateRecord)
		healthRecords.GET("/:studentId", h.Health.GetRecord)
		healthRecords.PUT("/:studentId", h.Health.UpdateRecord)
		healthRecords.POST("/:studentId/measurements", h.Health.RecordMeasurement)
	}

	visits := api.Group("/medical-visits", guard(nursing))
	{
		visits.POST("", h.Health.OpenVisit)
		visits.GET("", h.Health.ListVisits)
		visits.GET("/:id", h.Health.GetVisit)
		visits.POST("/:id/close", h.Health.CloseVisit)
	}

	remedial := api.Group("/remedial-plans", guard(teaching))
	{
		remedial.POST("", h.Support.CreateRemedialPlan)
		remedial.GET("", h.Support.ListRemedialPlans)
		remedial.GET("/:id", h.Support.GetRemedialPlan)
		remedial.POST("/:id/sessions", h.Support.AddSession)
		remedial.POST("/:id/activate", h.Support.ActivateRemedialPlan)
		remedial.POST("/:id/sessions/:sessionId/complete", h.Support.CompleteSession)
		remedial.POST("/:id/complete", h.Support.CompleteRemedialPlan)
		remedial.POST("/:id/cancel", h.Support.CancelRemedialPlan)
	}

	orientation := api.Group("/orientation-plans", guard(education))
	{
		orientation.POST("", h.Support.CreateOrientationPlan)
		orientation.GET("", h.Support.ListOrientationPlans)
		orientation.GET("/:id", h.Support.GetOrientationPlan)
		orientation.POST("/:id/recommend", h.Support.RecommendStream)
		orientation.POST("/:id/submit", h.Support.SubmitOrientationPlan)
		orientation.POST("/:id/approve", h.Support.ApproveOrientationPlan)
		orientation.POST("/:id/reject", h.Support.RejectOrientationPlan)
	}

	comms := api.Group("/comms", guard(admin))
	{
		comms.GET("/logs", h.Comms.ListLogs)
		comms.GET("/stats", h.Comms.ChannelStats)
	}
}
