package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	canteenapp "github.com/easygo-schools/backend/internal/application/canteen"
	commsapp "github.com/easygo-schools/backend/internal/application/comms"
	financeapp "github.com/easygo-schools/backend/internal/application/finance"
	healthapp "github.com/easygo-schools/backend/internal/application/health"
	hrapp "github.com/easygo-schools/backend/internal/application/hr"
	identityapp "github.com/easygo-schools/backend/internal/application/identity"
	"github.com/easygo-schools/backend/internal/application/jobs"
	schoolingapp "github.com/easygo-schools/backend/internal/application/schooling"
	supportapp "github.com/easygo-schools/backend/internal/application/support"
	transportapp "github.com/easygo-schools/backend/internal/application/transport"
	"github.com/easygo-schools/backend/internal/infrastructure/auth"
	"github.com/easygo-schools/backend/internal/infrastructure/cache"
	"github.com/easygo-schools/backend/internal/infrastructure/config"
	"github.com/easygo-schools/backend/internal/infrastructure/logger"
	"github.com/easygo-schools/backend/internal/infrastructure/notify"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence"
	"github.com/easygo-schools/backend/internal/infrastructure/scheduler"
	"github.com/easygo-schools/backend/internal/interfaces/http/handler"
	"github.com/easygo-schools/backend/internal/interfaces/http/middleware"
	"github.com/easygo-schools/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting school backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis backs the reminder dedup keys; fall back to the in-process
	// store when Redis is unreachable so reminders still work.
	var idemStore cache.IdempotencyStore
	redisStore, err := cache.NewRedisIdempotencyStore(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
		idemStore = cache.NewInMemoryIdempotencyStore()
	} else {
		idemStore = redisStore
		defer func() {
			if err := redisStore.Close(); err != nil {
				log.Error("Error closing redis", zap.Error(err))
			}
		}()
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	studentRepo := persistence.NewGormStudentRepository(db.DB)
	attendanceRepo := persistence.NewGormAttendanceRepository(db.DB)
	justificationRepo := persistence.NewGormJustificationRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetRepository(db.DB)
	feeBillRepo := persistence.NewGormFeeBillRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentEntryRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	slipRepo := persistence.NewGormSalarySlipRepository(db.DB)
	leaveRepo := persistence.NewGormLeaveRepository(db.DB)
	menuRepo := persistence.NewGormMenuRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	routeRepo := persistence.NewGormRouteRepository(db.DB)
	healthRecordRepo := persistence.NewGormHealthRecordRepository(db.DB)
	visitRepo := persistence.NewGormVisitRepository(db.DB)
	remedialRepo := persistence.NewGormRemedialPlanRepository(db.DB)
	orientationRepo := persistence.NewGormOrientationPlanRepository(db.DB)
	commsLogRepo := persistence.NewGormCommunicationLogRepository(db.DB)

	// Outbound notifications, recorded in the communication log
	notifier := notify.NewNotifierFromConfig(cfg, commsLogRepo, log)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, log)
	studentService := schoolingapp.NewStudentService(studentRepo, notifier, cfg.App.SchoolName, log)
	attendanceService := schoolingapp.NewAttendanceService(attendanceRepo, studentRepo, log)
	justificationService := schoolingapp.NewJustificationService(justificationRepo, attendanceRepo, studentRepo, userRepo, notifier, log)
	budgetService := financeapp.NewBudgetService(budgetRepo, log)
	billingService := financeapp.NewBillingService(feeBillRepo, paymentRepo, ledgerRepo, studentRepo, notifier, log)
	employeeService := hrapp.NewEmployeeService(employeeRepo, log)
	payrollService := hrapp.NewPayrollService(slipRepo, employeeRepo, ledgerRepo, notifier, log)
	leaveService := hrapp.NewLeaveService(leaveRepo, employeeRepo, notifier, log)
	canteenService := canteenapp.NewCanteenService(menuRepo, orderRepo, studentRepo, notifier, cfg.Canteen.ServingHour, cfg.Canteen.OrderCutoffHours, log)
	transportService := transportapp.NewTransportService(routeRepo, studentRepo, log)
	healthService := healthapp.NewHealthService(healthRecordRepo, visitRepo, studentRepo, notifier, log)
	supportService := supportapp.NewSupportService(remedialRepo, orientationRepo, studentRepo, notifier, log)
	commsService := commsapp.NewCommsService(commsLogRepo)

	// Scheduled jobs
	sched := scheduler.NewScheduler(cfg.Scheduler, log,
		jobs.NewAbsenceReminderJob(cfg.Scheduler.DailyReminderHour, attendanceRepo, studentRepo, notifier, idemStore, log),
		jobs.NewFeeReminderJob(scheduler.ParseWeekday(cfg.Scheduler.WeeklyReminderDay), cfg.Scheduler.DailyReminderHour, feeBillRepo, studentRepo, notifier, idemStore, log),
		jobs.NewPayrollGenerationJob(cfg.Scheduler.PayrollGenerationDay, payrollService, log),
	)
	sched.Start(context.Background())
	defer sched.Stop()

	// HTTP handlers
	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService, userService),
		User:          handler.NewUserHandler(userService),
		Student:       handler.NewStudentHandler(studentService),
		Attendance:    handler.NewAttendanceHandler(attendanceService),
		Justification: handler.NewJustificationHandler(justificationService),
		Budget:        handler.NewBudgetHandler(budgetService),
		Billing:       handler.NewBillingHandler(billingService),
		Employee:      handler.NewEmployeeHandler(employeeService),
		Payroll:       handler.NewPayrollHandler(payrollService),
		Leave:         handler.NewLeaveHandler(leaveService),
		Canteen:       handler.NewCanteenHandler(canteenService),
		Transport:     handler.NewTransportHandler(transportService),
		Health:        handler.NewHealthHandler(healthService),
		Support:       handler.NewSupportHandler(supportService),
		Comms:         handler.NewCommsHandler(commsService),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Setup(engine, jwtService, handlers)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
