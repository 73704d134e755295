package app

import (
	"database/sql"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ymnkynp/monkey-timeoff/internal/allowance"
	"github.com/ymnkynp/monkey-timeoff/internal/auth"
	"github.com/ymnkynp/monkey-timeoff/internal/calendar"
	"github.com/ymnkynp/monkey-timeoff/internal/department"
	"github.com/ymnkynp/monkey-timeoff/internal/employee"
	"github.com/ymnkynp/monkey-timeoff/internal/leave"
	"github.com/ymnkynp/monkey-timeoff/internal/leavetype"
	"github.com/ymnkynp/monkey-timeoff/internal/messaging/kafka"
	"github.com/ymnkynp/monkey-timeoff/internal/notification"
	"github.com/ymnkynp/monkey-timeoff/internal/rbac"
	"github.com/ymnkynp/monkey-timeoff/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	allowanceRepo := allowance.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo)
	employeeService := employee.NewService(employeeRepo)
	departmentService := department.NewService(departmentRepo, employeeService)
	leaveTypeService := leavetype.NewService(leaveTypeRepo)
	leaveService := leave.NewService(
		db,
		leaveRepo,
		employeeService,
		leaveTypeService,
		outboxRepo,
		rdb,
		standinApprovalEnabled(),
	)
	allowanceService := allowance.NewService(allowanceRepo, rdb)
	notificationService := notification.NewService(notificationRepo)
	calendarService := calendar.NewService(leaveRepo, employeeService)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	departmentHandler := department.NewHandler(departmentService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	allowanceHandler := allowance.NewHandler(allowanceService)
	notificationHandler := notification.NewHandler(notificationService)
	calendarHandler := calendar.NewHandler(calendarService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		allowance.RegisterRoutes(api, allowanceHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		calendar.RegisterRoutes(api, calendarHandler, rbacService)
	}

	return nil
}

// standinApprovalEnabled reads the deployment-wide standin toggle.
// Unset defaults to enabled.
func standinApprovalEnabled() bool {
	v := os.Getenv("STANDIN_APPROVAL_ENABLED")
	if v == "" {
		return true
	}
	enabled, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return enabled
}
