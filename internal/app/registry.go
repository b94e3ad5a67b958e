package app

import (
	"go-fieldforce/internal/attendance"
	"go-fieldforce/internal/auth"
	"go-fieldforce/internal/company"
	"go-fieldforce/internal/lead"
	"go-fieldforce/internal/messaging/kafka"
	"go-fieldforce/internal/middleware"
	"go-fieldforce/internal/order"
	"go-fieldforce/internal/policy"
	"go-fieldforce/internal/product"
	"go-fieldforce/internal/shared/counter"
	"go-fieldforce/internal/shared/database"
	"go-fieldforce/internal/shop"
	"go-fieldforce/internal/staff"
	"go-fieldforce/internal/task"
	"go-fieldforce/internal/token"
	"go-fieldforce/internal/user"
	"go-fieldforce/internal/visit"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	txr := database.NewTxRunner(gormDB)

	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	tokenRepo := token.NewRepository(gormDB)
	shopRepo := shop.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)
	leadRepo := lead.NewRepository(gormDB)
	productRepo := product.NewRepository(gormDB)
	orderRepo := order.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	visitRepo := visit.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Authorization ---
	policies, err := policy.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	tokenService := token.NewService(tokenRepo)
	authService := auth.NewService(txr, userRepo, companyRepo, tokenService, outboxRepo)
	userService := user.NewService(txr, userRepo, tokenService, outboxRepo)
	shopService := shop.NewService(shopRepo, companyRepo)
	staffOptions := staff.NewOptionsCache(rdb)
	staffService := staff.NewService(txr, staffRepo, shopRepo, userRepo, companyRepo, tokenService, outboxRepo, staffOptions)
	leadService := lead.NewService(leadRepo)
	productService := product.NewService(txr, productRepo)
	orderService := order.NewService(txr, orderRepo, productRepo, counterRepo, outboxRepo)
	taskService := task.NewService(taskRepo)
	visitService := visit.NewService(visitRepo, shopRepo)
	attendanceService := attendance.NewService(attendanceRepo, shopRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	shopHandler := shop.NewHandler(shopService)
	staffHandler := staff.NewHandler(staffService)
	leadHandler := lead.NewHandler(leadService)
	productHandler := product.NewHandler(productService)
	orderHandler := order.NewHandler(orderService)
	taskHandler := task.NewHandler(taskService)
	visitHandler := visit.NewHandler(visitService)
	attendanceHandler := attendance.NewHandler(attendanceService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, policies)
		shop.RegisterRoutes(api, shopHandler, policies)
		staff.RegisterRoutes(api, staffHandler, policies)
		lead.RegisterRoutes(api, leadHandler, policies)
		product.RegisterRoutes(api, productHandler, policies)
		order.RegisterRoutes(api, orderHandler, policies, middleware.Idempotency(rdb))
		task.RegisterRoutes(api, taskHandler, policies)
		visit.RegisterRoutes(api, visitHandler, policies)
		attendance.RegisterRoutes(api, attendanceHandler, policies)
	}

	return nil
}
