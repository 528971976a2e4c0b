package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "po-workflow-backend/internal/adapter/http"
	"po-workflow-backend/internal/adapter/middleware"
	"po-workflow-backend/internal/adapter/repository/mysql"
	"po-workflow-backend/internal/config"
	"po-workflow-backend/internal/domain/assignment"
	"po-workflow-backend/internal/domain/event"
	"po-workflow-backend/internal/domain/externalpo"
	"po-workflow-backend/internal/domain/poline"
	"po-workflow-backend/internal/domain/user"
	"po-workflow-backend/internal/infrastructure/cache"
	"po-workflow-backend/internal/infrastructure/db"
	"po-workflow-backend/internal/logger"
	"po-workflow-backend/internal/notify"
	approvaluc "po-workflow-backend/internal/usecase/approval"
	assignmentuc "po-workflow-backend/internal/usecase/assignment"
	epouc "po-workflow-backend/internal/usecase/externalpo"
	polineuc "po-workflow-backend/internal/usecase/poline"
	sbcuc "po-workflow-backend/internal/usecase/sbc"
	useruc "po-workflow-backend/internal/usecase/user"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		zlog.Fatal("mysql connect", zap.Error(err))
	}
	if err := gdb.AutoMigrate(
		&user.User{},
		&poline.PoLine{},
		&assignment.Assignment{},
		&externalpo.ExternalPO{},
		&event.ApprovalEvent{},
	); err != nil {
		zlog.Fatal("migrate", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		zlog.Fatal("redis connect", zap.Error(err))
	}

	userRepo := mysql.NewUserRepository(gdb)
	poLineRepo := mysql.NewPoLineRepository(gdb)
	assignmentRepo := mysql.NewAssignmentRepository(gdb)
	externalPORepo := mysql.NewExternalPORepository(gdb)
	eventRepo := mysql.NewEventRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	userCache := middleware.NewUserCache(rdb, time.Duration(cfg.UserCacheTTLSecs)*time.Second)
	notifier := notify.NewWebhookNotifier(cfg.WebhookURL, zlog)

	userUC := useruc.NewUsecase(userRepo, userCache)
	poLineUC := polineuc.NewUsecase(poLineRepo)
	assignmentUC := assignmentuc.NewUsecase(assignmentRepo, tx, notifier)
	externalPOUC := epouc.NewUsecase(externalPORepo, tx, notifier)
	approvalUC := approvaluc.NewUsecase(externalPORepo, eventRepo, tx, notifier, cfg.ReleaseLinesOnReject)
	sbcUC := sbcuc.NewUsecase(externalPORepo, tx, notifier, cfg.ReleaseLinesOnReject)

	h := httpadp.NewHandler()
	userH := httpadp.NewUserHandler(userUC)
	poLineH := httpadp.NewPoLineHandler(poLineUC)
	assignmentH := httpadp.NewAssignmentHandler(assignmentUC)
	externalPOH := httpadp.NewExternalPOHandler(externalPOUC)
	approvalH := httpadp.NewApprovalHandler(approvalUC)
	sbcH := httpadp.NewSBCHandler(sbcUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	// auth resolves the actor first; idempotency keys on it
	api := e.Group("/api",
		middleware.AuthMiddleware([]byte(cfg.JWTSecret), userCache, userRepo, zlog),
		middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, zlog),
	)

	api.GET("/me", userH.Me)
	api.GET("/users", userH.ListUsers)
	api.GET("/users/sbc", userH.ListSBCUsers)
	api.PATCH("/users/:user_id", userH.UpdateUser)

	api.GET("/po-lines", poLineH.ListPoLines)
	api.GET("/po-lines/available", poLineH.ListAvailablePoLines)

	api.POST("/assignments", assignmentH.CreateAssignment)
	api.GET("/assignments", assignmentH.ListAssignments)
	api.GET("/assignments/my", assignmentH.ListMyAssignments)
	api.GET("/assignments/:assignment_id", assignmentH.GetAssignment)
	api.POST("/assignments/:assignment_id/respond", assignmentH.RespondAssignment)

	api.POST("/external-pos", externalPOH.CreateExternalPO)
	api.GET("/external-pos", externalPOH.ListExternalPOs)
	api.GET("/external-pos/:external_po_id", externalPOH.GetExternalPO)
	api.PUT("/external-pos/:external_po_id", externalPOH.UpdateExternalPO)
	api.DELETE("/external-pos/:external_po_id", externalPOH.DeleteExternalPO)
	api.POST("/external-pos/:external_po_id/submit", externalPOH.SubmitExternalPO)
	api.POST("/external-pos/:external_po_id/close", externalPOH.CloseExternalPO)

	api.GET("/approvals/pd", approvalH.ListPDQueue)
	api.GET("/approvals/admin", approvalH.ListAdminQueue)
	api.POST("/approvals/:external_po_id/respond", approvalH.RespondApproval)
	api.GET("/approvals/:external_po_id/events", approvalH.ListApprovalEvents)

	api.GET("/sbc/work", sbcH.ListSBCWork)
	api.POST("/sbc/:external_po_id/respond", sbcH.RespondSBC)

	addr := ":" + cfg.AppPort
	zlog.Info("listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
	if err := e.Start(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
