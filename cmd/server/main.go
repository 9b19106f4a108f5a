package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/config"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/api/handler"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/api/router"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/repository"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/service"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/database"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/jwt"
	applogger "github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/logger"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/redis"
)

func main() {
	// 1. Nạp cấu hình
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "nạp cấu hình thất bại: %v\n", err)
		os.Exit(1)
	}

	// 2. Khởi tạo logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "khởi tạo logger thất bại: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("ứng dụng đang khởi động...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Kết nối cơ sở dữ liệu
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("kết nối cơ sở dữ liệu thất bại", zap.Error(err))
	}
	logger.Info("kết nối cơ sở dữ liệu thành công")

	// 3.1 Chạy migration
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("lấy sql.DB thất bại", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("chạy migration thất bại", zap.Error(err))
	}

	// 4. Kết nối Redis (tùy chọn: lỗi kết nối không chặn khởi động,
	// chỉ mất chức năng blacklist token và rate limit)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("kết nối Redis thất bại, blacklist token sẽ không khả dụng", zap.Error(err))
		rdb = nil
	}

	// 5. Khởi tạo JWT manager
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. Dependency injection: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc)

	// 7. Khởi tạo router
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. Khởi động HTTP server (graceful shutdown)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server đã khởi động", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server gặp lỗi", zap.Error(err))
		}
	}()

	// 9. Chờ tín hiệu hệ thống, tắt server an toàn
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("nhận tín hiệu dừng, bắt đầu tắt server...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("tắt server gặp lỗi", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server đã dừng")
}
