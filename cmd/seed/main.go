package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/fieldforce-dev/workforce/backend/internal/config"
	"github.com/fieldforce-dev/workforce/backend/internal/domain"
	"github.com/fieldforce-dev/workforce/backend/internal/repository"
	"github.com/fieldforce-dev/workforce/backend/internal/seed"
	"github.com/fieldforce-dev/workforce/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var csvPath string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工账号及档案, 2: 插入随机客户, 3: 插入随机广告, 4: 导入演示客户并分配)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&csvPath, "csv", seed.DefaultDemoCustomersPath, "演示客户 CSV 文件路径")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	if op != 4 && n <= 0 {
		slog.Error("请输入合法的记录数量")
		return
	}

	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("无法生成随机用户", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				// 随机生成的账号可能重复，跳过即可
				slog.Error("无法插入用户", slog.String("user_id", user.UserID), slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateEmployee(utils.GenerateRandomEmployee(user, cfg.InitialAdmin.FullName)); err != nil {
				slog.Error("无法插入员工档案", slog.String("user_id", user.UserID), slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入员工成功", slog.Int("count", cnt))
	case 2:
		customers := make([]*domain.Customer, n)
		for i := range customers {
			customers[i] = utils.GenerateRandomCustomer()
		}

		cnt, err := repo.ImportCustomers(customers)
		if err != nil {
			slog.Error("无法插入客户", slog.String("error", err.Error()))
			return
		}

		slog.Info("插入客户成功", slog.Int("count", cnt))
	case 3:
		cnt := 0
		for i := 0; i < n; i++ {
			if err := repo.CreateAd(utils.GenerateRandomAd()); err != nil {
				slog.Error("无法插入广告", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入广告成功", slog.Int("count", cnt))
	case 4:
		imported, allocated, err := seed.SeedDemoData(repo, csvPath)
		if err != nil {
			slog.Error("导入演示数据失败", slog.String("error", err.Error()))
			return
		}

		slog.Info("插入数据完成", slog.Int("imported", imported), slog.Int("allocated", allocated))
	default:
		slog.Error("指定的操作非法")
	}
}
