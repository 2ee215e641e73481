package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // ATTENDANCE_TIMEZONE 不依赖系统时区数据库

	"github.com/fieldforce-dev/workforce/backend/internal/config"
	"github.com/fieldforce-dev/workforce/backend/internal/domain"
	"github.com/fieldforce-dev/workforce/backend/internal/handler"
	"github.com/fieldforce-dev/workforce/backend/internal/mailqueue"
	"github.com/fieldforce-dev/workforce/backend/internal/repository"
	"github.com/fieldforce-dev/workforce/backend/internal/storage"
	"github.com/fieldforce-dev/workforce/backend/internal/token"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 加载配置
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法加载配置文件", "error", err)
		return
	}

	/**********************************************
	 * 连接数据库
	 **********************************************/
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

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	/**********************************************
	 * 创建 repository
	 **********************************************/
	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * 确保数据库中存在初始管理员
	 **********************************************/
	if err := ensureInitialAdmin(cfg, repo); err != nil {
		logger.Error("无法创建初始管理员", "error", err)
		return
	}

	/**********************************************
	 * 准备上传目录
	 **********************************************/
	blobs := storage.NewLocal(cfg.Upload.Dir, cfg.Upload.ImportDir)
	if err := blobs.Validate(); err != nil {
		logger.Error("上传目录配置错误", "dir", cfg.Upload.Dir, "import_dir", cfg.Upload.ImportDir, "error", err)
		return
	}
	for _, dir := range []string{cfg.Upload.Dir, cfg.Upload.ImportDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("无法创建上传目录", "dir", dir, "error", err)
			return
		}
	}

	/**********************************************
	 * 连接 rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	// 建立通道
	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法建立通道", "error", err)
		return
	}
	defer ch.Close()

	publisher, err := mailqueue.NewPublisher(ch, cfg.RabbitMQ.Queue, time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)
	if err != nil {
		logger.Error("无法声明队列", "error", err)
		return
	}

	/**********************************************
	 * 连接 redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:    cfg.Redis.Password,
		DB:          0,
		DialTimeout: time.Duration(cfg.Redis.ConnectTimeout) * time.Second,
	})
	defer rdb.Close()

	denylist := token.NewDenylist(rdb, time.Duration(cfg.Redis.OperationExpiration)*time.Second)

	/**********************************************
	 * 创建 handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, repo, blobs, denylist, publisher)
	if err != nil {
		logger.Error("无法创建 handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * 启动 HTTP 服务器
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("正在启动服务器...", "port", cfg.Server.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("无法启动服务器", slog.String("error", err.Error()))
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info("正在关闭服务器...")

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("关闭服务器失败", slog.String("error", err.Error()))
	}
	logger.Info("服务器已成功关闭")
}

// ensureInitialAdmin 在数据库中创建初始管理员，已经存在时什么也不做（不会覆盖已有的密码）
func ensureInitialAdmin(cfg *config.Config, repo *repository.Repository) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialAdmin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	initialAdmin := &domain.User{
		UserID:       cfg.InitialAdmin.UserID,
		PasswordHash: string(passwordHash),
		FullName:     cfg.InitialAdmin.FullName,
		Role:         domain.RoleAdmin,
	}
	if cfg.InitialAdmin.Email != "" {
		initialAdmin.Email = &cfg.InitialAdmin.Email
	}

	if err := repo.CreateUser(initialAdmin); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "users_user_id_key" {
			// 数据库中已经存在初始管理员
			return nil
		}
		return err
	}

	slog.Info("已创建初始管理员", "user_id", initialAdmin.UserID)
	return nil
}
