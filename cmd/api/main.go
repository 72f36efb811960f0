package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/campaign"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/config"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/generator"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/handler"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/ledger"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/notify"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/registry"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/repository"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/seed"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/session"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/share"
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
	 * 创建 repository 并写入初始数据
	 **********************************************/
	repo := repository.NewRepository()
	if err := seed.Seed(repo, cfg.Seed.UsersFile); err != nil {
		logger.Error("无法写入初始数据", "error", err)
		return
	}

	/**********************************************
	 * 注册指标
	 **********************************************/
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	/**********************************************
	 * 连接 redis（可选，用于缓存生成结果）
	 **********************************************/
	var cache generator.Cache
	if cfg.Redis.Host != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password:     cfg.Redis.Password,
			DB:           0,
			ReadTimeout:  time.Duration(cfg.Redis.OperationTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Redis.OperationTimeout) * time.Second,
		})
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.OperationTimeout)*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			// 缓存不是必需的，连接失败时不启用
			logger.Warn("无法连接到 redis，不启用生成缓存", "error", err)
		} else {
			cache = generator.NewRedisCache(rdb, time.Duration(cfg.Redis.CacheExpiration)*time.Second)
		}
		cancel()
	}

	/**********************************************
	 * 连接 rabbitmq（可选，用于投递新活动通知）
	 **********************************************/
	var publisher notify.Publisher = notify.LogPublisher{}
	if cfg.RabbitMQ.DSN != "" {
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

		// 声明队列
		_, err = ch.QueueDeclare(
			cfg.RabbitMQ.Queue,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			logger.Error("无法声明队列", "error", err)
			return
		}

		publisher = notify.NewAMQPPublisher(ch, cfg.RabbitMQ.Queue)
	}
	notifier := notify.NewNotifier(publisher, time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)

	/**********************************************
	 * 创建会话控制器
	 **********************************************/
	connRegistry := registry.New(repo, m)
	l := ledger.New(repo, m)
	controller, err := session.New(session.Deps{
		Repository: repo,
		Campaigns:  campaign.New(repo, m),
		Registry:   connRegistry,
		Ledger:     l,
		Share:      share.New(repo, connRegistry, l, m),
		Generator:  generator.NewGeminiClient(cfg, cache, m),
	}, cfg.Session.InitialUser)
	if err != nil {
		logger.Error("无法创建会话", "initialUser", cfg.Session.InitialUser, "error", err)
		return
	}

	/**********************************************
	 * 创建 handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, controller, notifier, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
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
		logger.Info("正在启动服务器...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("无法启动服务器", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("关闭服务器失败", slog.String("error", err.Error()))
	}
	logger.Info("服务器已成功关闭")
}
