package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"60"` // 内容生成可能比较慢
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Session struct {
		InitialUser string `env:"INITIAL_USER" envDefault:"u1"`
	} `envPrefix:"SESSION_"`
	Seed struct {
		UsersFile string `env:"USERS_FILE"` // 为空则使用内置的初始用户
	} `envPrefix:"SEED_"`
	Gemini struct {
		APIKey    string  `env:"API_KEY"` // 允许为空，为空时生成功能会返回占位内容
		Model     string  `env:"MODEL" envDefault:"gemini-3-flash-preview"`
		Endpoint  string  `env:"ENDPOINT" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
		Timeout   int     `env:"TIMEOUT" envDefault:"30"`
		RateLimit float64 `env:"RATE_LIMIT" envDefault:"1"` // 每秒允许的请求数
		RateBurst int     `env:"RATE_BURST" envDefault:"3"`
	} `envPrefix:"GEMINI_"`
	Redis struct {
		Host             string `env:"HOST"` // 为空则不启用生成结果缓存
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD"`
		CacheExpiration  int    `env:"CACHE_EXPIRATION" envDefault:"3600"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"2"`
	} `envPrefix:"REDIS_"`
	RabbitMQ struct {
		DSN            string `env:"DSN"` // 为空则不发布通知
		Queue          string `env:"QUEUE" envDefault:"email_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Email struct {
		TemplateDir string `env:"TEMPLATE_DIR" envDefault:"./templates"`
		SMTP        struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
