package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/policy"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/scheduler"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
		MaxBodyBytes    int64  `env:"MAX_BODY_BYTES" envDefault:"1048576"` // 1 MiB
	} `envPrefix:"SERVER_"`
	Policy struct {
		File     string `env:"FILE"`      // 为空时使用内置的默认策略
		TimeZone string `env:"TIME_ZONE"` // 覆盖策略文件中的时区
	} `envPrefix:"POLICY_"`
	Optimizer struct {
		Timeout                 int `env:"TIMEOUT" envDefault:"5"`
		MaxCandidateEvaluations int `env:"MAX_CANDIDATE_EVALUATIONS" envDefault:"100000"`
	} `envPrefix:"OPTIMIZER_"`
	RabbitMQ struct {
		DSN            string `env:"DSN"` // 为空时不发送审计事件
		Queue          string `env:"QUEUE" envDefault:"schedule_audit_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Addr           string `env:"ADDR"` // 为空时不缓存计算结果
		Password       string `env:"PASSWORD"`
		DB             int    `env:"DB" envDefault:"0"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		ResultTTL      int    `env:"RESULT_TTL" envDefault:"600"`
	} `envPrefix:"REDIS_"`
	Seed struct {
		Employees int   `env:"EMPLOYEES" envDefault:"8"`
		Shifts    int   `env:"SHIFTS" envDefault:"21"`
		RandSeed  int64 `env:"RAND_SEED" envDefault:"1"`
	} `envPrefix:"SEED_"`
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

// LoadPolicy 加载劳动法策略，POLICY_TIME_ZONE 优先于策略文件
func (cfg *Config) LoadPolicy() (policy.Policy, error) {
	p := policy.Default()
	if cfg.Policy.File != "" {
		loaded, err := policy.LoadFromPath(cfg.Policy.File)
		if err != nil {
			return policy.Policy{}, err
		}
		p = loaded
	}

	if cfg.Policy.TimeZone != "" {
		p.TimeZone = cfg.Policy.TimeZone
		if err := p.Validate(); err != nil {
			return policy.Policy{}, err
		}
	}

	return p, nil
}

func (cfg *Config) SchedulerParameters() *scheduler.Parameters {
	return &scheduler.Parameters{MaxCandidateEvaluations: cfg.Optimizer.MaxCandidateEvaluations}
}

func (cfg *Config) OptimizerTimeout() time.Duration {
	return time.Duration(cfg.Optimizer.Timeout) * time.Second
}
