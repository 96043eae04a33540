package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"paybridge/internal/entity"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeTest       = "test"
	ModeProduction = "production"

	StrategyDirect = "direct"
	StrategySigned = "signed"
)

type (
	Config struct {
		App        App        `env-prefix:"APP_"`
		Logger     Logger     `env-prefix:"LOGGER_"`
		HTTP       HTTP       `env-prefix:"HTTP_"`
		Metrics    Metrics    `env-prefix:"METRICS_"`
		Aggregator Aggregator `env-prefix:"SBPAY_"`
		Gateway    Gateway    `env-prefix:"YAAD_"`
		Bridge     Bridge     `env-prefix:"BRIDGE_"`
		Env        string     `                       env:"ENV" env-default:"local" validate:"oneof=local dev staging prod"`
	}

	App struct {
		Name    string `env:"NAME"    validate:"required"`
		Version string `env:"VERSION" validate:"required"`
	}

	HTTP struct {
		Host              string        `env:"HOST"                validate:"required"                 env-default:"0.0.0.0"`
		Port              string        `env:"PORT"                validate:"required,gte=1,lte=65535" env-default:"8080"`
		ReadTimeout       time.Duration `env:"READ_TIMEOUT"        validate:"gte=10ms,lte=30s"         env-default:"5s"`
		WriteTimeout      time.Duration `env:"WRITE_TIMEOUT"       validate:"gte=10ms,lte=30s"         env-default:"15s"`
		IdleTimeout       time.Duration `env:"IDLE_TIMEOUT"        validate:"gte=10ms,lte=30s"         env-default:"60s"`
		ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT"    validate:"gte=10ms,lte=30s"         env-default:"10s"`
		ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" validate:"gte=10ms,lte=30s"         env-default:"5s"`
	}

	Metrics struct {
		Host              string        `env:"HOST"                validate:"required"                 env-default:"0.0.0.0"`
		Port              string        `env:"PORT"                validate:"required,gte=1,lte=65535" env-default:"9090"`
		ReadTimeout       time.Duration `env:"READ_TIMEOUT"        validate:"gte=10ms,lte=30s"         env-default:"5s"`
		WriteTimeout      time.Duration `env:"WRITE_TIMEOUT"       validate:"gte=10ms,lte=30s"         env-default:"5s"`
		ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" validate:"gte=10ms,lte=30s"         env-default:"5s"`
	}

	// Aggregator holds the upstream merchant-aggregator contract: the
	// shared HMAC secret and, optionally, where to report approved orders.
	Aggregator struct {
		Secret      string `env:"SECRET"       validate:"required"`
		ApprovalURL string `env:"APPROVAL_URL" validate:"omitempty,url"`
	}

	// GatewayCredentials is one credential set for the bank gateway. Test
	// and production sets are disjoint; only the set matching Bridge.Mode
	// is ever read.
	GatewayCredentials struct {
		Key        string `env:"KEY"`
		Passphrase string `env:"PASSP"`
		Terminal   string `env:"MASOF"`
		BaseURL    string `env:"BASE_URL" validate:"omitempty,url"`
	}

	Gateway struct {
		Test        GatewayCredentials `env-prefix:"TEST_"`
		Production  GatewayCredentials `env-prefix:"PROD_"`
		Strategy    string             `env:"STRATEGY"       validate:"oneof=direct signed" env-default:"signed"`
		SignTimeout time.Duration      `env:"SIGN_TIMEOUT"   validate:"gte=1s,lte=30s"      env-default:"10s"`
		URLCacheCap int                `env:"URL_CACHE_CAP"  validate:"min=0,max=65536"     env-default:"256"`
		URLCacheTTL time.Duration      `env:"URL_CACHE_TTL"  validate:"gte=0,lte=1h"        env-default:"5m"`
	}

	Bridge struct {
		Mode         string `env:"MODE"           validate:"oneof=test production" env-default:"test"`
		SuccessPath  string `env:"SUCCESS_PATH"   validate:"required,startswith=/" env-default:"/success"`
		FailurePath  string `env:"FAILURE_PATH"   validate:"required,startswith=/" env-default:"/failure"`
		MaxBodyBytes int64  `env:"MAX_BODY_BYTES" validate:"min=1024,max=1048576"  env-default:"16384"`
	}

	Logger struct {
		Level      string `env:"LEVEL"       env-default:"info"                 validate:"oneof=debug info warn error"`
		Filename   string `env:"FILENAME"    env-default:"./logs/paybridge.log"`
		MaxSize    int    `env:"MAX_SIZE"    env-default:"100"                  validate:"min=1,max=1000"`
		MaxBackups int    `env:"MAX_BACKUPS" env-default:"3"                    validate:"min=0,max=20"`
		MaxAge     int    `env:"MAX_AGE"     env-default:"28"                   validate:"min=1,max=365"`
	}
)

// Credentials returns the gateway credential set for the configured
// execution mode. The two sets are never mixed.
func (c *Config) Credentials() GatewayCredentials {
	if c.Bridge.Mode == ModeProduction {
		return c.Gateway.Production
	}
	return c.Gateway.Test
}

func (gc GatewayCredentials) complete() bool {
	return gc.Key != "" && gc.Passphrase != "" && gc.Terminal != "" && gc.BaseURL != ""
}

func Load() (*Config, error) {
	path := fetchConfigPath()
	if path == "" {
		return nil, entity.ErrConfigPathNotSet
	}
	return LoadPath(path)
}

func LoadPath(configPath string) (*Config, error) {
	const op = "config.LoadPath"

	validate := validator.New()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: config file does not exist: %s", op, configPath)
	} else if err != nil {
		return nil, fmt.Errorf("%s: checking config file: %w", op, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: read config: %w", op, err)
	}

	var validationErrors []string
	if err := validate.Struct(&cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, ve := range validationErrs {
				validationErrors = append(validationErrors,
					fmt.Sprintf("%s=%v must satisfy '%s'", ve.Field(), ve.Value(), ve.Tag()))
			}
			return nil, fmt.Errorf(
				"%s: config validation: %v", op,
				strings.Join(validationErrors, "; "),
			)
		}
		return nil, fmt.Errorf("%s: config validation: %w", op, err)
	}

	if !cfg.Credentials().complete() {
		return nil, fmt.Errorf(
			"%s: incomplete gateway credentials for mode %q (key, passphrase, terminal and base URL are all required)",
			op, cfg.Bridge.Mode,
		)
	}

	return &cfg, nil
}

func fetchConfigPath() string {
	var path string
	flag.StringVar(&path, "config", "", "Path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}
