package config

import (
	"io"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const envPrefix = "storefront"

type Config struct {
	HTTPAddr       string        `envconfig:"HTTP_ADDR" default:":8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"3s"`

	// Sessions untouched for SessionIdleTimeout are dropped every SessionSweepInterval.
	SessionIdleTimeout   time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"2h"`
	SessionSweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"5m"`

	// Empty DatabaseDSN keeps orders and profiles in memory.
	DatabaseDSN   string `envconfig:"DATABASE_DSN"`
	RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"true"`

	// Empty RabbitMQURL disables OrderPlaced events.
	RabbitMQURL string `envconfig:"RABBITMQ_URL"`

	WhatsAppNumber   string        `envconfig:"WHATSAPP_NUMBER" default:"916304226513"`
	HandoffDelay     time.Duration `envconfig:"HANDOFF_DELAY" default:"1500ms"`
	ConfirmationPath string        `envconfig:"CONFIRMATION_PATH" default:"/thank-you"`
	BrowsePath       string        `envconfig:"BROWSE_PATH" default:"/menu"`

	CORSAllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads STOREFRONT_* variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	cfg.CORSAllowOrigins = cleanOrigins(cfg.CORSAllowOrigins)
	return cfg, nil
}

func (c Config) UsesDatabase() bool {
	return strings.TrimSpace(c.DatabaseDSN) != ""
}

func (c Config) UsesEvents() bool {
	return strings.TrimSpace(c.RabbitMQURL) != ""
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "parse log level")
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	switch strings.ToLower(c.LogFormat) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, errors.Errorf("unknown log format %q", c.LogFormat)
	}
	return logger, nil
}

func cleanOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
