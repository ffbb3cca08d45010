// Package config assembles the typed application configuration from the
// layered YAML loader plus environment overrides.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"forgeboard/internal/analytics"
	pkgconfig "forgeboard/pkg/config"
)

// Duration decodes YAML strings like "10s" or "1m30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"10s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// AIConfig controls the analysis suggestion client. When APIKey is empty the
// service answers from the deterministic local generator instead of calling
// out.
type AIConfig struct {
	Endpoint string   `yaml:"endpoint"`
	APIKey   string   `yaml:"api_key"`
	Model    string   `yaml:"model"`
	Timeout  Duration `yaml:"timeout"`
}

// BillingConfig holds invoice defaults.
type BillingConfig struct {
	DefaultCurrency string `yaml:"default_currency"`
	DefaultTaxRate  string `yaml:"default_tax_rate"` // decimal string, e.g. "0.19"
}

// WorkerConfig holds the background loops' tuning knobs.
type WorkerConfig struct {
	OutboxInterval   Duration `yaml:"outbox_interval"`
	OutboxBatchSize  int      `yaml:"outbox_batch_size"`
	OutboxMaxRetries int      `yaml:"outbox_max_retries"`
	ReminderInterval Duration `yaml:"reminder_interval"`
	ReminderBatch    int      `yaml:"reminder_batch"`
	ConsumerRetries  int      `yaml:"consumer_retries"`
}

// Config is the full application configuration shared by the server and
// worker binaries.
type Config struct {
	Server     pkgconfig.ServerConfig `yaml:"server"`
	DB         pkgconfig.DBConfig     `yaml:"db"`
	MQ         pkgconfig.MQConfig     `yaml:"mq"`
	Redis      pkgconfig.RedisConfig  `yaml:"redis"`
	JWT        pkgconfig.JWTConfig    `yaml:"jwt"`
	Thresholds analytics.Thresholds   `yaml:"evm_thresholds"`
	AI         AIConfig               `yaml:"ai"`
	Billing    BillingConfig          `yaml:"billing"`
	Worker     WorkerConfig           `yaml:"worker"`
}

// Load reads the layered YAML config for the active environment and applies
// environment variable overrides on top.
func Load() (*Config, error) {
	cfg := &Config{
		Thresholds: analytics.DefaultThresholds(),
		Billing: BillingConfig{
			DefaultCurrency: "EUR",
			DefaultTaxRate:  "0.19",
		},
		Worker: WorkerConfig{
			OutboxInterval:   Duration(time.Second),
			OutboxBatchSize:  100,
			OutboxMaxRetries: 5,
			ReminderInterval: Duration(30 * time.Second),
			ReminderBatch:    50,
			ConsumerRetries:  3,
		},
	}

	env := pkgconfig.GetConfigEnv()
	if err := pkgconfig.Load(env, pkgconfig.GetEnv("CONFIG_DIR", "config"), cfg); err != nil {
		return nil, err
	}

	pkgconfig.OverrideServerFromEnv(&cfg.Server)
	pkgconfig.OverrideDBFromEnv(&cfg.DB)
	pkgconfig.OverrideMQFromEnv(&cfg.MQ)
	pkgconfig.OverrideRedisFromEnv(&cfg.Redis)
	pkgconfig.OverrideJWTFromEnv(&cfg.JWT)
	if key := pkgconfig.GetEnv("AI_API_KEY", ""); key != "" {
		cfg.AI.APIKey = key
	}

	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = Duration(10 * time.Second)
	}
	return cfg, nil
}
