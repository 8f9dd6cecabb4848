package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Observer struct {
		Lat float64 `yaml:"lat" default:"51.4769"` // Greenwich Observatory
		Lon float64 `yaml:"lon" default:"0.0"`
	} `yaml:"observer"`
	Providers struct {
		Order    []string `yaml:"order"` // fetch priority, default horizons,miriade,fixed_stars
		Horizons struct {
			BaseURL      string        `yaml:"base_url"`
			Timeout      time.Duration `yaml:"timeout" default:"30s"`
			RateCapacity float64       `yaml:"rate_capacity" default:"5"`
			RateRefill   float64       `yaml:"rate_refill" default:"1"` // tokens per second
		} `yaml:"horizons"`
		Miriade struct {
			BaseURL      string        `yaml:"base_url"`
			Timeout      time.Duration `yaml:"timeout" default:"20s"`
			RateCapacity float64       `yaml:"rate_capacity" default:"5"`
			RateRefill   float64       `yaml:"rate_refill" default:"1"`
		} `yaml:"miriade"`
	} `yaml:"providers"`
	Feeds struct {
		OutputDir     string        `yaml:"output_dir" default:"feeds"`
		Interval      time.Duration `yaml:"interval" default:"1h"` // service-mode regeneration cadence
		Harmonics     int           `yaml:"harmonics" default:"24"`
		Oracle        bool          `yaml:"oracle" default:"true"`
		OracleDir     string        `yaml:"oracle_dir" default:"oracle_data"`
		WeeklyWorkers int           `yaml:"weekly_workers" default:"3"`
	} `yaml:"feeds"`
	Cache struct {
		Type   string        `yaml:"type" default:"memory"` // memory | redis | layered
		TTL    time.Duration `yaml:"ttl" default:"6h"`
		Prefix string        `yaml:"prefix" default:"astrofeed"`
		Redis  struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"astrofeed.feeds"`
		LogsTopic    string        `yaml:"logs_topic" default:"astrofeed.logs"`
		RequiredAcks int           `yaml:"required_acks" default:"-1"`
		Compression  string        `yaml:"compression" default:"gzip"`
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file, applying struct
// defaults to anything the file leaves unset.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if len(c.Providers.Order) == 0 {
		c.Providers.Order = []string{"horizons", "miriade", "fixed_stars"}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// Default returns a configuration with defaults only, used by the
// one-shot CLI when no config file is given.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	c.Providers.Order = []string{"horizons", "miriade", "fixed_stars"}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("ASTROFEED_OBSERVER_LAT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Observer.Lat = f
		}
	}
	if v := os.Getenv("ASTROFEED_OBSERVER_LON"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Observer.Lon = f
		}
	}
	if v := os.Getenv("ASTROFEED_OUTPUT_DIR"); v != "" {
		c.Feeds.OutputDir = v
	}
	if v := os.Getenv("ASTROFEED_PROVIDERS"); v != "" {
		c.Providers.Order = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		if host, port, ok := strings.Cut(v, ":"); ok {
			c.Cache.Redis.Host = host
			if p, err := strconv.Atoi(port); err == nil {
				c.Cache.Redis.Port = p
			}
		}
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Observer.Lat < -90 || c.Observer.Lat > 90 {
		return fmt.Errorf("observer.lat must be within [-90, 90], got %v", c.Observer.Lat)
	}
	if c.Observer.Lon < -180 || c.Observer.Lon > 180 {
		return fmt.Errorf("observer.lon must be within [-180, 180], got %v", c.Observer.Lon)
	}
	if c.Feeds.OutputDir == "" {
		return fmt.Errorf("feeds.output_dir is required")
	}
	if c.Feeds.Harmonics < 0 || c.Feeds.Harmonics > 360 {
		return fmt.Errorf("feeds.harmonics must be within [0, 360], got %d", c.Feeds.Harmonics)
	}
	switch c.Cache.Type {
	case "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.type must be 'memory', 'redis' or 'layered', got %q", c.Cache.Type)
	}
	for _, p := range c.Providers.Order {
		switch p {
		case "horizons", "miriade", "fixed_stars":
		default:
			return fmt.Errorf("unknown provider %q in providers.order", p)
		}
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	return nil
}
