package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultPath = "./configs/config.local.yaml"
	EnvPrefix   = "STOREFRONT"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

func (h HTTP) ReadTimeout() time.Duration  { return time.Duration(h.ReadTimeoutSec) * time.Second }
func (h HTTP) WriteTimeout() time.Duration { return time.Duration(h.WriteTimeoutSec) * time.Second }
func (h HTTP) IdleTimeout() time.Duration  { return time.Duration(h.IdleTimeoutSec) * time.Second }

type App struct {
	Name           string
	Env            string
	CORSOrigin     string   `mapstructure:"corsOrigin"`
	TrustedProxies []string `mapstructure:"trustedProxies"`
	External       HTTP
	Internal       HTTP
}

type Log struct {
	Level      string
	JSON       bool
	File       string // 非空时额外写入文件并切割
	MaxSizeMB  int    `mapstructure:"maxSizeMB"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAgeDays"`
	Compress   bool
}

type DB struct {
	Driver             string // mysql / postgres / sqlite
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int    `mapstructure:"maxOpenConns"`
	MaxIdleConns       int    `mapstructure:"maxIdleConns"`
	ConnMaxLifetimeMin int    `mapstructure:"connMaxLifetimeMin"`
	AutoMigrate        bool   `mapstructure:"autoMigrate"`
	LogLevel           string `mapstructure:"logLevel"`
}

// Redis Addr 为空时不启用商品缓存
type Redis struct {
	Addr          string `mapstructure:"addr"`
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	ProductTTLSec int    `mapstructure:"productTTLSec"`
}

type Pagination struct {
	DefaultLimit int `mapstructure:"defaultLimit"`
	MaxLimit     int `mapstructure:"maxLimit"`
}

type RateLimit struct {
	CleanupEverySec int     `mapstructure:"cleanupEverySec"`
	GlobalRPS       float64 `mapstructure:"globalRPS"`
	GlobalBurst     int     `mapstructure:"globalBurst"`
}

type Store struct {
	MaxConcurrent     int   `mapstructure:"maxConcurrent"`
	RequestTimeoutSec int   `mapstructure:"requestTimeoutSec"`
	MaxBodyBytes      int64 `mapstructure:"maxBodyBytes"`
}

type Config struct {
	App        App
	Log        Log
	DB         DB
	Redis      Redis `mapstructure:"redis"`
	Pagination Pagination
	RateLimit  RateLimit `mapstructure:"rateLimit"`
	Store      Store
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "storefront-gateway")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.corsOrigin", "http://localhost:3000")
	v.SetDefault("app.trustedProxies", []string{})
	v.SetDefault("app.external.host", "0.0.0.0")
	v.SetDefault("app.external.port", 3002)
	v.SetDefault("app.internal.host", "0.0.0.0")
	v.SetDefault("app.internal.port", 3001)
	for _, s := range []string{"external", "internal"} {
		v.SetDefault("app."+s+".readTimeoutSec", 5)
		v.SetDefault("app."+s+".writeTimeoutSec", 10)
		v.SetDefault("app."+s+".idleTimeoutSec", 60)
	}

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.compress", false)
	v.SetDefault("log.maxSizeMB", 100)
	v.SetDefault("log.maxBackups", 7)
	v.SetDefault("log.maxAgeDays", 30)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "file:storefront.db?_pragma=busy_timeout(5000)")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")

	// 未在默认值里出现的 key 不会被 AutomaticEnv 反序列化，这里逐个登记
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.productTTLSec", 300)

	v.SetDefault("pagination.defaultLimit", 100)
	v.SetDefault("pagination.maxLimit", 100)

	v.SetDefault("rateLimit.cleanupEverySec", 120)
	v.SetDefault("rateLimit.globalRPS", 0)
	v.SetDefault("rateLimit.globalBurst", 0)

	v.SetDefault("store.maxConcurrent", 64)
	v.SetDefault("store.requestTimeoutSec", 10)
	v.SetDefault("store.maxBodyBytes", 1<<20)
}

// Load 读取 YAML（可选）+ 环境变量覆盖，如 STOREFRONT_DB_DSN、STOREFRONT_APP_EXTERNAL_PORT。
// path 为空时取 CONFIG_PATH，再退回 DefaultPath；默认路径不存在不算错误
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func MustLoad(path string) *Config {
	c, err := Load(path)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Config) validate() error {
	if c.Pagination.DefaultLimit <= 0 || c.Pagination.MaxLimit <= 0 {
		return errors.New("config: pagination limits must be > 0")
	}
	if c.Pagination.DefaultLimit > c.Pagination.MaxLimit {
		return fmt.Errorf("config: pagination.defaultLimit %d exceeds maxLimit %d",
			c.Pagination.DefaultLimit, c.Pagination.MaxLimit)
	}
	if c.Store.MaxConcurrent <= 0 {
		return errors.New("config: store.maxConcurrent must be > 0")
	}
	return nil
}
