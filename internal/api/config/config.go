package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg，环境变量可覆盖同名键（llm.api_key -> LLM_API_KEY）
func LoadConfig() error {
	return LoadConfigFrom("./configs")
}

// LoadConfigFrom 指定配置目录
func LoadConfigFrom(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 30)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("mongo.database", "postcraft")
	v.SetDefault("llm.url", "https://api.openai.com/v1")
	v.SetDefault("llm.model", "gpt-4o-mini")
	// 显式绑定，保证只存在环境变量时 Unmarshal 也能读到
	_ = v.BindEnv("llm.api_key")
	_ = v.BindEnv("jwt.secret")
	_ = v.BindEnv("database.dsn")
	v.SetDefault("llm.timeout_seconds", 30)
	v.SetDefault("llm.max_concurrency", 5)
	v.SetDefault("jwt.issuer", "postcraft")
	v.SetDefault("jwt.expire_hours", 72)
	v.SetDefault("cron.stale_prompt_spec", "0 0 3 * * *")
	v.SetDefault("cron.stale_grace_days", 14)
	v.SetDefault("cache.insights_ttl", 3600)
	v.SetDefault("cache.profile_ttl", 300)
	v.SetDefault("cache.account_ttl", 60)
	v.SetDefault("edit_tracking.quiescence_millis", 3000)
	v.SetDefault("kafka_cdc_consumer.group_id", "postcraft-cdc")
}

// Location 返回计算"今天"所用的时区，配置非法时退回 UTC
func (c ServerConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c CacheConfig) InsightsTTLDuration() time.Duration {
	return time.Duration(c.InsightsTTL) * time.Second
}

func (c CacheConfig) ProfileTTLDuration() time.Duration {
	return time.Duration(c.ProfileTTL) * time.Second
}

func (c CacheConfig) AccountTTLDuration() time.Duration {
	return time.Duration(c.AccountTTL) * time.Second
}

func (c EditTrackingConfig) Quiescence() time.Duration {
	return time.Duration(c.QuiescenceMillis) * time.Millisecond
}
