package config

// Config 配置主体
type Config struct {
	Server           ServerConfig       `mapstructure:"server"`
	DB               DBConfig           `mapstructure:"database"`
	Redis            RedisConfig        `mapstructure:"redis"`
	Mongo            MongoConfig        `mapstructure:"mongo"`
	LLM              LLMConfig          `mapstructure:"llm"`
	JWT              JWTConfig          `mapstructure:"jwt"`
	Log              LogConfig          `mapstructure:"log"`
	Cron             CronConfig         `mapstructure:"cron"`
	Cache            CacheConfig        `mapstructure:"cache"`
	EditTracking     EditTrackingConfig `mapstructure:"edit_tracking"`
	Kafka            KafkaConfig        `mapstructure:"kafka"`
	KafkaCDCConsumer KafkaCDCConsumer   `mapstructure:"kafka_cdc_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
	// Timezone 计算"今天"所用的时区，排期本身始终按 UTC 日期运算
	Timezone string `mapstructure:"timezone"`
	// AllowedOrigins 为空时放行任意来源
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoConfig 生成历史存储
type MongoConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type LLMConfig struct {
	URL            string `mapstructure:"url"`
	Model          string `mapstructure:"model"`
	ApiKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxConcurrency int64  `mapstructure:"max_concurrency"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// LogConfig 远程日志
type LogConfig struct {
	RemoteAddr string `mapstructure:"remote_addr"`
	Index      string `mapstructure:"index"`
}

type CronConfig struct {
	StalePromptSpec string `mapstructure:"stale_prompt_spec"`
	StaleGraceDays  int    `mapstructure:"stale_grace_days"`
}

// CacheConfig 各类缓存的 TTL，单位秒
type CacheConfig struct {
	InsightsTTL int `mapstructure:"insights_ttl"`
	ProfileTTL  int `mapstructure:"profile_ttl"`
	AccountTTL  int `mapstructure:"account_ttl"`
}

type EditTrackingConfig struct {
	QuiescenceMillis int `mapstructure:"quiescence_millis"`
}

type KafkaConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

// KafkaCDCConsumer canal binlog 主题
type KafkaCDCConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
