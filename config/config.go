package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"replyok"`

	// PostgreSQL 配置
	PostgreSQLHost     string `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort     string `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser     string `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword string `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase string `env:"POSTGRESQL_DATABASE" envDefault:"replyok"`
	PostgreSQLSchema   string `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode  string `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLMaxIdle  int    `env:"POSTGRESQL_MAX_IDLE" envDefault:"30"`
	PostgreSQLMaxOpen  int    `env:"POSTGRESQL_MAX_OPEN" envDefault:"200"`

	// Redis 配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"rok"`

	// RabbitMQ 配置
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// LINE 平台配置
	// ChannelSecret 用于校验 webhook 签名，AccessToken 用于调用回复 API
	LineAccountID      string `env:"LINE_ACCOUNT_ID"`     // 必填，本部署服务的官方账号 ID
	LineChannelSecret  string `env:"LINE_CHANNEL_SECRET"` // 必填，webhook 签名密钥
	LineAccessToken    string `env:"LINE_ACCESS_TOKEN"`   // 必填，Messaging API 的 channel access token
	LineAPIBaseURL     string `env:"LINE_API_BASE_URL" envDefault:"https://api.line.me"`
	LineReplyTimeoutMS int    `env:"LINE_REPLY_TIMEOUT_MS" envDefault:"5000"`

	// 运营后台 API 鉴权
	AdminToken string `env:"ADMIN_TOKEN"` // 必填，规则管理接口的 Bearer token

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪配置
	TracingEnabled bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`
	TracingSampler float64 `env:"TRACING_SAMPLER" envDefault:"0.1"`

	// 回复日志队列配置
	ReplyLogQueue    string `env:"REPLY_LOG_QUEUE" envDefault:"autoreply.reply_log"`
	ReplyLogPrefetch int    `env:"REPLY_LOG_PREFETCH" envDefault:"10"`
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	// 开发环境缺少凭证只告警，正式环境直接拒绝启动
	requireOrWarn := func(value, hint string) {
		if value != "" {
			return
		}
		if Cfg.IsProduction() {
			log.Fatal(hint)
		}
		log.Printf("WARN: %s", hint)
	}

	requireOrWarn(Cfg.LineChannelSecret, "LINE_CHANNEL_SECRET is required for webhook signature verification")
	requireOrWarn(Cfg.LineAccessToken, "LINE_ACCESS_TOKEN is required to call the reply API")
	requireOrWarn(Cfg.LineAccountID, "LINE_ACCOUNT_ID is required")

	if Cfg.AdminToken == "" {
		log.Printf("WARN: ADMIN_TOKEN is not set, the rule management API will reject all requests")
	}
}

func (c *Config) GetDSN() string {
	return "host=" + c.PostgreSQLHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
