package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 HEALTHSENSE_TELEMETRY_API_KEY 覆盖 telemetry.api_key
const EnvPrefix = "HEALTHSENSE"

// 遥测数据源类型
const (
	SourceThingSpeak = "thingspeak"
	SourceMQTT       = "mqtt"
)

// Config 全局配置
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Model     ModelConfig     `mapstructure:"model"`
	Alert     AlertConfig     `mapstructure:"alert"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Lmstfy    LmstfyConfig    `mapstructure:"lmstfy"`
	MySQL     MySQLConfig     `mapstructure:"mysql"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Workers   []WorkerConfig  `mapstructure:"workers"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// TelemetryConfig 遥测数据源配置
type TelemetryConfig struct {
	Source    string        `mapstructure:"source"` // thingspeak / mqtt
	BaseURL   string        `mapstructure:"base_url"`
	ChannelID string        `mapstructure:"channel_id"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Fields    FieldMapping  `mapstructure:"fields"`
	MQTT      MQTTConfig    `mapstructure:"mqtt"`
}

// FieldMapping feed 字段到模型特征的映射
type FieldMapping struct {
	HeartRate string `mapstructure:"heart_rate"`
	BodyTemp  string `mapstructure:"body_temp"`
	AccelX    string `mapstructure:"accelerometer_x"`
	AccelY    string `mapstructure:"accelerometer_y"`
	AccelZ    string `mapstructure:"accelerometer_z"`
}

// MQTTConfig MQTT 订阅配置
type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`
	Topic    string `mapstructure:"topic"`
	ClientID string `mapstructure:"client_id"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// ModelConfig 模型文件配置
type ModelConfig struct {
	Path   string `mapstructure:"path"`
	SHA256 string `mapstructure:"sha256"` // 可选，非空时校验文件摘要
}

// AlertConfig 告警投递配置
type AlertConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Queue   string `mapstructure:"queue"`
	TTL     uint32 `mapstructure:"ttl"`
	Tries   uint16 `mapstructure:"tries"`
	Channel string `mapstructure:"channel"` // Redis 通知频道前缀
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LmstfyConfig Lmstfy 配置
type LmstfyConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Namespace string `mapstructure:"namespace"`
	Token     string `mapstructure:"token"`
}

// MySQLConfig MySQL 配置
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// DatasetConfig 数据集生成配置
type DatasetConfig struct {
	Samples    int             `mapstructure:"samples"`
	Seed       int64           `mapstructure:"seed"`
	Output     string          `mapstructure:"output"`
	BatchSize  int             `mapstructure:"batch_size"`
	Thresholds ThresholdConfig `mapstructure:"thresholds"`
}

// ThresholdConfig 标签阈值
type ThresholdConfig struct {
	HeartRate     float64 `mapstructure:"heart_rate"`
	BodyTemp      float64 `mapstructure:"body_temp"`
	Accelerometer float64 `mapstructure:"accelerometer"`
}

// WorkerConfig Worker 配置
type WorkerConfig struct {
	Name       string           `mapstructure:"name"`
	QueueName  string           `mapstructure:"queue_name"`
	Subscriber SubscriberConfig `mapstructure:"subscriber"`
	Processor  ProcessorConfig  `mapstructure:"processor"`
}

// SubscriberConfig Subscriber 配置
type SubscriberConfig struct {
	Threads      int           `mapstructure:"threads"`       // 并发拉取数
	Rate         time.Duration `mapstructure:"rate"`          // 拉取速率
	Timeout      time.Duration `mapstructure:"timeout"`       // 拉取超时
	TTR          time.Duration `mapstructure:"ttr"`           // Time-To-Run
	ErrorBackoff time.Duration `mapstructure:"error_backoff"` // 错误退避时间
}

// ProcessorConfig Processor 配置
type ProcessorConfig struct {
	Threads    int           `mapstructure:"threads"`     // 并发处理数
	BufferSize int           `mapstructure:"buffer_size"` // Channel 缓冲大小
	Timeout    time.Duration `mapstructure:"timeout"`     // 单个任务超时
}

// setDefaults 默认值，同时让 AutomaticEnv 能识别所有 key
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "healthsense")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("telemetry.source", SourceThingSpeak)
	v.SetDefault("telemetry.base_url", "https://api.thingspeak.com")
	v.SetDefault("telemetry.channel_id", "")
	v.SetDefault("telemetry.api_key", "")
	v.SetDefault("telemetry.timeout", 10*time.Second)
	v.SetDefault("telemetry.fields.heart_rate", "field5")
	v.SetDefault("telemetry.fields.body_temp", "field4")
	v.SetDefault("telemetry.fields.accelerometer_x", "field1")
	v.SetDefault("telemetry.fields.accelerometer_y", "field2")
	v.SetDefault("telemetry.fields.accelerometer_z", "field3")
	v.SetDefault("telemetry.mqtt.broker", "tcp://mqtt3.thingspeak.com:1883")
	v.SetDefault("telemetry.mqtt.topic", "")
	v.SetDefault("telemetry.mqtt.client_id", "")
	v.SetDefault("telemetry.mqtt.username", "")
	v.SetDefault("telemetry.mqtt.password", "")

	v.SetDefault("model.path", "config/model.json")
	v.SetDefault("model.sha256", "")

	v.SetDefault("alert.enabled", false)
	v.SetDefault("alert.queue", "health_alert")
	v.SetDefault("alert.ttl", 3600)
	v.SetDefault("alert.tries", 3)
	v.SetDefault("alert.channel", "health:alerts")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("lmstfy.host", "")
	v.SetDefault("lmstfy.port", 7777)
	v.SetDefault("lmstfy.namespace", "healthsense")
	v.SetDefault("lmstfy.token", "")

	v.SetDefault("mysql.dsn", "")

	v.SetDefault("dataset.samples", 1000)
	v.SetDefault("dataset.seed", 42)
	v.SetDefault("dataset.output", "health_data.csv")
	v.SetDefault("dataset.batch_size", 200)
	v.SetDefault("dataset.thresholds.heart_rate", 116)
	v.SetDefault("dataset.thresholds.body_temp", 38.0)
	v.SetDefault("dataset.thresholds.accelerometer", 18000.0)
}

// Load 加载配置文件，configPath 为空时只使用默认值和环境变量
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	// 兼容性处理：如果 server.port 为空，使用默认值
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}

	return &cfg, nil
}

// Validate 验证 API 服务所需配置
func (c *Config) Validate() error {
	if c.Model.Path == "" {
		return fmt.Errorf("model.path is required")
	}
	switch c.Telemetry.Source {
	case SourceThingSpeak:
		if c.Telemetry.BaseURL == "" {
			return fmt.Errorf("telemetry.base_url is required")
		}
		if c.Telemetry.ChannelID == "" {
			return fmt.Errorf("telemetry.channel_id is required")
		}
	case SourceMQTT:
		if c.Telemetry.MQTT.Broker == "" {
			return fmt.Errorf("telemetry.mqtt.broker is required")
		}
		if c.Telemetry.MQTT.Topic == "" {
			return fmt.Errorf("telemetry.mqtt.topic is required")
		}
	default:
		return fmt.Errorf("unknown telemetry.source: %q", c.Telemetry.Source)
	}
	if err := c.Telemetry.Fields.validate(); err != nil {
		return err
	}
	if c.Alert.Enabled {
		if c.Lmstfy.Host == "" {
			return fmt.Errorf("lmstfy.host is required when alert.enabled")
		}
		if c.Alert.Queue == "" {
			return fmt.Errorf("alert.queue is required when alert.enabled")
		}
	}
	return nil
}

// ValidateWorker 验证告警 Worker 所需配置
func (c *Config) ValidateWorker() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy.host is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required")
	}
	if len(c.Workers) == 0 {
		return fmt.Errorf("at least one worker is required")
	}
	for _, w := range c.Workers {
		if w.QueueName == "" {
			return fmt.Errorf("worker %q: queue_name is required", w.Name)
		}
		if w.Subscriber.Threads < 1 || w.Processor.Threads < 1 {
			return fmt.Errorf("worker %q: threads must be >= 1", w.Name)
		}
	}
	return nil
}

// ValidateDataset 验证数据集生成配置
func (c *Config) ValidateDataset() error {
	if c.Dataset.Samples < 0 {
		return fmt.Errorf("dataset.samples must be >= 0")
	}
	if c.Dataset.BatchSize < 1 {
		return fmt.Errorf("dataset.batch_size must be >= 1")
	}
	return nil
}

// GetServerPort 获取服务端口
func (c *Config) GetServerPort() string {
	if c.Server.Port != "" {
		return c.Server.Port
	}
	return "8080"
}

func (f FieldMapping) validate() error {
	fields := map[string]string{
		"heart_rate":      f.HeartRate,
		"body_temp":       f.BodyTemp,
		"accelerometer_x": f.AccelX,
		"accelerometer_y": f.AccelY,
		"accelerometer_z": f.AccelZ,
	}
	for name, field := range fields {
		if field == "" {
			return fmt.Errorf("telemetry.fields.%s is required", name)
		}
	}
	return nil
}
