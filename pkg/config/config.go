package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// DefaultPath 默认配置文件位置
const DefaultPath = "~/.evtc/config.yaml"

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Node   NodeConfig   `mapstructure:"node"`
	Wallet WalletConfig `mapstructure:"wallet"`
	Tx     TxConfig     `mapstructure:"tx"`
	MQ     MQConfig     `mapstructure:"mq"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	Devnet DevnetConfig `mapstructure:"devnet"`
}

type AppConfig struct {
	Env     string `mapstructure:"env"`
	Verbose bool   `mapstructure:"verbose"`
}

// NodeConfig 账本节点 (evtd)
type NodeConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WalletConfig 钱包服务 (evtwd)
type WalletConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type TxConfig struct {
	Expiration  time.Duration `mapstructure:"expiration"`
	Compression string        `mapstructure:"compression"` // "none" or "zlib"
}

type MQConfig struct {
	Type  string `mapstructure:"type"` // "none", "redis" or "kafka"
	Topic string `mapstructure:"topic"`
	Group string `mapstructure:"group"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
}

type DevnetConfig struct {
	HttpPort   string `mapstructure:"http_port"`
	WalletPort string `mapstructure:"wallet_port"`
	GrpcPort   string `mapstructure:"grpc_port"`
	LibLag     uint32 `mapstructure:"lib_lag"`
	ChainID    string `mapstructure:"chain_id"`
}

// Load 读取配置文件与环境变量，返回一个独立的配置值。
// path 为空时使用 DefaultPath；文件不存在时只使用默认值和环境变量。
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		path = DefaultPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	v.SetConfigFile(expanded)
	if filepath.Ext(expanded) == "" {
		v.SetConfigType("yaml")
	}

	// 环境变量设置: EVTC_NODE_URL -> node.url
	v.SetEnvPrefix("evtc")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// SetConfigFile 指定的文件缺失时 viper 返回 *fs.PathError 而不是 ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default 返回只包含默认值的配置
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.verbose", false)

	v.SetDefault("node.url", "http://localhost:8888")
	v.SetDefault("node.timeout", 10*time.Second)
	v.SetDefault("wallet.url", "http://localhost:9999")
	v.SetDefault("wallet.timeout", 10*time.Second)

	v.SetDefault("tx.expiration", 30*time.Second)
	v.SetDefault("tx.compression", "none")

	v.SetDefault("mq.type", "none")
	v.SetDefault("mq.topic", "evt.transactions")
	v.SetDefault("mq.group", "evt-broadcaster")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})

	v.SetDefault("devnet.http_port", "8888")
	v.SetDefault("devnet.wallet_port", "9999")
	v.SetDefault("devnet.grpc_port", "9090")
	v.SetDefault("devnet.lib_lag", 2)
	v.SetDefault("devnet.chain_id", "")
}
