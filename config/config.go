package config

import "time"

// Config holds the application configuration
type Config struct {
	Node     NodeConfig     `mapstructure:"node"`
	World    WorldConfig    `mapstructure:"world"`
	Engine   EngineConfig   `mapstructure:"engine"`
	DB       DBConfig       `mapstructure:"db"`
	InfluxDB InfluxDBConfig `mapstructure:"influx"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type NodeConfig struct {
	RPC RPCConfig `mapstructure:"rpc"`
}

type RPCConfig struct {
	URLs           []string `mapstructure:"urls"`
	MaxConnections int      `mapstructure:"max_connections"`
}

type WorldConfig struct {
	// Address filters events by emitter, empty accepts every emitter.
	Address     string `mapstructure:"address"`
	ManifestDir string `mapstructure:"manifest_dir"`
}

type EngineConfig struct {
	StartBlock   uint64        `mapstructure:"start_block"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	// MaxElapsed bounds the restart backoff of the sync loop, 0 retries forever.
	MaxElapsed time.Duration `mapstructure:"max_elapsed"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type InfluxDBConfig struct {
	URL    string `mapstructure:"url"`
	Token  string `mapstructure:"token"`
	Org    string `mapstructure:"org"`
	Bucket string `mapstructure:"bucket"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	Namespace string `mapstructure:"namespace"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Default returns the configuration used for any key not set by file, env or flag.
func Default() Config {
	return Config{
		Node:   NodeConfig{RPC: RPCConfig{MaxConnections: 4}},
		Engine: EngineConfig{PollInterval: 2 * time.Second},
		DB:     DBConfig{Driver: DriverSQLite, DSN: "scribe.db"},
		Redis:  RedisConfig{Channel: "scribe.updates"},
		Server: ServerConfig{Addr: ":8080", Namespace: "scribe"},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
