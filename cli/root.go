package cli

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"scribe/config"
)

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Scribe indexes world contract events and serves them over GraphQL",
	Long: "Scribe follows a chain, decodes the events emitted by a world contract into " +
		"models and entities, stores them in SQL and serves them through a generated GraphQL API",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return errors.New("unable to run root command")
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to the configuration file")
	flags.StringSlice("node.rpc.urls", nil, "starknet node rpc urls")
	flags.String("world.address", "", "world contract address")
	flags.String("world.manifest_dir", "", "directory of model manifests")
	flags.String("db.driver", "", "sql driver, sqlite3 or postgres")
	flags.String("db.dsn", "", "database file or connection string")
	flags.String("logging.level", "", "log level: debug, info, warn or error")
	for _, name := range []string{"config", "node.rpc.urls", "world.address", "world.manifest_dir", "db.driver", "db.dsn", "logging.level"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func initConfig() {
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SCRIBE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(config.Default())

	err := viper.ReadInConfig()
	initLogging(viper.GetString("logging.level"))
	if err != nil {
		slog.Warn("Failed to read config file", "error", err)
	}
}

// setDefaults registers every key so env variables are seen by Unmarshal.
func setDefaults(d config.Config) {
	viper.SetDefault("node.rpc.urls", d.Node.RPC.URLs)
	viper.SetDefault("node.rpc.max_connections", d.Node.RPC.MaxConnections)
	viper.SetDefault("world.address", d.World.Address)
	viper.SetDefault("world.manifest_dir", d.World.ManifestDir)
	viper.SetDefault("engine.start_block", d.Engine.StartBlock)
	viper.SetDefault("engine.poll_interval", d.Engine.PollInterval)
	viper.SetDefault("engine.max_elapsed", d.Engine.MaxElapsed)
	viper.SetDefault("db.driver", d.DB.Driver)
	viper.SetDefault("db.dsn", d.DB.DSN)
	viper.SetDefault("influx.url", d.InfluxDB.URL)
	viper.SetDefault("influx.token", d.InfluxDB.Token)
	viper.SetDefault("influx.org", d.InfluxDB.Org)
	viper.SetDefault("influx.bucket", d.InfluxDB.Bucket)
	viper.SetDefault("redis.addr", d.Redis.Addr)
	viper.SetDefault("redis.password", d.Redis.Password)
	viper.SetDefault("redis.db", d.Redis.DB)
	viper.SetDefault("redis.channel", d.Redis.Channel)
	viper.SetDefault("server.addr", d.Server.Addr)
	viper.SetDefault("server.namespace", d.Server.Namespace)
	viper.SetDefault("logging.level", d.Logging.Level)
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "error":
		return slog.LevelError
	case "warn":
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func initLogging(logLevel string) {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     parseLevel(logLevel),
		AddSource: true,
	})
	slog.SetDefault(slog.New(handler))
	slog.Debug("Setting log level", "level", logLevel)
}
