package cli

import (
	"context"
	"fmt"
	"log/slog"

	"scribe/config"
	"scribe/core"
	"scribe/db"
	"scribe/events/registry"
	"scribe/interfaces"
	"scribe/manifest"
	"scribe/net"
)

// app holds the components shared by the commands that index blocks.
type app struct {
	cfg    config.Config
	db     *db.Handler
	points *db.InfluxWriter
	pool   *net.ConnectionPool
	parser *manifest.Parser

	client     *net.StarknetClient
	processors *registry.Processors
}

func newApp(ctx context.Context, cfg config.Config) (a *app, err error) {
	a = &app{cfg: cfg}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	if a.db, err = db.Open(ctx, cfg.DB); err != nil {
		return nil, err
	}
	var points interfaces.PointWriter
	if cfg.InfluxDB.URL != "" {
		a.points = db.NewInfluxWriter(cfg.InfluxDB)
		points = a.points
	}
	if a.pool, err = net.NewConnectionPool(ctx, cfg.Node.RPC.URLs, cfg.Node.RPC.MaxConnections, net.DialRPC); err != nil {
		return nil, fmt.Errorf("rpc pool: %w", err)
	}
	a.parser = manifest.NewParser(cfg.World.ManifestDir)
	if cfg.World.ManifestDir != "" {
		if err = a.parser.Load(); err != nil {
			return nil, err
		}
	}
	if a.processors, err = registry.Default(registry.Options{Points: points}); err != nil {
		return nil, err
	}
	slog.Info("registered processors", "events", a.processors.EventKeys())
	a.client = net.NewStarknetClient(net.NewConnectionProvider(a.pool))
	return a, nil
}

func (a *app) newEngine(opts ...core.Option) (*core.Engine, error) {
	return core.New(a.cfg, a.client, a.parser, a.db, a.processors, opts...)
}

func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.points != nil {
		a.points.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			slog.Error("Error closing database", "error", err)
		}
	}
}
