package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"scribe/broker"
	"scribe/core"
	"scribe/interfaces"
	"scribe/schema"
	"scribe/server"
)

var startCommand = &cobra.Command{
	Use:   "start",
	Short: "follow the chain and serve the GraphQL API",
	RunE:  start,
}

func init() {
	rootCmd.AddCommand(startCommand)
}

func start(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	slog.Info("starting scribe", "world", cfg.World.Address)

	b := broker.NewServer()
	b.Start()
	defer b.Stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	holder := schema.NewHolder(a.db, b)
	metrics := core.PrometheusMetrics(cfg.Server.Namespace)
	// the schema must know a model before its entities are pushed
	engine, err := a.newEngine(core.WithObservers(holder, b), core.WithMetrics(metrics))
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return holder.Run(gctx) })
	g.Go(func() error { return server.New(cfg.Server, holder).Run(gctx) })
	if cfg.World.ManifestDir != "" {
		g.Go(func() error { return a.parser.Watch(gctx) })
	}
	if cfg.Redis.Addr != "" {
		client := broker.NewRedisClient(cfg.Redis)
		defer client.Close()
		relay := broker.NewRedisRelay(b, client, cfg.Redis.Channel)
		g.Go(func() error { return relay.Run(gctx) })
	}
	g.Go(func() error { return runEngine(gctx, engine, cfg.Engine.MaxElapsed) })
	return g.Wait()
}

// runEngine restarts the sync loop with exponential backoff after block
// failures. Each restart resumes from the stored cursor.
func runEngine(ctx context.Context, engine interfaces.Core, maxElapsed time.Duration) error {
	defer engine.Stop()
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, engine.Start(ctx)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(maxElapsed),
		backoff.WithNotify(func(err error, next time.Duration) {
			slog.Error("sync failed, restarting", "error", err, "in", next)
		}),
	)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
