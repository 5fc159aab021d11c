package db

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"scribe/config"
	"scribe/interfaces"
)

// InfluxWriter stores per block statistics as InfluxDB points.
type InfluxWriter struct {
	cfg    config.InfluxDBConfig
	client influxdb2.Client
	writer api.WriteAPIBlocking
}

var _ interfaces.PointWriter = (*InfluxWriter)(nil)

func NewInfluxWriter(cfg config.InfluxDBConfig) *InfluxWriter {
	slog.Info("connecting to influx", "url", cfg.URL, "bucket", cfg.Bucket)
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	return &InfluxWriter{
		cfg:    cfg,
		client: client,
		writer: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
	}
}

func (w *InfluxWriter) WritePoint(ctx context.Context, measurement string, tags map[string]string, fields map[string]interface{}, ts time.Time) error {
	point := influxdb2.NewPoint(measurement, tags, fields, ts)
	return w.writer.WritePoint(ctx, point)
}

func (w *InfluxWriter) Close() {
	w.client.Close()
}
