// Package metrics records game counters and timings via OpenTelemetry.
//
// Export is opt-in: Setup registers an OTLP HTTP exporter only when an
// endpoint is configured. Without it the global meter provider stays a no-op
// and recording costs nothing.
package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup initialises metric export for the given service. The returned
// shutdown function flushes pending metrics and should be deferred.
func Setup(ctx context.Context, serviceName, endpoint string) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	if endpoint == "" {
		return noop, nil
	}

	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpointURL(endpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	return mp.Shutdown, nil
}

// GameMetrics bundles the instruments the game service reports to.
type GameMetrics struct {
	gamesCreated   metric.Int64Counter
	gamesCompleted metric.Int64Counter
	playersJoined  metric.Int64Counter
	turnsTaken     metric.Int64Counter
	gameDuration   metric.Float64Histogram
}

// NewGameMetrics creates the game instruments on the global meter provider.
func NewGameMetrics() (*GameMetrics, error) {
	meter := otel.Meter("github.com/andrewpolewoy/kokodi/internal/metrics")

	gamesCreated, err := meter.Int64Counter("game.created",
		metric.WithDescription("Games created"))
	if err != nil {
		return nil, err
	}
	gamesCompleted, err := meter.Int64Counter("game.completed",
		metric.WithDescription("Games finished"))
	if err != nil {
		return nil, err
	}
	playersJoined, err := meter.Int64Counter("game.player.joined",
		metric.WithDescription("Players joined to games"))
	if err != nil {
		return nil, err
	}
	turnsTaken, err := meter.Int64Counter("game.turn.taken",
		metric.WithDescription("Turns resolved"))
	if err != nil {
		return nil, err
	}
	gameDuration, err := meter.Float64Histogram("game.duration",
		metric.WithDescription("Wall-clock game duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &GameMetrics{
		gamesCreated:   gamesCreated,
		gamesCompleted: gamesCompleted,
		playersJoined:  playersJoined,
		turnsTaken:     turnsTaken,
		gameDuration:   gameDuration,
	}, nil
}

func (m *GameMetrics) RecordGameCreated(ctx context.Context) {
	m.gamesCreated.Add(ctx, 1)
}

func (m *GameMetrics) RecordGameCompleted(ctx context.Context, duration time.Duration) {
	m.gamesCompleted.Add(ctx, 1)
	m.gameDuration.Record(ctx, duration.Seconds())
}

func (m *GameMetrics) RecordPlayerJoined(ctx context.Context) {
	m.playersJoined.Add(ctx, 1)
}

func (m *GameMetrics) RecordTurnTaken(ctx context.Context) {
	m.turnsTaken.Add(ctx, 1)
}
