package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	"github.com/signalsfoundry/doppler-validator/catalog"
	"github.com/signalsfoundry/doppler-validator/core"
	"github.com/signalsfoundry/doppler-validator/internal/config"
	"github.com/signalsfoundry/doppler-validator/internal/logging"
	"github.com/signalsfoundry/doppler-validator/internal/observability"
	"github.com/signalsfoundry/doppler-validator/internal/satnogs"
	"github.com/signalsfoundry/doppler-validator/internal/series"
	"github.com/signalsfoundry/doppler-validator/internal/tle"
	"github.com/signalsfoundry/doppler-validator/model"
	"github.com/signalsfoundry/doppler-validator/report"
)

func main() {
	configPath := flag.String("config", "configs/validation.yaml", "Path to the YAML run configuration")
	flag.Parse()

	_ = godotenv.Load()

	log := logging.NewFromEnv()
	ctx, log := logging.WithRunLogger(context.Background(), log)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error(ctx, "failed to load configuration", logging.String("path", *configPath), logging.String("error", err.Error()))
		os.Exit(1)
	}

	collector, err := observability.NewValidationCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	metricsSrv := serveMetrics(cfg.MetricsAddr, collector, log)

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: "doppler-validator",
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	}, log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}

	runErr := run(ctx, cfg, collector, log)

	observability.ShutdownWithTimeout(context.Background(), shutdown, log)
	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = metricsSrv.Shutdown(shutdownCtx)
		cancel()
	}

	if runErr != nil {
		log.Error(ctx, "validation run failed", logging.String("error", runErr.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, collector *observability.ValidationCollector, log logging.Logger) error {
	tracer := otel.Tracer("doppler-validator")

	ctx, loadSpan := tracer.Start(ctx, "load_inputs")
	elements, err := tle.LoadFile(cfg.Satellite.TLEPath)
	if err != nil {
		loadSpan.End()
		return err
	}
	log.Info(ctx, "loaded orbital elements",
		logging.String("satellite", elements.Name),
		logging.Int("norad_id", int(elements.NoradID)),
	)

	cat := catalog.New()
	if cfg.Satellite.Name != "" {
		elements.Name = cfg.Satellite.Name
	}
	if err := cat.Add(elements); err != nil {
		loadSpan.End()
		return err
	}

	carrierHz, err := resolveCarrier(ctx, cfg, elements, cat, satnogs.NewClient(""), log)
	if err != nil {
		loadSpan.End()
		return err
	}

	candidate, err := series.LoadFile(cfg.CandidatePath, carrierHz)
	if err != nil {
		loadSpan.End()
		return err
	}
	log.Info(ctx, "loaded candidate series",
		logging.String("path", cfg.CandidatePath),
		logging.Int("samples", len(candidate)),
	)
	loadSpan.End()

	ctx, compareSpan := tracer.Start(ctx, "compare")
	result, elapsed, err := compare(ctx, cfg, elements, carrierHz, candidate)
	compareSpan.End()
	if err != nil {
		return err
	}
	collector.ObserveRun(result, elapsed)
	log.Info(ctx, "comparison complete",
		logging.Int("samples", result.Stats.Samples),
		logging.Float("mean_abs_diff_hz", result.Stats.MeanAbsDiffHz),
		logging.String("verdict", result.Verdict.String()),
	)

	_, reportSpan := tracer.Start(ctx, "report")
	defer reportSpan.End()
	if err := report.WriteSummary(os.Stdout, result, carrierHz, cfg.VerdictThresholds()); err != nil {
		return err
	}
	if cfg.Report.RecordsCSV != "" {
		if err := report.ExportRecordsFile(cfg.Report.RecordsCSV, result.Records); err != nil {
			return err
		}
		log.Info(ctx, "exported comparison records", logging.String("path", cfg.Report.RecordsCSV))
	}
	return nil
}

// resolveCarrier returns the configured carrier, or looks the downlink up in
// the SatNOGS DB when the configuration leaves carrier_hz unset.
func resolveCarrier(ctx context.Context, cfg *config.Config, elements model.SatelliteElements, cat *catalog.Catalog, sat *satnogs.Client, log logging.Logger) (float64, error) {
	if cfg.CarrierHz > 0 {
		if err := cat.UpdateDownlink(elements.Name, cfg.CarrierHz); err != nil {
			return 0, err
		}
		return cfg.CarrierHz, nil
	}

	noradID := elements.NoradID
	if noradID == 0 {
		id, err := tle.LookupNoradID(cfg.Satellite.Name)
		if err != nil {
			return 0, err
		}
		noradID = id
	}

	downlink, err := sat.ActiveDownlink(ctx, noradID)
	if err != nil {
		return 0, err
	}
	if err := cat.UpdateDownlink(elements.Name, downlink.DownlinkHz); err != nil {
		return 0, err
	}
	log.Info(ctx, "resolved downlink from SatNOGS",
		logging.Int("norad_id", int(noradID)),
		logging.Float("downlink_hz", downlink.DownlinkHz),
		logging.String("mode", downlink.Mode),
	)
	return downlink.DownlinkHz, nil
}

func compare(ctx context.Context, cfg *config.Config, elements model.SatelliteElements, carrierHz float64, candidate model.CandidateSeries) (*core.RunResult, time.Duration, error) {
	provider := core.NewSGP4Provider(elements)
	estimator := core.NewRangeEstimator(provider, model.ObserverPosition{
		LatitudeDeg:  cfg.Observer.LatitudeDeg,
		LongitudeDeg: cfg.Observer.LongitudeDeg,
		ElevationM:   cfg.Observer.ElevationM,
	}, cfg.Step())

	comparator := core.NewComparator(estimator, carrierHz)
	comparator.Workers = cfg.Workers
	comparator.Thresholds = cfg.VerdictThresholds()

	start := time.Now()
	result, err := comparator.Run(ctx, candidate)
	if err != nil {
		return nil, 0, err
	}
	return result, time.Since(start), nil
}

func serveMetrics(addr string, collector *observability.ValidationCollector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
