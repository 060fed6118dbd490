// Command phenrv is the CLI for the phenomenological rendezvous core:
// derive target patterns from a shared token, match measured-pattern
// streams offline, and run Monte-Carlo false-rendezvous simulations.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kiloran/phenrv/internal/adapters/patternio"
	service "github.com/kiloran/phenrv/internal/app"
	"github.com/kiloran/phenrv/internal/config"
	"github.com/kiloran/phenrv/internal/domain/matching"
	"github.com/kiloran/phenrv/internal/domain/pattern"
	"github.com/kiloran/phenrv/internal/domain/sim"
	"github.com/kiloran/phenrv/internal/domain/token"
	"github.com/kiloran/phenrv/pkg/logger"
	"github.com/kiloran/phenrv/pkg/metrics"
)

// Metrics HTTP server timeout constants.
const (
	metricsReadTimeout       = 5 * time.Second
	metricsReadHeaderTimeout = 5 * time.Second
	metricsWriteTimeout      = 10 * time.Second
	metricsIdleTimeout       = 60 * time.Second
)

const usage = `phenrv - phenomenological rendezvous tools

Usage:
  phenrv derive   -token <hex> [-salt <string>]
  phenrv match    -target <pattern.json> -measured <stream.jsonl> [-epsilon f] [-window n]
  phenrv match    -token <hex> [-salt <string>] -measured <stream.jsonl> [-epsilon f] [-window n]
  phenrv simulate [-token <hex>] [-salt <string>] [-trials n] [-peers n] [-epsilon f]
                  [-window n] [-geo-factor f] [-collision shared_target|mutual]
                  [-seed n] [-workers n] [-metrics-addr :9091]

Configuration defaults load from a YAML file named by PHENRV_CONFIG and from
PHENRV_* environment variables; flags win over both. JSON documents go to
stdout, logs to stderr.
`

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("logger sync failed: " + err.Error() + "\n")
		}
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	if len(os.Args) < 2 {
		os.Stderr.WriteString(usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "derive":
		err = runDerive(ctx, cfg, os.Args[2:])
	case "match":
		err = runMatch(ctx, cfg, os.Args[2:])
	case "simulate":
		err = runSimulate(ctx, cfg, os.Args[2:])
	case "help", "-h", "-help", "--help":
		os.Stdout.WriteString(usage)
		return
	default:
		os.Stderr.WriteString("unknown command: " + os.Args[1] + "\n\n" + usage)
		os.Exit(2)
	}
	if err != nil {
		os.Stderr.WriteString(os.Args[1] + " failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func runDerive(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("derive", flag.ExitOnError)
	tokenHex := fs.String("token", "", "rendezvous token as 64 hex characters")
	salt := fs.String("salt", cfg.Salt, "oracle state combined with the token")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tok, err := token.FromHex(*tokenHex)
	if err != nil {
		return err
	}

	svc, err := service.New(service.WithLogger(logger.Get()))
	if err != nil {
		return err
	}
	target := svc.DeriveTarget(ctx, tok, []byte(*salt))
	return patternio.WriteJSON(os.Stdout, target)
}

func runMatch(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	targetPath := fs.String("target", "", "target pattern JSON document")
	tokenHex := fs.String("token", "", "derive the target from this token instead of -target")
	salt := fs.String("salt", cfg.Salt, "oracle state for -token derivation")
	measuredPath := fs.String("measured", "", "JSONL stream of measured patterns")
	epsilon := fs.Float64("epsilon", cfg.Epsilon, "inclusive normalized-distance threshold")
	window := fs.Int("window", cfg.WindowSize, "consecutive within-threshold observations required")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mcfg, err := matching.NewConfig(*epsilon, *window)
	if err != nil {
		return err
	}

	svc, err := service.New(service.WithLogger(logger.Get()))
	if err != nil {
		return err
	}

	target, err := resolveTarget(ctx, svc, *targetPath, *tokenHex, *salt)
	if err != nil {
		return err
	}

	f, err := os.Open(*measuredPath) //nolint:gosec // operator-supplied path
	if err != nil {
		return err
	}
	defer f.Close()

	report, err := svc.MatchStream(ctx, target, mcfg, patternio.NewStreamDecoder(f))
	if err != nil {
		return err
	}
	return patternio.WriteJSON(os.Stdout, report)
}

func runSimulate(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	tokenHex := fs.String("token", "", "reference token (hex); all-zero when empty")
	salt := fs.String("salt", cfg.Salt, "oracle state for target derivation")
	trials := fs.Int("trials", cfg.NumTrials, "number of independent trials")
	peers := fs.Int("peers", cfg.NumPeers, "random peers sampled per trial")
	epsilon := fs.Float64("epsilon", cfg.Epsilon, "inclusive normalized-distance threshold")
	window := fs.Int("window", cfg.WindowSize, "observation window size")
	geoFactor := fs.Float64("geo-factor", cfg.GeoFilterFactor, "geographic filter factor in [0,1]")
	geoFilter := fs.Bool("geo-filter", cfg.ApplyGeoFilter, "apply the geographic filter factor")
	collision := fs.String("collision", cfg.CollisionMode, "double-match interpretation: shared_target or mutual")
	seed := fs.Int64("seed", cfg.Seed, "rng seed; equal seeds reproduce runs")
	workers := fs.Int("workers", cfg.Workers, "trial fan-out; 0 means one per CPU")
	metricsAddr := fs.String("metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address while running")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tok := token.Token{}
	if *tokenHex != "" {
		var err error
		tok, err = token.FromHex(*tokenHex)
		if err != nil {
			return err
		}
	}

	if *metricsAddr != "" {
		startMetricsServer(ctx, *metricsAddr)
	}

	svc, err := service.New(service.WithLogger(logger.Get()))
	if err != nil {
		return err
	}

	result, err := svc.RunSimulation(ctx, sim.Config{
		NumTrials:       *trials,
		NumPeers:        *peers,
		Epsilon:         *epsilon,
		WindowSize:      *window,
		ApplyGeoFilter:  *geoFilter,
		GeoFilterFactor: *geoFactor,
		CollisionMode:   sim.CollisionMode(*collision),
		Seed:            *seed,
		Workers:         *workers,
	}, tok, []byte(*salt))
	if err != nil {
		return err
	}
	return patternio.WriteJSON(os.Stdout, result)
}

// resolveTarget prefers an explicit target document and falls back to
// deriving one from a token.
func resolveTarget(ctx context.Context, svc *service.Service, targetPath, tokenHex, salt string) (pattern.Pattern, error) {
	if targetPath != "" {
		return patternio.ReadTargetFile(targetPath)
	}
	tok, err := token.FromHex(tokenHex)
	if err != nil {
		return pattern.Pattern{}, err
	}
	return svc.DeriveTarget(ctx, tok, []byte(salt)), nil
}

// startMetricsServer exposes the custom registry for scraping during long
// runs. Best effort: a failed listener is logged, not fatal.
func startMetricsServer(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       metricsReadTimeout,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
		WriteTimeout:      metricsWriteTimeout,
		IdleTimeout:       metricsIdleTimeout,
	}
	go func() {
		logger.Get().Info(ctx, "serving metrics", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Get().Warn(ctx, "metrics server failed", logger.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
}
