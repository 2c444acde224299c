// Package commands implements the lookup3 CLI subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/lookup3/pkg/config"
	"github.com/Sumatoshi-tech/lookup3/pkg/observability"
	"github.com/Sumatoshi-tech/lookup3/pkg/version"
)

const (
	flagConfig  = "config"
	flagVerbose = "verbose"
	flagQuiet   = "quiet"

	spanPrefix = "lookup3."
)

// RegisterGlobalFlags adds the persistent flags every subcommand reads.
func RegisterGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().String(flagConfig, "", "path to a lookup3 YAML config file")
	root.PersistentFlags().BoolP(flagVerbose, "v", false, "verbose output")
	root.PersistentFlags().BoolP(flagQuiet, "q", false, "suppress output")
}

// session carries the per-invocation config and telemetry.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *observability.HashMetrics
	shutdown func(ctx context.Context) error
}

// withSession loads configuration, starts telemetry and runs fn inside a
// span named after the command. Telemetry is flushed before returning.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, s.shutdown(context.WithoutCancel(ctx)))
	}()

	ctx, span := s.tracer.Start(ctx, spanPrefix+cmd.Name(),
		trace.WithAttributes(attribute.String("lookup3.version", version.Version)))
	defer span.End()

	s.logger.DebugContext(ctx, "command started", slog.Any("args", cmd.Flags().Args()))

	runErr := fn(ctx, s)
	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
		s.metrics.RecordError(ctx, cmd.Name())
		s.logger.DebugContext(ctx, "command failed", slog.String("error", runErr.Error()))

		return runErr
	}

	return nil
}

func openSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	cfg, err := config.LoadConfig(flagString(cmd, flagConfig))
	if err != nil {
		return nil, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.Command = cmd.Name()
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.LogJSON = cfg.Logging.Format == config.LogFormatJSON
	obsCfg.LogLevel = cfg.Logging.SlogLevel()
	obsCfg.LogOutput = cmd.ErrOrStderr()

	switch {
	case flagBool(cmd, flagQuiet):
		obsCfg.LogLevel = slog.LevelError
	case flagBool(cmd, flagVerbose):
		obsCfg.LogLevel = slog.LevelDebug
	}

	providers, err := observability.Init(ctx, obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	metrics, err := observability.NewHashMetrics(providers.Meter)
	if err != nil {
		return nil, errors.Join(err, providers.Shutdown(ctx))
	}

	return &session{
		cfg:      cfg,
		logger:   providers.Logger,
		tracer:   providers.Tracer,
		metrics:  metrics,
		shutdown: providers.Shutdown,
	}, nil
}

// flagString reads a string flag that may be absent when the command runs
// without the root's persistent flags.
func flagString(cmd *cobra.Command, name string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		return ""
	}

	return f.Value.String()
}

func flagBool(cmd *cobra.Command, name string) bool {
	return flagString(cmd, name) == "true"
}
