// Package observability builds the zap logger and adapts it for the gRPC
// middleware.
package observability

import (
	"context"
	"fmt"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KirkDiggler/deltagreen-api/internal/config"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

// NewLogger creates a structured logger from the logging section.
// json builds a production logger, console a development one.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.InvalidArgumentf("parsing log level %q: %v", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, errors.InvalidArgumentf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return logger, nil
}

// GRPCLogger routes interceptor log lines into logger. The middleware
// passes fields as alternating key/value pairs.
func GRPCLogger(logger *zap.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(_ context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		zf := make([]zap.Field, 0, len(fields)/2+1)
		for i := 0; i < len(fields); i += 2 {
			key := fmt.Sprint(fields[i])
			if i+1 >= len(fields) {
				zf = append(zf, zap.String("extra", key))
				break
			}
			zf = append(zf, zap.Any(key, fields[i+1]))
		}

		switch lvl {
		case grpc_logging.LevelDebug:
			logger.Debug(msg, zf...)
		case grpc_logging.LevelWarn:
			logger.Warn(msg, zf...)
		case grpc_logging.LevelError:
			logger.Error(msg, zf...)
		default:
			logger.Info(msg, zf...)
		}
	})
}
