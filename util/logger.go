package util

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func initLogger(level zapcore.Level) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.CallerKey = "ln"
	zapCfg.EncoderConfig.FunctionKey = ""
	zapCfg.EncoderConfig.LevelKey = "severity"
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.OutputPaths = []string{"stdout"}

	return zapCfg.Build()
}

// NewLogger builds the process logger at the given level. The returned func flushes it.
// The logger is not installed as the zap global; pass it to the components that need it.
func NewLogger(level int) (*zap.Logger, func(), error) {
	logger, err := initLogger(zapcore.Level(level))
	if err != nil {
		return nil, nil, NewUtilError(ErrCodeFailedToBuildLogger, "fail to init logger", err, level)
	}

	return logger, func() {
		_ = logger.Sync()
	}, nil
}
