package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New создает корневой логгер. В режиме разработки - консольный вывод с уровня debug, иначе JSON с
// заданного уровня.
func New(devmode bool, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if devmode {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
		cfg.Level = lvl
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	logger.Debug("Logging initialized", zap.Bool("devmode", devmode))
	return logger, nil
}
