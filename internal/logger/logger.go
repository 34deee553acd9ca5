package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vietanh2810/event-registration-api/internal/config"
)

var level = zap.NewAtomicLevelAt(zap.InfoLevel)

// Init builds the global zap logger for the given environment.
func Init(environment string) error {
	var conf zap.Config
	switch environment {
	case config.EnvProduction:
		conf = zap.NewProductionConfig()
		level.SetLevel(zap.InfoLevel)
	case config.EnvTest:
		conf = zap.NewDevelopmentConfig()
		level.SetLevel(zap.WarnLevel)
	default:
		conf = zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		level.SetLevel(zap.DebugLevel)
	}
	conf.Level = level

	l, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}

// SetLevel changes the level of the global logger at run time.
func SetLevel(name string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("invalid log level %q -> %w", name, err)
	}

	level.SetLevel(lvl)

	return nil
}

func Level() zapcore.Level {
	return level.Level()
}
