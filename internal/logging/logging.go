// Package logging builds the zap logger shared by the command line tool.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects verbosity and encoding.
type Config struct {
	// Debug lowers the level from warn to debug.
	Debug bool
	// JSON switches from the console encoder to structured JSON.
	JSON bool
	// Writer receives log lines. Defaults to stderr so poems on stdout stay
	// clean.
	Writer io.Writer
}

// New builds a logger from cfg.
func New(cfg Config) *zap.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	level := zap.WarnLevel
	if cfg.Debug {
		level = zap.DebugLevel
	}

	var encoder zapcore.Encoder
	if cfg.JSON {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "ts"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encoder = newMinimalEncoder()
	}

	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// newMinimalEncoder is a console encoder without timestamps or callers.
func newMinimalEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		NameKey:          "logger",
		EncodeLevel:      zapcore.LowercaseLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	})
}
