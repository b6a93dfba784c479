package logger

import (
	"os"
	"sync"
	"time"

	"github.com/leandrodaf/miditex/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements contracts.Logger on top of the Uber zap logger.
type ZapLogger struct {
	mu      sync.RWMutex
	logger  *zap.Logger
	level   zap.AtomicLevel
	encoder func() zapcore.Encoder
	closer  func() error
}

// NewZapLogger creates a JSON logger writing to stderr.
func NewZapLogger() contracts.Logger {
	return newZapLogger(func() zapcore.Encoder {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	})
}

// NewStandardLogger creates a human readable console logger writing to stderr.
func NewStandardLogger() contracts.Logger {
	return newZapLogger(func() zapcore.Encoder {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
		return zapcore.NewConsoleEncoder(cfg)
	})
}

func newZapLogger(encoder func() zapcore.Encoder) *ZapLogger {
	z := &ZapLogger{
		level:   zap.NewAtomicLevelAt(zapcore.InfoLevel),
		encoder: encoder,
	}
	z.logger = z.build(zapcore.Lock(os.Stderr))
	return z
}

// NewWithCore wraps an existing zap core, such as a zaptest observer. Level
// filtering still applies; SetDestination is a no-op.
func NewWithCore(core zapcore.Core) contracts.Logger {
	return &ZapLogger{
		logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)),
		level:  zap.NewAtomicLevelAt(zapcore.InfoLevel),
	}
}

func (z *ZapLogger) build(ws zapcore.WriteSyncer) *zap.Logger {
	return zap.New(
		zapcore.NewCore(z.encoder(), ws, z.level),
		zap.AddCaller(),
		zap.AddCallerSkip(2),
	)
}

// Info logs a message at the INFO level
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.log(zapcore.InfoLevel, msg, fields...)
}

// Error logs a message at the ERROR level
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.log(zapcore.ErrorLevel, msg, fields...)
}

// Debug logs a message at the DEBUG level
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.log(zapcore.DebugLevel, msg, fields...)
}

// Warn logs a message at the WARN level
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.log(zapcore.WarnLevel, msg, fields...)
}

// Fatal logs a message at the FATAL level and terminates the application
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.log(zapcore.FatalLevel, msg, fields...)
}

// Field returns a new instance of Field
func (z *ZapLogger) Field() contracts.Field {
	return &zapField{}
}

// SetLevel sets the logging level
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level.SetLevel(toZapLevel(level))
}

// SetDestination redirects output to the console or to a file. Loggers built
// around a custom core ignore it.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) {
	if z.encoder == nil {
		return
	}

	var ws zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	var closer func() error
	if dest == contracts.FileLog && len(filePath) > 0 && filePath[0] != "" {
		f, err := os.OpenFile(filePath[0], os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			z.Error("Failed to open log file", z.Field().String("path", filePath[0]), z.Field().Error("error", err))
			return
		}
		ws = zapcore.Lock(f)
		closer = f.Close
	}

	z.mu.Lock()
	old := z.closer
	_ = z.logger.Sync()
	z.logger = z.build(ws)
	z.closer = closer
	z.mu.Unlock()

	if old != nil {
		_ = old()
	}
}

// log is the internal entry point for every level
func (z *ZapLogger) log(level zapcore.Level, msg string, fields ...contracts.Field) {
	if !z.level.Enabled(level) {
		return
	}

	z.mu.RLock()
	l := z.logger
	z.mu.RUnlock()

	zf := toZapFields(fields)
	switch level {
	case zapcore.InfoLevel:
		l.Info(msg, zf...)
	case zapcore.ErrorLevel:
		l.Error(msg, zf...)
	case zapcore.DebugLevel:
		l.Debug(msg, zf...)
	case zapcore.WarnLevel:
		l.Warn(msg, zf...)
	case zapcore.FatalLevel:
		l.Fatal(msg, zf...)
	}
}

func toZapLevel(level contracts.LogLevel) zapcore.Level {
	switch level {
	case contracts.DebugLevel:
		return zapcore.DebugLevel
	case contracts.WarnLevel:
		return zapcore.WarnLevel
	case contracts.ErrorLevel:
		return zapcore.ErrorLevel
	case contracts.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields []contracts.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(*zapField); ok && f.set {
			out = append(out, f.field)
		}
	}
	return out
}

// zapField implements contracts.Field
type zapField struct {
	field zap.Field
	set   bool
}

func newField(f zap.Field) contracts.Field {
	return &zapField{field: f, set: true}
}

func (f *zapField) Int(key string, val int) contracts.Field {
	return newField(zap.Int(key, val))
}

func (f *zapField) String(key string, val string) contracts.Field {
	return newField(zap.String(key, val))
}

func (f *zapField) Error(key string, val error) contracts.Field {
	return newField(zap.NamedError(key, val))
}

func (f *zapField) Uint64(key string, val uint64) contracts.Field {
	return newField(zap.Uint64(key, val))
}

func (f *zapField) Uint8(key string, val uint8) contracts.Field {
	return newField(zap.Uint8(key, val))
}
