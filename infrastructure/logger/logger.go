package logger

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/prasetyowira/qrstudio/constant"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LoggerInfo contains structured logging information
type LoggerInfo struct {
	ContextFunction string
	Error           *CustomError
	Data            map[string]interface{}
}

// CustomError represents a structured error for logging
type CustomError struct {
	Code    string
	Message string
	Type    string
}

// Initialize sets up the logger
func Initialize(isProduction bool) {
	logLevel := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	if isProduction {
		logLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        constant.LogTimeKey,
		LevelKey:       constant.LogLevelKey,
		NameKey:        constant.LogNameKey,
		CallerKey:      constant.LogCallerKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     constant.LogMessageKey,
		StacktraceKey:  constant.LogStacktraceKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	// The studio shell owns stdout, so log lines go to stderr in both modes.
	config := zap.Config{
		Level:            logLevel,
		Development:      !isProduction,
		Encoding:         constant.LogEncodingConsole,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{constant.LogOutputStderr},
		ErrorOutputPaths: []string{constant.LogOutputStderr},
	}
	if isProduction {
		config.Encoding = constant.LogEncodingJSON
		config.Sampling = &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		}
	}

	built, err := config.Build(zap.AddCallerSkip(2))
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger = built
}

// Use replaces the global logger. Tests pass zap.NewNop() or an observer core.
func Use(l *zap.Logger) {
	logger = l
}

// Close ensures logger syncs before shutdown
func Close() {
	if logger != nil {
		_ = logger.Sync()
	}
}

// createFields creates zap fields with proper structure
func createFields(ctx context.Context, info LoggerInfo) []zap.Field {
	fields := make([]zap.Field, 0, len(info.Data)+4)

	if requestID := getRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String(constant.LogRequestIDKey, requestID))
	}

	if info.ContextFunction != "" {
		fields = append(fields, zap.String(constant.LogFunctionKey, info.ContextFunction))
	}

	if info.Error != nil {
		fields = append(fields,
			zap.String(constant.LogErrorCodeKey, info.Error.Code),
			zap.String(constant.LogErrorTypeKey, info.Error.Type),
			zap.String(constant.LogErrorMessageKey, info.Error.Message),
		)
	}

	for k, v := range info.Data {
		fields = append(fields, zap.Any(k, v))
	}

	return fields
}

func write(ctx context.Context, level zapcore.Level, msg string, info LoggerInfo) {
	if logger == nil {
		if level == zapcore.FatalLevel {
			os.Exit(1)
		}
		return
	}
	if ce := logger.Check(level, msg); ce != nil {
		ce.Write(createFields(ctx, info)...)
	}
}

// Debug logs a debug message
func Debug(msg string, info LoggerInfo) {
	write(context.Background(), zapcore.DebugLevel, msg, info)
}

// Info logs an info message
func Info(msg string, info LoggerInfo) {
	write(context.Background(), zapcore.InfoLevel, msg, info)
}

// Warn logs a warning message
func Warn(msg string, info LoggerInfo) {
	write(context.Background(), zapcore.WarnLevel, msg, info)
}

// Error logs an error message
func Error(msg string, info LoggerInfo) {
	write(context.Background(), zapcore.ErrorLevel, msg, info)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, info LoggerInfo) {
	write(context.Background(), zapcore.FatalLevel, msg, info)
}

// CtxDebug logs a debug message with context
func CtxDebug(ctx context.Context, msg string, info LoggerInfo) {
	write(ctx, zapcore.DebugLevel, msg, info)
}

// CtxInfo logs an info message with context
func CtxInfo(ctx context.Context, msg string, info LoggerInfo) {
	write(ctx, zapcore.InfoLevel, msg, info)
}

// CtxWarn logs a warning message with context
func CtxWarn(ctx context.Context, msg string, info LoggerInfo) {
	write(ctx, zapcore.WarnLevel, msg, info)
}

// CtxError logs an error message with context
func CtxError(ctx context.Context, msg string, info LoggerInfo) {
	write(ctx, zapcore.ErrorLevel, msg, info)
}

// NewRequestContext creates a new context for a request
func NewRequestContext() context.Context {
	return context.Background()
}

type requestIDKey struct{}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request ID stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	return getRequestID(ctx)
}

func getRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}

	return ""
}

// FormatMetadata formats map data into key=value • key=value format, sorted by key
func FormatMetadata(data map[string]interface{}) string {
	if len(data) == 0 {
		return ""
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
	}
	return strings.Join(parts, " • ")
}
