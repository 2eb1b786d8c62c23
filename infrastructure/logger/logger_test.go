package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	Use(zap.New(core))
	t.Cleanup(func() { Use(nil) })
	return logs
}

func TestCtxInfo_Fields(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)
	ctx := WithRequestID(context.Background(), "req-1")

	CtxInfo(ctx, "QR code encoded", LoggerInfo{
		ContextFunction: "GenerateBytes",
		Data: map[string]interface{}{
			"format": "png",
			"bytes":  512,
		},
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "QR code encoded", entry.Message)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "GenerateBytes", fields["function"])
	assert.Equal(t, "png", fields["format"])
	assert.EqualValues(t, 512, fields["bytes"])
}

func TestCtxError_CustomError(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	CtxError(context.Background(), "Failed to save QR code", LoggerInfo{
		Error: &CustomError{Code: "QRS302", Message: "permission denied", Type: "storage"},
	})

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "QRS302", fields["error_code"])
	assert.Equal(t, "storage", fields["error_type"])
	assert.Equal(t, "permission denied", fields["error_message"])
	assert.NotContains(t, fields, "request_id")
}

func TestLevelFiltering(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	Debug("hidden", LoggerInfo{})
	Info("shown", LoggerInfo{})
	Warn("shown", LoggerInfo{})
	CtxDebug(context.Background(), "hidden", LoggerInfo{})

	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, 0, logs.FilterMessage("hidden").Len())
}

func TestNilLoggerIsNoop(t *testing.T) {
	Use(nil)

	assert.NotPanics(t, func() {
		Info("nobody listens", LoggerInfo{})
		CtxWarn(context.Background(), "nobody listens", LoggerInfo{})
		Close()
	})
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))
}

func TestFormatMetadata(t *testing.T) {
	assert.Empty(t, FormatMetadata(nil))
	assert.Equal(t, "a=1 • b=two", FormatMetadata(map[string]interface{}{"b": "two", "a": 1}))
}
