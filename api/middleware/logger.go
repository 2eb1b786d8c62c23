package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prasetyowira/qrstudio/constant"
	appLogger "github.com/prasetyowira/qrstudio/infrastructure/logger"
)

// RequestLogger tags each request with an ID (the caller's X-Request-ID when
// present) and logs the request and its outcome.
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constant.HeaderRequestID)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.New().String()
			}

			ctx := appLogger.WithRequestID(r.Context(), requestID)
			w.Header().Set(constant.HeaderRequestID, requestID)

			appLogger.CtxInfo(ctx, constant.MsgRequestReceived, appLogger.LoggerInfo{
				ContextFunction: constant.CtxAPI,
				Data: map[string]interface{}{
					constant.DataMethod:     r.Method,
					constant.DataPath:       r.URL.Path,
					constant.DataRemoteAddr: r.RemoteAddr,
					constant.DataUserAgent:  r.UserAgent(),
				},
			})

			ww := newStatusResponseWriter(w)

			startTime := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))
			latency := time.Since(startTime)

			logFunc := appLogger.CtxInfo
			if ww.status >= 400 && ww.status < 500 {
				logFunc = appLogger.CtxWarn
			} else if ww.status >= 500 {
				logFunc = appLogger.CtxError
			}

			logFunc(ctx, constant.MsgRequestCompleted, appLogger.LoggerInfo{
				ContextFunction: constant.CtxAPI,
				Data: map[string]interface{}{
					constant.DataStatus:  ww.status,
					constant.DataLatency: latency.String(),
					constant.DataMethod:  r.Method,
					constant.DataPath:    r.URL.Path,
					constant.DataSize:    ww.size,
				},
			})
		})
	}
}

// statusResponseWriter captures the status code and response size
type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func newStatusResponseWriter(w http.ResponseWriter) *statusResponseWriter {
	return &statusResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

// WriteHeader captures the status code
func (w *statusResponseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

// Write captures the response size
func (w *statusResponseWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	size, err := w.ResponseWriter.Write(b)
	w.size += size
	return size, err
}

// Unwrap exposes the underlying writer to http.ResponseController
func (w *statusResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
