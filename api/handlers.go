package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/prasetyowira/qrstudio/constant"
	"github.com/prasetyowira/qrstudio/domain/studio"
	appLogger "github.com/prasetyowira/qrstudio/infrastructure/logger"
	"github.com/prasetyowira/qrstudio/infrastructure/qrcode"
)

// MaxRequestBodyBytes caps POST bodies. A QR symbol holds under 3 KB of data.
const MaxRequestBodyBytes = 64 << 10

var errRequestTooLarge = errors.New("request body too large")

// QRService renders QR specs into file bytes
type QRService interface {
	GenerateBytes(ctx context.Context, spec studio.QRSpec, format string) ([]byte, error)
	Encoder(format string) qrcode.ImageEncoder
}

// HistoryLister lists saved exports
type HistoryLister interface {
	Recent(ctx context.Context, limit int) ([]studio.Export, error)
}

// Handler contains service dependencies for API handlers
type Handler struct {
	service  QRService
	history  HistoryLister
	defaults studio.Settings
}

// QRRequest is the request object for the QR code endpoint. Zero values take
// the server defaults.
type QRRequest struct {
	Text       string `json:"text"`
	Format     string `json:"format"`
	ErrorLevel string `json:"ec"`
	BoxSize    int    `json:"box"`
	Border     int    `json:"border"`
	FillColor  string `json:"fill"`
	Background string `json:"bg"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// NewHandler creates a new API handler. history may be nil when export
// history is disabled.
func NewHandler(service QRService, history HistoryLister, defaults studio.Settings) *Handler {
	return &Handler{
		service:  service,
		history:  history,
		defaults: defaults,
	}
}

// GenerateQRCode handles GET (query parameters) and POST (JSON body) QR requests
func (h *Handler) GenerateQRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingQRRequest, appLogger.LoggerInfo{
		ContextFunction: constant.CtxGenerateQR,
		Data: map[string]interface{}{
			constant.DataMethod: r.Method,
		},
	})

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	req, err := decodeQRRequest(r)
	if err != nil {
		appLogger.CtxWarn(ctx, "Error decoding QR request", appLogger.LoggerInfo{
			ContextFunction: constant.CtxGenerateQR,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIDecodeRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		status := http.StatusBadRequest
		if errors.Is(err, errRequestTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		WriteJSONError(w, err.Error(), status)
		return
	}

	spec, err := h.buildSpec(req)
	if err != nil {
		appLogger.CtxWarn(ctx, "Invalid QR parameters", appLogger.LoggerInfo{
			ContextFunction: constant.CtxGenerateQR,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIBadParameter,
				Message: err.Error(),
				Type:    constant.ErrTypeValidation,
			},
		})
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := req.Format
	if format == "" {
		format = constant.FormatPNG
	}
	enc := h.service.Encoder(format)

	data, err := h.service.GenerateBytes(ctx, spec, enc.Ext())
	if err != nil {
		if studio.IsValidation(err) {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		appLogger.CtxError(ctx, "Error generating QR code", appLogger.LoggerInfo{
			ContextFunction: constant.CtxGenerateQR,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataTextLength: len(spec.Data),
				constant.DataFormat:     enc.Ext(),
			},
		})
		WriteJSONError(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set(constant.HeaderContentType, enc.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ListHistory handles retrieving recent exports
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteJSONError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	appLogger.CtxDebug(ctx, constant.MsgHandlingHistory, appLogger.LoggerInfo{
		ContextFunction: constant.CtxHistory,
		Data: map[string]interface{}{
			constant.DataLimit: limit,
		},
	})

	if h.history == nil {
		WriteJSON(w, []studio.Export{}, http.StatusOK)
		return
	}

	exports, err := h.history.Recent(ctx, limit)
	if err != nil {
		appLogger.CtxError(ctx, "Error listing history", appLogger.LoggerInfo{
			ContextFunction: constant.CtxHistory,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIHistory,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		WriteJSONError(w, "Failed to list history", http.StatusInternalServerError)
		return
	}
	if exports == nil {
		exports = []studio.Export{}
	}

	WriteJSON(w, exports, http.StatusOK)
}

func decodeQRRequest(r *http.Request) (QRRequest, error) {
	var req QRRequest
	if r.Method == http.MethodPost {
		err := json.NewDecoder(r.Body).Decode(&req)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return req, errRequestTooLarge
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return req, errors.New("invalid request format")
		}
		return req, nil
	}

	q := r.URL.Query()
	req.Text = q.Get("text")
	req.Format = q.Get("format")
	req.ErrorLevel = q.Get("ec")
	req.FillColor = q.Get("fill")
	req.Background = q.Get("bg")

	var err error
	if req.BoxSize, err = intParam(q.Get("box"), "box"); err != nil {
		return req, err
	}
	if req.Border, err = intParam(q.Get("border"), "border"); err != nil {
		return req, err
	}
	return req, nil
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return n, nil
}

func (h *Handler) buildSpec(req QRRequest) (studio.QRSpec, error) {
	ec := firstNonEmpty(req.ErrorLevel, h.defaults.ErrorLevel)
	level, err := studio.ParseErrorLevel(ec)
	if err != nil {
		return studio.QRSpec{}, err
	}
	bg, err := studio.BackgroundByName(firstNonEmpty(req.Background, h.defaults.Background))
	if err != nil {
		return studio.QRSpec{}, err
	}

	spec := studio.QRSpec{
		Data:       req.Text,
		ErrorLevel: level,
		BoxSize:    req.BoxSize,
		Border:     req.Border,
		FillColor:  firstNonEmpty(req.FillColor, h.defaults.FillColor),
		Background: bg,
	}
	if spec.BoxSize == 0 {
		spec.BoxSize = h.defaults.BoxSize
	}
	if spec.Border == 0 {
		spec.Border = h.defaults.Border
	}
	return spec, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set(constant.HeaderContentType, constant.ContentTypeJSON)
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return
	}
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{
		Error: message,
		Code:  statusCode,
	}, statusCode)
}
