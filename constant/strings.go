package constant

// HTTP header names
const (
	HeaderRequestID   = "X-Request-ID"
	HeaderContentType = "Content-Type"
)

// Content types
const (
	ContentTypeJSON = "application/json"
	ContentTypePNG  = "image/png"
	ContentTypeSVG  = "image/svg+xml"
)

// Function/Context names
const (
	// Domain context names
	CtxStudio   = "studio"
	CtxGenerate = "Generate"
	CtxSave     = "Save"
	CtxClear    = "Clear"
	CtxPreview  = "SetPreview"
	CtxService  = "GenerateBytes"
	CtxEncoder  = "Encode"
	CtxEventBus = "EventBus"

	// Infrastructure context names
	CtxDB     = "db"
	CtxRecord = "Record"
	CtxRecent = "Recent"
	CtxClose  = "Close"
	CtxAPI    = "api"

	// General context names
	CtxRouter     = "Router"
	CtxMain       = "Main"
	CtxShell      = "Shell"
	CtxGenerateQR = "GenerateQR"
	CtxHistory    = "ListHistory"
)

// Data field keys
const (
	// Studio data fields
	DataService    = "service"
	DataText       = "text"
	DataTextLength = "text_length"
	DataErrorLevel = "error_level"
	DataBoxSize    = "box_size"
	DataBorder     = "border"
	DataFillColor  = "fill_color"
	DataBackground = "background"
	DataFormat     = "format"
	DataModules    = "modules"
	DataWidth      = "width"
	DataHeight     = "height"
	DataFilePath   = "file_path"
	DataBytes      = "bytes"
	DataCacheHit   = "cache_hit"
	DataMessage    = "message"
	DataLimit      = "limit"

	// Database data fields
	DataPath         = "path"
	DataElapsed      = "elapsed"
	DataRows         = "rows"
	DataSQL          = "sql"
	DataData         = "data"
	DataRowsAffected = "rows_affected"

	// API data fields
	DataMethod      = "method"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataDBPath      = "db_path"
	DataEnvironment = "environment"
	DataConfigFile  = "config_file"
	DataCommand     = "command"
)

// Error message constants
const (
	ErrEmptyText         = "text cannot be empty"
	ErrInvalidBoxSize    = "box size out of range"
	ErrInvalidBorder     = "border out of range"
	ErrInvalidColor      = "invalid color"
	ErrUnknownBackground = "unknown background"
	ErrUnknownErrorLevel = "unknown error correction level"
	ErrNothingToSave     = "nothing to save"
	ErrHistoryDisabled   = "history is disabled"
)

// User-facing notices
const (
	TitleNoInput        = "No input"
	TitleInvalidOptions = "Invalid options"
	TitleGenerateFailed = "Generate failed"
	NoticeNoInput       = "Please enter some text/URL to encode."
	TitleNothingToSave  = "Nothing to save"
	NoticeNothingSaved  = "Generate a QR code first."
	TitleSaved          = "Saved"
	NoticeSaved         = "QR code saved:\n%s"
	TitleSaveFailed     = "Save failed"
	NoticeSaveFailed    = "Could not save file:\n%s"
)

// Event bus messages
const (
	EventReady     = "Ready. Enter your text (e.g., https://github.com/your-username) and press Generate."
	EventGenerated = "Generated QR (%s)."
	EventSaved     = "Saved QR to %s"
	EventSaveError = "ERROR saving: %v"
	EventCleared   = "Cleared."
)

// Status line
const (
	StatusReady     = "Ready"
	StatusCleared   = "Cleared"
	StatusNoPreview = "No preview"
	StatusPreview   = "Preview %d×%d"
)

// API routes
const (
	RouteQRCode      = "/api/qr"
	RouteHistory     = "/api/history"
	RouteHealthcheck = "/health"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	LogLevelInfo   = "INFO"
)

// Message constants for application
const (
	MsgApplicationStarting = "Application starting"
	MsgFailedToLoadConfig  = "Failed to load configuration"
	MsgFailedToInitDB      = "Failed to initialize history database"
	MsgServerStarting      = "Server starting"
	MsgServerFailedToStart = "Server failed to start"
	MsgServerShuttingDown  = "Server shutting down"
	MsgServerShutdownError = "Error during server shutdown"
	MsgServerStopped       = "Server stopped"
	MsgRequestReceived     = "Request received"
	MsgRequestCompleted    = "Request completed"
	MsgHandlingQRRequest   = "Handling QR code request"
	MsgHandlingHistory     = "Handling history request"
	MsgSettingUpRoutes     = "Setting up API routes"
	MsgHealthcheckRequest  = "Handling healthcheck request"
	MsgHealthy             = "Healthy"
	MsgCommandFailed       = "Command failed"
	MsgStudioEvent         = "Studio event"
)

// Cache namespaces
const (
	PNGNamespace = "PNG"
	SVGNamespace = "SVG"
)

// Output formats
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)
