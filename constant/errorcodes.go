package constant

// Studio error codes
const (
	// Validation errors (1xx)
	ErrCodeEmptyText         = "QRS101"
	ErrCodeInvalidBoxSize    = "QRS102"
	ErrCodeInvalidBorder     = "QRS103"
	ErrCodeInvalidColor      = "QRS104"
	ErrCodeUnknownBackground = "QRS105"
	ErrCodeUnknownErrorLevel = "QRS106"

	// Encoding errors (2xx)
	ErrCodeEncode = "QRS201"
	ErrCodeRender = "QRS202"

	// Save errors (3xx)
	ErrCodeNothingToSave = "QRS301"
	ErrCodeSaveFailure   = "QRS302"
	ErrCodePathPrompt    = "QRS303"
	ErrCodeHistoryRecord = "QRS304"
)

// Database error codes
const (
	// General DB errors (5xx)
	ErrCodeDBGeneral = "DB500"

	// Connection errors (0xx)
	ErrCodeDBOpen    = "DB001"
	ErrCodeDBMigrate = "DB002"

	// Record operation errors (1xx)
	ErrCodeDBInsert = "DB102"

	// Recent operation errors (2xx)
	ErrCodeDBLookup = "DB201"

	// Close operation errors (4xx)
	ErrCodeDBClose = "DB401"
)

// API error codes
const (
	ErrCodeAPIDecodeRequest  = "API001"
	ErrCodeAPIServiceError   = "API002"
	ErrCodeAPIBadParameter   = "API003"
	ErrCodeAPIHistory        = "API004"
	ErrCodeAppConfig         = "APP000"
	ErrCodeAppDBInit         = "APP001"
	ErrCodeAppServerStart    = "APP002"
	ErrCodeAppServerShutdown = "APP003"
	ErrCodeAppCommand        = "APP004"
)

// Error types for categorization
const (
	ErrTypeValidation = "validation"
	ErrTypeEncoding   = "encoding"
	ErrTypeStorage    = "storage"
	ErrTypeDB         = "db"
	ErrTypeAPI        = "api"
	ErrTypeApp        = "application"
)
