package db

import (
	"context"
	"errors"
	"time"

	"github.com/prasetyowira/qrstudio/constant"
	"github.com/prasetyowira/qrstudio/domain/studio"
	appLogger "github.com/prasetyowira/qrstudio/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DefaultRecentLimit is used when Recent is asked for zero or fewer rows.
const DefaultRecentLimit = 20

// HistoryRepository implements studio.HistoryRepository on SQLite
type HistoryRepository struct {
	db *gorm.DB
}

// ExportModel is the GORM model for a saved QR file
type ExportModel struct {
	ID         uint   `gorm:"primaryKey"`
	Data       string `gorm:"not null"`
	Format     string `gorm:"not null"`
	Path       string `gorm:"not null"`
	ErrorLevel string
	BoxSize    int
	Border     int
	FillColor  string
	Background string
	Size       int
	CreatedAt  time.Time `gorm:"index"`
}

// SlowQueryThreshold marks queries that are logged as warnings.
const SlowQueryThreshold = 200 * time.Millisecond

// GormLogger routes GORM's logging into the application logger
type GormLogger struct {
	level gormLogger.LogLevel
}

// NewGormLogger creates a GORM logger at the given level
func NewGormLogger(level gormLogger.LogLevel) *GormLogger {
	return &GormLogger{level: level}
}

// LogMode returns a copy of the logger at level
func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return &GormLogger{level: level}
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level < gormLogger.Info {
		return
	}
	appLogger.CtxInfo(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level < gormLogger.Warn {
		return
	}
	appLogger.CtxWarn(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level < gormLogger.Error {
		return
	}
	appLogger.CtxError(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeDBGeneral,
			Message: msg,
			Type:    constant.ErrTypeDB,
		},
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Trace logs each statement: failures as errors, slow queries as warnings
// and everything else at debug level.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormLogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	data := map[string]interface{}{
		constant.DataElapsed: elapsed.String(),
		constant.DataRows:    rows,
		constant.DataSQL:     sql,
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormLogger.Error:
		appLogger.CtxError(ctx, "SQL error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBGeneral,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: data,
		})
	case elapsed > SlowQueryThreshold && l.level >= gormLogger.Warn:
		appLogger.CtxWarn(ctx, "Slow SQL query", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Data:            data,
		})
	case l.level >= gormLogger.Info:
		appLogger.CtxDebug(ctx, "SQL query", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Data:            data,
		})
	}
}

// NewHistoryRepository opens (or creates) the export history at dbPath
func NewHistoryRepository(dbPath string) (*HistoryRepository, error) {
	ctx := appLogger.NewRequestContext()

	appLogger.CtxDebug(ctx, "Opening SQLite database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: NewGormLogger(gormLogger.Info),
	})
	if err != nil {
		appLogger.CtxError(ctx, "Failed to open database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBOpen,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataPath: dbPath,
			},
		})
		return nil, err
	}

	if err := db.AutoMigrate(&ExportModel{}); err != nil {
		appLogger.CtxError(ctx, "Failed to migrate database schema", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBMigrate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, err
	}

	appLogger.CtxInfo(ctx, "Database initialized successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	return &HistoryRepository{db: db}, nil
}

// Record stores an export and fills in its ID
func (r *HistoryRepository) Record(ctx context.Context, export *studio.Export) error {
	model := ExportModel{
		Data:       export.Data,
		Format:     export.Format,
		Path:       export.Path,
		ErrorLevel: export.ErrorLevel,
		BoxSize:    export.BoxSize,
		Border:     export.Border,
		FillColor:  export.FillColor,
		Background: export.Background,
		Size:       export.Size,
		CreatedAt:  export.CreatedAt,
	}
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now()
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		appLogger.CtxError(ctx, "Failed to insert export", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRecord,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBInsert,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataFilePath: export.Path,
				constant.DataFormat:   export.Format,
			},
		})
		return err
	}

	export.ID = model.ID
	export.CreatedAt = model.CreatedAt

	appLogger.CtxInfo(ctx, "Export recorded", appLogger.LoggerInfo{
		ContextFunction: constant.CtxRecord,
		Data: map[string]interface{}{
			constant.DataFilePath: export.Path,
			constant.DataFormat:   export.Format,
			constant.DataBytes:    export.Size,
		},
	})

	return nil
}

// Recent returns up to limit exports, newest first
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]studio.Export, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	var models []ExportModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		appLogger.CtxError(ctx, "Failed to list exports", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRecent,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBLookup,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataLimit: limit,
			},
		})
		return nil, err
	}

	exports := make([]studio.Export, 0, len(models))
	for _, m := range models {
		exports = append(exports, studio.Export{
			ID:         m.ID,
			Data:       m.Data,
			Format:     m.Format,
			Path:       m.Path,
			ErrorLevel: m.ErrorLevel,
			BoxSize:    m.BoxSize,
			Border:     m.Border,
			FillColor:  m.FillColor,
			Background: m.Background,
			Size:       m.Size,
			CreatedAt:  m.CreatedAt,
		})
	}

	appLogger.CtxDebug(ctx, "Exports listed", appLogger.LoggerInfo{
		ContextFunction: constant.CtxRecent,
		Data: map[string]interface{}{
			constant.DataLimit: limit,
			constant.DataRows:  len(exports),
		},
	})

	return exports, nil
}

// Close closes the database connection
func (r *HistoryRepository) Close() error {
	ctx := context.Background()
	sqlDB, err := r.db.DB()
	if err != nil {
		appLogger.CtxError(ctx, "Failed to get database connection", appLogger.LoggerInfo{
			ContextFunction: constant.CtxClose,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBClose,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return err
	}

	appLogger.CtxInfo(ctx, "Closing database connection", appLogger.LoggerInfo{
		ContextFunction: constant.CtxClose,
	})

	return sqlDB.Close()
}
