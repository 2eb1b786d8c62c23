package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prasetyowira/qrstudio/domain/studio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormLogger "gorm.io/gorm/logger"
)

// Helper function to create a test repository
func createTestRepository(t *testing.T) *HistoryRepository {
	t.Helper()

	repo, err := NewHistoryRepository(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

func sampleExport(path string, at time.Time) *studio.Export {
	return &studio.Export{
		Data:       "https://example.com",
		Format:     "png",
		Path:       path,
		ErrorLevel: "M",
		BoxSize:    10,
		Border:     4,
		FillColor:  "black",
		Background: "White",
		Size:       1234,
		CreatedAt:  at,
	}
}

func TestNewHistoryRepository(t *testing.T) {
	repo, err := NewHistoryRepository(filepath.Join(t.TempDir(), "history.db"))

	assert.NoError(t, err)
	require.NotNil(t, repo)
	assert.NotNil(t, repo.db)
	assert.NoError(t, repo.Close())
}

func TestNewHistoryRepository_InvalidPath(t *testing.T) {
	repo, err := NewHistoryRepository(filepath.Join(t.TempDir(), "missing", "dir", "history.db"))

	assert.Error(t, err)
	assert.Nil(t, repo)
}

func TestHistoryRepository_Record(t *testing.T) {
	repo := createTestRepository(t)
	export := sampleExport("/tmp/a.png", time.Now().Truncate(time.Second))

	err := repo.Record(context.Background(), export)

	assert.NoError(t, err)
	assert.NotZero(t, export.ID)

	var count int64
	require.NoError(t, repo.db.Model(&ExportModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestHistoryRepository_RecordFillsCreatedAt(t *testing.T) {
	repo := createTestRepository(t)
	export := sampleExport("/tmp/a.png", time.Time{})

	require.NoError(t, repo.Record(context.Background(), export))

	assert.False(t, export.CreatedAt.IsZero())
}

func TestHistoryRepository_RecentNewestFirst(t *testing.T) {
	repo := createTestRepository(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	for i, p := range []string{"/tmp/1.png", "/tmp/2.svg", "/tmp/3.png"} {
		require.NoError(t, repo.Record(ctx, sampleExport(p, base.Add(time.Duration(i)*time.Minute))))
	}

	exports, err := repo.Recent(ctx, 2)

	require.NoError(t, err)
	require.Len(t, exports, 2)
	assert.Equal(t, "/tmp/3.png", exports[0].Path)
	assert.Equal(t, "/tmp/2.svg", exports[1].Path)
	assert.Equal(t, "https://example.com", exports[0].Data)
	assert.Equal(t, 10, exports[0].BoxSize)
	assert.Equal(t, "White", exports[0].Background)
}

func TestHistoryRepository_RecentDefaultLimit(t *testing.T) {
	repo := createTestRepository(t)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < DefaultRecentLimit+5; i++ {
		require.NoError(t, repo.Record(ctx, sampleExport("/tmp/x.png", now)))
	}

	exports, err := repo.Recent(ctx, 0)

	require.NoError(t, err)
	assert.Len(t, exports, DefaultRecentLimit)
	// Same timestamp falls back to insertion order
	assert.Greater(t, exports[0].ID, exports[1].ID)
}

func TestHistoryRepository_RecentEmpty(t *testing.T) {
	repo := createTestRepository(t)

	exports, err := repo.Recent(context.Background(), 10)

	assert.NoError(t, err)
	assert.NotNil(t, exports)
	assert.Empty(t, exports)
}

func TestHistoryRepository_ImplementsStudioHistory(t *testing.T) {
	var _ studio.HistoryRepository = (*HistoryRepository)(nil)
}

func TestGormLogger_LogMode(t *testing.T) {
	l := NewGormLogger(gormLogger.Info)

	silent := l.LogMode(gormLogger.Silent)

	assert.NotSame(t, l, silent)
	assert.Equal(t, gormLogger.Info, l.level)
	assert.Equal(t, gormLogger.Silent, silent.(*GormLogger).level)
	assert.NotPanics(t, func() {
		silent.Trace(context.Background(), time.Now(), func() (string, int64) {
			t.Fatal("silent logger must not evaluate the statement")
			return "", 0
		}, nil)
	})
}
