package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;uniqueIndex"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	recorder := useSpanRecorder(t)
	db := setupTestDB(t)

	plugin := NewDBTracingPlugin(DBTracingConfig{}, zap.NewNop())
	require.NoError(t, plugin.RegisterOtelGorm(db))
	require.NoError(t, db.Create(&tracedRow{Name: "kitchen"}).Error)

	assert.Empty(t, recorder.Ended())
}

func TestDBTracingPlugin_AnnotatesSpans(t *testing.T) {
	recorder := useSpanRecorder(t)
	db := setupTestDB(t)

	plugin := NewDBTracingPlugin(DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: time.Nanosecond,
		DBSystem:        "sqlite",
	}, zap.NewNop())
	require.NoError(t, plugin.RegisterOtelGorm(db))

	require.NoError(t, db.Create(&tracedRow{Name: "kitchen"}).Error)
	require.Error(t, db.Create(&tracedRow{Name: "kitchen"}).Error)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Contains(t, ok.Attributes(), attribute.Int64("db.rows_affected", 1))
	assert.Contains(t, ok.Attributes(), attribute.String("db.sql.table", "traced_rows"))
	assert.Contains(t, ok.Attributes(), attribute.Bool("db.slow_query", true))

	failed := spans[1]
	assert.Equal(t, codes.Error, failed.Status().Code)
}

func TestDBTracingPlugin_DefaultThreshold(t *testing.T) {
	plugin := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop())
	assert.Equal(t, 200*time.Millisecond, plugin.config.SlowQueryThresh)
}

func TestDBTracingPlugin_DoubleRegistration(t *testing.T) {
	db := setupTestDB(t)
	plugin := NewDBTracingPlugin(DBTracingConfig{Enabled: true, DBSystem: "sqlite"}, zap.NewNop())

	require.NoError(t, plugin.RegisterOtelGorm(db))
	assert.Error(t, plugin.RegisterOtelGorm(db), "gorm refuses a second plugin with the same name")
}
