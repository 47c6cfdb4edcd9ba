package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/somin-jeong/quote-to-wake/config"
)

func TestViewDayUsesAppTimezone(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 20:00 UTC is already the next day in Seoul.
	instant := time.Date(2026, 8, 30, 20, 0, 0, 0, time.UTC)

	day := viewDay(instant, seoul)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, seoul), day)

	utcDay := viewDay(instant, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), utcDay)
}

func newPVRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	config.Reset()
	t.Cleanup(config.Reset)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PageViewRecorder(gdb))
	r.GET("/api/v1/quote/today", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	r.GET("/health", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	return r, mock
}

func TestPageViewRecorderUpserts(t *testing.T) {
	r, mock := newPVRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `page_views`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quote/today", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageViewRecorderSkipsHealth(t *testing.T) {
	r, mock := newPVRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// No expectations registered: the health probe must not write.
	require.NoError(t, mock.ExpectationsWereMet())
}
