package controllers

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/somin-jeong/quote-to-wake/config"
	"github.com/somin-jeong/quote-to-wake/middleware"
	"github.com/somin-jeong/quote-to-wake/services"
	"github.com/somin-jeong/quote-to-wake/utils"
)

var testRedis *miniredis.Miniredis

// TestMain points the Redis singleton at an in-process server before
// any test touches it.
func TestMain(m *testing.M) {
	mr, err := miniredis.Run()
	if err != nil {
		os.Exit(1)
	}
	testRedis = mr

	host, port, _ := net.SplitHostPort(mr.Addr())
	os.Setenv("JWT_SECRET", "unit-test-secret")
	os.Setenv("REDIS_HOST", host)
	os.Setenv("REDIS_PORT", port)
	config.Reset()
	gin.SetMode(gin.TestMode)

	code := m.Run()
	mr.Close()
	os.Exit(code)
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

func asUser(id uint) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ContextUserIDKey, id)
		ctx.Next()
	}
}

func newSubmitRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	testRedis.FlushAll()
	gdb, mock := newMockDB(t)
	cc := NewCheckInController(gdb)
	r := gin.New()
	r.POST("/checkins", asUser(1), cc.Submit)
	return r, mock
}

func postCheckIn(r *gin.Engine, text string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(gin.H{"text": text})
	req := httptest.NewRequest(http.MethodPost, "/checkins", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func todayAndQuote(t *testing.T) (string, string) {
	today := services.CanonicalDate(time.Now(), config.Location())
	quote, err := services.SelectQuote(Catalog(), today)
	require.NoError(t, err)
	return today, quote
}

func TestSubmitRecordsFirstCheckIn(t *testing.T) {
	r, mock := newSubmitRouter(t)
	today, quote := todayAndQuote(t)

	mock.ExpectQuery("SELECT \\* FROM `check_ins` WHERE user_id = \\? AND checkin_date = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "display_name"}).
			AddRow(1, "somin", "소민"))
	mock.ExpectExec("INSERT INTO `check_ins`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT \\* FROM `check_ins` WHERE checkin_date = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "user_name", "checkin_date", "checkin_time", "quote"}).
			AddRow(1, 1, "소민", today, "06:15:00", quote))

	w := postCheckIn(r, quote)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())

	var body utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["position"])

	// The done-for-today flag is set so the next submit skips MySQL.
	assert.True(t, utils.HasCheckedIn(1, today))
}

func TestSubmitRejectsMismatchedText(t *testing.T) {
	r, mock := newSubmitRouter(t)

	w := postCheckIn(r, "not today's quote")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 40021, body.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRepeatRejectedByCachedFlag(t *testing.T) {
	r, mock := newSubmitRouter(t)
	today, quote := todayAndQuote(t)

	utils.MarkCheckedIn(1, today, config.Location())

	// No expectations registered: the flag must short-circuit before
	// any database access.
	w := postCheckIn(r, quote)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRepeatRejectedByPreRead(t *testing.T) {
	r, mock := newSubmitRouter(t)
	today, quote := todayAndQuote(t)

	mock.ExpectQuery("SELECT \\* FROM `check_ins` WHERE user_id = \\? AND checkin_date = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "checkin_date"}).
			AddRow(1, 1, today))

	w := postCheckIn(r, quote)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitDuplicateKeyRaceMapsToConflict(t *testing.T) {
	r, mock := newSubmitRouter(t)
	_, quote := todayAndQuote(t)

	mock.ExpectQuery("SELECT \\* FROM `check_ins` WHERE user_id = \\? AND checkin_date = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "display_name"}).
			AddRow(1, "somin", "소민"))
	mock.ExpectExec("INSERT INTO `check_ins`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-x' for key 'idx_checkins_user_date'"})
	mock.ExpectRollback()

	w := postCheckIn(r, quote)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())

	var body utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 40910, body.Code)
}
