package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/somin-jeong/quote-to-wake/config"
	"github.com/somin-jeong/quote-to-wake/models"
	"github.com/somin-jeong/quote-to-wake/services"
	"github.com/somin-jeong/quote-to-wake/utils"
)

// CheckInController handles the daily quote and wake-up check-ins.
type CheckInController struct {
	db *gorm.DB
}

var errAlreadyCheckedIn = errors.New("already checked in today")

// NewCheckInController creates a new controller instance.
func NewCheckInController(db *gorm.DB) *CheckInController {
	return &CheckInController{db: db}
}

// Catalog returns the active quote catalog: config override or the
// compiled-in default.
func Catalog() []string {
	if c := config.Get().QuoteCatalog; len(c) > 0 {
		return c
	}
	return services.DefaultCatalog
}

// QuoteOfToday returns the deterministic quote for the current date.
func (cc *CheckInController) QuoteOfToday(ctx *gin.Context) {
	loc := config.Location()
	today := services.CanonicalDate(time.Now(), loc)

	quote, err := services.SelectQuote(Catalog(), today)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "quote catalog not configured")
		return
	}

	utils.Success(ctx, gin.H{
		"date":         today,
		"quote":        quote,
		"catalog_size": len(Catalog()),
	})
}

// Submit records a wake-up check-in when the typed text exactly
// matches today's quote. At most one check-in per user per day: a
// cached Redis flag rejects repeats without touching the database, a
// pre-read gives a friendly error on flag misses, and the unique index
// on (user_id, checkin_date) backstops both.
func (cc *CheckInController) Submit(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	loc := config.Location()
	now := time.Now().In(loc)
	today := services.CanonicalDate(now, loc)

	quote, err := services.SelectQuote(Catalog(), today)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "quote catalog not configured")
		return
	}

	// Exact match only; whitespace differences are a mismatch too.
	if req.Text != quote {
		utils.Error(ctx, http.StatusBadRequest, 40021, "typed text does not match today's quote")
		return
	}

	if utils.HasCheckedIn(userID, today) {
		utils.Error(ctx, http.StatusConflict, 40910, errAlreadyCheckedIn.Error())
		return
	}

	var existing models.CheckIn
	if err := cc.db.Where("user_id = ? AND checkin_date = ?", userID, today).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusConflict, 40910, errAlreadyCheckedIn.Error())
		return
	}

	record := models.CheckIn{
		UserID:      userID,
		CheckinDate: today,
		CheckinTime: now.Format("15:04:05"),
		Quote:       quote,
	}

	err = cc.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		record.UserName = user.LeaderboardName()
		return tx.Create(&record).Error
	})

	if err != nil {
		if isDuplicateKey(err) {
			// Lost the race against a concurrent submit from the same
			// user; same outcome as the pre-read rejection.
			utils.Error(ctx, http.StatusConflict, 40910, errAlreadyCheckedIn.Error())
			return
		}
		if utils.Sugar != nil {
			utils.Sugar.Errorw("check-in insert failed", "user_id", userID, "err", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to record check-in")
		return
	}

	utils.MarkCheckedIn(userID, today, loc)
	utils.InvalidateByPrefix("cache:ranking:" + today)
	utils.PublishCheckIn(utils.CheckInEvent{
		UserID:      userID,
		CheckinDate: record.CheckinDate,
		CheckinTime: record.CheckinTime,
	})

	position := 0
	if records, err := cc.recordsForDate(today, 0); err == nil {
		if rank, err := services.RankOf(records, today, userID); err == nil {
			position = rank
		}
	}

	utils.Success(ctx, gin.H{
		"record":   record,
		"position": position,
	})
}

// TodayStatus reports whether the caller already checked in today and,
// if so, the record and current rank.
func (cc *CheckInController) TodayStatus(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	loc := config.Location()
	today := services.CanonicalDate(time.Now(), loc)

	var record models.CheckIn
	err := cc.db.Where("user_id = ? AND checkin_date = ?", userID, today).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Success(ctx, gin.H{"checked_in": false, "date": today})
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load check-in")
		return
	}

	position := 0
	if records, err := cc.recordsForDate(today, 0); err == nil {
		if rank, err := services.RankOf(records, today, userID); err == nil {
			position = rank
		}
	}

	utils.Success(ctx, gin.H{
		"checked_in": true,
		"date":       today,
		"record":     record,
		"position":   position,
	})
}

// recordsForDate loads check-ins for a date ordered by time then
// insertion. limit <= 0 means no limit (rank lookups must see every
// row even when the board display is capped).
func (cc *CheckInController) recordsForDate(date string, limit int) ([]models.CheckIn, error) {
	var records []models.CheckIn
	q := cc.db.Where("checkin_date = ?", date).Order("checkin_time ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
