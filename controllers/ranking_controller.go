package controllers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/somin-jeong/quote-to-wake/config"
	"github.com/somin-jeong/quote-to-wake/models"
	"github.com/somin-jeong/quote-to-wake/services"
	"github.com/somin-jeong/quote-to-wake/utils"
)

// rankingCacheTTL is short: the board changes every time someone wakes
// up, and check-in submits invalidate it anyway.
const rankingCacheTTL = 30 * time.Second

// RankingController serves the daily leaderboard.
type RankingController struct {
	db *gorm.DB
}

// NewRankingController creates a new controller instance.
func NewRankingController(db *gorm.DB) *RankingController {
	return &RankingController{db: db}
}

// Today returns the current date's leaderboard ordered by check-in time.
func (rc *RankingController) Today(ctx *gin.Context) {
	loc := config.Location()
	today := services.CanonicalDate(time.Now(), loc)

	cacheKey := "cache:ranking:" + today
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	payload, err := rc.boardForDate(today)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load rankings")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, rankingCacheTTL)
	utils.Success(ctx, payload)
}

// MyRank returns the caller's 1-based position on today's board.
func (rc *RankingController) MyRank(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	loc := config.Location()
	today := services.CanonicalDate(time.Now(), loc)

	records, err := rc.recordsForDate(today, 0)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load rankings")
		return
	}

	rank, err := services.RankOf(records, today, userID)
	if err != nil {
		utils.Success(ctx, gin.H{"date": today, "ranked": false})
		return
	}

	utils.Success(ctx, gin.H{"date": today, "ranked": true, "position": rank})
}

// Stream pushes the leaderboard over SSE: one snapshot on connect,
// then a fresh full snapshot whenever a check-in event arrives. No
// incremental patching; the board is small enough to resend whole.
func (rc *RankingController) Stream(ctx *gin.Context) {
	loc := config.Location()

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	events, closeSub := utils.SubscribeCheckIns(ctx.Request.Context())
	defer closeSub()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	snapshot := func() (interface{}, bool) {
		today := services.CanonicalDate(time.Now(), loc)
		payload, err := rc.boardForDate(today)
		if err != nil {
			return nil, false
		}
		return payload, true
	}

	first := true
	ctx.Stream(func(w io.Writer) bool {
		if first {
			first = false
			if payload, ok := snapshot(); ok {
				ctx.SSEvent("leaderboard", payload)
			}
			return true
		}
		select {
		case _, open := <-events:
			if !open {
				return false
			}
			if payload, ok := snapshot(); ok {
				ctx.SSEvent("leaderboard", payload)
			}
			return true
		case <-heartbeat.C:
			ctx.SSEvent("ping", time.Now().In(loc).Format("15:04:05"))
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}

func (rc *RankingController) boardForDate(date string) (gin.H, error) {
	records, err := rc.recordsForDate(date, config.Get().RankingLimit)
	if err != nil {
		return nil, err
	}
	entries := services.ComputeRanking(records, date)
	return gin.H{
		"date":    date,
		"count":   len(entries),
		"entries": entries,
	}, nil
}

func (rc *RankingController) recordsForDate(date string, limit int) ([]models.CheckIn, error) {
	var records []models.CheckIn
	q := rc.db.Where("checkin_date = ?", date).Order("checkin_time ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
