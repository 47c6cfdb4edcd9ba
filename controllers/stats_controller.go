package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/somin-jeong/quote-to-wake/config"
	"github.com/somin-jeong/quote-to-wake/models"
	"github.com/somin-jeong/quote-to-wake/services"
	"github.com/somin-jeong/quote-to-wake/utils"
)

// StatsController provides aggregate counts for the landing page.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns user and check-in totals plus PV-based daily active.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var checkinCount int64
	var todayCount int64
	var dailyActive int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		userCount = 0
	}

	if err := s.db.Model(&models.CheckIn{}).Count(&checkinCount).Error; err != nil {
		checkinCount = 0
	}

	today := services.CanonicalDate(time.Now(), config.Location())
	if err := s.db.Model(&models.CheckIn{}).Where("checkin_date = ?", today).Count(&todayCount).Error; err != nil {
		todayCount = 0
	}

	// Daily active (PV-based): sum of today's page views across all
	// paths. Page views and check-ins share the same day boundary, so
	// the canonical date string works for both.
	if err := s.db.Model(&models.PageView{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count),0)").
		Scan(&dailyActive).Error; err != nil {
		dailyActive = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":          userCount,
		"checkin_count":       checkinCount,
		"checkin_count_today": todayCount,
		"daily_active_count":  dailyActive,
	})
}
