package main

import (
	"time"

	"github.com/somin-jeong/quote-to-wake/config"
	"github.com/somin-jeong/quote-to-wake/models"
	"github.com/somin-jeong/quote-to-wake/routes"
	"github.com/somin-jeong/quote-to-wake/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.CheckIn{}, &models.PageView{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	// Write timeout is disabled: the leaderboard SSE stream holds its
	// connection open indefinitely.
	srv := utils.NewServer(":"+cfg.AppPort, r, 60*time.Second, 0)
	if err := srv.ListenAndServe(); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
