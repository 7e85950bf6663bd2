package main

import (
	"context"
	"net/rpc"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wfunc/spaceshooter/config"
	"github.com/wfunc/spaceshooter/live"
	"github.com/wfunc/spaceshooter/logger"
	"github.com/wfunc/spaceshooter/monitor"
	"github.com/wfunc/spaceshooter/persistence"
	spaceshooter_rpc "github.com/wfunc/spaceshooter/rpc"
	"github.com/wfunc/spaceshooter/server"
	"github.com/wfunc/spaceshooter/services"
	"github.com/wfunc/spaceshooter/timer"
)

func main() {
	// Initialize logger
	logger.Init()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := persistence.NewMongoStore(ctx, cfg.Database.Mongo.URL, cfg.Database.Mongo.DBName)
	cancel()
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Log.Info("Database connection successful.")

	gameService := services.NewGameService(db)
	feed := live.NewFeed()
	mon := monitor.NewMonitor("spaceshooter")
	mon.StartServer(cfg.Server.MetricsAddress)

	// Background jobs: collection-size gauges and feed keepalive pings.
	scheduler := timer.NewScheduler()
	scheduler.Schedule(0, 30*time.Second, func() {
		sampleCtx, sampleCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer sampleCancel()
		games, scores, err := gameService.Counts(sampleCtx)
		if err != nil {
			logger.Log.Warnf("Collection stats sample failed: %v", err)
			return
		}
		mon.SetSavedGames(games)
		mon.SetHighScores(scores)
	})
	scheduler.Schedule(30*time.Second, 30*time.Second, feed.Ping)

	// Admin RPC
	rpcServer, err := spaceshooter_rpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	rpc.Register(spaceshooter_rpc.NewStatsService(gameService))
	go rpcServer.Start()

	// API server
	apiServer := server.NewAPIServer(cfg.Server.HTTPAddress, gameService, feed, mon, cfg.CORS.Origins)
	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt, then shut down: API first, store last.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Server shutting down...")
	scheduler.Stop()
	rpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("API server shutdown: %v", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		logger.Log.Errorf("Database close: %v", err)
	}
}
