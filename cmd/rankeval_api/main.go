// Package main rankeval API
// @title rankeval API
// @version 1.0
// @description Ranking-quality metrics (precision@k, recall@k, MAP@k, F1@k) for retrieval runs
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"log/slog"
	"net/http"
	"os"

	_ "github.com/DjordjeVuckovic/rankeval/docs"
	"github.com/DjordjeVuckovic/rankeval/internal/api/router"
	"github.com/DjordjeVuckovic/rankeval/internal/api/server"
	"github.com/DjordjeVuckovic/rankeval/internal/tracking"
	pkgserver "github.com/DjordjeVuckovic/rankeval/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	newTracker, err := requestTrackers(tracking.LoadConfig())
	if err != nil {
		slog.Error("Invalid tracking config", "error", err)
		os.Exit(1)
	}

	s := server.New(sCfg, pkgserver.NewOkHealthChecker()).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "rankeval API is running")
	})

	router.NewMetricsRouter(s.Echo,
		router.WithTrackerFactory(newTracker),
		router.WithWorkers(sCfg.Workers),
	).Bind()

	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

// requestTrackers gives every recorded request its own run. A fixed TRACKING_RUN_ID would be
// shared by all requests, so it is dropped.
func requestTrackers(cfg tracking.Config) (tracking.Factory, error) {
	if cfg.RunID != "" {
		slog.Warn("Ignoring TRACKING_RUN_ID, each request gets its own run id")
		cfg.RunID = ""
	}
	if _, err := cfg.ForRun("api"); err != nil {
		return nil, err
	}
	return tracking.PerRun(cfg), nil
}
