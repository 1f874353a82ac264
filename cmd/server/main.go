package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/minwoo-jeong/asreco/internal/api"
	"github.com/minwoo-jeong/asreco/internal/api/controller"
	"github.com/minwoo-jeong/asreco/internal/config"
	"github.com/minwoo-jeong/asreco/internal/ingest"
	"github.com/minwoo-jeong/asreco/internal/repository"
	"github.com/minwoo-jeong/asreco/internal/service"
)

func main() {
	// JSON logs so the dashboard's log shipper can parse them.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	refs, refIssues := ingest.LoadStaticReferences(conf.Data.Dir, conf.Data.AssetFile, conf.Data.OrgFile)
	for _, issue := range refIssues {
		slog.Warn("static reference degraded", "stage", issue.Stage, "detail", issue.Message)
	}

	pipeline := service.NewPipeline(conf.Schema.Classifier(), service.Options{
		Match: service.MatchOptions{
			WindowDays:         conf.Matching.WindowDays,
			MatchBlankIdentity: conf.Matching.MatchBlankIdentity,
		},
		ShortRepeatDays: conf.Matching.ShortRepeatDays,
	})

	sessions := repository.NewMemorySessionRepo()
	svc := service.NewAnalysisService(pipeline, refs, refIssues, sessions)

	if conf.Server.Port != ":8080" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	sessionController := controller.NewSessionController(svc)
	referenceController := controller.NewReferenceController(svc)
	api.RegisterRoutes(r, sessionController, referenceController)

	slog.Info("reconciliation server starting", "port", conf.Server.Port)
	if err := r.Run(conf.Server.Port); err != nil {
		slog.Error("server exited", "error", err)
	}
}
