package main

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/healthreport/internal/httpapi"
	"github.com/hamed0406/healthreport/internal/logging"
	"github.com/hamed0406/healthreport/internal/probe"
	"github.com/hamed0406/healthreport/internal/report"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the health report over HTTP on demand",
	Long: `Binds an HTTP server that runs the same probe/narrate/render pass per
request: GET /api/report returns the result as JSON, GET /report.html the
rendered document. Both also refresh report.md and report.html on disk.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		logger, err := logging.New(cfg.LogDir)
		if err != nil {
			log.Fatalf("logger: %v", err)
		}
		defer logger.Sync()

		srv := httpapi.NewServer(
			logger,
			probe.New(cfg.Timeout),
			newNarrator(cfg),
			report.New(cfg.OutDir),
			cfg.TargetURL,
		)

		logger.Info("api_listen", zap.String("addr", cfg.Addr), zap.String("target", cfg.TargetURL))
		if err := http.ListenAndServe(cfg.Addr, srv.Router(cfg.RateRPM, cfg.RateBurst)); err != nil {
			log.Fatal(err)
		}
	},
}
