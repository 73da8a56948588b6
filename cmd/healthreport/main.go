package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/healthreport/internal/config"
	"github.com/hamed0406/healthreport/internal/logging"
	"github.com/hamed0406/healthreport/internal/narrate"
	"github.com/hamed0406/healthreport/internal/probe"
	"github.com/hamed0406/healthreport/internal/report"
)

var (
	flagURL     string
	flagTimeout int
	flagOut     string
	flagAPIKey  string
	strictMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "healthreport",
	Short: "Check one URL and write a Markdown + HTML health report",
	Long: `Probes a single URL, classifies the outcome as OK, WARN or FAIL,
optionally asks an AI backend to explain non-OK results, and writes
report.md and report.html to the output directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		logger, err := logging.New(cfg.LogDir)
		if err != nil {
			log.Fatalf("logger: %v", err)
		}
		defer logger.Sync()

		res, err := runOnce(cmd.Context(), cfg, logger)
		if err != nil {
			log.Fatalf("report: %v", err)
		}

		fmt.Println("Report generated: report.md + report.html")

		if strictMode {
			if code := exitCode(res.Status); code != 0 {
				os.Exit(code)
			}
		}
	},
}

// exitCode maps a probe status to the --strict process exit code. The
// default run always exits 0; this mapping applies only when strict mode
// is asked for.
func exitCode(s probe.Status) int {
	switch s {
	case probe.StatusWarn:
		return 1
	case probe.StatusFail:
		return 2
	default:
		return 0
	}
}

// loadConfig resolves env config once and applies flag overrides on top.
func loadConfig() config.Config {
	cfg := config.FromEnv()
	if flagURL != "" {
		cfg.TargetURL = flagURL
	}
	if flagTimeout > 0 {
		cfg.Timeout = time.Duration(flagTimeout) * time.Second
	}
	if flagOut != "" {
		cfg.OutDir = flagOut
	}
	if flagAPIKey != "" {
		cfg.APIKey = flagAPIKey
	}
	return cfg
}

func newNarrator(cfg config.Config) *narrate.Narrator {
	return narrate.New(narrate.Options{
		APIKey:    cfg.APIKey,
		Endpoint:  cfg.BaseURL,
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
		Timeout:   cfg.AITimeout,
	})
}

// runOnce executes the probe -> narrate -> render sequence. Only a failed
// report write comes back as an error; probe and narration failures are
// carried inside the report instead.
func runOnce(ctx context.Context, cfg config.Config, logger *zap.Logger) (probe.Result, error) {
	prober := probe.New(cfg.Timeout)
	narrator := newNarrator(cfg)
	renderer := report.New(cfg.OutDir)

	res := prober.Probe(ctx, cfg.TargetURL)
	logger.Info("probe_done",
		zap.String("url", res.URL),
		zap.String("status", string(res.Status)),
		zap.String("http_code", res.Code()),
		zap.Float64("latency_ms", res.LatencyMS),
	)

	narration := narrator.Narrate(ctx, res)

	doc, err := renderer.Render(res, narration)
	if err != nil {
		return res, err
	}
	if err := renderer.Write(doc); err != nil {
		return res, err
	}
	logger.Info("report_written", zap.String("out_dir", cfg.OutDir))
	return res, nil
}

func init() {
	// overrides are persistent so `serve` picks them up through loadConfig too
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "target URL (overrides TARGET_URL)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "probe timeout in seconds (overrides HTTP_TIMEOUT_SECONDS)")
	rootCmd.PersistentFlags().StringVar(&flagOut, "out", "", "output directory (overrides OUT_DIR)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY)")
	rootCmd.Flags().BoolVar(&strictMode, "strict", false, "exit 1 on WARN and 2 on FAIL instead of always 0")
	rootCmd.AddCommand(serveCmd, preflightCmd)
}

func main() {
	// Load .env variables for the API key; a missing file is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
