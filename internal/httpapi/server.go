package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	apimw "github.com/hamed0406/healthreport/internal/httpapi/middleware"
	"github.com/hamed0406/healthreport/internal/narrate"
	"github.com/hamed0406/healthreport/internal/probe"
	"github.com/hamed0406/healthreport/internal/report"
)

// Server exposes the single-URL report pipeline on demand. Each request
// runs one probe/narrate/render pass against the configured target; there
// is no scheduling and no stored history.
type Server struct {
	Logger    *zap.Logger
	Prober    probe.Prober
	Narrator  *narrate.Narrator
	Renderer  *report.Renderer
	TargetURL string
}

func NewServer(l *zap.Logger, p probe.Prober, n *narrate.Narrator, rd *report.Renderer, target string) *Server {
	return &Server{Logger: l, Prober: p, Narrator: n, Renderer: rd, TargetURL: target}
}

func (s *Server) Router(rpm, burst int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(apimw.RateLimit(rpm, burst))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/report", s.handleReport)
	r.Get("/report.html", s.handleReportHTML)

	return r
}

type reportPayload struct {
	URL         string    `json:"url"`
	Status      string    `json:"status"`
	HTTPCode    string    `json:"http_code"`
	Narration   string    `json:"narration"`
	GeneratedAt time.Time `json:"generated_at"`
}

// run executes one full pipeline pass and persists both report files.
func (s *Server) run(r *http.Request) (probe.Result, string, report.Document, error) {
	res := s.Prober.Probe(r.Context(), s.TargetURL)
	narration := s.Narrator.Narrate(r.Context(), res)

	doc, err := s.Renderer.Render(res, narration)
	if err != nil {
		return res, narration, report.Document{}, err
	}
	if err := s.Renderer.Write(doc); err != nil {
		return res, narration, report.Document{}, err
	}

	s.Logger.Info("report_generated",
		zap.String("url", res.URL),
		zap.String("status", string(res.Status)),
		zap.String("http_code", res.Code()),
		zap.Float64("latency_ms", res.LatencyMS),
	)
	return res, narration, doc, nil
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	res, narration, doc, err := s.run(r)
	if err != nil {
		s.Logger.Error("report_failed", zap.Error(err))
		http.Error(w, "could not generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reportPayload{
		URL:       res.URL,
		Status:    string(res.Status),
		HTTPCode:  res.Code(),
		Narration: narration,
		// same clock read as the Generated: line in the written files
		GeneratedAt: doc.GeneratedAt.UTC(),
	})
}

func (s *Server) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	_, _, doc, err := s.run(r)
	if err != nil {
		s.Logger.Error("report_failed", zap.Error(err))
		http.Error(w, "could not generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(doc.HTML))
}
