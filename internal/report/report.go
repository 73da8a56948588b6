package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/hamed0406/healthreport/internal/probe"
)

// Output filenames, relative to OutDir. Both are fully overwritten on
// every run.
const (
	MarkdownFile = "report.md"
	HTMLFile     = "report.html"
)

const timestampLayout = "2006-01-02 15:04:05"

// Renderer turns a probe result and its narration into the two report
// documents. Now is injectable for deterministic tests; nil means time.Now.
type Renderer struct {
	OutDir string
	Now    func() time.Time
}

func New(outDir string) *Renderer {
	if outDir == "" {
		outDir = "."
	}
	return &Renderer{OutDir: outDir}
}

func (r *Renderer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Document is one rendered report. GeneratedAt is the single clock read
// behind the "Generated:" line, so callers surfacing the timestamp
// elsewhere stay consistent with the written files.
type Document struct {
	Markdown    string
	HTML        string
	GeneratedAt time.Time
}

// Render builds the Markdown document and its HTML conversion. It does not
// touch the filesystem.
func (r *Renderer) Render(res probe.Result, narration string) (Document, error) {
	ts := r.now()

	var b strings.Builder
	fmt.Fprintf(&b, "# Website Health Report\n\nGenerated: %s\n\n", ts.Format(timestampLayout))
	fmt.Fprintf(&b, "- URL: %s\n- Status: %s\n- HTTP Code: %s\n\n", res.URL, res.Status, res.Code())
	fmt.Fprintf(&b, "## AI Summary\n%s\n", narration)
	md := b.String()

	var out bytes.Buffer
	if err := goldmark.Convert([]byte(md), &out); err != nil {
		return Document{}, fmt.Errorf("converting markdown to html: %w", err)
	}
	return Document{Markdown: md, HTML: out.String(), GeneratedAt: ts}, nil
}

// Write persists both documents, overwriting prior runs. A write failure is
// fatal to the run; there is no degraded mode once reports cannot be
// persisted.
func (r *Renderer) Write(doc Document) error {
	if err := os.WriteFile(filepath.Join(r.OutDir, MarkdownFile), []byte(doc.Markdown), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(r.OutDir, HTMLFile), []byte(doc.HTML), 0o644)
}
