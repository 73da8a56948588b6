package report

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/hamed0406/healthreport/internal/probe"
)

func fixedNow() time.Time {
	return time.Date(2025, 8, 18, 12, 30, 45, 0, time.Local)
}

func TestRender_MarkdownContent(t *testing.T) {
	r := New(t.TempDir())
	r.Now = fixedNow

	res := probe.Result{URL: "https://example.com", Status: probe.StatusWarn, HTTPCode: 404}
	doc, err := r.Render(res, "The page was not found.")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"# Website Health Report",
		"Generated: 2025-08-18 12:30:45",
		"- URL: https://example.com",
		"- Status: WARN",
		"- HTTP Code: 404",
		"## AI Summary",
		"The page was not found.",
	} {
		if !strings.Contains(doc.Markdown, want) {
			t.Fatalf("markdown missing %q:\n%s", want, doc.Markdown)
		}
	}
}

func TestRender_GeneratedAtMatchesClock(t *testing.T) {
	r := New(t.TempDir())
	r.Now = fixedNow

	res := probe.Result{URL: "https://example.com", Status: probe.StatusOK, HTTPCode: 200}
	doc, err := r.Render(res, "No AI summary needed for healthy site.")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !doc.GeneratedAt.Equal(fixedNow()) {
		t.Fatalf("GeneratedAt %v must equal the render clock %v", doc.GeneratedAt, fixedNow())
	}
	if !strings.Contains(doc.Markdown, "Generated: "+doc.GeneratedAt.Format("2006-01-02 15:04:05")) {
		t.Fatalf("timestamp line disagrees with GeneratedAt:\n%s", doc.Markdown)
	}
}

func TestRender_SentinelCodeOnFail(t *testing.T) {
	r := New(t.TempDir())
	r.Now = fixedNow

	res := probe.Result{URL: "https://down.example.com", Status: probe.StatusFail}
	doc, err := r.Render(res, "Connection refused.")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(doc.Markdown, "- HTTP Code: -") {
		t.Fatalf("want sentinel code line, got:\n%s", doc.Markdown)
	}
}

func TestRender_HTMLStructure(t *testing.T) {
	r := New(t.TempDir())
	r.Now = fixedNow

	res := probe.Result{URL: "https://example.com", Status: probe.StatusOK, HTTPCode: 200}
	doc, err := r.Render(res, "No AI summary needed for healthy site.")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"<h1>Website Health Report</h1>",
		"<li>Status: OK</li>",
		"<li>HTTP Code: 200</li>",
		"<h2>AI Summary</h2>",
		"No AI summary needed for healthy site.",
	} {
		if !strings.Contains(doc.HTML, want) {
			t.Fatalf("html missing %q:\n%s", want, doc.HTML)
		}
	}
}

// Stripping markup from the HTML must reproduce the same facts the
// Markdown carries.
func TestRender_HTMLRoundTrip(t *testing.T) {
	r := New(t.TempDir())
	r.Now = fixedNow

	res := probe.Result{URL: "https://example.com/path", Status: probe.StatusWarn, HTTPCode: 503}
	doc, err := r.Render(res, "The server is temporarily overloaded.")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	text := regexp.MustCompile(`<[^>]+>`).ReplaceAllString(doc.HTML, "")
	for _, want := range []string{
		"URL: https://example.com/path",
		"Status: WARN",
		"HTTP Code: 503",
		"The server is temporarily overloaded.",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("stripped html missing %q:\n%s", want, text)
		}
	}
}

func TestRender_DeterministicForFixedClock(t *testing.T) {
	r := New(t.TempDir())
	r.Now = fixedNow

	res := probe.Result{URL: "https://example.com", Status: probe.StatusWarn, HTTPCode: 404}
	doc1, err := r.Render(res, "AI summary disabled (no API key found)")
	if err != nil {
		t.Fatalf("render 1: %v", err)
	}
	doc2, err := r.Render(res, "AI summary disabled (no API key found)")
	if err != nil {
		t.Fatalf("render 2: %v", err)
	}
	if doc1.Markdown != doc2.Markdown || doc1.HTML != doc2.HTML {
		t.Fatal("same inputs and clock must render byte-identical documents")
	}
}

func TestWrite_OverwritesPriorRun(t *testing.T) {
	dir := t.TempDir()
	r := New(dir)
	r.Now = fixedNow

	if err := r.Write(Document{Markdown: "old markdown\n", HTML: "<p>old html</p>\n"}); err != nil {
		t.Fatalf("first write: %v", err)
	}

	res := probe.Result{URL: "https://example.com", Status: probe.StatusOK, HTTPCode: 200}
	doc, err := r.Render(res, "No AI summary needed for healthy site.")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := r.Write(doc); err != nil {
		t.Fatalf("second write: %v", err)
	}

	gotMD, err := os.ReadFile(filepath.Join(dir, MarkdownFile))
	if err != nil {
		t.Fatalf("read report.md: %v", err)
	}
	if string(gotMD) != doc.Markdown {
		t.Fatalf("report.md not fully overwritten:\n%s", gotMD)
	}
	gotHTML, err := os.ReadFile(filepath.Join(dir, HTMLFile))
	if err != nil {
		t.Fatalf("read report.html: %v", err)
	}
	if string(gotHTML) != doc.HTML {
		t.Fatalf("report.html not fully overwritten:\n%s", gotHTML)
	}
}

func TestWrite_FailsOnMissingDir(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := r.Write(Document{Markdown: "x\n", HTML: "y\n"}); err == nil {
		t.Fatal("want error writing into missing directory")
	}
}
