package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"resume-chatbot/backend/internal/crawl"
	apperrors "resume-chatbot/backend/pkg/errors"
)

type fakeScraper struct {
	response *crawl.Response
	err      error
	calls    [][]string
}

func (f *fakeScraper) WebCrawlAndScrape(ctx context.Context, urls []string) (*crawl.Response, error) {
	f.calls = append(f.calls, urls)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func resolveCrawlExecutor(t *testing.T, scraper *fakeScraper) Executor {
	t.Helper()
	executor, err := NewDefaultRegistry(scraper).Resolve(ToolWebCrawlAndScrape)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return executor
}

func TestCrawlExecutor_EmptyURLListSkipsRemoteCall(t *testing.T) {
	scraper := &fakeScraper{}
	executor := resolveCrawlExecutor(t, scraper)

	out, err := executor(context.Background(), json.RawMessage(`{"urlLinks":[]}`))
	if err != nil {
		t.Fatalf("Executor failed: %v", err)
	}
	if out != "No urlLinks given" {
		t.Errorf("Unexpected output: %q", out)
	}
	if len(scraper.calls) != 0 {
		t.Error("Remote scraper must not be called for an empty URL list")
	}
}

func TestCrawlExecutor_ReducesToFitMarkdown(t *testing.T) {
	scraper := &fakeScraper{response: &crawl.Response{
		Results: []crawl.PageResult{
			{
				Success: true,
				Metadata: crawl.PageMetadata{
					Title:       "Lead Animator",
					Description: "Animation role",
					Keywords:    "animation, games",
				},
				Markdown: crawl.PageMarkdown{
					RawMarkdown: "raw noise that must not leak",
					FitMarkdown: "# Lead Animator\nRequirements: 5 years",
				},
			},
			{
				Success:      false,
				ErrorMessage: "navigation timeout",
			},
		},
	}}
	executor := resolveCrawlExecutor(t, scraper)

	out, err := executor(context.Background(), json.RawMessage(`{"urlLinks":["https://example.com/job/1"]}`))
	if err != nil {
		t.Fatalf("Executor failed: %v", err)
	}
	if len(scraper.calls) != 1 || scraper.calls[0][0] != "https://example.com/job/1" {
		t.Fatalf("Scraper received wrong URLs: %v", scraper.calls)
	}

	var summary struct {
		Results []struct {
			Success      bool   `json:"success"`
			ErrorMessage string `json:"errorMessage"`
			Markdown     string `json:"markdown"`
			Metadata     struct {
				Title string `json:"title"`
			} `json:"metadata"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(summary.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(summary.Results))
	}
	if summary.Results[0].Markdown != "# Lead Animator\nRequirements: 5 years" {
		t.Errorf("Expected fit markdown, got %q", summary.Results[0].Markdown)
	}
	if summary.Results[0].Metadata.Title != "Lead Animator" {
		t.Errorf("Metadata title missing: %+v", summary.Results[0])
	}
	if summary.Results[1].Success || summary.Results[1].ErrorMessage != "navigation timeout" {
		t.Errorf("Per-URL failure not carried through: %+v", summary.Results[1])
	}
	if strings.Contains(out, "raw noise that must not leak") {
		t.Error("Raw markdown must not cross the tool boundary")
	}
}

func TestCrawlExecutor_GatewayErrorPropagates(t *testing.T) {
	scraper := &fakeScraper{err: apperrors.NewCrawlGatewayError(503, errors.New("upstream busy"))}
	executor := resolveCrawlExecutor(t, scraper)

	_, err := executor(context.Background(), json.RawMessage(`{"urlLinks":["https://example.com/job/1"]}`))
	if err == nil {
		t.Fatal("Expected gateway error")
	}
	var gatewayErr *apperrors.ErrCrawlGateway
	if !errors.As(err, &gatewayErr) || gatewayErr.StatusCode != 503 {
		t.Errorf("Expected ErrCrawlGateway(503), got %T: %v", err, err)
	}
}

func TestCrawlExecutor_MalformedArguments(t *testing.T) {
	scraper := &fakeScraper{}
	executor := resolveCrawlExecutor(t, scraper)

	_, err := executor(context.Background(), json.RawMessage(`{"urlLinks": "not-an-array"}`))
	if err == nil {
		t.Fatal("Expected argument parse error")
	}
	if len(scraper.calls) != 0 {
		t.Error("Remote scraper must not be called on malformed arguments")
	}
}
