package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"resume-chatbot/backend/internal/adapter"
	"resume-chatbot/backend/internal/crawl"
	"resume-chatbot/backend/pkg/logger"
)

// ToolWebCrawlAndScrape is the name the model uses to request a crawl
const ToolWebCrawlAndScrape = "webCrawlAndScrape"

// WebCrawlScraper is the remote scraping capability the crawl tool
// delegates to
type WebCrawlScraper interface {
	WebCrawlAndScrape(ctx context.Context, urls []string) (*crawl.Response, error)
}

// crawlArgs is the argument shape the model fills in
type crawlArgs struct {
	URLLinks []string `json:"urlLinks"`
}

// crawlSummary is the compact per-URL projection inlined into the
// conversation; the raw scrape payload never crosses this boundary.
type crawlSummary struct {
	Results []crawlSummaryEntry `json:"results"`
}

type crawlSummaryEntry struct {
	Success      bool                 `json:"success"`
	ErrorMessage string               `json:"errorMessage"`
	Metadata     crawlSummaryMetadata `json:"metadata"`
	Markdown     string               `json:"markdown"`
}

type crawlSummaryMetadata struct {
	Title       string `json:"title"`
	Keywords    string `json:"keywords"`
	Description string `json:"description"`
}

// NewDefaultRegistry builds the startup registry with every tool the
// chatbot exposes to the model
func NewDefaultRegistry(scraper WebCrawlScraper) *Registry {
	registry := NewRegistry()
	registry.Register(webCrawlAndScrapeDescriptor(), newWebCrawlAndScrapeExecutor(scraper))
	return registry
}

func webCrawlAndScrapeDescriptor() adapter.Tool {
	return adapter.Tool{
		Type: "function",
		Function: adapter.FunctionDefinition{
			Name: ToolWebCrawlAndScrape,
			Description: "To web crawl and scrape any links given by user that are related " +
				"to job advertisements. Do not use this if current user message contains no links!",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"urlLinks": map[string]interface{}{
						"type": "array",
						"description": "The url links if given by user in the current message, " +
							`e.g. "https://my.jobstreet.com/job/85911035", ` +
							`"https://www.bandainamcostudios.my/career/lead-animator/", etc.`,
					},
				},
				"required": []string{"urlLinks"},
			},
		},
	}
}

// newWebCrawlAndScrapeExecutor adapts the remote scraping capability
// to the executor contract, reducing the service response to the
// compact summary
func newWebCrawlAndScrapeExecutor(scraper WebCrawlScraper) Executor {
	log := logger.Get()

	return func(ctx context.Context, args json.RawMessage) (string, error) {
		var parsed crawlArgs
		if err := json.Unmarshal(args, &parsed); err != nil {
			return "", fmt.Errorf("failed to parse urlLinks arguments: %w", err)
		}

		if len(parsed.URLLinks) == 0 {
			return "No urlLinks given", nil
		}

		log.Debug("Executing web crawl tool", zap.Strings("urls", parsed.URLLinks))

		response, err := scraper.WebCrawlAndScrape(ctx, parsed.URLLinks)
		if err != nil {
			return "", err
		}

		summary := crawlSummary{Results: make([]crawlSummaryEntry, 0, len(response.Results))}
		for _, result := range response.Results {
			summary.Results = append(summary.Results, crawlSummaryEntry{
				Success:      result.Success,
				ErrorMessage: result.ErrorMessage,
				Metadata: crawlSummaryMetadata{
					Title:       result.Metadata.Title,
					Keywords:    result.Metadata.Keywords,
					Description: result.Metadata.Description,
				},
				Markdown: result.Markdown.FitMarkdown,
			})
		}

		payload, err := json.Marshal(summary)
		if err != nil {
			return "", fmt.Errorf("failed to marshal crawl summary: %w", err)
		}

		return string(payload), nil
	}
}
