package crawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"resume-chatbot/backend/internal/constants"
	apperrors "resume-chatbot/backend/pkg/errors"
	"resume-chatbot/backend/pkg/logger"
)

// scraperLLMProvider is the model the crawl service uses for its
// content-filtering pass
const scraperLLMProvider = "gemini/gemini-2.5-flash-lite"

// filterInstruction isolates job-posting fields from crawled pages
const filterInstruction = "Extract and summarize only job-relevant sections such as: " +
	"job title, company, location, job description, job salary, benefits, " +
	"responsibilities, and qualifications. Return in clean markdown with headers " +
	"and bullet lists."

// Client talks to the crawl4ai service. One batched call covers every
// URL in a turn; the browser and crawler configuration is fixed at
// construction time.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	browserConfig BrowserConfig
	crawlerConfig CrawlerConfig
	logger        *zap.Logger
}

// NewClient creates a crawl client for the service at baseURL. The
// llmAPIKey is passed through to the service's LLM content filter.
func NewClient(baseURL, llmAPIKey string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: constants.CrawlRequestTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= constants.CrawlMaxRedirects {
					return fmt.Errorf("stopped after %d redirects", constants.CrawlMaxRedirects)
				}
				return nil
			},
		},
		browserConfig: BrowserConfig{
			Type: "BrowserConfig",
			Params: BrowserConfigParams{
				Headless: true,
				TextMode: true,
			},
		},
		crawlerConfig: CrawlerConfig{
			Type: "CrawlerRunConfig",
			Params: CrawlerConfigParams{
				Stream:                  false,
				CacheMode:               CacheModeEnabled,
				ScanFullPage:            true,
				OnlyText:                true,
				ExcludeAllImages:        true,
				ExcludeExternalLinks:    true,
				ExcludeSocialMediaLinks: true,
				MarkdownGenerator: &MarkdownGenerator{
					Type: "DefaultMarkdownGenerator",
					Params: MarkdownGeneratorParams{
						Options: MarkdownOptions{
							IgnoreImages: true,
							IgnoreLinks:  true,
						},
						ContentFilter: &ContentFilter{
							Type: "LLMContentFilter",
							Params: ContentFilterParams{
								LLMConfig: LLMConfig{
									Type: "LLMConfig",
									Params: LLMConfigParams{
										Provider: scraperLLMProvider,
										APIToken: llmAPIKey,
									},
								},
								Instruction: filterInstruction,
							},
						},
					},
				},
			},
		},
		logger: logger.Get(),
	}
}

// WebCrawlAndScrape issues one batched crawl request for the given
// URLs and returns the raw per-URL results. Any transport error or
// non-2xx status fails the whole batch.
func (c *Client) WebCrawlAndScrape(ctx context.Context, urls []string) (*Response, error) {
	body, err := json.Marshal(crawlRequest{
		URLs:          urls,
		BrowserConfig: c.browserConfig,
		CrawlerConfig: c.crawlerConfig,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal crawl request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/crawl", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build crawl request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Sending crawl request",
		zap.Int("url_count", len(urls)),
		zap.Strings("urls", urls),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Crawl request failed", zap.Error(err))
		return nil, apperrors.NewCrawlGatewayError(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Crawl service returned error status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", payload),
		)
		return nil, apperrors.NewCrawlGatewayError(resp.StatusCode,
			fmt.Errorf("crawl service responded %d: %s", resp.StatusCode, payload))
	}

	var crawlResp Response
	if err := json.NewDecoder(resp.Body).Decode(&crawlResp); err != nil {
		return nil, apperrors.NewCrawlGatewayError(resp.StatusCode,
			fmt.Errorf("failed to decode crawl response: %w", err))
	}

	return &crawlResp, nil
}
