package crawl

// Request/response shapes for the crawl4ai HTTP service. Field names
// follow the service's JSON contract.

// BrowserConfig configures the headless browser used by the service
type BrowserConfig struct {
	Type   string              `json:"type"`
	Params BrowserConfigParams `json:"params"`
}

type BrowserConfigParams struct {
	Headless bool `json:"headless"`
	TextMode bool `json:"text_mode,omitempty"`
}

// CacheMode values accepted by the crawler
const (
	CacheModeBypass  = "bypass"
	CacheModeEnabled = "enabled"
)

// CrawlerConfig configures a crawl run
type CrawlerConfig struct {
	Type   string              `json:"type"`
	Params CrawlerConfigParams `json:"params"`
}

type CrawlerConfigParams struct {
	Stream                  bool               `json:"stream"`
	CacheMode               string             `json:"cache_mode"`
	ScanFullPage            bool               `json:"scan_full_page,omitempty"`
	OnlyText                bool               `json:"only_text,omitempty"`
	ExcludeAllImages        bool               `json:"exclude_all_images,omitempty"`
	ExcludeExternalLinks    bool               `json:"exclude_external_links,omitempty"`
	ExcludeSocialMediaLinks bool               `json:"exclude_social_media_links,omitempty"`
	MarkdownGenerator       *MarkdownGenerator `json:"markdown_generator,omitempty"`
}

// MarkdownGenerator configures markdown extraction from crawled pages
type MarkdownGenerator struct {
	Type   string                  `json:"type"`
	Params MarkdownGeneratorParams `json:"params"`
}

type MarkdownGeneratorParams struct {
	Options       MarkdownOptions `json:"options"`
	ContentFilter *ContentFilter  `json:"content_filter,omitempty"`
}

type MarkdownOptions struct {
	IgnoreImages bool `json:"ignore_images"`
	IgnoreLinks  bool `json:"ignore_links"`
}

// ContentFilter instructs the service's LLM pass to keep only the
// content relevant to the given instruction
type ContentFilter struct {
	Type   string              `json:"type"`
	Params ContentFilterParams `json:"params"`
}

type ContentFilterParams struct {
	LLMConfig   LLMConfig `json:"llm_config"`
	Instruction string    `json:"instruction"`
}

type LLMConfig struct {
	Type   string          `json:"type"`
	Params LLMConfigParams `json:"params"`
}

type LLMConfigParams struct {
	Provider string `json:"provider"`
	APIToken string `json:"api_token"`
}

// crawlRequest is the body of a batched crawl call
type crawlRequest struct {
	URLs          []string      `json:"urls"`
	BrowserConfig BrowserConfig `json:"browser_config"`
	CrawlerConfig CrawlerConfig `json:"crawler_config"`
}

// Response is the service's answer to a batched crawl call, one
// result per requested URL
type Response struct {
	Results []PageResult `json:"results"`
}

// PageResult is the raw per-URL crawl output
type PageResult struct {
	Success      bool         `json:"success"`
	ErrorMessage string       `json:"error_message"`
	Metadata     PageMetadata `json:"metadata"`
	Markdown     PageMarkdown `json:"markdown"`
}

type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// PageMarkdown carries the markdown variants produced by the
// generator; only FitMarkdown (the filtered variant) is forwarded to
// the conversation.
type PageMarkdown struct {
	RawMarkdown           string `json:"raw_markdown"`
	MarkdownWithCitations string `json:"markdown_with_citations"`
	ReferencesMarkdown    string `json:"references_markdown"`
	FitMarkdown           string `json:"fit_markdown"`
	FitHTML               string `json:"fit_html"`
}
