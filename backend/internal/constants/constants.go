package constants

import "time"

// Conversation constants
const (
	// DefaultHistoryLimit is the bounded window of prior messages
	// pulled into each turn's context
	DefaultHistoryLimit = 5
)

// Crawl service constants
const (
	// CrawlRequestTimeout bounds the batched crawl call; the remote
	// service renders pages headlessly and can be slow
	CrawlRequestTimeout = 30 * time.Second

	// CrawlMaxRedirects caps redirect chains on the crawl request
	CrawlMaxRedirects = 5
)

// Auth token lifetimes
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Message author roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)
