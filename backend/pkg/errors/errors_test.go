package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsErrorType(t *testing.T) {
	providerErr := NewProviderError("llama3-70b-8192", errors.New("quota exceeded"))
	if !IsErrorType(providerErr, ErrorTypeProvider) {
		t.Error("Provider error not recognized")
	}
	if IsErrorType(providerErr, ErrorTypeHistory) {
		t.Error("Provider error misclassified as history")
	}

	// Classification survives fmt wrapping
	wrapped := fmt.Errorf("turn failed: %w", providerErr)
	if !IsErrorType(wrapped, ErrorTypeProvider) {
		t.Error("Wrapped provider error not recognized")
	}

	if IsErrorType(errors.New("plain"), ErrorTypeProvider) {
		t.Error("Plain error must not match any category")
	}
	if IsErrorType(nil, ErrorTypeProvider) {
		t.Error("nil must not match any category")
	}
}

func TestTypedErrorsCarryContext(t *testing.T) {
	cause := errors.New("connection reset")

	crawlErr := NewCrawlGatewayError(502, cause)
	if crawlErr.StatusCode != 502 {
		t.Errorf("Status lost: %d", crawlErr.StatusCode)
	}
	if !errors.Is(crawlErr, cause) {
		t.Error("Cause not unwrappable")
	}
	if !IsErrorType(crawlErr, ErrorTypeCrawl) {
		t.Error("Crawl error not recognized")
	}

	toolErr := NewToolExecutionError("webCrawlAndScrape", cause)
	if toolErr.ToolName != "webCrawlAndScrape" {
		t.Errorf("Tool name lost: %s", toolErr.ToolName)
	}
	if !IsErrorType(toolErr, ErrorTypeTool) {
		t.Error("Tool error not recognized")
	}

	conflict := NewConflictError("email")
	if conflict.Field != "email" {
		t.Errorf("Field lost: %s", conflict.Field)
	}
}

func TestBaseErrorString(t *testing.T) {
	err := NewBaseError(ErrorTypeHistory, "save failed", errors.New("timeout"))
	msg := err.Error()
	if msg != "[history] save failed: timeout" {
		t.Errorf("Unexpected error string: %q", msg)
	}

	bare := NewBaseError(ErrorTypeAuth, "invalid token", nil)
	if bare.Error() != "[auth] invalid token" {
		t.Errorf("Unexpected error string: %q", bare.Error())
	}
}
