package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeProvider represents model-provider call failures
	ErrorTypeProvider ErrorType = "provider"
	// ErrorTypeHistory represents message-history storage failures
	ErrorTypeHistory ErrorType = "history"
	// ErrorTypeTool represents tool dispatch and execution errors
	ErrorTypeTool ErrorType = "tool"
	// ErrorTypeCrawl represents remote crawl gateway errors
	ErrorTypeCrawl ErrorType = "crawl"
	// ErrorTypeAuth represents authentication errors
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// Kind returns the error category. Promoted to every typed error
// that embeds BaseError.
func (e *BaseError) Kind() ErrorType {
	return e.Type
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Provider Errors

// ErrProvider is returned when a model-provider call fails
// (network, auth, quota). Surfaced to the caller as a bad-request
// class failure carrying the provider's message.
type ErrProvider struct {
	*BaseError
	Model string
}

func NewProviderError(model string, err error) *ErrProvider {
	return &ErrProvider{
		BaseError: NewBaseError(ErrorTypeProvider, "model provider request failed", err),
		Model:     model,
	}
}

// History Errors

// ErrHistory is returned when reading or writing the message log fails
type ErrHistory struct {
	*BaseError
	UserID string
}

func NewHistoryError(userID string, err error) *ErrHistory {
	return &ErrHistory{
		BaseError: NewBaseError(ErrorTypeHistory, "message history operation failed", err),
		UserID:    userID,
	}
}

// ErrConflict is returned when a uniqueness constraint is violated
type ErrConflict struct {
	*BaseError
	Field string
}

func NewConflictError(field string) *ErrConflict {
	return &ErrConflict{
		BaseError: NewBaseError(ErrorTypeHistory, fmt.Sprintf("'%s' value already exists", field), nil),
		Field:     field,
	}
}

// ErrPersistence is returned for any other storage failure
type ErrPersistence struct {
	*BaseError
}

func NewPersistenceError(message string, err error) *ErrPersistence {
	return &ErrPersistence{
		BaseError: NewBaseError(ErrorTypeHistory, message, err),
	}
}

// Tool Errors

// ErrToolArgument is returned when tool-call arguments are not
// parseable as structured data
type ErrToolArgument struct {
	*BaseError
	ToolName string
}

func NewToolArgumentError(toolName string, err error) *ErrToolArgument {
	return &ErrToolArgument{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("malformed arguments for tool: %s", toolName), err),
		ToolName:  toolName,
	}
}

// ErrToolExecution is returned when a tool executor fails
type ErrToolExecution struct {
	*BaseError
	ToolName string
}

func NewToolExecutionError(toolName string, err error) *ErrToolExecution {
	return &ErrToolExecution{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("tool execution failed: %s", toolName), err),
		ToolName:  toolName,
	}
}

// ErrUnknownTool is returned when the model requests a tool that is
// not registered
type ErrUnknownTool struct {
	*BaseError
	ToolName string
}

func NewUnknownToolError(toolName string) *ErrUnknownTool {
	return &ErrUnknownTool{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("unknown tool: %s", toolName), nil),
		ToolName:  toolName,
	}
}

// Crawl Errors

// ErrCrawlGateway covers a whole batched crawl call: the remote
// service unreachable or responding non-2xx. Per-URL failures are
// expressed inside the result payload instead.
type ErrCrawlGateway struct {
	*BaseError
	StatusCode int
}

func NewCrawlGatewayError(statusCode int, err error) *ErrCrawlGateway {
	return &ErrCrawlGateway{
		BaseError:  NewBaseError(ErrorTypeCrawl, "web crawl request failed", err),
		StatusCode: statusCode,
	}
}

// Auth Errors

// ErrInvalidCredentials is returned when login credentials do not match
var ErrInvalidCredentials = NewBaseError(ErrorTypeAuth, "invalid email or password", nil)

// ErrInvalidToken is returned when a JWT fails validation
var ErrInvalidToken = NewBaseError(ErrorTypeAuth, "invalid or expired token", nil)

// Helper functions

// IsErrorType checks if an error belongs to a category
func IsErrorType(err error, errType ErrorType) bool {
	if k, ok := err.(interface{ Kind() ErrorType }); ok {
		return k.Kind() == errType
	}
	if wrapped, ok := err.(interface{ Unwrap() error }); ok {
		if inner := wrapped.Unwrap(); inner != nil {
			return IsErrorType(inner, errType)
		}
	}
	return false
}
