package chatbot

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
	"resume-chatbot/backend/internal/adapter"
	"resume-chatbot/backend/internal/constants"
	"resume-chatbot/backend/internal/graph"
	"resume-chatbot/backend/internal/tools"
	apperrors "resume-chatbot/backend/pkg/errors"
	"resume-chatbot/backend/pkg/logger"
)

// Provider is the model-provider contract the orchestrator depends on
type Provider interface {
	Complete(ctx context.Context, messages []adapter.ChatMessage, tools []adapter.Tool) (*adapter.Response, error)
	Model() string
}

// HistoryRepo is the durable per-user message log
type HistoryRepo interface {
	SaveMessage(ctx context.Context, msg graph.Message) error
	RecentMessages(ctx context.Context, userID string, limit int) ([]graph.Message, error)
}

// Service runs one request/response cycle per inbound message:
// context assembly, model invocation, tool-call dispatch, response
// persistence. All dependencies are injected at construction; no
// hidden singleton state.
type Service struct {
	history      HistoryRepo
	llm          Provider
	registry     *tools.Registry
	historyLimit int
	logger       *zap.Logger
}

// NewService creates the conversation orchestrator
func NewService(history HistoryRepo, llm Provider, registry *tools.Registry) *Service {
	return &Service{
		history:      history,
		llm:          llm,
		registry:     registry,
		historyLimit: constants.DefaultHistoryLimit,
		logger:       logger.Get(),
	}
}

// TurnInput is one inbound message
type TurnInput struct {
	UserID    string
	Role      string
	Content   string
	Timestamp time.Time
}

// TurnResult is the turn's answer
type TurnResult struct {
	Message string `json:"message"`
}

// SendGreeting issues a single system-directive-only call to produce
// the introductory message. No history is read or written.
func (s *Service) SendGreeting(ctx context.Context) (string, error) {
	response, err := s.llm.Complete(ctx, []adapter.ChatMessage{
		{Role: constants.RoleAssistant, Content: defaultContext},
	}, nil)
	if err != nil {
		s.logger.Error("Greeting request failed", zap.Error(err))
		return "", apperrors.NewProviderError(s.llm.Model(), err)
	}
	return response.Content, nil
}

// SendMessage runs one conversation turn. The incoming user message
// is persisted before the model call and is never rolled back, so the
// question survives even when answer generation fails downstream.
func (s *Service) SendMessage(ctx context.Context, input TurnInput) (*TurnResult, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, nil
	}

	history, err := s.history.RecentMessages(ctx, input.UserID, s.historyLimit)
	if err != nil {
		return nil, err
	}

	userMsg := graph.Message{
		UserID:    input.UserID,
		Role:      input.Role,
		Content:   input.Content,
		Timestamp: input.Timestamp,
	}
	if err := s.history.SaveMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	messages := buildContext(history, input)

	// Tools are offered only when the current message carries a link;
	// a URL sitting in replayed history must not re-trigger the
	// scraper.
	var offered []adapter.Tool
	if hasLink(input.Content) {
		offered = s.registry.Describe()
	}

	response, err := s.llm.Complete(ctx, messages, offered)
	if err != nil {
		return nil, apperrors.NewProviderError(s.llm.Model(), err)
	}

	answer := response.Content
	// Tool calls are honored only when tools were actually offered
	// this turn; a hallucinated call with no tools on the table is
	// answered from the text alone.
	if len(response.ToolCalls) > 0 && len(offered) > 0 {
		answer, err = s.resolveToolCalls(ctx, messages, response)
		if err != nil {
			return nil, err
		}
	}

	assistantMsg := graph.Message{
		UserID:    input.UserID,
		Role:      constants.RoleAssistant,
		Content:   answer,
		Timestamp: time.Now().UTC(),
	}
	if err := s.history.SaveMessage(ctx, assistantMsg); err != nil {
		return nil, err
	}

	return &TurnResult{Message: answer}, nil
}

// resolveToolCalls runs the one permitted round of tool use: the
// provider's tool-call message is replayed into the context, each
// requested call executes sequentially in the order listed, and the
// augmented context goes back to the provider without tools so the
// chain cannot recurse.
func (s *Service) resolveToolCalls(ctx context.Context, messages []adapter.ChatMessage, response *adapter.Response) (string, error) {
	messages = append(messages, adapter.ChatMessage{
		Role:      constants.RoleAssistant,
		Content:   response.Content,
		ToolCalls: response.ToolCalls,
	})

	for _, call := range response.ToolCalls {
		executor, err := s.registry.Resolve(call.Name)
		if err != nil {
			s.logger.Warn("Model requested unregistered tool", zap.String("tool", call.Name))
			return "", err
		}

		if !json.Valid([]byte(call.Arguments)) {
			return "", apperrors.NewToolArgumentError(call.Name, nil)
		}

		result, err := executor(ctx, json.RawMessage(call.Arguments))
		if err != nil {
			s.logger.Error("Tool execution failed",
				zap.String("tool", call.Name),
				zap.Error(err),
			)
			return "", apperrors.NewToolExecutionError(call.Name, err)
		}

		messages = append(messages, adapter.ChatMessage{
			Role:       constants.RoleTool,
			ToolCallID: call.ID,
			Content:    result,
		})
	}

	final, err := s.llm.Complete(ctx, messages, nil)
	if err != nil {
		return "", apperrors.NewProviderError(s.llm.Model(), err)
	}

	return final.Content, nil
}

// History returns the user's recent messages, most-recent-first
func (s *Service) History(ctx context.Context, userID string) ([]graph.Message, error) {
	return s.history.RecentMessages(ctx, userID, s.historyLimit)
}
