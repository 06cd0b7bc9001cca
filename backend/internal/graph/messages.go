package graph

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	apperrors "resume-chatbot/backend/pkg/errors"
)

// Message is one persisted conversation entry, immutable once saved
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// SaveMessage appends a message to the user's log. The user node is
// created on first contact so ingestion never races registration.
func (r *Repository) SaveMessage(ctx context.Context, msg Message) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	query := `
		MERGE (u:User {id: $userID})
		CREATE (m:Message {
			id: $msgID,
			user_id: $userID,
			role: $role,
			content: $content,
			timestamp: datetime($ts)
		})
		MERGE (u)-[:SENT_OR_RECEIVED]->(m)
	`

	_, err := session.Run(ctx, query, map[string]interface{}{
		"userID":  msg.UserID,
		"msgID":   msg.ID,
		"role":    msg.Role,
		"content": msg.Content,
		"ts":      msg.Timestamp.UTC().Format(time.RFC3339),
	})
	if err != nil {
		if isConstraintViolation(err) {
			return apperrors.NewConflictError("id")
		}
		return apperrors.NewPersistenceError("could not save message data", err)
	}

	return nil
}

// RecentMessages returns up to limit messages for the user,
// most-recent-first by timestamp. An unknown user yields an empty
// slice, not an error.
func (r *Repository) RecentMessages(ctx context.Context, userID string, limit int) ([]Message, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	if limit < 1 {
		limit = 5
	}

	query := `
		MATCH (m:Message {user_id: $userID})
		RETURN m.id as id, m.user_id as user_id, m.role as role,
		       m.content as content, m.timestamp as timestamp
		ORDER BY m.timestamp DESC
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
		"limit":  limit,
	})
	if err != nil {
		return nil, apperrors.NewHistoryError(userID, err)
	}

	var messages []Message
	for result.Next(ctx) {
		record := result.Record()
		messages = append(messages, Message{
			ID:        getStringFromRecord(record, "id"),
			UserID:    getStringFromRecord(record, "user_id"),
			Role:      getStringFromRecord(record, "role"),
			Content:   getStringFromRecord(record, "content"),
			Timestamp: getTimeFromRecord(record, "timestamp"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewHistoryError(userID, err)
	}

	return messages, nil
}

// isConstraintViolation reports whether the error came from a schema
// uniqueness constraint
func isConstraintViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "ConstraintValidationFailed")
}
