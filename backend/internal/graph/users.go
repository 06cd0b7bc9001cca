package graph

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	apperrors "resume-chatbot/backend/pkg/errors"
)

// User is a registered account
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CreateUser registers a new account. A duplicate email violates the
// uniqueness constraint and maps to ErrConflict.
func (r *Repository) CreateUser(ctx context.Context, email, hashedPassword string) (*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	userID := uuid.New().String()
	now := time.Now().UTC()

	query := `
		CREATE (u:User {
			id: $userID,
			email: $email,
			hashed_password: $hashedPassword,
			created_at: datetime($now)
		})
		RETURN u.id as id, u.email as email, u.created_at as created_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID":         userID,
		"email":          email,
		"hashedPassword": hashedPassword,
		"now":            now.Format(time.RFC3339),
	})
	if err != nil {
		if isConstraintViolation(err) {
			return nil, apperrors.NewConflictError("email")
		}
		return nil, apperrors.NewPersistenceError("could not create user", err)
	}

	if result.Next(ctx) {
		record := result.Record()
		return &User{
			ID:        getStringFromRecord(record, "id"),
			Email:     getStringFromRecord(record, "email"),
			CreatedAt: getTimeFromRecord(record, "created_at"),
		}, nil
	}
	if err := result.Err(); err != nil {
		if isConstraintViolation(err) {
			return nil, apperrors.NewConflictError("email")
		}
		return nil, apperrors.NewPersistenceError("could not create user", err)
	}

	return nil, apperrors.NewPersistenceError("could not create user", nil)
}

// GetUserByEmail looks up an account by email. Returns nil (no
// error) when the user does not exist.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {email: $email})
		RETURN u.id as id, u.email as email, u.hashed_password as hashed_password,
		       u.created_at as created_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"email": email,
	})
	if err != nil {
		return nil, apperrors.NewPersistenceError("could not fetch user", err)
	}

	if result.Next(ctx) {
		record := result.Record()
		return &User{
			ID:             getStringFromRecord(record, "id"),
			Email:          getStringFromRecord(record, "email"),
			HashedPassword: getStringFromRecord(record, "hashed_password"),
			CreatedAt:      getTimeFromRecord(record, "created_at"),
		}, nil
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("could not fetch user", err)
	}

	return nil, nil
}
