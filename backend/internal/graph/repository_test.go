package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	apperrors "resume-chatbot/backend/pkg/errors"
)

// These tests require a running Neo4j instance at bolt://localhost:7687
// and are skipped under -short.

func TestRepository_SaveAndReadMessages(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}
	defer driver.Close(ctx)

	repo := NewRepository(driver)
	userID := "test-user-" + time.Now().Format("20060102150405")

	// Clean up
	defer func() {
		session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
		defer session.Close(ctx)
		_, _ = session.Run(ctx,
			"MATCH (m:Message {user_id: $id}) DETACH DELETE m",
			map[string]interface{}{"id": userID})
		_, _ = session.Run(ctx, "MATCH (u:User {id: $id}) DETACH DELETE u",
			map[string]interface{}{"id": userID})
	}()

	base := time.Now().UTC().Truncate(time.Millisecond)
	contents := []string{"one", "two", "three", "four", "five", "six", "seven"}
	for i, content := range contents {
		err := repo.SaveMessage(ctx, Message{
			UserID:    userID,
			Role:      "user",
			Content:   content,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("SaveMessage %d failed: %v", i, err)
		}
	}

	messages, err := repo.RecentMessages(ctx, userID, 5)
	if err != nil {
		t.Fatalf("RecentMessages failed: %v", err)
	}
	if len(messages) != 5 {
		t.Fatalf("Expected 5 messages, got %d", len(messages))
	}
	// Most recent first
	if messages[0].Content != "seven" {
		t.Errorf("Expected newest message first, got %q", messages[0].Content)
	}
	if messages[4].Content != "three" {
		t.Errorf("Expected window to end at 'three', got %q", messages[4].Content)
	}
	for _, msg := range messages {
		if msg.ID == "" {
			t.Error("Stored message missing generated id")
		}
		if msg.UserID != userID {
			t.Errorf("Message leaked across users: %+v", msg)
		}
	}
}

func TestRepository_RecentMessagesDefaultLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}
	defer driver.Close(ctx)

	repo := NewRepository(driver)
	userID := "test-user-" + time.Now().Format("20060102150405.000")

	defer func() {
		session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
		defer session.Close(ctx)
		_, _ = session.Run(ctx,
			"MATCH (m:Message {user_id: $id}) DETACH DELETE m",
			map[string]interface{}{"id": userID})
		_, _ = session.Run(ctx, "MATCH (u:User {id: $id}) DETACH DELETE u",
			map[string]interface{}{"id": userID})
	}()

	for i := 0; i < 7; i++ {
		err := repo.SaveMessage(ctx, Message{
			UserID:    userID,
			Role:      "user",
			Content:   "msg",
			Timestamp: time.Now().UTC().Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
	}

	messages, err := repo.RecentMessages(ctx, userID, 0)
	if err != nil {
		t.Fatalf("RecentMessages failed: %v", err)
	}
	if len(messages) != 5 {
		t.Errorf("Non-positive limit must fall back to 5, got %d", len(messages))
	}
}

func TestRepository_UserUniqueness(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}
	defer driver.Close(ctx)

	repo := NewRepository(driver)
	if err := repo.EnsureConstraints(ctx); err != nil {
		t.Fatalf("EnsureConstraints failed: %v", err)
	}

	email := "test-" + time.Now().Format("20060102150405") + "@example.com"

	defer func() {
		session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
		defer session.Close(ctx)
		_, _ = session.Run(ctx, "MATCH (u:User {email: $email}) DETACH DELETE u",
			map[string]interface{}{"email": email})
	}()

	user, err := repo.CreateUser(ctx, email, "hashed-password")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == "" || user.Email != email {
		t.Errorf("Unexpected user: %+v", user)
	}

	_, err = repo.CreateUser(ctx, email, "other-hash")
	var conflict *apperrors.ErrConflict
	if !errors.As(err, &conflict) {
		t.Errorf("Expected ErrConflict for duplicate email, got %T: %v", err, err)
	}

	found, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if found == nil || found.ID != user.ID {
		t.Errorf("Lookup mismatch: %+v vs %+v", found, user)
	}

	missing, err := repo.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown email, got %+v", missing)
	}
}

func createTestDriver() (neo4j.DriverWithContext, error) {
	uri := "bolt://localhost:7687"
	user := "neo4j"
	password := "password"

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, err
	}

	return driver, nil
}
