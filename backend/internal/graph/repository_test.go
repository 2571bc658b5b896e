package graph

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	apperrors "shopmate/backend/pkg/errors"
)

// These tests require a running Neo4j instance.
// Set NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD environment variables.

func createTestDriver() (neo4j.DriverWithContext, error) {
	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		uri = "bolt://localhost:7687"
	}
	user := os.Getenv("NEO4J_USER")
	if user == "" {
		user = "neo4j"
	}
	password := os.Getenv("NEO4J_PASSWORD")
	if password == "" {
		password = "password"
	}
	return neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
}

func cleanupUser(ctx context.Context, driver neo4j.DriverWithContext, userID string) {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)
	_, _ = session.Run(ctx, "MATCH (u:User {user_id: $id}) DETACH DELETE u", map[string]interface{}{"id": userID})
}

func TestRepository_ProfileRoundTrip(t *testing.T) {
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
	defer cleanupUser(ctx, driver, userID)

	profile := UserProfile{
		Name:        "Alice",
		Email:       "alice@example.com",
		Preferences: []string{"gaming", "books"},
		BudgetRange: "100-500",
	}

	stored, err := repo.UpsertProfile(ctx, userID, profile)
	if err != nil {
		t.Fatalf("UpsertProfile failed: %v", err)
	}
	if stored.UserID != userID {
		t.Errorf("expected user_id %q, got %q", userID, stored.UserID)
	}

	fetched, err := repo.GetProfile(ctx, userID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if fetched.Name != "Alice" || fetched.Email != "alice@example.com" || fetched.BudgetRange != "100-500" {
		t.Errorf("profile did not round-trip: %+v", fetched)
	}
	if len(fetched.Preferences) != 2 {
		t.Errorf("expected 2 preferences, got %v", fetched.Preferences)
	}
}

func TestRepository_UpsertOverwrites(t *testing.T) {
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
	defer cleanupUser(ctx, driver, userID)

	if _, err := repo.UpsertProfile(ctx, userID, UserProfile{Name: "Alice", BudgetRange: "100-500"}); err != nil {
		t.Fatalf("first UpsertProfile failed: %v", err)
	}

	// Second upsert omits budget_range; replacement semantics must drop it
	if _, err := repo.UpsertProfile(ctx, userID, UserProfile{Name: "Alice B."}); err != nil {
		t.Fatalf("second UpsertProfile failed: %v", err)
	}

	fetched, err := repo.GetProfile(ctx, userID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if fetched.Name != "Alice B." {
		t.Errorf("expected updated name, got %q", fetched.Name)
	}
	if fetched.BudgetRange != "" {
		t.Errorf("expected budget_range to be dropped on overwrite, got %q", fetched.BudgetRange)
	}
}

func TestRepository_GetProfile_NotFound(t *testing.T) {
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

	_, err = repo.GetProfile(ctx, "no-such-user-ever")
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if !apperrors.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestRepository_Recommendations(t *testing.T) {
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
	userID := "test-user-" + time.Now().Format("20060102150405.999")
	defer cleanupUser(ctx, driver, userID)

	if _, err := repo.UpsertProfile(ctx, userID, UserProfile{Preferences: []string{"gaming"}}); err != nil {
		t.Fatalf("UpsertProfile failed: %v", err)
	}

	items, err := repo.Recommendations(ctx, userID)
	if err != nil {
		t.Fatalf("Recommendations failed: %v", err)
	}
	if len(items) != 1 || items[0] != "gaming" {
		t.Errorf("expected [gaming], got %v", items)
	}

	// Learned preferences are appended after the stored list, deduplicated
	if err := repo.AddPreference(ctx, userID, "electronics", "laptop"); err != nil {
		t.Fatalf("AddPreference failed: %v", err)
	}
	if err := repo.AddPreference(ctx, userID, "sports", "gaming"); err != nil {
		t.Fatalf("AddPreference failed: %v", err)
	}

	items, err = repo.Recommendations(ctx, userID)
	if err != nil {
		t.Fatalf("Recommendations failed: %v", err)
	}
	if len(items) != 2 || items[0] != "gaming" || items[1] != "laptop" {
		t.Errorf("expected [gaming laptop], got %v", items)
	}
}

func TestRepository_Recommendations_UnknownUser(t *testing.T) {
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

	items, err := repo.Recommendations(ctx, "no-such-user-ever")
	if err != nil {
		t.Fatalf("Recommendations failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty list for unknown user, got %v", items)
	}
}
