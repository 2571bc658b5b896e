package graph

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	apperrors "shopmate/backend/pkg/errors"
)

// ============================================================================
// Preference Operations
// ============================================================================

// AddPreference links a learned preference to a user.
//
// Preferences learned from chat live as their own nodes so they survive profile
// overwrites; the stored `preferences` list on the User node is caller-owned.
func (r *Repository) AddPreference(ctx context.Context, userID, category, value string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		MERGE (u:User {user_id: $userID})
		ON CREATE SET u.updated_at = $now
		MERGE (c:Category {name: $category})
		MERGE (p:Preference {value: $value})
		ON CREATE SET p.id = $prefID, p.created_at = $now
		MERGE (u)-[:LIKES]->(p)
		MERGE (p)-[:BELONGS_TO]->(c)
	`

	_, err := session.Run(ctx, query, map[string]interface{}{
		"userID":   userID,
		"category": category,
		"value":    value,
		"prefID":   uuid.New().String(),
		"now":      now,
	})
	if err != nil {
		return apperrors.NewGraphQueryFailed("add preference", err)
	}

	r.logger.Debug("Preference stored",
		zap.String("user_id", userID),
		zap.String("category", category),
		zap.String("value", value),
	)
	return nil
}

// Recommendations returns the user's stored preference list followed by learned
// preference nodes, deduplicated. An unknown user yields an empty list, not an
// error.
func (r *Repository) Recommendations(ctx context.Context, userID string) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {user_id: $userID})
		OPTIONAL MATCH (u)-[:LIKES]->(p:Preference)
		RETURN u.preferences as preferences, collect(p.value) as learned
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("recommendations", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, apperrors.NewGraphQueryFailed("recommendations", err)
		}
		return []string{}, nil
	}

	record := result.Record()
	stored := getStringSliceFromRecord(record, "preferences")
	learned := getStringSliceFromRecord(record, "learned")

	seen := make(map[string]bool, len(stored)+len(learned))
	items := make([]string, 0, len(stored)+len(learned))
	for _, v := range stored {
		if v != "" && !seen[v] {
			seen[v] = true
			items = append(items, v)
		}
	}
	for _, v := range learned {
		if v != "" && !seen[v] {
			seen[v] = true
			items = append(items, v)
		}
	}

	return items, nil
}
