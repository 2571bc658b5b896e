package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	apperrors "shopmate/backend/pkg/errors"
)

// ============================================================================
// Profile Operations
// ============================================================================

// UpsertProfile creates or replaces a user profile node.
//
// Replacement is intentional: `SET u = $props` overwrites every property on the
// node, so a later update with fewer fields does not leave stale values behind.
func (r *Repository) UpsertProfile(ctx context.Context, userID string, profile UserProfile) (*UserProfile, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	now := time.Now().UTC().Format(time.RFC3339)

	props := map[string]interface{}{
		"user_id":    userID,
		"updated_at": now,
	}
	if profile.Name != "" {
		props["name"] = profile.Name
	}
	if profile.Email != "" {
		props["email"] = profile.Email
	}
	if len(profile.Preferences) > 0 {
		props["preferences"] = profile.Preferences
	}
	if profile.BudgetRange != "" {
		props["budget_range"] = profile.BudgetRange
	}

	query := `
		MERGE (u:User {user_id: $userID})
		SET u = $props
		RETURN u.user_id as user_id, u.name as name, u.email as email,
		       u.preferences as preferences, u.budget_range as budget_range,
		       u.updated_at as updated_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
		"props":  props,
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("upsert profile", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("upsert profile", err)
	}

	stored := profileFromRecord(record)

	r.logger.Info("User profile upserted",
		zap.String("user_id", userID),
		zap.Int("preferences", len(stored.Preferences)),
	)
	return stored, nil
}

// GetProfile retrieves a user profile by identifier
func (r *Repository) GetProfile(ctx context.Context, userID string) (*UserProfile, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {user_id: $userID})
		RETURN u.user_id as user_id, u.name as name, u.email as email,
		       u.preferences as preferences, u.budget_range as budget_range,
		       u.updated_at as updated_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("get profile", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, apperrors.NewGraphQueryFailed("get profile", err)
		}
		return nil, apperrors.NewProfileNotFound(userID)
	}

	return profileFromRecord(result.Record()), nil
}

func profileFromRecord(record *neo4j.Record) *UserProfile {
	return &UserProfile{
		UserID:      getStringFromRecord(record, "user_id"),
		Name:        getStringFromRecord(record, "name"),
		Email:       getStringFromRecord(record, "email"),
		Preferences: getStringSliceFromRecord(record, "preferences"),
		BudgetRange: getStringFromRecord(record, "budget_range"),
		UpdatedAt:   getStringFromRecord(record, "updated_at"),
	}
}
