package agent

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"shopmate/backend/internal/conversation"
	"shopmate/backend/internal/graph"
	apperrors "shopmate/backend/pkg/errors"
	"shopmate/backend/pkg/logger"
)

// DefaultUserID is used when a chat request carries no user identifier
const DefaultUserID = "default_user"

// ProfileStore is the subset of graph operations the orchestrator needs
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*graph.UserProfile, error)
	Recommendations(ctx context.Context, userID string) ([]string, error)
	AddPreference(ctx context.Context, userID, category, value string) error
}

// Completer generates a reply for a prompt
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMsg string) (string, error)
	Model() string
}

// Orchestrator composes prompts from profile data and recent conversation
// turns, and runs a single completion per message.
type Orchestrator struct {
	profiles      ProfileStore
	llm           Completer
	log           *conversation.Log
	historyWindow int
	logger        *zap.Logger
}

// ChatResult is the outcome of a processed message
type ChatResult struct {
	Reply              string             `json:"reply"`
	UserID             string             `json:"user_id"`
	UserProfile        *graph.UserProfile `json:"user_profile,omitempty"`
	ConversationLength int                `json:"conversation_length"`
	Timestamp          string             `json:"timestamp"`
}

// NewOrchestrator creates a new agent orchestrator
func NewOrchestrator(profiles ProfileStore, llm Completer, log *conversation.Log, historyWindow int) *Orchestrator {
	return &Orchestrator{
		profiles:      profiles,
		llm:           llm,
		log:           log,
		historyWindow: historyWindow,
		logger:        logger.Get(),
	}
}

// ProcessMessage runs a single request/response turn: personalize, complete,
// record. A missing profile is not an error; a provider failure is surfaced
// and nothing is appended to the log.
func (o *Orchestrator) ProcessMessage(ctx context.Context, userID, message, callerContext string) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.ErrEmptyMessage
	}
	if userID == "" {
		userID = DefaultUserID
	}

	o.logger.Debug("Processing message",
		zap.String("user_id", userID),
		zap.Int("message_length", len(message)),
	)

	// Profile and known preferences are independent reads; fetch them together.
	// Both are best-effort: chat must still answer when the graph is down.
	var profile *graph.UserProfile
	var known []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := o.profiles.GetProfile(gctx, userID)
		if err != nil {
			if !apperrors.IsNotFound(err) {
				o.logger.Warn("Profile lookup failed, continuing without personalization",
					zap.String("user_id", userID),
					zap.Error(err),
				)
			}
			return nil
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		items, err := o.profiles.Recommendations(gctx, userID)
		if err != nil {
			o.logger.Warn("Preference lookup failed", zap.Error(err))
			return nil
		}
		known = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recent := o.log.Recent(o.historyWindow)
	systemPrompt := buildSystemPrompt(profile, known, recent, callerContext)

	reply, err := o.llm.Complete(ctx, systemPrompt, message)
	if err != nil {
		return nil, err
	}

	o.log.Append(conversation.RoleUser, message)
	o.log.Append(conversation.RoleAssistant, reply)

	o.storePreferences(ctx, userID, message)

	return &ChatResult{
		Reply:              reply,
		UserID:             userID,
		UserProfile:        profile,
		ConversationLength: o.log.Len(),
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
	}, nil
}
