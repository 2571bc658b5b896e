package agent

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// preferenceKeywords maps a category to the message keywords that signal it
var preferenceKeywords = map[string][]string{
	"electronics": {"phone", "laptop", "computer", "gadget", "tech"},
	"clothing":    {"shirt", "dress", "shoes", "jacket", "fashion"},
	"books":       {"book", "novel", "reading", "author"},
	"sports":      {"fitness", "exercise", "sports", "workout"},
}

// storePreferences scans a message for category keywords and records the first
// hit per category. Failures are logged and swallowed: learned preferences are
// an enrichment, not part of the reply contract.
func (o *Orchestrator) storePreferences(ctx context.Context, userID, message string) {
	lowered := strings.ToLower(message)

	for category, keywords := range preferenceKeywords {
		for _, keyword := range keywords {
			if !strings.Contains(lowered, keyword) {
				continue
			}
			if err := o.profiles.AddPreference(ctx, userID, category, keyword); err != nil {
				o.logger.Warn("Failed to store learned preference",
					zap.String("user_id", userID),
					zap.String("category", category),
					zap.Error(err),
				)
			}
			break
		}
	}
}

// extractPreferences returns the category/keyword pairs a message matches
// (first keyword per category). Exposed for tests.
func extractPreferences(message string) map[string]string {
	lowered := strings.ToLower(message)
	matches := make(map[string]string)

	for category, keywords := range preferenceKeywords {
		for _, keyword := range keywords {
			if strings.Contains(lowered, keyword) {
				matches[category] = keyword
				break
			}
		}
	}
	return matches
}
