package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"shopmate/backend/internal/conversation"
	"shopmate/backend/internal/graph"
)

const systemPersona = `You are an AI-powered shopping assistant for an e-commerce platform.
Your role is to help users find products, answer questions, and provide personalized recommendations.

Guidelines:
- Be helpful, friendly, and professional
- Ask clarifying questions when needed
- Provide specific product recommendations when possible
- Consider user preferences and past behavior
- Suggest related products or alternatives`

// buildSystemPrompt assembles the persona, caller context, profile summary and
// recent turns into a single system prompt
func buildSystemPrompt(profile *graph.UserProfile, known []string, recent []conversation.Turn, callerContext string) string {
	var b strings.Builder
	b.WriteString(systemPersona)

	if callerContext != "" {
		b.WriteString("\n\n## Context\n")
		b.WriteString(callerContext)
	}

	if profile != nil {
		if profileJSON, err := json.MarshalIndent(profile, "", "  "); err == nil {
			b.WriteString("\n\n## User Profile\n")
			b.Write(profileJSON)
		}
	}

	if len(known) > 0 {
		b.WriteString("\n\n## Known Preferences\n")
		b.WriteString(strings.Join(known, ", "))
	}

	if len(recent) > 0 {
		b.WriteString("\n\n## Recent Conversation\n")
		for _, turn := range recent {
			label := "User"
			if turn.Role == conversation.RoleAssistant {
				label = "Assistant"
			}
			b.WriteString(fmt.Sprintf("%s: %s\n", label, turn.Content))
		}
	}

	return b.String()
}
