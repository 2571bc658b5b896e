package graph

// UserProfile is the stored profile node for a user.
//
// The schema is explicit rather than an open property map: unknown fields in a
// profile-update request are dropped at the JSON boundary instead of landing as
// silently misspelled node properties.
type UserProfile struct {
	UserID      string   `json:"user_id"`
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Preferences []string `json:"preferences,omitempty"`
	BudgetRange string   `json:"budget_range,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// Preference is a learned preference node linked to a user via LIKES
type Preference struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}
