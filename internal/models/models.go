package models

// Status enumerates the lifecycle of a generation job.
//
// pending → generating → {completed | failed}; the last two are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusGenerating Status = "generating"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further transition can leave this status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusGenerating, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Itinerary represents a generated travel plan.
//
// Progress is 100 exactly when Status is completed; a failed itinerary
// accepts no further progress updates.
type Itinerary struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Destination      string   `json:"destination"`
	Days             int      `json:"days"`
	Status           Status   `json:"status"`
	Progress         int      `json:"progress"`
	UserID           int64    `json:"user_id"`
	TravelStyle      string   `json:"travel_style,omitempty"`
	BudgetMin        *float64 `json:"budget_min,omitempty"`
	BudgetMax        *float64 `json:"budget_max,omitempty"`
	GroupSize        int      `json:"group_size"`
	StartDate        string   `json:"start_date,omitempty"`
	AIProvider       string   `json:"ai_provider"`
	OverviewContent  string   `json:"overview_content,omitempty"`
	OverviewMarkdown string   `json:"overview_markdown,omitempty"`
	CenterLatitude   *float64 `json:"center_latitude,omitempty"`
	CenterLongitude  *float64 `json:"center_longitude,omitempty"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
	CompletedAt      string   `json:"completed_at,omitempty"`
}

// DailyItinerary is a per-day child record keyed by (itinerary_id, day_number).
// Immutable once the parent itinerary reaches completed.
type DailyItinerary struct {
	ID              int64  `json:"id"`
	ItineraryID     int64  `json:"itinerary_id"`
	DayNumber       int    `json:"day_number"`
	Date            string `json:"date,omitempty"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	MarkdownContent string `json:"markdown_content"`
}

// ItineraryDetail is the detail endpoint payload: the full itinerary plus its daily records.
type ItineraryDetail struct {
	Itinerary        Itinerary        `json:"itinerary"`
	DailyItineraries []DailyItinerary `json:"daily_itineraries"`
}

// GenerationProgress is the payload returned by the progress-by-id endpoint.
type GenerationProgress struct {
	ItineraryID int64  `json:"itinerary_id"`
	Progress    int    `json:"progress"`
	Status      Status `json:"status"`
	Message     string `json:"message"`
	CurrentStep string `json:"current_step,omitempty"`
}

// GenerationRequest contains the parameters for requesting a new itinerary.
type GenerationRequest struct {
	Destination         string   `json:"destination"`
	Days                int      `json:"days"`
	TravelStyle         string   `json:"travel_style,omitempty"`
	BudgetMin           *float64 `json:"budget_min,omitempty"`
	BudgetMax           *float64 `json:"budget_max,omitempty"`
	GroupSize           int      `json:"group_size"`
	StartDate           string   `json:"start_date,omitempty"`
	AIProvider          string   `json:"ai_provider,omitempty"`
	SpecialRequirements string   `json:"special_requirements,omitempty"`
}

// User is the authenticated principal. Owned by the session; read-only elsewhere.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name,omitempty"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"created_at"`
}

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

// DisplayName returns the full name when set, the username otherwise.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// UserPreferences holds per-user defaults returned with the profile.
type UserPreferences struct {
	DefaultAIProvider string `json:"default_ai_provider"`
	Language          string `json:"language"`
	Timezone          string `json:"timezone"`
}

// UserStats summarizes a user's generation history.
type UserStats struct {
	TotalItineraries      int      `json:"total_itineraries"`
	SuccessfulGenerations int      `json:"successful_generations,omitempty"`
	FavoriteDestinations  []string `json:"favorite_destinations"`
	MemberSince           string   `json:"member_since,omitempty"`
}

// UserProfile extends [User] with preferences and aggregate stats.
type UserProfile struct {
	User
	Preferences UserPreferences `json:"preferences"`
	Stats       UserStats       `json:"stats"`
}

// Session pairs a bearer token with its resolved principal.
//
// A present token with an absent principal is a transient state: it must
// resolve via a current-user fetch or collapse back to unauthenticated.
type Session struct {
	Token     string
	Principal *User
}

// Authenticated reports whether both token and principal are present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.Principal != nil
}
