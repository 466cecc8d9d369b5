package api

// Weekday identifies a day of the week on the wire. The backend stores
// availability as weekly-recurring rules keyed by these values.
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

type User struct {
	ID            string  `json:"id"`
	DiscordID     string  `json:"discordId"`
	Username      string  `json:"username"`
	Discriminator *string `json:"discriminator"`
	AvatarHash    *string `json:"avatarHash"`
	AvatarURL     *string `json:"avatarUrl"`
	Email         *string `json:"email"`
	CreatedAt     string  `json:"createdAt"`
}

type Team struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	JoinCode  string `json:"joinCode"`
	CreatedAt string `json:"createdAt"`
}

type TeamDetail struct {
	Team
	Owner       MemberUser      `json:"owner"`
	Members     []TeamMember    `json:"members"`
	Preferences *TeamPreference `json:"preferences"`
}

// MemberUser is the trimmed user embedded in team rosters and assignees.
type MemberUser struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	DiscordID  string  `json:"discordId"`
	AvatarHash *string `json:"avatarHash"`
}

type Role string

const (
	RoleDuellist   Role = "DUELLIST"
	RoleController Role = "CONTROLLER"
	RoleSentinel   Role = "SENTINEL"
	RoleInitiator  Role = "INITIATOR"
	RoleFlex       Role = "FLEX"
)

type TeamMember struct {
	ID      string     `json:"id"`
	Role    *Role      `json:"role"`
	IsCoach bool       `json:"isCoach"`
	User    MemberUser `json:"user"`
}

// TeamPreference holds descriptive training targets. They are displayed,
// never enforced.
type TeamPreference struct {
	ID             string `json:"id"`
	DaysPerWeek    int    `json:"daysPerWeek"`
	HoursPerWeek   int    `json:"hoursPerWeek"`
	MinSlotMinutes int    `json:"minSlotMinutes"`
	MaxSlotMinutes int    `json:"maxSlotMinutes"`
}

// Availability is one recurring weekly slot. StartTime and EndTime are
// minutes since midnight, 0 <= StartTime < EndTime <= 1440. ID is assigned
// by the backend and empty for not-yet-persisted slots.
type Availability struct {
	ID        string  `json:"id,omitempty"`
	Weekday   Weekday `json:"weekday"`
	StartTime int     `json:"startTime"`
	EndTime   int     `json:"endTime"`
	Priority  int     `json:"priority"`
}

type TaskScope string

const (
	ScopeTeam  TaskScope = "TEAM"
	ScopeCoach TaskScope = "COACH"
	ScopeRole  TaskScope = "ROLE"
)

type Task struct {
	ID          string    `json:"id"`
	Scope       TaskScope `json:"scope"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Role        *Role     `json:"role"`
	IsCoachOnly bool      `json:"isCoachOnly"`
	Status      string    `json:"status"`
	DueAt       *string   `json:"dueAt"`
	CreatedAt   string    `json:"createdAt"`
	Assignee    *Assignee `json:"assignee"`
}

type Assignee struct {
	ID   string     `json:"id"`
	User MemberUser `json:"user"`
}

// TokenPair is the access/refresh pair issued at login and on refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
