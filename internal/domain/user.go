package domain

// ProfileStatus is the account tier of a user
type ProfileStatus string

const (
	StatusStandard ProfileStatus = "Standard"
	StatusPremium  ProfileStatus = "Premium"
)

// UserProfile is a read-only snapshot of the user's account, refetched every time the profile is shown
type UserProfile struct {
	Status    ProfileStatus `json:"status"`
	Tokens    int           `json:"tokens"`
	Referrals int           `json:"referrals"`
}

func (p UserProfile) IsPremium() bool {
	return p.Status == StatusPremium
}

// SessionUser is the display metadata the host platform attaches to a session
type SessionUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// Session is the host-issued session.  InitData is opaque to Tanpen and is forwarded to the API on every request.
type Session struct {
	InitData string
	User     SessionUser
}

// DisplayName returns the name to greet the user with
func (s *Session) DisplayName() string {
	if s == nil || s.User.FirstName == "" {
		return "User"
	}
	return s.User.FirstName
}
