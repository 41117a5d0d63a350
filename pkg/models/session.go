package models

// Session is a snapshot of the process-wide authentication state.
type Session struct {
	IsAuthenticated bool      `json:"isAuthenticated"`
	CurrentUser     *UserView `json:"currentUser"`
	Loading         bool      `json:"loading"`
	Error           string    `json:"error,omitempty"`
}
