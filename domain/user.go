// server/domain/user.go
package domain

import "time"

type User struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Image *string `json:"image,omitempty"`
	// PasswordHash is empty for accounts created through an external provider.
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

type UserSummary struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinDate time.Time `json:"joinDate"`
}

type Stats struct {
	TotalThoughts       int         `json:"totalThoughts"`
	ResolvedThoughts    int         `json:"resolvedThoughts"`
	ThoughtHistoryCount int         `json:"thoughtHistoryCount"`
	MeditationSessions  int         `json:"meditationSessions"`
	BreathingSessions   int         `json:"breathingSessions"`
	User                UserSummary `json:"user"`
}
