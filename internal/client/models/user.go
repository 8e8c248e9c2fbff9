// Package models defines client-side data models for the gitreadme CLI.
package models

// User is the profile record returned by the backend for a valid token.
type User struct {
	ID        string `json:"id"`
	Login     string `json:"github_username"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// DisplayName prefers the full name and falls back to the GitHub login.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}
