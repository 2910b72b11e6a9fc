package user

import "time"

type Country struct {
	Name string
	Code string
}

// User is reference data owned by the account collaborator; the contest core
// only reads it.
type User struct {
	ID                string
	Name              string
	Email             string
	ProfilePictureURL string
	Country           Country
	IsAdmin           bool
	LastLogin         *time.Time
}
