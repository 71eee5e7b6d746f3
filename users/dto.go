package users

import "time"

// UserProfileResponse is the public view of an account. The password hash
// never leaves the store.
type UserProfileResponse struct {
	ID        int64     `json:"id" example:"1"`
	Name      string    `json:"name" example:"Alice"`
	Email     string    `json:"email" example:"a@x.com"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse wraps a profile in the success envelope.
type ProfileResponse struct {
	Status string              `json:"Status" example:"Success"`
	User   UserProfileResponse `json:"user"`
}
