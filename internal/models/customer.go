package models

import "time"

// CustomerSummary is the limited public profile attached to a task detail.
// It is fetched as a side lookup; a missing customer record degrades to nil.
type CustomerSummary struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	City       string    `json:"city,omitempty"`
	MemberFrom time.Time `json:"member_from"`
}
