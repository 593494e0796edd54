package models

import "time"

// Application statuses. Only "pending" counts toward the task owner's badge.
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusWithdrawn = "withdrawn"
)

type Application struct {
	ID             string    `json:"id"`
	TaskID         string    `json:"task_id"`
	ProfessionalID string    `json:"professional_id"`
	Message        string    `json:"message,omitempty"`
	Price          *float64  `json:"price,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
