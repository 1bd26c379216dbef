package models

import "time"

// Request statuses. "rejected" comes from the newer admin panel variant
// and is part of the canonical three-state set.
const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
	StatusRejected  = "rejected"
)

// Request represents a submitted event inquiry. The request ID doubles as
// the document key; it is generated once at submission time and never reused.
type Request struct {
	RequestID string     `json:"requestId" bson:"_id"`
	FirstName string     `json:"firstName" bson:"firstName"`
	LastName  string     `json:"lastName" bson:"lastName"`
	Email     string     `json:"email" bson:"email"`
	Phone     string     `json:"phone,omitempty" bson:"phone"`
	Subject   string     `json:"subject" bson:"subject"`
	Message   string     `json:"message" bson:"message"`
	Status    string     `json:"status" bson:"status"`
	CreatedAt *time.Time `json:"createdAt" bson:"createdAt"`
}

// SubmitRequestInput is the request body for POST /api/requests.
type SubmitRequestInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// UpdateStatusRequest is the request body for status changes.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RequestStats holds the per-status counts shown on the dashboard.
// Derived from the fetched list, never persisted.
type RequestStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Processed int `json:"processed"`
	Rejected  int `json:"rejected"`
}

// IsValidStatus reports whether s is one of the known request statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessed, StatusRejected:
		return true
	}
	return false
}
