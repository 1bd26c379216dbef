package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is a directory entry keyed by the identity provider's user ID.
// The existence of a document grants console access; no other attribute
// is consumed by the guard.
type Admin struct {
	UserID    string    `json:"userId" bson:"_id"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// AdminUser is a credential record for the local identity provider
// (used when Firebase is not configured). Password holds a bcrypt hash.
type AdminUser struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// LoginRequest is the request body for POST /api/admin/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
