package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered author or commenter.
type User struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	PasswordHash   string             `json:"-" bson:"password"` // Never expose in JSON
	Bio            string             `json:"bio" bson:"bio"`
	ProfilePicture string             `json:"profilePicture" bson:"profilePicture"`
	Location       string             `json:"location" bson:"location"`
	Website        string             `json:"website" bson:"website"`
	Twitter        string             `json:"twitter" bson:"twitter"`
	Linkedin       string             `json:"linkedin" bson:"linkedin"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}
