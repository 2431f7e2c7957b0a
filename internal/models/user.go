package models

import "time"

type User struct {
	ID        string    `json:"user_id" bson:"_id"`
	Name      string    `json:"name,omitempty" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	Role      string    `json:"role,omitempty" bson:"role"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == "admin"
}
