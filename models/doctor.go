package models

import "time"

// Doctor represents a doctor account.
type Doctor struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Specialty    string    `bson:"specialty" json:"specialty"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// DoctorRegistration is the payload for creating a doctor account.
type DoctorRegistration struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Specialty string `json:"specialty" binding:"required"`
}
