package model

import "github.com/google/uuid"

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
}

type Credentials struct {
	Username string `json:"username" validate:"required,min=4,max=20,safetext"`
	Password string `json:"password" validate:"required,min=8,max=32,safetext"`
}

type AccessToken struct {
	AccessToken string `json:"accessToken"`
}
