package users

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Roles        []string
	RegisteredAt time.Time
}

func (u User) IsAdmin() bool {
	for _, role := range u.Roles {
		if role == "admin" {
			return true
		}
	}
	return false
}

type Secret struct {
	PasswordHash []byte
	Salt         []byte
}
