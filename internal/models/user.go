package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AdminUserID is the bootstrap account created by the seeder. It can never be
// deleted, neither from the settings page nor from the user list.
const AdminUserID uint = 1

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:150;not null;uniqueIndex"`
	Email        string `gorm:"size:150;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:256;not null"`
	CreatedAt    time.Time
}

// SetPassword hashes the clear-text password with bcrypt.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the clear-text password matches the stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin reports whether this is the protected bootstrap account.
func (u User) IsAdmin() bool { return u.ID == AdminUserID }
