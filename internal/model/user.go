package model

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

// Role values form a closed set. Stored and filterable, but no route performs
// authorization checks in this version.
const (
	RoleAdmin       = "Admin"
	RolePlayer      = "Player"
	RoleAgent       = "Agent"
	RoleClubManager = "Club Manager"
)

// Roles lists every valid role in display order.
var Roles = []string{RoleAdmin, RolePlayer, RoleAgent, RoleClubManager}

// ValidRole reports whether role is one of the four allowed values.
// Matching is case-sensitive and exact.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if role == r {
			return true
		}
	}
	return false
}

// User represents a row of the users table.
type User struct {
	UserID       uint       `json:"user_id" gorm:"column:user_id;primaryKey"`
	Name         string     `json:"name" gorm:"size:100;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Role         string     `json:"role" gorm:"size:50;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;size:64;not null"` // Never expose in JSON
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login" gorm:"column:last_login"`
	IsActive     bool       `json:"is_active" gorm:"column:is_active;default:true"`
}

// TableName pins the table name; GORM would otherwise pluralize the struct name
// the same way, but the seed data predates this code and the name is load-bearing.
func (User) TableName() string { return "users" }

// HashPassword returns the hex-encoded SHA-256 digest of the plaintext.
//
// The digest is unsalted and fast, which is a known weakness (see README).
// It is kept because every stored credential, including the seed accounts,
// is a plain SHA-256 digest and logins must keep verifying against them.
func HashPassword(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// CheckPassword reports whether the plaintext hashes to the stored digest.
func (u *User) CheckPassword(plaintext string) bool {
	return subtle.ConstantTimeCompare([]byte(u.PasswordHash), []byte(HashPassword(plaintext))) == 1
}
