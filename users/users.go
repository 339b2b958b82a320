package users

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role represents the access level of a registered user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the allowed values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// SocialLinks holds optional profile links. They are orthogonal to
// authentication and never influence auth decisions.
type SocialLinks struct {
	Website   string `json:"website,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedIn,omitempty"`
	X         string `json:"x,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

type User struct {
	ID           string      `json:"id,omitempty"`         // Unique identifier for the user
	Username     string      `json:"username,omitempty"`   // System-generated unique username
	Email        string      `json:"email,omitempty"`      // User's email address, unique
	PasswordHash string      `json:"-"`                    // Hashed version of the user's password - never serialize
	Role         Role        `json:"role,omitempty"`       // Access level: user or admin
	FirstName    string      `json:"first_name,omitempty"` // First name of the user
	LastName     string      `json:"last_name,omitempty"`  // Last name of the user
	SocialLinks  SocialLinks `json:"social_links,omitempty"`
	CreatedAt    time.Time   `json:"created_at,omitempty"` // Date and time when the user registered
}

const usernamePrefix = "user-"

// GenUsername returns a system-generated username of the form "user-<suffix>".
// The suffix carries 48 bits of entropy; collisions are left to the store's
// uniqueness constraint.
func GenUsername() (string, error) {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("users.GenUsername rand.Read: %w", err)
	}
	return usernamePrefix + hex.EncodeToString(suffix), nil
}

// HashPassword hashes a plaintext password with bcrypt at the given cost.
// A cost of 0 falls back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash reports whether the plaintext password matches the stored
// bcrypt hash. It never fails for well-formed inputs, only mismatches.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
