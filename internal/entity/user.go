/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

// Role of an account inside the journal system
type Role string

const (
	RoleAdmin     Role = "admin"     // Manages accounts and per-patient field configurations
	RoleTherapist Role = "therapist" // Reviews patient activity
	RolePatient   Role = "patient"   // Records journal entries
)

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleTherapist, RolePatient:
		return true
	}
	return false
}

// User account of the journal system.
// Passwords are stored and compared verbatim: the login contract is an exact
// match on the username/password pair.
type User struct {
	UUID      string    `gorm:"primaryKey" json:"uuid"`               // Unique identifier
	Username  string    `gorm:"uniqueIndex;not null" json:"username"` // Login name, unique and case-sensitive
	Password  string    `gorm:"not null" json:"-"`                    // Credential, never serialized
	Role      Role      `gorm:"not null;index" json:"role"`           // admin, therapist or patient
	CreatedAt time.Time `gorm:"not null" json:"created-at"`           // Time of creation

	RequiredFields FieldSet `gorm:"serializer:json" json:"required-fields"` // Tags driving the entry wizard for this user

	Entries []Entry `gorm:"foreignKey:UserUUID;references:UUID" json:"-"` // Journal entries owned by the user
}

// IsAdmin reports whether u is a logged in admin. Safe on a nil user.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
