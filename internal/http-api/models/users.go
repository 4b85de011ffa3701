package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of privilege levels. Keeping it a named type (instead
// of raw strings scattered around) makes invalid roles unrepresentable in the
// service layer.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var roleRank = map[Role]int{
	RoleUser:      1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r sits at or above other in the user < moderator < admin order.
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] >= roleRank[other]
}

// CanModerate reports whether r may edit or delete other users' reviews and comments.
// Moderator and admin have equal content-moderation power.
func (r Role) CanModerate() bool {
	return r.AtLeast(RoleModerator)
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

type User struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `gorm:"type:text" json:"bio"`
	Role      Role   `gorm:"type:varchar(20);default:'user';not null" json:"role"`
	// bcrypt hash of the most recently issued confirmation code; cleared once the
	// code is exchanged for an access token.
	ConfirmationCode string    `gorm:"column:confirmation_code" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

func (User) TableName() string {
	return "users"
}
