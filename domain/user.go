package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipLevel string

const (
	MembershipSilver   MembershipLevel = "silver"
	MembershipGold     MembershipLevel = "gold"
	MembershipPlatinum MembershipLevel = "platinum"
)

// Rank gives the ordinal position of a level: silver < gold < platinum.
// Unknown levels rank below silver.
func (m MembershipLevel) Rank() int {
	switch m {
	case MembershipSilver:
		return 1
	case MembershipGold:
		return 2
	case MembershipPlatinum:
		return 3
	}
	return 0
}

func (m MembershipLevel) IsValid() bool {
	return m.Rank() > 0
}

// AtLeast reports whether the level meets the given tier.
func (m MembershipLevel) AtLeast(level MembershipLevel) bool {
	return m.Rank() >= level.Rank()
}

type User struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string          `gorm:"column:email;unique;not null" json:"email"`
	PasswordHash    string          `gorm:"column:password_hash;not null" json:"-"`
	FirstName       string          `gorm:"column:first_name;not null" json:"firstName"`
	LastName        string          `gorm:"column:last_name;not null" json:"lastName"`
	Phone           *string         `gorm:"column:phone" json:"phone,omitempty"`
	AvatarURL       *string         `gorm:"column:avatar_url" json:"avatarURL,omitempty"`
	MembershipLevel MembershipLevel `gorm:"column:membership_level;default:silver" json:"membershipLevel"`
	Points          int             `gorm:"column:points;default:0" json:"points"`
	MemberSince     time.Time       `gorm:"column:member_since" json:"memberSince"`
	EmailVerified   bool            `gorm:"column:email_verified;default:false" json:"emailVerified"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.MemberSince.IsZero() {
		u.MemberSince = time.Now()
	}
	return nil
}
