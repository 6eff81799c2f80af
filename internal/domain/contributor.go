package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contributor is anyone who submitted a suggestion, or a seeded expert
type Contributor struct {
	ID                    string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	Email                 string     `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Name                  string     `gorm:"column:name;size:100" json:"name"`
	IsExpert              bool       `gorm:"column:is_expert;index:idx_contributors_expert;not null" json:"is_expert"`
	IsActive              bool       `gorm:"column:is_active;not null" json:"is_active"`
	ContributionsCount    int        `gorm:"column:contributions_count;not null" json:"contributions_count"`
	ApprovedContributions int        `gorm:"column:approved_contributions;not null" json:"approved_contributions"`
	LastLogin             *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
	PasswordHash          *string    `gorm:"column:password_hash;size:255" json:"-"`
	CreatedAt             time.Time  `gorm:"column:created_at" json:"created_at"`
}

// TableName returns the table name
func (Contributor) TableName() string {
	return "contributors"
}

// BeforeCreate assigns a UUID when none is set
func (c *Contributor) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// IsActiveExpert reports whether the contributor may review suggestions
func (c *Contributor) IsActiveExpert() bool {
	return c.IsExpert && c.IsActive
}

// LoginRequest expert credential exchange
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ExpertInfo is the expert as exposed to the admin UI
type ExpertInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResponse expert login result
type LoginResponse struct {
	Token string     `json:"token"`
	User  ExpertInfo `json:"user"`
}
