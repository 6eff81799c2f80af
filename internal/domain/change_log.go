package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Change types recorded in the change log
const (
	ChangeAddition   = "addition"
	ChangeCorrection = "correction"
	ChangeDeletion   = "deletion"
)

// ChangeLogEntry is an immutable audit record of an applied suggestion - maps to dictionary_change_log
type ChangeLogEntry struct {
	ID           string         `gorm:"column:id;primaryKey;size:36" json:"id"`
	EntryID      *string        `gorm:"column:entry_id;size:36;index:idx_change_log_entry" json:"entry_id"`
	SuggestionID string         `gorm:"column:suggestion_id;size:36;not null;index" json:"suggestion_id"`
	ChangeType   string         `gorm:"column:change_type;size:20;not null" json:"change_type"`
	OldValues    datatypes.JSON `gorm:"column:old_values" json:"old_values"`
	NewValues    datatypes.JSON `gorm:"column:new_values" json:"new_values"`
	ChangedBy    string         `gorm:"column:changed_by;size:36" json:"changed_by"`
	ApprovedBy   string         `gorm:"column:approved_by;size:36" json:"approved_by"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at"`

	Suggestion *Suggestion  `gorm:"foreignKey:SuggestionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Approver   *Contributor `gorm:"foreignKey:ApprovedBy;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName returns the table name
func (ChangeLogEntry) TableName() string {
	return "dictionary_change_log"
}

// BeforeCreate assigns a UUID when none is set
func (c *ChangeLogEntry) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// BeforeUpdate refuses any mutation of a written record
func (c *ChangeLogEntry) BeforeUpdate(tx *gorm.DB) error {
	return ErrChangeLogImmutable
}

// BeforeDelete refuses deletion of a written record
func (c *ChangeLogEntry) BeforeDelete(tx *gorm.DB) error {
	return ErrChangeLogImmutable
}
