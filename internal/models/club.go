package models

import "time"

// Club is a member-run community. Its slug is derived from the name at
// creation time and is never empty after save.
type Club struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Slug        string    `gorm:"size:220;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatorID   uint      `gorm:"not null;index" json:"creator_id"`
	Creator     *User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// MemberCount is not persisted; computed at query time from approved memberships
	MemberCount int64 `gorm:"->" json:"member_count"`
}

// TableName specifies the table name for GORM.
func (Club) TableName() string {
	return "clubs"
}
