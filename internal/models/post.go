package models

import "time"

// PostType distinguishes regular blog posts from club news.
type PostType string

const (
	// PostTypeBlog is the default post type, available to every approved member.
	PostTypeBlog PostType = "BLOG"
	// PostTypeNews requires an approved moderator or admin membership.
	PostTypeNews PostType = "NEWS"
)

// Post is a publication inside a club.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null;index" json:"title"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	Type        PostType  `gorm:"type:varchar(4);not null;default:'BLOG';index:idx_posts_type_published" json:"type"`
	ClubID      uint      `gorm:"not null;index:idx_posts_club_created" json:"club_id"`
	Club        *Club     `gorm:"foreignKey:ClubID" json:"club,omitempty"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Author      *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	IsPublished bool      `gorm:"not null;default:true;index:idx_posts_type_published" json:"is_published"`
	CreatedAt   time.Time `gorm:"index:idx_posts_club_created" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}
