package models

import "time"

// MembershipRole defines a member's role within a club.
type MembershipRole string

const (
	// MembershipRoleAdmin is the club admin role, assigned only at club
	// creation and immutable thereafter.
	MembershipRoleAdmin MembershipRole = "ADMIN"
	// MembershipRoleModerator is the club moderator role.
	MembershipRoleModerator MembershipRole = "MODERATOR"
	// MembershipRoleMember is the default member role.
	MembershipRoleMember MembershipRole = "MEMBER"
)

// MembershipStatus defines lifecycle states for a membership.
type MembershipStatus string

const (
	// MembershipStatusPending indicates a join request awaiting review.
	MembershipStatusPending MembershipStatus = "PENDING"
	// MembershipStatusApproved indicates an accepted membership.
	MembershipStatusApproved MembershipStatus = "APPROVED"
	// MembershipStatusRejected indicates a declined join request.
	MembershipStatusRejected MembershipStatus = "REJECTED"
)

// Membership ties one user to one club with a role and an approval status.
// Rows are never deleted by the application; the partial unique index keeps
// at most one PENDING row per (user, club) pair while allowing historical
// APPROVED/REJECTED rows to accumulate.
type Membership struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index:idx_memberships_user_club;uniqueIndex:uniq_pending_membership,where:status = 'PENDING'" json:"user_id"`
	User      *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ClubID    uint             `gorm:"not null;index:idx_memberships_user_club;index:idx_memberships_club_status;uniqueIndex:uniq_pending_membership,where:status = 'PENDING'" json:"club_id"`
	Club      *Club            `gorm:"foreignKey:ClubID" json:"club,omitempty"`
	Role      MembershipRole   `gorm:"type:varchar(10);not null;default:'MEMBER'" json:"role"`
	Status    MembershipStatus `gorm:"type:varchar(10);not null;default:'PENDING';index:idx_memberships_club_status" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Membership) TableName() string {
	return "memberships"
}

// IsApprovedMember reports whether the membership grants member-level access.
// Safe to call on a nil membership (no row means no access).
func (m *Membership) IsApprovedMember() bool {
	return m != nil && m.Status == MembershipStatusApproved
}

// IsModeratorOrAbove reports whether the membership grants moderator-level
// access (moderators and admins, approved only).
func (m *Membership) IsModeratorOrAbove() bool {
	return m.IsApprovedMember() &&
		(m.Role == MembershipRoleAdmin || m.Role == MembershipRoleModerator)
}

// IsAdmin reports whether the membership grants club admin access.
func (m *Membership) IsAdmin() bool {
	return m.IsApprovedMember() && m.Role == MembershipRoleAdmin
}
