package domain

import "time"

const EntityType = "careteam"

// Care team roles.
const (
	RoleAttending  = "attending"
	RoleConsulting = "consulting"
	RoleOnCall     = "on_call"
)

// CareTeamMember links one physician to one resident's care team.
type CareTeamMember struct {
	ID          int64  `gorm:"primaryKey"`
	TenantID    int64  `gorm:"index:idx_care_team_tenant"`
	ResidentID  int64  `gorm:"index:ux_care_team_resident_physician,unique"`
	PhysicianID int64  `gorm:"index:ux_care_team_resident_physician,unique"`
	Role        string `gorm:"size:32"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CareTeamMember) TableName() string {
	return "care_team_members"
}
