package domain

import "time"

const EntityType = "room"

// Room is a bedroom inside one unit. Number is unique per unit.
type Room struct {
	ID       int64  `gorm:"primaryKey"`
	TenantID int64  `gorm:"index:idx_rooms_tenant"`
	UnitID   int64  `gorm:"index:ux_rooms_unit_number,unique"`
	Number   string `gorm:"index:ux_rooms_unit_number,unique;size:32"`
	Beds     int

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Room) TableName() string {
	return "rooms"
}
