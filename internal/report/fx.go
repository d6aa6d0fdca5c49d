package report

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

func newRegistry(p Params) *Registry {
	r := NewRegistry(p.DB, p.Log)
	r.Register(KeyResidentRoster, ResidentRoster)
	r.Register(KeyRentRoll, RentRollReport)
	return r
}

var Module = fx.Module("report",
	fx.Provide(newRegistry),
)
