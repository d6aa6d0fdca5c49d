package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/carelinehq/careadmin/internal/assessment"
	assessmentdomain "github.com/carelinehq/careadmin/internal/assessment/domain"
	"github.com/carelinehq/careadmin/internal/audit"
	"github.com/carelinehq/careadmin/internal/careteam"
	careteamdomain "github.com/carelinehq/careadmin/internal/careteam/domain"
	"github.com/carelinehq/careadmin/internal/config"
	"github.com/carelinehq/careadmin/internal/crud"
	"github.com/carelinehq/careadmin/internal/diet"
	dietdomain "github.com/carelinehq/careadmin/internal/diet/domain"
	"github.com/carelinehq/careadmin/internal/facility"
	facilitydomain "github.com/carelinehq/careadmin/internal/facility/domain"
	"github.com/carelinehq/careadmin/internal/migration"
	"github.com/carelinehq/careadmin/internal/observability"
	"github.com/carelinehq/careadmin/internal/paymentsource"
	paymentsourcedomain "github.com/carelinehq/careadmin/internal/paymentsource/domain"
	"github.com/carelinehq/careadmin/internal/physician"
	physiciandomain "github.com/carelinehq/careadmin/internal/physician/domain"
	"github.com/carelinehq/careadmin/internal/report"
	"github.com/carelinehq/careadmin/internal/resident"
	residentdomain "github.com/carelinehq/careadmin/internal/resident/domain"
	"github.com/carelinehq/careadmin/internal/residentdiet"
	residentdietdomain "github.com/carelinehq/careadmin/internal/residentdiet/domain"
	"github.com/carelinehq/careadmin/internal/residentrent"
	residentrentdomain "github.com/carelinehq/careadmin/internal/residentrent/domain"
	"github.com/carelinehq/careadmin/internal/room"
	roomdomain "github.com/carelinehq/careadmin/internal/room/domain"
	"github.com/carelinehq/careadmin/internal/scope"
	"github.com/carelinehq/careadmin/internal/speciality"
	specialitydomain "github.com/carelinehq/careadmin/internal/speciality/domain"
	"github.com/carelinehq/careadmin/internal/unit"
	unitdomain "github.com/carelinehq/careadmin/internal/unit/domain"
	"github.com/carelinehq/careadmin/internal/validation"
	"github.com/carelinehq/careadmin/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		migration.Module,

		scope.Module,
		validation.Module,
		audit.Module,

		facility.Module,
		unit.Module,
		room.Module,
		speciality.Module,
		physician.Module,
		resident.Module,
		diet.Module,
		residentdiet.Module,
		paymentsource.Module,
		residentrent.Module,
		assessment.Module,
		careteam.Module,

		report.Module,

		fx.Invoke(announce),
	)
	app.Run()
}

func newSnowflakeNode(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}

// services pulls every entity service so the full graph, including each
// module's validation groups, is built at startup rather than on first use.
type services struct {
	fx.In

	Facilities     *crud.Service[facilitydomain.Facility]
	Units          *crud.Service[unitdomain.Unit]
	Rooms          *crud.Service[roomdomain.Room]
	Specialities   *crud.Service[specialitydomain.Speciality]
	Physicians     *crud.Service[physiciandomain.Physician]
	Residents      *crud.Service[residentdomain.Resident]
	Diets          *crud.Service[dietdomain.Diet]
	ResidentDiets  *crud.Service[residentdietdomain.ResidentDiet]
	PaymentSources *crud.Service[paymentsourcedomain.PaymentSource]
	Rents          *crud.Service[residentrentdomain.ResidentRent]
	Assessments    *crud.Service[assessmentdomain.AssessmentCategory]
	CareTeams      *crud.Service[careteamdomain.CareTeamMember]

	Resolver *scope.Resolver
	Reports  *report.Registry

	Log *zap.Logger
}

func announce(s services) {
	s.Log.Info("careadmin ready",
		zap.Strings("reports", s.Reports.Keys()),
	)
}
