package physician

import (
	"github.com/carelinehq/careadmin/internal/crud"
	facilitydomain "github.com/carelinehq/careadmin/internal/facility/domain"
	"github.com/carelinehq/careadmin/internal/physician/domain"
	specialitydomain "github.com/carelinehq/careadmin/internal/speciality/domain"
	"github.com/carelinehq/careadmin/internal/validation"
	"go.uber.org/fx"
)

const (
	GroupAdd  = "physician_add"
	GroupEdit = "physician_edit"
)

func NewService(
	p crud.Deps,
	gateway *validation.Gateway,
	facilities *crud.Service[facilitydomain.Facility],
	specialities *crud.Service[specialitydomain.Speciality],
) *crud.Service[domain.Physician] {
	rules := validation.Rules{
		"LastName":  "required,max=128",
		"FirstName": "max=128",
		"Email":     "omitempty,email",
		"LicenseNo": "max=64",
	}
	gateway.Register(domain.Physician{}, GroupAdd, rules)
	gateway.Register(domain.Physician{}, GroupEdit, rules)

	return crud.NewService(p, crud.Config[domain.Physician]{
		Entity: domain.EntityType,
		New:    func() *domain.Physician { return &domain.Physician{} },
		Init: func(ph *domain.Physician, id, tenantID int64) {
			ph.ID = id
			ph.TenantID = tenantID
		},
		ID: func(ph *domain.Physician) int64 { return ph.ID },
		Refs: []crud.RefSpec[domain.Physician]{
			{
				Param:    "facility_id",
				Resolve:  crud.ResolveWith(facilities.Store()),
				NotFound: &crud.NotFoundError{Entity: facilitydomain.EntityType},
				Assign: func(ph *domain.Physician, ref any) {
					ph.FacilityID = ref.(*facilitydomain.Facility).ID
				},
			},
			{
				Param:    "speciality_id",
				Resolve:  crud.ResolveWith(specialities.Store()),
				NotFound: &crud.NotFoundError{Entity: specialitydomain.EntityType},
				Assign: func(ph *domain.Physician, ref any) {
					ph.SpecialityID = ref.(*specialitydomain.Speciality).ID
				},
			},
		},
		Parent: &crud.ParentSpec{Param: "facility_id", Column: "facility_id"},
		Search: crud.SearchSpec{
			TextColumn:  "last_name",
			SortColumns: map[string]bool{"last_name": true, "created_at": true},
			FilterColumns: map[string]string{
				"facility_id":   "facility_id",
				"speciality_id": "speciality_id",
			},
		},
		AddGroup:  GroupAdd,
		EditGroup: GroupEdit,
		Assign: func(ph *domain.Physician, p crud.Params) {
			ph.FirstName = p.String("first_name")
			ph.LastName = p.String("last_name")
			ph.Phone = p.String("phone")
			ph.Email = p.String("email")
			ph.LicenseNo = p.String("license_no")
		},
		RelatedInfo: func(ph *domain.Physician) map[string]any {
			return map[string]any{
				"name":          ph.FullName(),
				"facility_id":   ph.FacilityID,
				"speciality_id": ph.SpecialityID,
			}
		},
	})
}

var Module = fx.Module("physician.service",
	fx.Provide(NewService),
)
